// Package text provides small text measurement helpers.
package text

import "unicode/utf8"

// CountRunes returns the number of runes in s. Summary lengths are measured
// in runes, not bytes, so multi-byte characters count once.
func CountRunes(s string) int {
	return utf8.RuneCountInString(s)
}

// TruncateRunes returns s truncated to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
