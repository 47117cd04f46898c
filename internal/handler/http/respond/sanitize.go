package respond

import (
	"regexp"
)

var (
	// More specific key patterns are applied first so masked output never
	// re-matches a broader pattern.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)
	tavilyKeyPattern    = regexp.MustCompile(`tvly-[a-zA-Z0-9-_]+`)

	// Credentials embedded in a DSN.
	dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)
)

// SanitizeError returns the error message with API keys and DSN passwords masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = tavilyKeyPattern.ReplaceAllString(msg, "tvly-****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
