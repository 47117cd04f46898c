// Package entity defines the core domain entities and validation logic for
// the application: user profiles, chat records, and news articles, along
// with their domain-specific errors.
package entity

import "strings"

// UserProfile represents a registered user and the declared context used to
// personalize answers and the news digest. Created at signup, read on every
// query, never deleted by this system.
type UserProfile struct {
	UID        string   `json:"uid"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Interests  []string `json:"interests"`
	Skills     []string `json:"skills"`
}

// Validate checks the profile fields required at signup.
func (u *UserProfile) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if !strings.Contains(u.Email, "@") {
		return &ValidationError{Field: "email", Message: "is invalid"}
	}
	if strings.TrimSpace(u.Department) == "" {
		return &ValidationError{Field: "department", Message: "is required"}
	}
	return nil
}

// SplitList parses a comma-separated field (interests, skills) into trimmed,
// non-empty entries. Signup accepts these as comma strings.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
