// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity fields before
// they are validated or stored.
package normalize

import (
	"strings"
)

// Name trims and collapses interior whitespace.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone strips separators from a phone number, keeping digits and one
// leading plus. "+91 12345-67890" and "+91 (12345) 67890" normalize to the
// same stored value so the unique index can do its job.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '+' && b.Len() == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidPhone reports whether a normalized phone number looks plausible:
// optional leading plus followed by 7 to 15 digits.
func ValidPhone(s string) bool {
	digits := strings.TrimPrefix(s, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
