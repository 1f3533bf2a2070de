package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MaxFullNameLength = 200
	MaxQueryLength    = 200
)

// SanitizeEmail trims and lowercases email; returns empty if over max length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword enforces the length cap; returns empty if over max length.
// The password itself is never altered: whatever bytes are hashed at signup
// must be the same bytes verified at login.
func SanitizePassword(password string) string {
	if len(password) > MaxPasswordLength {
		return ""
	}
	return password
}

// TruncateQuery caps a free-text search term, cutting on a rune boundary so
// the result stays valid UTF-8.
func TruncateQuery(q string) string {
	if len(q) <= MaxQueryLength {
		return q
	}
	end := MaxQueryLength
	for end > 0 && !utf8.RuneStart(q[end]) {
		end--
	}
	return q[:end]
}
