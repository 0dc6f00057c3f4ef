package validate

import (
	"errors"
	"strings"
)

// MaxUsernameLength is the X handle length limit
const MaxUsernameLength = 15

// Classified validation failures, checked in order: required, length, charset.
var (
	ErrRequired = errors.New("username is required")
	ErrTooLong  = errors.New("username must be 15 characters or less")
	ErrCharset  = errors.New("username can only contain letters, numbers, and underscores")
)

// Username checks a handle against X username rules.
// Pure and deterministic: no I/O, no side effects.
func Username(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ErrRequired
	}
	if len(trimmed) > MaxUsernameLength {
		return ErrTooLong
	}
	for _, r := range trimmed {
		if !isHandleChar(r) {
			return ErrCharset
		}
	}
	return nil
}

// Normalize strips surrounding whitespace and a leading @ before validation or use.
func Normalize(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "@")
}

func isHandleChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}
