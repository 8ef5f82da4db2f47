package storage

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the maximum length of a note name in bytes.
const MaxNameLength = 128

// ErrInvalidName is returned when a note name cannot be used as a file name component.
var ErrInvalidName = errors.New("invalid note name")

// ValidateName checks name against the allowlist of characters that form a safe
// file name component: letters, digits, '_', '-' and '.'. The first character must
// be a letter, digit or '_' and the name must not contain "..".
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, MaxNameLength)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidName)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: path traversal detected", ErrInvalidName)
	}

	for i, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		case (r == '-' || r == '.') && i > 0:
		default:
			return fmt.Errorf("%w: character %q not allowed", ErrInvalidName, r)
		}
	}
	return nil
}
