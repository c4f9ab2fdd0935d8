package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds label text accepted from outside (URL paths, cache keys).
const maxLabelLength = 64

// ValidateColumns checks that a grid width is usable for layout.
func ValidateColumns(columns int) error {
	if columns < 1 {
		return New(ErrCodeInvalidColumns, "columns must be at least 1, got %d", columns)
	}
	return nil
}

// ValidateLabelText validates rendered label text before it is used as a
// file name or cache key.
//
// Validation rules:
//   - Text cannot be empty
//   - Maximum length of 64 characters
//   - Only ASCII letters, digits and the separators '-', '.', '_' and ' '
//   - No path traversal sequences (..)
func ValidateLabelText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(text) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range text {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid characters")
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune("-._ ", r) {
			return New(ErrCodeInvalidLabel, "label contains invalid character %q", r)
		}
	}

	if strings.Contains(text, "..") {
		return New(ErrCodeInvalidLabel, "label cannot contain path traversal sequences (..)")
	}

	return nil
}
