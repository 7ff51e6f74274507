package errors

import (
	"unicode"
)

// maxPathLength bounds the length of file paths accepted on the command line.
const maxPathLength = 4096

// ValidatePath validates a file path given for input or output.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// Absolute paths and parent references are allowed.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
		}
	}

	return nil
}

// ValidateIndent checks an indentation width for pretty-printed output.
func ValidateIndent(n int) error {
	const maxIndent = 16
	if n < 0 || n > maxIndent {
		return New(ErrCodeInvalidConfig, "indent must be between 0 and %d, got %d", maxIndent, n)
	}
	return nil
}
