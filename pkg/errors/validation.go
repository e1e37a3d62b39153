package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextLength is the longest free-text field (word, institution name, title)
// accepted at the input boundary, in runes.
const MaxTextLength = 256

// ValidateText validates a free-text field before it reaches the engine.
// The engine escapes everything it embeds; this check only rejects input no
// editor would produce.
//
// The validation rules are intentionally conservative:
//   - Must be valid UTF-8
//   - No control characters other than tab
//   - Maximum length of MaxTextLength runes
//
// Empty strings are valid: blank entries are filtered by the engine.
func ValidateText(field, s string) error {
	if !utf8.ValidString(s) {
		return New(ErrCodeInvalidInput, "%s is not valid UTF-8", field)
	}
	if n := utf8.RuneCountInString(s); n > MaxTextLength {
		return New(ErrCodeInvalidInput, "%s too long (%d characters, max %d)", field, n, MaxTextLength)
	}
	for _, r := range s {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// outputExtensions lists the file extensions the sinks can produce.
var outputExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".json": true,
	".pdf":  true,
}

// ValidateOutputFilename validates a download filename for safety.
// It ensures the filename is a simple basename with a known extension.
func ValidateOutputFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "output filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidPath, "output filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidPath, "output filename cannot be a hidden file")
	}

	for _, r := range filename {
		if unicode.IsControl(r) || r == '"' {
			return New(ErrCodeInvalidPath, "output filename contains invalid characters")
		}
	}

	if !outputExtensions[strings.ToLower(filepath.Ext(filename))] {
		return New(ErrCodeInvalidPath, "output filename must end in .html, .json or .pdf")
	}

	return nil
}

// ValidatePath validates an image path referenced from a worksheet file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
