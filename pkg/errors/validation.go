package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var gradientIDPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// ValidateSlideName validates a slide name used to derive output file names.
// Names end up in paths, so they must be short and free of separators.
//
// Validation rules:
//   - Empty names are allowed (the slide index is used instead)
//   - Maximum length of 64 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateSlideName(name string) error {
	if name == "" {
		return nil
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidScene, "slide name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "slide name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidScene, "slide name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateGradientID validates a user-chosen gradient id. The id is written
// into SVG attributes and url(#...) references, so it is limited to XML
// name characters. Empty ids are allowed (a default is derived).
func ValidateGradientID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidScene, "gradient id too long (max 64 characters)")
	}
	if !gradientIDPattern.MatchString(id) {
		return New(ErrCodeInvalidScene, "invalid gradient id %q: want a letter or underscore followed by letters, digits, '_', '.' or '-'", id)
	}
	return nil
}

// ValidateScenePath validates the path of a scene file given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Extension must be .toml
func ValidateScenePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scene path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" {
		return New(ErrCodeInvalidPath, "scene file must have a .toml extension, got %q", ext)
	}

	return nil
}
