package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// pmidRegex matches PubMed identifiers: positive decimal integers.
var pmidRegex = regexp.MustCompile(`^[1-9][0-9]{0,9}$`)

// ValidatePMID checks that id looks like a PubMed identifier before it is
// sent to a remote service or used as a cache key.
func ValidatePMID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "PubMed id cannot be empty")
	}
	if !pmidRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid PubMed id %q", id)
	}
	return nil
}

// ValidateBlockName checks a data block name. Names are written after
// "data_" and must not contain whitespace or control characters.
func ValidateBlockName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "data block name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "data block name %q contains whitespace", name)
		}
	}
	return nil
}

// ValidatePath validates a file path inside a repository archive.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
