package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateTopology validates the three unit counts of a feed-forward
// network. Every layer must hold at least one unit; an upper bound keeps
// degenerate inputs from producing boards with millions of sliders.
func ValidateTopology(nInput, nHidden, nOutput int) error {
	for _, c := range []struct {
		name  string
		count int
	}{
		{"input", nInput},
		{"hidden", nHidden},
		{"output", nOutput},
	} {
		if c.count < 1 {
			return New(ErrCodeInvalidTopology, "%s layer must have at least 1 unit, got %d", c.name, c.count)
		}
		if c.count > 256 {
			return New(ErrCodeInvalidTopology, "%s layer has %d units (max 256)", c.name, c.count)
		}
	}
	return nil
}

// ValidatePlanName validates a stored plan name for safety and correctness.
// It rejects names that could be used for path traversal or injection.
func ValidatePlanName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "plan name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "plan name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "plan name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "plan name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output path. The path must
// be non-empty and must not contain null bytes; directories are created by
// the caller, so existence is not checked here.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "output path contains a null byte")
	}
	if cleaned := filepath.Clean(path); strings.HasPrefix(cleaned, "..") {
		return New(ErrCodeInvalidPath, "output path escapes the working directory: %s", path)
	}
	return nil
}
