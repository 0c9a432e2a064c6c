package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateNodeID validates a node identifier for safety and correctness.
// Node IDs travel through URLs, cache keys and store queries, so the
// rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNode, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidNode, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidNode, "node ID contains invalid control characters")
		}
	}

	return nil
}

// ValidateDocumentID validates a document identifier. Documents created
// by this application carry UUIDs; foreign IDs are accepted as long as
// they satisfy the same safety rules as node IDs.
func ValidateDocumentID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "document ID cannot be empty")
	}

	if _, err := uuid.Parse(id); err == nil {
		return nil
	}

	if err := ValidateNodeID(id); err != nil {
		return New(ErrCodeInvalidDocument, "invalid document ID: %q", id)
	}
	return nil
}

// ValidateTitle validates a document title.
func ValidateTitle(title string) error {
	if len(title) > 512 {
		return New(ErrCodeInvalidDocument, "title too long (max 512 characters)")
	}
	for _, r := range title {
		if r == '\x00' {
			return New(ErrCodeInvalidDocument, "title contains null bytes")
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
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

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
