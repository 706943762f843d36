package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds panel identifiers and display names.
const maxIdentifierLength = 128

// ValidatePanelID validates a panel identifier as it arrives in a drag
// payload. Identifiers are short opaque tokens: no whitespace, no control
// characters, no path separators.
func ValidatePanelID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "panel id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "panel id too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "panel id contains invalid characters: %q", id)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "panel id cannot contain path separators: %q", id)
	}
	return nil
}

// ValidateDisplayName validates a human-readable panel name.
// Spaces are allowed, control characters are not.
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "display name cannot be blank")
	}
	if len(name) > maxIdentifierLength {
		return New(ErrCodeInvalidInput, "display name too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "display name contains control characters")
		}
	}
	return nil
}
