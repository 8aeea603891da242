package utils

import (
	"github.com/google/uuid"
)

// ValidUUIDOrEmpty returns the input when it parses as a UUID, otherwise "".
// Query-string hierarchy filters pass through this before reaching the
// repositories.
func ValidUUIDOrEmpty(s string) string {
	if s == "" {
		return ""
	}
	if _, err := uuid.Parse(s); err != nil {
		return ""
	}
	return s
}

// StringToUUIDPtr converts a string to UUID pointer
func StringToUUIDPtr(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &u
}
