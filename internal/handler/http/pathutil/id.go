package pathutil

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractUUID extracts and parses a UUID from a URL path.
// It removes the specified prefix and attempts to parse the remaining string.
//
// Example:
//
//	id, err := ExtractUUID("/outfits/5a0e0e9e-...", "/outfits/")
func ExtractUUID(path, prefix string) (uuid.UUID, error) {
	idStr := strings.TrimPrefix(path, prefix)
	if idStr == "" || strings.Contains(idStr, "/") {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
