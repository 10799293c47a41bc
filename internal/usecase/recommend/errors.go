package recommend

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMatchList indicates a score was requested for zero matches.
	// A template with zero slots never reaches the scorer; this guards the
	// division.
	ErrEmptyMatchList = errors.New("cannot score an empty match list")

	// ErrMissingOwner indicates a recommendation request without an owner id.
	ErrMissingOwner = errors.New("wardrobe owner id is required")

	// ErrTemplateFailed wraps per-template failures reported as warnings.
	ErrTemplateFailed = errors.New("template matching failed")
)

// Warning reports a template that was dropped from the ranked output.
// The response stays usable; the caller decides whether to surface it.
type Warning struct {
	OutfitID uuid.UUID
	Reason   string
	Detail   string
}
