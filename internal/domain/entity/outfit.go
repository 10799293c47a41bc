package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// ExternalRef points at a purchasable substitute for an outfit slot.
// It is only surfaced when the slot could not be filled from the wardrobe.
type ExternalRef struct {
	URL      string
	ImageURL string
	Label    string
}

// OutfitSlot is one required role within an outfit template, to be filled by
// a wardrobe item of the same clothing type or by a substitute suggestion.
type OutfitSlot struct {
	ID          uuid.UUID
	Position    int
	Type        ClothingType
	Embedding   []float32
	ExternalRef *ExternalRef
}

// Validate checks the slot fields.
func (s *OutfitSlot) Validate() error {
	if s.ID == uuid.Nil {
		return &ValidationError{Field: "ID", Message: "slot id is required"}
	}
	if !s.Type.IsValid() {
		return ErrInvalidClothingType
	}
	if len(s.Embedding) == 0 {
		return &ValidationError{Field: "Embedding", Message: "slot embedding is required"}
	}
	return nil
}

// OutfitTemplate is a pre-assembled outfit from the catalog: an ordered set of
// slots plus presentation metadata. Templates are read-only reference data,
// produced by catalog ingestion, never by end users.
type OutfitTemplate struct {
	ID              uuid.UUID
	Style           Style
	Slots           []OutfitSlot
	PreviewImageRef string
	Active          bool
}

// Validate checks the template and all of its slots.
// A template with zero slots is a configuration error.
func (t *OutfitTemplate) Validate() error {
	if t.ID == uuid.Nil {
		return &ValidationError{Field: "ID", Message: "outfit id is required"}
	}
	if len(t.Slots) == 0 {
		return ErrEmptyTemplate
	}
	if !t.Style.IsValid() {
		return ErrInvalidStyle
	}
	seen := make(map[uuid.UUID]bool, len(t.Slots))
	for i := range t.Slots {
		if err := t.Slots[i].Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if seen[t.Slots[i].ID] {
			return &ValidationError{Field: "Slots", Message: "duplicate slot id"}
		}
		seen[t.Slots[i].ID] = true
	}
	return nil
}

// ValidateDimension checks that every slot embedding has the expected
// dimensionality. Returns ErrDimensionMismatch on the first offending slot.
func (t *OutfitTemplate) ValidateDimension(dim int) error {
	for i := range t.Slots {
		if len(t.Slots[i].Embedding) != dim {
			return fmt.Errorf("slot %d: have %d, want %d: %w",
				i, len(t.Slots[i].Embedding), dim, ErrDimensionMismatch)
		}
	}
	return nil
}
