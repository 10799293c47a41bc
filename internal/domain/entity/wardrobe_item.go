package entity

import (
	"time"

	"github.com/google/uuid"
)

// WardrobeItem represents a single clothing item in a user's wardrobe.
// The embedding is produced by the external classification/embedding pipeline
// and is immutable once created; items are only ever created and deleted.
type WardrobeItem struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Embedding   []float32
	Type        ClothingType
	Style       Style
	Description string
	ImageRef    string
	CreatedAt   time.Time
}

// Validate checks the wardrobe item fields.
// It does not check dimensionality against the configured embedding dimension;
// that check belongs to the ingestion path where the configuration lives.
func (w *WardrobeItem) Validate() error {
	if w.ID == uuid.Nil {
		return &ValidationError{Field: "ID", Message: "item id is required"}
	}
	if w.OwnerID == uuid.Nil {
		return &ValidationError{Field: "OwnerID", Message: "owner id is required"}
	}
	if len(w.Embedding) == 0 {
		return &ValidationError{Field: "Embedding", Message: "embedding is required"}
	}
	if !w.Type.IsValid() {
		return ErrInvalidClothingType
	}
	if !w.Style.IsValid() {
		return ErrInvalidStyle
	}
	return nil
}
