package repository

import (
	"context"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
)

// SimilarItem is one hit from a nearest-neighbor query: a wardrobe item id and
// its cosine similarity to the query vector, in [-1, 1].
type SimilarItem struct {
	ItemID     uuid.UUID
	Similarity float64
}

// SimilarityOracle abstracts the nearest-neighbor search capability used by
// the slot matcher. The engine treats it as a k-nearest-neighbor oracle within
// a clothing-type partition; the backing index is an implementation detail and
// can be swapped for an in-memory fake in tests.
type SimilarityOracle interface {
	// Nearest returns up to k wardrobe items of the given owner and clothing
	// type, ordered by similarity to the query vector, highest first.
	// If pool is non-empty, only items whose id is in the pool are eligible.
	// An empty result is the expected "wardrobe has a gap" case, not an error.
	Nearest(ctx context.Context, query []float32, ownerID uuid.UUID, clothingType entity.ClothingType, pool []uuid.UUID, k int) ([]SimilarItem, error)
}
