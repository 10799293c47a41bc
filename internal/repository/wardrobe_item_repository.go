package repository

import (
	"context"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
)

// WardrobeItemRepository defines the interface for reading and writing
// wardrobe items and their embeddings. Items are written once by the upload
// pipeline and deleted on user request; there is no update path.
type WardrobeItemRepository interface {
	// Create stores a new wardrobe item together with its embedding.
	// Returns an error if the item fails validation or already exists.
	Create(ctx context.Context, item *entity.WardrobeItem) error

	// Get retrieves a single item by id.
	// Returns entity.ErrNotFound if the item does not exist.
	Get(ctx context.Context, id uuid.UUID) (*entity.WardrobeItem, error)

	// GetBatch retrieves the items with the given ids. Missing ids are simply
	// absent from the result map; this is not an error.
	GetBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.WardrobeItem, error)

	// ListByOwner retrieves all items belonging to an owner, optionally
	// restricted to the given clothing types. Returns an empty slice (not nil)
	// for an empty wardrobe.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, types []entity.ClothingType) ([]*entity.WardrobeItem, error)

	// CountByOwner returns the number of items an owner has, per clothing type.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (map[entity.ClothingType]int64, error)

	// Delete removes an item and its embedding.
	// Returns entity.ErrNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
