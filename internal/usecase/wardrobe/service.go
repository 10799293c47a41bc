// Package wardrobe provides use cases for managing a user's wardrobe items.
// Items arrive from the upload pipeline already embedded; this service owns
// validation and persistence, not vector computation.
package wardrobe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/infra/describer"
	"outfitmatch/internal/repository"
)

// Service provides wardrobe item management use cases.
type Service struct {
	Items     repository.WardrobeItemRepository
	Config    *config.MatchingConfig
	Describer describer.Describer
}

// NewService creates a wardrobe service. desc may be nil to skip description
// back-fill.
func NewService(items repository.WardrobeItemRepository, cfg *config.MatchingConfig, desc describer.Describer) Service {
	return Service{Items: items, Config: cfg, Describer: desc}
}

// AddItem validates and stores a new wardrobe item.
// The embedding dimension must match the configured model output; a mismatch
// is a configuration error in the upload pipeline, rejected here.
// Items arriving without a description get one generated best effort.
func (s *Service) AddItem(ctx context.Context, item *entity.WardrobeItem) error {
	if item == nil {
		return entity.ErrInvalidInput
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if len(item.Embedding) != s.Config.EmbeddingDimension {
		return fmt.Errorf("item %s: have %d, want %d: %w",
			item.ID, len(item.Embedding), s.Config.EmbeddingDimension, entity.ErrDimensionMismatch)
	}

	if item.Description == "" && s.Describer != nil {
		description, err := s.Describer.Describe(ctx, describer.Subject{
			Type:  item.Type,
			Style: item.Style,
		})
		if err != nil {
			slog.Warn("description back-fill failed",
				slog.String("item_id", item.ID.String()),
				slog.Any("error", err))
		} else {
			item.Description = description
		}
	}

	if err := s.Items.Create(ctx, item); err != nil {
		return fmt.Errorf("create wardrobe item: %w", err)
	}

	slog.Info("wardrobe item added",
		slog.String("item_id", item.ID.String()),
		slog.String("owner_id", item.OwnerID.String()),
		slog.String("clothing_type", string(item.Type)))
	return nil
}

// GetItem retrieves a single item.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*entity.WardrobeItem, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidInput
	}
	return s.Items.Get(ctx, id)
}

// ListItems retrieves an owner's wardrobe, optionally filtered by clothing
// type. An empty wardrobe returns an empty slice, not an error.
func (s *Service) ListItems(ctx context.Context, ownerID uuid.UUID, types []entity.ClothingType) ([]*entity.WardrobeItem, error) {
	if ownerID == uuid.Nil {
		return nil, entity.ErrInvalidInput
	}
	for _, t := range types {
		if !t.IsValid() {
			return nil, entity.ErrInvalidClothingType
		}
	}
	return s.Items.ListByOwner(ctx, ownerID, types)
}

// CountItems returns the owner's item counts per clothing type.
func (s *Service) CountItems(ctx context.Context, ownerID uuid.UUID) (map[entity.ClothingType]int64, error) {
	if ownerID == uuid.Nil {
		return nil, entity.ErrInvalidInput
	}
	return s.Items.CountByOwner(ctx, ownerID)
}

// RemoveItem deletes an item on user request.
// Returns entity.ErrNotFound when the item does not exist.
func (s *Service) RemoveItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return entity.ErrInvalidInput
	}
	if err := s.Items.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("wardrobe item removed", slog.String("item_id", id.String()))
	return nil
}
