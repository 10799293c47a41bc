package repository

import (
	"context"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
)

// OutfitTemplateRepository defines read access to the outfit catalog.
// Templates are reference data owned by catalog ingestion; the engine only
// reads them. Deactivate exists for the integrity sweep, which retires
// templates that fail configuration checks.
type OutfitTemplateRepository interface {
	// ListActive retrieves all active templates, slots eager-loaded and
	// ordered by position. If styleFilter is non-empty, only templates with
	// one of the given styles are returned. Returns an empty slice (not nil)
	// for an empty catalog.
	ListActive(ctx context.Context, styleFilter []entity.Style) ([]*entity.OutfitTemplate, error)

	// Get retrieves a single template with its slots.
	// Returns entity.ErrNotFound if the template does not exist.
	Get(ctx context.Context, id uuid.UUID) (*entity.OutfitTemplate, error)

	// Deactivate marks a template inactive so it is excluded from matching.
	// Used by the catalog integrity sweep for templates that fail validation.
	Deactivate(ctx context.Context, id uuid.UUID, reason string) error
}
