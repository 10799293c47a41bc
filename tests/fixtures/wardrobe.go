// Package fixtures provides reusable test data generators for integration tests.
package fixtures

import (
	"math"
	"time"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
)

// EmbeddingDim is the embedding dimension used throughout the test suite.
// It matches the production default (CLIP ViT-B/32).
const EmbeddingDim = 512

// GenerateTestVector creates a unit-normalized test vector of the given
// dimension. The seed varies the direction so callers can create distinct
// vectors deterministically.
func GenerateTestVector(dim int, seed float64) []float32 {
	v := make([]float32, dim)
	var norm float64
	for i := range v {
		x := math.Sin(seed + float64(i)*0.7)
		v[i] = float32(x)
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// ItemOption is a functional option for customizing test wardrobe items.
type ItemOption func(*entity.WardrobeItem)

// NewTestItem creates a valid WardrobeItem with sensible defaults.
// Use functional options to customize the item for specific test cases.
//
// Example:
//
//	item := NewTestItem()
//	item := NewTestItem(WithType(entity.ClothingTypeShoes), WithSeed(0.3))
func NewTestItem(opts ...ItemOption) *entity.WardrobeItem {
	item := &entity.WardrobeItem{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Embedding:   GenerateTestVector(EmbeddingDim, 0.1),
		Type:        entity.ClothingTypeTop,
		Style:       entity.StyleMinimalist,
		Description: "plain white tee",
		ImageRef:    "items/tee.jpg",
		CreatedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(item)
	}

	return item
}

// WithItemID sets the ID of the item.
func WithItemID(id uuid.UUID) ItemOption {
	return func(i *entity.WardrobeItem) { i.ID = id }
}

// WithOwner sets the OwnerID of the item.
func WithOwner(id uuid.UUID) ItemOption {
	return func(i *entity.WardrobeItem) { i.OwnerID = id }
}

// WithType sets the ClothingType of the item.
func WithType(t entity.ClothingType) ItemOption {
	return func(i *entity.WardrobeItem) { i.Type = t }
}

// WithStyle sets the Style of the item.
func WithStyle(s entity.Style) ItemOption {
	return func(i *entity.WardrobeItem) { i.Style = s }
}

// WithSeed regenerates the embedding vector from the given seed.
func WithSeed(seed float64) ItemOption {
	return func(i *entity.WardrobeItem) { i.Embedding = GenerateTestVector(EmbeddingDim, seed) }
}

// WithEmbedding sets the embedding vector directly.
func WithEmbedding(v []float32) ItemOption {
	return func(i *entity.WardrobeItem) { i.Embedding = v }
}

// TemplateOption is a functional option for customizing test outfit templates.
type TemplateOption func(*entity.OutfitTemplate)

// NewTestTemplate creates a valid two-slot OutfitTemplate (top + bottom).
func NewTestTemplate(opts ...TemplateOption) *entity.OutfitTemplate {
	tpl := &entity.OutfitTemplate{
		ID:    uuid.New(),
		Style: entity.StyleMinimalist,
		Slots: []entity.OutfitSlot{
			{ID: uuid.New(), Position: 0, Type: entity.ClothingTypeTop, Embedding: GenerateTestVector(EmbeddingDim, 1.1)},
			{ID: uuid.New(), Position: 1, Type: entity.ClothingTypeBottom, Embedding: GenerateTestVector(EmbeddingDim, 2.2)},
		},
		PreviewImageRef: "outfits/minimal.jpg",
		Active:          true,
	}

	for _, opt := range opts {
		opt(tpl)
	}

	return tpl
}

// WithTemplateID sets the template id.
func WithTemplateID(id uuid.UUID) TemplateOption {
	return func(t *entity.OutfitTemplate) { t.ID = id }
}

// WithTemplateStyle sets the template style.
func WithTemplateStyle(s entity.Style) TemplateOption {
	return func(t *entity.OutfitTemplate) { t.Style = s }
}

// WithSlots replaces the template slots.
func WithSlots(slots ...entity.OutfitSlot) TemplateOption {
	return func(t *entity.OutfitTemplate) { t.Slots = slots }
}
