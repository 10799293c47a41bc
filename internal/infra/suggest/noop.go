package suggest

import (
	"context"

	"outfitmatch/internal/domain/entity"
)

// NoOpSuggester satisfies the suggester contract without doing any lookups.
// Used when no search API credentials are configured.
type NoOpSuggester struct{}

// NewNoOpSuggester creates a suggester that never returns suggestions.
func NewNoOpSuggester() *NoOpSuggester {
	return &NoOpSuggester{}
}

// Suggest always returns no suggestion.
func (n *NoOpSuggester) Suggest(_ context.Context, _ entity.ClothingType, _ entity.Style) (*entity.Suggestion, error) {
	return nil, nil
}
