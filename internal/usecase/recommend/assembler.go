package recommend

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/repository"
)

// Suggester sources a purchasable substitute for an unmatched slot that has
// no product link of its own in the catalog.
type Suggester interface {
	Suggest(ctx context.Context, clothingType entity.ClothingType, style entity.Style) (*entity.Suggestion, error)
}

// ItemView is the resolved display data for a matched wardrobe item.
type ItemView struct {
	ID          uuid.UUID
	Type        entity.ClothingType
	Style       entity.Style
	Description string
	ImageRef    string
}

// AssembledMatch is one slot of the final response: the match decision plus
// whatever display data could be resolved for it.
type AssembledMatch struct {
	SlotID     uuid.UUID
	Type       entity.ClothingType
	Status     entity.MatchStatus
	Similarity float64

	// Item is set for matched slots whose wardrobe item still exists.
	Item *ItemView

	// ItemUnavailable marks a matched slot whose item was deleted between
	// matching and assembly. The slot still counts as matched for scoring.
	ItemUnavailable bool

	// Suggestion is set for unmatched slots when a substitute was sourced.
	Suggestion *entity.Suggestion
}

// AssembledRecommendation is one ranked outfit ready for presentation.
type AssembledRecommendation struct {
	OutfitID          uuid.UUID
	Style             entity.Style
	PreviewImageRef   string
	CompletenessScore float64
	Matches           []AssembledMatch
}

// Assembler resolves ranked recommendations into presentation data.
// It contains no matching logic; failures degrade individual matches and
// never abort the response.
type Assembler struct {
	Items     repository.WardrobeItemRepository
	Suggester Suggester
}

// NewAssembler creates an assembler. suggester may be nil to disable
// substitute lookups for slots without a catalog product link.
func NewAssembler(items repository.WardrobeItemRepository, suggester Suggester) *Assembler {
	return &Assembler{Items: items, Suggester: suggester}
}

// Assemble resolves item metadata for every matched slot and sources
// substitutes for unmatched slots that lack one. Recommendation order and
// per-template slot order are preserved.
func (a *Assembler) Assemble(ctx context.Context, recs []entity.Recommendation) []AssembledRecommendation {
	items := a.resolveItems(ctx, recs)

	out := make([]AssembledRecommendation, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		assembled := AssembledRecommendation{
			OutfitID:          rec.OutfitID,
			Style:             rec.Style,
			PreviewImageRef:   rec.PreviewImageRef,
			CompletenessScore: rec.CompletenessScore,
			Matches:           make([]AssembledMatch, 0, len(rec.Matches)),
		}
		for j := range rec.Matches {
			assembled.Matches = append(assembled.Matches, a.assembleMatch(ctx, rec, &rec.Matches[j], items))
		}
		out = append(out, assembled)
	}
	return out
}

// resolveItems batch-loads every wardrobe item referenced by a matched slot.
// A store failure here degrades all matched slots to unavailable instead of
// failing the response.
func (a *Assembler) resolveItems(ctx context.Context, recs []entity.Recommendation) map[uuid.UUID]*entity.WardrobeItem {
	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0)
	for i := range recs {
		for j := range recs[i].Matches {
			m := &recs[i].Matches[j]
			if !m.Matched() {
				continue
			}
			if _, ok := seen[m.ItemID]; ok {
				continue
			}
			seen[m.ItemID] = struct{}{}
			ids = append(ids, m.ItemID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*entity.WardrobeItem{}
	}

	items, err := a.Items.GetBatch(ctx, ids)
	if err != nil {
		slog.Warn("failed to resolve wardrobe items for assembly",
			slog.Int("item_count", len(ids)),
			slog.Any("error", err))
		return map[uuid.UUID]*entity.WardrobeItem{}
	}

	byID := make(map[uuid.UUID]*entity.WardrobeItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return byID
}

func (a *Assembler) assembleMatch(ctx context.Context, rec *entity.Recommendation, m *entity.Match, items map[uuid.UUID]*entity.WardrobeItem) AssembledMatch {
	assembled := AssembledMatch{
		SlotID:     m.SlotID,
		Type:       m.Type,
		Status:     m.Status,
		Similarity: m.Similarity,
		Suggestion: m.Suggestion,
	}

	if m.Matched() {
		item, ok := items[m.ItemID]
		if !ok {
			// Item deleted between matching and assembly.
			assembled.ItemUnavailable = true
			slog.Info("matched item no longer available",
				slog.String("outfit_id", rec.OutfitID.String()),
				slog.String("item_id", m.ItemID.String()))
			return assembled
		}
		assembled.Item = &ItemView{
			ID:          item.ID,
			Type:        item.Type,
			Style:       item.Style,
			Description: item.Description,
			ImageRef:    item.ImageRef,
		}
		return assembled
	}

	if assembled.Suggestion == nil && a.Suggester != nil {
		suggestion, err := a.Suggester.Suggest(ctx, m.Type, rec.Style)
		if err != nil {
			// Suggestions are best-effort; the slot stays unmatched without one.
			slog.Warn("substitute lookup failed",
				slog.String("clothing_type", string(m.Type)),
				slog.Any("error", err))
			return assembled
		}
		assembled.Suggestion = suggestion
	}
	return assembled
}
