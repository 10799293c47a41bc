package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/repository"
	"outfitmatch/internal/resilience/retry"
)

// Matcher fills the slots of one outfit template from a wardrobe.
// It is stateless across calls; every invocation is a pure function of its
// inputs and the oracle's current view of the store.
type Matcher struct {
	Oracle repository.SimilarityOracle
	Config *config.MatchingConfig
}

// NewMatcher creates a slot matcher backed by the given similarity oracle.
func NewMatcher(oracle repository.SimilarityOracle, cfg *config.MatchingConfig) *Matcher {
	return &Matcher{Oracle: oracle, Config: cfg}
}

// MatchTemplate produces exactly one Match per slot, in template order.
//
// Slots are queried concurrently, bounded by SlotParallelism so a wide
// template cannot overwhelm the oracle. When pool is non-empty only items in
// the pool are eligible. A slot whose clothing type has no eligible items
// comes back unmatched; that is the expected wardrobe-gap case, not an error.
// An oracle failure fails the whole template so the caller can drop it
// without affecting sibling templates.
func (m *Matcher) MatchTemplate(ctx context.Context, tpl *entity.OutfitTemplate, ownerID uuid.UUID, pool []uuid.UUID) ([]entity.Match, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	if err := tpl.ValidateDimension(m.Config.EmbeddingDimension); err != nil {
		return nil, err
	}

	matches := make([]entity.Match, len(tpl.Slots))
	sem := make(chan struct{}, m.Config.SlotParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	for i := range tpl.Slots {
		i := i
		slot := tpl.Slots[i]
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			match, err := m.matchSlot(egCtx, slot, ownerID, pool)
			if err != nil {
				return err
			}
			matches[i] = match
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return matches, nil
}

// matchSlot runs one nearest-neighbour query and applies the acceptance
// threshold for the slot's clothing type.
func (m *Matcher) matchSlot(ctx context.Context, slot entity.OutfitSlot, ownerID uuid.UUID, pool []uuid.UUID) (entity.Match, error) {
	var candidates []repository.SimilarItem

	queryStart := time.Now()
	err := retry.WithBackoff(ctx, retry.OracleConfig(), func() error {
		var qerr error
		candidates, qerr = m.Oracle.Nearest(ctx, slot.Embedding, ownerID, slot.Type, pool, m.Config.NearestK)
		return qerr
	})
	metrics.RecordOracleQuery(string(slot.Type), time.Since(queryStart))

	if err != nil {
		metrics.RecordOracleQueryError(string(slot.Type), "query_failed")
		return entity.Match{}, fmt.Errorf("nearest query for slot %s: %w", slot.ID, err)
	}

	threshold := m.Config.Threshold(slot.Type)
	if len(candidates) > 0 && candidates[0].Similarity >= threshold {
		match, err := entity.NewMatched(slot, candidates[0].ItemID, candidates[0].Similarity)
		if err != nil {
			return entity.Match{}, fmt.Errorf("slot %s: %w", slot.ID, err)
		}
		metrics.RecordSlotMatch(string(slot.Type), true)
		return match, nil
	}

	metrics.RecordSlotMatch(string(slot.Type), false)
	return entity.NewUnmatched(slot, suggestionFromRef(slot.ExternalRef)), nil
}

// suggestionFromRef converts a slot's catalog product link into the
// suggestion attached to an unmatched match.
func suggestionFromRef(ref *entity.ExternalRef) *entity.Suggestion {
	if ref == nil {
		return nil
	}
	return &entity.Suggestion{
		URL:      ref.URL,
		ImageURL: ref.ImageURL,
		Label:    ref.Label,
	}
}
