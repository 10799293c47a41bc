package recommend_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/usecase/recommend"
)

func matched(t *testing.T, similarity float64) entity.Match {
	t.Helper()
	slot := entity.OutfitSlot{ID: uuid.New(), Type: entity.ClothingTypeTop, Embedding: []float32{1, 0, 0, 0}}
	m, err := entity.NewMatched(slot, uuid.New(), similarity)
	require.NoError(t, err)
	return m
}

func unmatched() entity.Match {
	slot := entity.OutfitSlot{ID: uuid.New(), Type: entity.ClothingTypeBottom, Embedding: []float32{0, 1, 0, 0}}
	return entity.NewUnmatched(slot, nil)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		matches []entity.Match
		want    float64
	}{
		{
			name:    "single matched slot with similarity 0.92 and one gap",
			matches: []entity.Match{matched(t, 0.92), unmatched()},
			want:    0.48, // ((0.92+1)/2 + 0) / 2
		},
		{
			name:    "all slots matched perfectly",
			matches: []entity.Match{matched(t, 1.0), matched(t, 1.0), matched(t, 1.0)},
			want:    1.0,
		},
		{
			name:    "all slots unmatched",
			matches: []entity.Match{unmatched(), unmatched()},
			want:    0,
		},
		{
			name:    "negative similarity still maps into the unit interval",
			matches: []entity.Match{matched(t, -0.5)},
			want:    0.25,
		},
		{
			name:    "mixed coverage and quality",
			matches: []entity.Match{matched(t, 0.8), matched(t, 0.6), unmatched(), unmatched()},
			want:    (0.9 + 0.8) / 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := recommend.Score(tt.matches)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScore_EmptyMatchList(t *testing.T) {
	_, err := recommend.Score(nil)
	assert.ErrorIs(t, err, recommend.ErrEmptyMatchList)
}

func TestScore_AlwaysInUnitInterval(t *testing.T) {
	sims := []float64{-1, -0.3, 0, 0.4, 0.99, 1}
	for _, s := range sims {
		got, err := recommend.Score([]entity.Match{matched(t, s), unmatched()})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

// Filling a gap with any non-negative similarity must never lower the score.
func TestScore_MonotoneInCoverage(t *testing.T) {
	base := []entity.Match{matched(t, 0.85), unmatched(), unmatched()}
	before, err := recommend.Score(base)
	require.NoError(t, err)

	for _, s := range []float64{0, 0.1, 0.7, 1.0} {
		filled := []entity.Match{base[0], matched(t, s), base[2]}
		after, err := recommend.Score(filled)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, after, before, "similarity %v", s)
	}
}

func TestScore_OnlyPerfectMatchesReachOne(t *testing.T) {
	got, err := recommend.Score([]entity.Match{matched(t, 1.0), matched(t, 0.999)})
	require.NoError(t, err)
	assert.Less(t, got, 1.0)
}
