package recommend_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/usecase/recommend"
)

func rec(t *testing.T, id string, score float64, sims ...float64) entity.Recommendation {
	t.Helper()
	r := entity.Recommendation{
		OutfitID:          uuid.MustParse(id),
		CompletenessScore: score,
	}
	for _, s := range sims {
		r.Matches = append(r.Matches, matched(t, s))
	}
	return r
}

func ids(recs []entity.Recommendation) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].OutfitID.String()
	}
	return out
}

const (
	idA = "00000000-0000-0000-0000-00000000000a"
	idB = "00000000-0000-0000-0000-00000000000b"
	idC = "00000000-0000-0000-0000-00000000000c"
)

func TestRank_ByCompletenessDescending(t *testing.T) {
	in := []entity.Recommendation{
		rec(t, idA, 0.3),
		rec(t, idB, 0.9),
		rec(t, idC, 0.6),
	}

	got := recommend.Rank(in)

	require.Len(t, got, 3)
	assert.Equal(t, []string{idB, idC, idA}, ids(got))
}

func TestRank_TiebreakByAvgMatchedSimilarity(t *testing.T) {
	// Same completeness, but A's single match is tighter.
	in := []entity.Recommendation{
		rec(t, idB, 0.5, 0.7),
		rec(t, idA, 0.5, 0.95),
	}

	got := recommend.Rank(in)

	assert.Equal(t, []string{idA, idB}, ids(got))
}

func TestRank_FinalTiebreakByOutfitID(t *testing.T) {
	in := []entity.Recommendation{
		rec(t, idC, 0.5, 0.8),
		rec(t, idA, 0.5, 0.8),
		rec(t, idB, 0.5, 0.8),
	}

	got := recommend.Rank(in)

	assert.Equal(t, []string{idA, idB, idC}, ids(got))
}

func TestRank_Idempotent(t *testing.T) {
	in := []entity.Recommendation{
		rec(t, idC, 0.5, 0.8),
		rec(t, idB, 0.7, 0.6),
		rec(t, idA, 0.5, 0.9),
	}

	once := recommend.Rank(in)
	twice := recommend.Rank(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("ranking is not stable (-once +twice):\n%s", diff)
	}
}

func TestRank_PreservesLengthAndInput(t *testing.T) {
	in := []entity.Recommendation{
		rec(t, idB, 0.2),
		rec(t, idA, 0.8),
	}

	got := recommend.Rank(in)

	assert.Len(t, got, len(in))
	// Input slice must not be reordered in place.
	assert.Equal(t, idB, in[0].OutfitID.String())
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, recommend.Rank(nil))
}
