package recommend

import (
	"sort"

	"outfitmatch/internal/domain/entity"
)

// Rank orders recommendations for presentation.
//
// Primary key is completeness score descending. Ties break on the average
// similarity across matched slots descending, then on outfit id ascending
// so equal outfits always come back in the same order. The sort is stable
// and rank(rank(x)) == rank(x).
func Rank(recs []entity.Recommendation) []entity.Recommendation {
	out := make([]entity.Recommendation, len(recs))
	copy(out, recs)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CompletenessScore != out[j].CompletenessScore {
			return out[i].CompletenessScore > out[j].CompletenessScore
		}
		ai, aj := out[i].AvgMatchedSimilarity(), out[j].AvgMatchedSimilarity()
		if ai != aj {
			return ai > aj
		}
		return out[i].OutfitID.String() < out[j].OutfitID.String()
	})

	return out
}
