package recommend

import "outfitmatch/internal/domain/entity"

// Score computes the completeness score for one template's matches.
//
// Each matched slot contributes its similarity mapped linearly from [-1, 1]
// to [0, 1]; unmatched slots contribute 0. The sum is divided by the total
// slot count, so the score rewards both coverage and match quality. The
// result is always in [0, 1] and reaches 1.0 only when every slot matched
// with similarity 1.0.
func Score(matches []entity.Match) (float64, error) {
	if len(matches) == 0 {
		return 0, ErrEmptyMatchList
	}

	var sum float64
	for i := range matches {
		if matches[i].Matched() {
			sum += (matches[i].Similarity + 1) / 2
		}
	}
	return sum / float64(len(matches)), nil
}
