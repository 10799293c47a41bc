package entity

import (
	"github.com/google/uuid"
)

// MatchStatus discriminates the two shapes a Match can take.
type MatchStatus string

const (
	// MatchStatusMatched means the slot was filled by a wardrobe item.
	MatchStatusMatched MatchStatus = "matched"
	// MatchStatusUnmatched means no wardrobe item cleared the acceptance
	// threshold and the slot carries a substitute suggestion instead.
	MatchStatusUnmatched MatchStatus = "unmatched"
)

// Suggestion is the externally sourced substitute attached to an unmatched slot.
type Suggestion struct {
	URL      string
	ImageURL string
	Label    string
}

// Match pairs one outfit slot with either a wardrobe item or a substitute
// suggestion. Use NewMatched and NewUnmatched; the constructors keep illegal
// states (a matched slot without an item, an out-of-range similarity) out.
type Match struct {
	SlotID uuid.UUID
	Type   ClothingType
	Status MatchStatus

	// ItemID and Similarity are set only when Status is MatchStatusMatched.
	ItemID     uuid.UUID
	Similarity float64

	// Suggestion is set only when Status is MatchStatusUnmatched. It may be
	// nil when no substitute could be sourced for the slot.
	Suggestion *Suggestion

	// ItemUnavailable marks a matched item that disappeared between matching
	// and assembly. The match itself is preserved for slot accounting.
	ItemUnavailable bool
}

// NewMatched builds a matched Match for the given slot. Similarity follows the
// cosine convention; anything outside [-1, 1] is a defect upstream and is
// rejected here.
func NewMatched(slot OutfitSlot, itemID uuid.UUID, similarity float64) (Match, error) {
	if itemID == uuid.Nil {
		return Match{}, &ValidationError{Field: "ItemID", Message: "matched slot requires an item id"}
	}
	if similarity < -1 || similarity > 1 {
		return Match{}, ErrSimilarityOutOfRange
	}
	return Match{
		SlotID:     slot.ID,
		Type:       slot.Type,
		Status:     MatchStatusMatched,
		ItemID:     itemID,
		Similarity: similarity,
	}, nil
}

// NewUnmatched builds an unmatched Match carrying the slot's substitute
// suggestion. suggestion may be nil when nothing could be sourced.
func NewUnmatched(slot OutfitSlot, suggestion *Suggestion) Match {
	return Match{
		SlotID:     slot.ID,
		Type:       slot.Type,
		Status:     MatchStatusUnmatched,
		Suggestion: suggestion,
	}
}

// Matched reports whether the slot was filled by a wardrobe item.
func (m *Match) Matched() bool {
	return m.Status == MatchStatusMatched
}

// Recommendation is one scored outfit in the engine's output: the template id,
// one Match per slot in template order, and the aggregate completeness score.
// Recommendations are ephemeral, computed per request and never persisted here.
type Recommendation struct {
	OutfitID          uuid.UUID
	Style             Style
	PreviewImageRef   string
	CompletenessScore float64
	Matches           []Match
}

// AvgMatchedSimilarity returns the mean similarity across matched slots only.
// It is the ranking tiebreak for recommendations with equal completeness.
// Returns 0 when no slot matched.
func (r *Recommendation) AvgMatchedSimilarity() float64 {
	var sum float64
	var n int
	for i := range r.Matches {
		if r.Matches[i].Matched() {
			sum += r.Matches[i].Similarity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
