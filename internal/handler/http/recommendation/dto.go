package recommendation

import (
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/usecase/recommend"
)

type SuggestionDTO struct {
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Label    string `json:"label,omitempty"`
}

type ItemDTO struct {
	ID           string `json:"id"`
	ClothingType string `json:"clothing_type"`
	Style        string `json:"style,omitempty"`
	Description  string `json:"description,omitempty"`
	ImageRef     string `json:"image_ref,omitempty"`
}

type MatchDTO struct {
	SlotID          string         `json:"slot_id"`
	ClothingType    string         `json:"clothing_type"`
	Status          string         `json:"status"`
	Similarity      float64        `json:"similarity,omitempty"`
	Item            *ItemDTO       `json:"item,omitempty"`
	ItemUnavailable bool           `json:"item_unavailable,omitempty"`
	Suggestion      *SuggestionDTO `json:"suggestion,omitempty"`
}

type RecommendationDTO struct {
	OutfitID          string     `json:"outfit_id"`
	Style             string     `json:"style"`
	PreviewImageRef   string     `json:"preview_image_ref,omitempty"`
	CompletenessScore float64    `json:"completeness_score"`
	Matches           []MatchDTO `json:"matches"`
}

type WarningDTO struct {
	OutfitID string `json:"outfit_id"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

type ResponseDTO struct {
	Recommendations []RecommendationDTO `json:"recommendations"`
	Warnings        []WarningDTO        `json:"warnings,omitempty"`
}

func toSuggestionDTO(s *entity.Suggestion) *SuggestionDTO {
	if s == nil {
		return nil
	}
	return &SuggestionDTO{URL: s.URL, ImageURL: s.ImageURL, Label: s.Label}
}

func toItemDTO(item *recommend.ItemView) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:           item.ID.String(),
		ClothingType: string(item.Type),
		Style:        string(item.Style),
		Description:  item.Description,
		ImageRef:     item.ImageRef,
	}
}

func toResponseDTO(result *recommend.Result) ResponseDTO {
	recs := make([]RecommendationDTO, 0, len(result.Recommendations))
	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		matches := make([]MatchDTO, 0, len(rec.Matches))
		for j := range rec.Matches {
			m := &rec.Matches[j]
			matches = append(matches, MatchDTO{
				SlotID:          m.SlotID.String(),
				ClothingType:    string(m.Type),
				Status:          string(m.Status),
				Similarity:      m.Similarity,
				Item:            toItemDTO(m.Item),
				ItemUnavailable: m.ItemUnavailable,
				Suggestion:      toSuggestionDTO(m.Suggestion),
			})
		}
		recs = append(recs, RecommendationDTO{
			OutfitID:          rec.OutfitID.String(),
			Style:             string(rec.Style),
			PreviewImageRef:   rec.PreviewImageRef,
			CompletenessScore: rec.CompletenessScore,
			Matches:           matches,
		})
	}

	warnings := make([]WarningDTO, 0, len(result.Warnings))
	for _, warning := range result.Warnings {
		warnings = append(warnings, WarningDTO{
			OutfitID: warning.OutfitID.String(),
			Reason:   warning.Reason,
			Detail:   warning.Detail,
		})
	}

	return ResponseDTO{Recommendations: recs, Warnings: warnings}
}
