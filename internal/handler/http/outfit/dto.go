package outfit

import "outfitmatch/internal/domain/entity"

type SlotDTO struct {
	ID           string          `json:"id"`
	Position     int             `json:"position"`
	ClothingType string          `json:"clothing_type"`
	ExternalRef  *ExternalRefDTO `json:"external_ref,omitempty"`
}

type ExternalRefDTO struct {
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Label    string `json:"label,omitempty"`
}

type DTO struct {
	ID              string    `json:"id"`
	Style           string    `json:"style"`
	PreviewImageRef string    `json:"preview_image_ref,omitempty"`
	Slots           []SlotDTO `json:"slots"`
}

func toDTO(tpl *entity.OutfitTemplate) DTO {
	slots := make([]SlotDTO, 0, len(tpl.Slots))
	for i := range tpl.Slots {
		slot := &tpl.Slots[i]
		dto := SlotDTO{
			ID:           slot.ID.String(),
			Position:     slot.Position,
			ClothingType: string(slot.Type),
		}
		if slot.ExternalRef != nil {
			dto.ExternalRef = &ExternalRefDTO{
				URL:      slot.ExternalRef.URL,
				ImageURL: slot.ExternalRef.ImageURL,
				Label:    slot.ExternalRef.Label,
			}
		}
		slots = append(slots, dto)
	}
	return DTO{
		ID:              tpl.ID.String(),
		Style:           string(tpl.Style),
		PreviewImageRef: tpl.PreviewImageRef,
		Slots:           slots,
	}
}
