package wardrobe

import (
	"time"

	"outfitmatch/internal/domain/entity"
)

type DTO struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	ClothingType string    `json:"clothing_type"`
	Style        string    `json:"style,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageRef     string    `json:"image_ref,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toDTO(item *entity.WardrobeItem) DTO {
	return DTO{
		ID:           item.ID.String(),
		OwnerID:      item.OwnerID.String(),
		ClothingType: string(item.Type),
		Style:        string(item.Style),
		Description:  item.Description,
		ImageRef:     item.ImageRef,
		CreatedAt:    item.CreatedAt,
	}
}
