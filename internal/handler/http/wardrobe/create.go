package wardrobe

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/handler/http/respond"
	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

type CreateHandler struct{ Svc wardrobeUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID      string    `json:"owner_id"`
		Embedding    []float32 `json:"embedding"`
		ClothingType string    `json:"clothing_type"`
		Style        string    `json:"style"`
		Description  string    `json:"description"`
		ImageRef     string    `json:"image_ref"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil || ownerID == uuid.Nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("owner_id required"))
		return
	}
	if len(req.Embedding) == 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("embedding required"))
		return
	}

	item := &entity.WardrobeItem{
		OwnerID:     ownerID,
		Embedding:   req.Embedding,
		Type:        entity.ClothingType(req.ClothingType),
		Style:       entity.Style(req.Style),
		Description: req.Description,
		ImageRef:    req.ImageRef,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Svc.AddItem(r.Context(), item); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusCreated, toDTO(item))
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidClothingType),
		errors.Is(err, entity.ErrInvalidStyle),
		errors.Is(err, entity.ErrDimensionMismatch),
		errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
