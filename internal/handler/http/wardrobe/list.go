package wardrobe

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/handler/http/respond"
	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

type ListHandler struct{ Svc wardrobeUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil || ownerID == uuid.Nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("owner_id required"))
		return
	}

	var types []entity.ClothingType
	for _, raw := range r.URL.Query()["type"] {
		types = append(types, entity.ClothingType(raw))
	}

	items, err := h.Svc.ListItems(r.Context(), ownerID, types)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item))
	}
	respond.JSON(w, http.StatusOK, out)
}

type CountsHandler struct{ Svc wardrobeUC.Service }

func (h CountsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil || ownerID == uuid.Nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("owner_id required"))
		return
	}

	counts, err := h.Svc.CountItems(r.Context(), ownerID)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make(map[string]int64, len(counts))
	for clothingType, count := range counts {
		out[string(clothingType)] = count
	}
	respond.JSON(w, http.StatusOK, out)
}
