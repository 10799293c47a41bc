package wardrobe

import (
	"net/http"

	"outfitmatch/internal/handler/http/pathutil"
	"outfitmatch/internal/handler/http/respond"
	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

type GetHandler struct{ Svc wardrobeUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/wardrobe/items/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	item, err := h.Svc.GetItem(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(item))
}
