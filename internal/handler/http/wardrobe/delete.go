package wardrobe

import (
	"net/http"

	"outfitmatch/internal/handler/http/pathutil"
	"outfitmatch/internal/handler/http/respond"
	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

type DeleteHandler struct{ Svc wardrobeUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/wardrobe/items/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.RemoveItem(r.Context(), id); err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
