package outfit

import (
	"net/http"

	"outfitmatch/internal/handler/http/pathutil"
	"outfitmatch/internal/handler/http/respond"
	catalogUC "outfitmatch/internal/usecase/catalog"
)

type GetHandler struct{ Svc catalogUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/outfits/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	tpl, err := h.Svc.GetTemplate(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(tpl))
}
