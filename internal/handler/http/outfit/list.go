package outfit

import (
	"errors"
	"net/http"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/handler/http/respond"
	catalogUC "outfitmatch/internal/usecase/catalog"
)

type ListHandler struct{ Svc catalogUC.Service }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var styles []entity.Style
	for _, raw := range r.URL.Query()["style"] {
		styles = append(styles, entity.Style(raw))
	}

	templates, err := h.Svc.ListTemplates(r.Context(), styles)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}

	out := make([]DTO, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, toDTO(tpl))
	}
	respond.JSON(w, http.StatusOK, out)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidStyle),
		errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
