package outfit

import (
	"net/http"

	catalogUC "outfitmatch/internal/usecase/catalog"
)

// Register registers outfit catalog HTTP handlers with the given mux.
// The catalog is read-only over HTTP; templates are managed through the
// seeding pipeline.
func Register(mux *http.ServeMux, svc catalogUC.Service) {
	mux.Handle("GET /outfits", ListHandler{svc})
	mux.Handle("GET /outfits/", GetHandler{svc})
}
