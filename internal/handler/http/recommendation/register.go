package recommendation

import (
	"net/http"

	"outfitmatch/internal/usecase/recommend"
)

// Register registers the recommendation HTTP handler with the given mux.
// POST rather than GET because the request carries a body (style filters and
// an optional candidate pool).
func Register(mux *http.ServeMux, svc recommend.Service) {
	mux.Handle("POST /recommendations", RecommendHandler{svc})
}
