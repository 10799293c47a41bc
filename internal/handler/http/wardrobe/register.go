package wardrobe

import (
	"net/http"

	wardrobeUC "outfitmatch/internal/usecase/wardrobe"
)

// Register registers all wardrobe-related HTTP handlers with the given mux.
// It sets up routes for adding, listing, fetching, counting, and removing
// wardrobe items.
func Register(mux *http.ServeMux, svc wardrobeUC.Service) {
	mux.Handle("GET    /wardrobe/items", ListHandler{svc})
	mux.Handle("GET    /wardrobe/counts", CountsHandler{svc})
	mux.Handle("POST   /wardrobe/items", CreateHandler{svc})
	mux.Handle("GET    /wardrobe/items/", GetHandler{svc})
	mux.Handle("DELETE /wardrobe/items/", DeleteHandler{svc})
}
