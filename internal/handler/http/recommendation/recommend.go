// Package recommendation exposes the outfit recommendation pipeline over HTTP.
package recommendation

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/handler/http/respond"
	"outfitmatch/internal/usecase/recommend"
)

type RecommendHandler struct{ Svc recommend.Service }

func (h RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID string   `json:"owner_id"`
		Styles  []string `json:"styles"`
		Pool    []string `json:"pool"`
		Limit   int      `json:"limit"`
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

	opts := recommend.Options{Limit: req.Limit}
	for _, raw := range req.Styles {
		opts.Styles = append(opts.Styles, entity.Style(raw))
	}
	for _, raw := range req.Pool {
		itemID, perr := uuid.Parse(raw)
		if perr != nil {
			respond.SafeError(w, http.StatusBadRequest, errors.New("invalid pool item id"))
			return
		}
		opts.Pool = append(opts.Pool, itemID)
	}

	result, err := h.Svc.GenerateRecommendations(r.Context(), ownerID, opts)
	if err != nil {
		respond.SafeError(w, statusFor(err), err)
		return
	}
	respond.JSON(w, http.StatusOK, toResponseDTO(result))
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, recommend.ErrMissingOwner),
		errors.Is(err, entity.ErrInvalidStyle),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
