package http

import "net/http"

const (
	maxHeaderValueBytes = 8192
	maxPathBytes        = 2048

	// An item upload carries one embedding vector plus metadata; 10MB
	// is far above any legitimate payload.
	maxBodyBytes = 10 << 20
)

// InputValidation rejects malformed request shapes before routing:
// oversized header values, over-long paths, and oversized bodies.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxHeaderValueBytes {
				writeJSONError(w, http.StatusBadRequest, "authorization header too large")
				return
			}

			if len(r.URL.Path) > maxPathBytes {
				writeJSONError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
