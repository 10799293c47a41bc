package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that answers 504 when a handler exceeds the
// given duration. The request context is canceled so downstream work
// (oracle queries, outbound suggest calls) stops instead of running on
// after the client has its error.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			// The handler runs in its own goroutine; the guard makes the
			// handler and the timeout path mutually exclusive writers.
			done := make(chan struct{})
			guard := &writeGuard{ResponseWriter: w}

			go func() {
				next.ServeHTTP(guard, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guard.mu.Lock()
				guard.timedOut = true
				if !guard.written {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				guard.mu.Unlock()
			}
		})
	}
}

// writeGuard suppresses handler writes that race the timeout response.
type writeGuard struct {
	http.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (w *writeGuard) WriteHeader(statusCode int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.timedOut && !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *writeGuard) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !w.written {
		w.written = true
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(data)
}
