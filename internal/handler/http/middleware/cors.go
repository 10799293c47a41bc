// Package middleware holds the CORS layer for the browser-facing API.
// The frontend uploads wardrobe items and fetches recommendations from a
// different origin, so every deployed environment must whitelist its
// frontend origin explicitly; there is no wildcard mode.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// OriginValidator decides whether a request origin may receive CORS
// headers. GetAllowedOrigins exists for startup logging and returns a
// copy.
type OriginValidator interface {
	IsAllowed(origin string) bool
	GetAllowedOrigins() []string
}

// CORSLogger receives CORS policy events. The map keys become structured
// log fields.
type CORSLogger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// CORSConfig is the policy applied by the CORS middleware.
type CORSConfig struct {
	AllowedMethods []string
	AllowedHeaders []string

	// AllowCredentials must be true for cookie-scoped owner sessions.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	Validator OriginValidator
	Logger    CORSLogger
}

// CORS returns middleware enforcing the given policy. Same-origin
// requests (no Origin header) pass through untouched. Disallowed origins
// are logged and passed through without CORS headers; the browser blocks
// the response. Preflight OPTIONS requests are answered with 204 and do
// not reach the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			// Echo the request origin; required when credentials are allowed.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
