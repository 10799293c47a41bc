package middleware

import "strings"

// WhitelistValidator allows origins by exact match. Origins are
// normalized to lowercase with trailing slashes stripped, so
// "HTTP://Localhost:3000/" and "http://localhost:3000" compare equal.
type WhitelistValidator struct {
	allowedOrigins []string
}

// NewWhitelistValidator builds a validator from the given origins.
// Blank entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = normalizeOrigin(origin)
		if origin == "" {
			continue
		}
		normalized = append(normalized, origin)
	}
	return &WhitelistValidator{allowedOrigins: normalized}
}

// IsAllowed reports whether origin is whitelisted. Empty origins are
// never allowed.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	for _, allowed := range v.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// GetAllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, len(v.allowedOrigins))
	copy(out, v.allowedOrigins)
	return out
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
