package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

var defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}

var defaultCORSHeaders = []string{"Content-Type", "X-Request-ID", "X-Trace-ID"}

// LoadCORSConfig builds the CORS policy from environment variables.
// CORS_ALLOWED_ORIGINS is required (fail-closed: a misconfigured API
// must not start without a whitelist). CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS, and CORS_MAX_AGE are optional with defaults.
// The Logger field is left nil for the caller to inject.
func LoadCORSConfig() (*CORSConfig, error) {
	origins, err := parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed origins: %w", err)
	}

	methods, err := parseMethods(os.Getenv("CORS_ALLOWED_METHODS"))
	if err != nil {
		return nil, fmt.Errorf("failed to load allowed methods: %w", err)
	}

	headers := splitCSV(os.Getenv("CORS_ALLOWED_HEADERS"))
	if len(headers) == 0 {
		headers = defaultCORSHeaders
	}

	maxAge := 86400
	if raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE")); raw != "" {
		maxAge, err = strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return nil, fmt.Errorf("invalid CORS_MAX_AGE '%s': must be a non-negative integer", raw)
		}
	}

	return &CORSConfig{
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
		MaxAge:           maxAge,
		Validator:        NewWhitelistValidator(origins),
	}, nil
}

// parseOrigins validates each comma-separated origin as a bare scheme
// plus host: no path, query, fragment, or trailing slash.
func parseOrigins(raw string) ([]string, error) {
	entries := splitCSV(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS environment variable is required")
	}

	origins := make([]string, 0, len(entries))
	for _, origin := range entries {
		u, err := url.Parse(origin)
		if err != nil {
			return nil, fmt.Errorf("invalid origin URL '%s': %w", origin, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https scheme: %s", origin)
		}
		if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
			return nil, fmt.Errorf("origin must be scheme and host only: %s", origin)
		}
		origins = append(origins, origin)
	}
	return origins, nil
}

func parseMethods(raw string) ([]string, error) {
	entries := splitCSV(raw)
	if len(entries) == 0 {
		return defaultCORSMethods, nil
	}

	valid := make(map[string]bool, len(defaultCORSMethods))
	for _, m := range defaultCORSMethods {
		valid[m] = true
	}

	methods := make([]string, 0, len(entries))
	for _, method := range entries {
		method = strings.ToUpper(method)
		if !valid[method] {
			return nil, fmt.Errorf("invalid HTTP method '%s'", method)
		}
		methods = append(methods, method)
	}
	return methods, nil
}

func splitCSV(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
