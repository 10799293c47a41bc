package config

import (
	"fmt"
	"time"
)

// SuggestConfig holds configuration for the substitute product search.
type SuggestConfig struct {
	// APIKey for the Google Custom Search API.
	// When empty, suggestion lookups are disabled.
	APIKey string

	// SearchEngineID is the custom search engine identifier (cx parameter).
	SearchEngineID string

	// Endpoint is the search API base URL.
	// Default: "https://www.googleapis.com/customsearch/v1"
	Endpoint string

	// NumResults is how many results to request per query.
	// Default: 5
	NumResults int

	// Timeout bounds a single search request.
	// Default: 10s
	Timeout time.Duration

	// RatePerSecond throttles outgoing search requests.
	// Default: 5
	RatePerSecond float64

	// RateBurst is the rate limiter burst size.
	// Default: 5
	RateBurst int
}

// LoadSuggestConfig loads product search configuration from environment variables.
func LoadSuggestConfig() (*SuggestConfig, error) {
	config := &SuggestConfig{
		APIKey:         getEnvOrDefault("GOOGLE_API_KEY", ""),
		SearchEngineID: getEnvOrDefault("GOOGLE_CX", ""),
		Endpoint:       getEnvOrDefault("SUGGEST_ENDPOINT", "https://www.googleapis.com/customsearch/v1"),
		NumResults:     getEnvInt("SUGGEST_NUM_RESULTS", 5),
		Timeout:        getEnvDuration("SUGGEST_TIMEOUT", 10*time.Second),
		RatePerSecond:  getEnvFloat("SUGGEST_RATE_PER_SECOND", 5),
		RateBurst:      getEnvInt("SUGGEST_RATE_BURST", 5),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suggest configuration: %w", err)
	}

	return config, nil
}

// Enabled reports whether suggestion lookups can be performed.
// Both the API key and the search engine id must be configured.
func (c *SuggestConfig) Enabled() bool {
	return c.APIKey != "" && c.SearchEngineID != ""
}

// Validate checks configuration correctness.
func (c *SuggestConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("SUGGEST_ENDPOINT cannot be empty")
	}

	if c.NumResults <= 0 || c.NumResults > 10 {
		return fmt.Errorf("SUGGEST_NUM_RESULTS must be between 1 and 10")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("SUGGEST_TIMEOUT must be positive")
	}

	if c.RatePerSecond <= 0 {
		return fmt.Errorf("SUGGEST_RATE_PER_SECOND must be positive")
	}

	if c.RateBurst <= 0 {
		return fmt.Errorf("SUGGEST_RATE_BURST must be positive")
	}

	return nil
}
