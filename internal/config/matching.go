package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"outfitmatch/internal/domain/entity"
)

// MatchingConfig holds configuration for the recommendation pipeline.
type MatchingConfig struct {
	// EmbeddingDimension is the expected vector dimension for all
	// embeddings in the store and catalog.
	// Default: 512
	EmbeddingDimension int

	// DefaultThreshold is the minimum cosine similarity for a slot match.
	// Applies to every clothing type without an explicit override.
	// Default: 0.7
	DefaultThreshold float64

	// TypeThresholds overrides the threshold per clothing type.
	// Loaded from the YAML config file; empty when no file is configured.
	TypeThresholds map[entity.ClothingType]float64

	// NearestK is how many candidates each similarity query returns.
	// Only the best candidate is used; an item that disappears between
	// matching and assembly degrades its slot to unmatched.
	// Default: 3
	NearestK int

	// SlotParallelism bounds concurrent similarity queries within one template.
	// Default: 4
	SlotParallelism int

	// TemplateParallelism bounds concurrent template evaluations per request.
	// Default: 8
	TemplateParallelism int

	// MaxTemplates caps how many templates one request may evaluate.
	// Default: 50
	MaxTemplates int

	// MaxRecommendations caps how many ranked recommendations are returned.
	// Default: 20
	MaxRecommendations int

	// OracleTimeout bounds a single similarity query.
	// Default: 5s
	OracleTimeout time.Duration

	// SuggestEnabled controls substitute product lookups for unmatched slots.
	// Default: true
	SuggestEnabled bool
}

// matchingFile is the YAML shape of the optional config file.
type matchingFile struct {
	DefaultThreshold *float64           `yaml:"default_threshold"`
	TypeThresholds   map[string]float64 `yaml:"type_thresholds"`
}

// LoadMatchingConfig loads matching configuration.
// Precedence: defaults, then the YAML file named by MATCHING_CONFIG_FILE,
// then environment variables.
func LoadMatchingConfig() (*MatchingConfig, error) {
	config := &MatchingConfig{
		EmbeddingDimension:  512,
		DefaultThreshold:    0.7,
		TypeThresholds:      map[entity.ClothingType]float64{},
		NearestK:            3,
		SlotParallelism:     4,
		TemplateParallelism: 8,
		MaxTemplates:        50,
		MaxRecommendations:  20,
		OracleTimeout:       5 * time.Second,
		SuggestEnabled:      true,
	}

	if path := os.Getenv("MATCHING_CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, fmt.Errorf("load matching config file: %w", err)
		}
	}

	config.EmbeddingDimension = getEnvInt("MATCHING_EMBEDDING_DIMENSION", config.EmbeddingDimension)
	config.DefaultThreshold = getEnvFloat("MATCHING_DEFAULT_THRESHOLD", config.DefaultThreshold)
	config.NearestK = getEnvInt("MATCHING_NEAREST_K", config.NearestK)
	config.SlotParallelism = getEnvInt("MATCHING_SLOT_PARALLELISM", config.SlotParallelism)
	config.TemplateParallelism = getEnvInt("MATCHING_TEMPLATE_PARALLELISM", config.TemplateParallelism)
	config.MaxTemplates = getEnvInt("MATCHING_MAX_TEMPLATES", config.MaxTemplates)
	config.MaxRecommendations = getEnvInt("MATCHING_MAX_RECOMMENDATIONS", config.MaxRecommendations)
	config.OracleTimeout = getEnvDuration("MATCHING_ORACLE_TIMEOUT", config.OracleTimeout)
	config.SuggestEnabled = getEnvBool("MATCHING_SUGGEST_ENABLED", config.SuggestEnabled)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching configuration: %w", err)
	}

	return config, nil
}

// loadFile merges threshold overrides from a YAML file into the config.
func (c *MatchingConfig) loadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's own environment
	if err != nil {
		return err
	}

	var file matchingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if file.DefaultThreshold != nil {
		c.DefaultThreshold = *file.DefaultThreshold
	}
	for name, threshold := range file.TypeThresholds {
		ct := entity.ClothingType(name)
		if !ct.IsValid() {
			return fmt.Errorf("unknown clothing type %q in type_thresholds", name)
		}
		c.TypeThresholds[ct] = threshold
	}

	return nil
}

// Threshold returns the match threshold for a clothing type,
// falling back to the default when no override exists.
func (c *MatchingConfig) Threshold(ct entity.ClothingType) float64 {
	if t, ok := c.TypeThresholds[ct]; ok {
		return t
	}
	return c.DefaultThreshold
}

// Validate checks configuration correctness.
func (c *MatchingConfig) Validate() error {
	if c.EmbeddingDimension <= 0 {
		return fmt.Errorf("MATCHING_EMBEDDING_DIMENSION must be positive")
	}

	if c.DefaultThreshold < -1 || c.DefaultThreshold > 1 {
		return fmt.Errorf("MATCHING_DEFAULT_THRESHOLD must be between -1.0 and 1.0")
	}

	for ct, threshold := range c.TypeThresholds {
		if threshold < -1 || threshold > 1 {
			return fmt.Errorf("threshold for %q must be between -1.0 and 1.0", ct)
		}
	}

	if c.NearestK <= 0 || c.NearestK > 100 {
		return fmt.Errorf("MATCHING_NEAREST_K must be between 1 and 100")
	}

	if c.SlotParallelism <= 0 {
		return fmt.Errorf("MATCHING_SLOT_PARALLELISM must be positive")
	}

	if c.TemplateParallelism <= 0 {
		return fmt.Errorf("MATCHING_TEMPLATE_PARALLELISM must be positive")
	}

	if c.MaxTemplates <= 0 {
		return fmt.Errorf("MATCHING_MAX_TEMPLATES must be positive")
	}

	if c.MaxRecommendations <= 0 {
		return fmt.Errorf("MATCHING_MAX_RECOMMENDATIONS must be positive")
	}

	if c.OracleTimeout <= 0 {
		return fmt.Errorf("MATCHING_ORACLE_TIMEOUT must be positive")
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool parses boolean environment variable with default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat parses float environment variable with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration parses duration environment variable with default.
// Supports formats like "30s", "1m", "2h".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
