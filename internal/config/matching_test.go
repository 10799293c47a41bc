package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/domain/entity"
)

func clearMatchingEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"MATCHING_CONFIG_FILE",
		"MATCHING_EMBEDDING_DIMENSION",
		"MATCHING_DEFAULT_THRESHOLD",
		"MATCHING_NEAREST_K",
		"MATCHING_SLOT_PARALLELISM",
		"MATCHING_TEMPLATE_PARALLELISM",
		"MATCHING_MAX_TEMPLATES",
		"MATCHING_MAX_RECOMMENDATIONS",
		"MATCHING_ORACLE_TIMEOUT",
		"MATCHING_SUGGEST_ENABLED",
	}
	for _, v := range vars {
		require.NoError(t, os.Unsetenv(v))
	}
}

func TestLoadMatchingConfig_Defaults(t *testing.T) {
	clearMatchingEnvVars(t)

	config, err := LoadMatchingConfig()
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 512, config.EmbeddingDimension)
	assert.Equal(t, 0.7, config.DefaultThreshold)
	assert.Empty(t, config.TypeThresholds)
	assert.Equal(t, 3, config.NearestK)
	assert.Equal(t, 4, config.SlotParallelism)
	assert.Equal(t, 8, config.TemplateParallelism)
	assert.Equal(t, 50, config.MaxTemplates)
	assert.Equal(t, 20, config.MaxRecommendations)
	assert.Equal(t, 5*time.Second, config.OracleTimeout)
	assert.True(t, config.SuggestEnabled)
}

func TestLoadMatchingConfig_EnvOverrides(t *testing.T) {
	clearMatchingEnvVars(t)
	t.Setenv("MATCHING_DEFAULT_THRESHOLD", "0.55")
	t.Setenv("MATCHING_NEAREST_K", "10")
	t.Setenv("MATCHING_ORACLE_TIMEOUT", "2s")
	t.Setenv("MATCHING_SUGGEST_ENABLED", "false")

	config, err := LoadMatchingConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.55, config.DefaultThreshold)
	assert.Equal(t, 10, config.NearestK)
	assert.Equal(t, 2*time.Second, config.OracleTimeout)
	assert.False(t, config.SuggestEnabled)
}

func TestLoadMatchingConfig_YAMLFile(t *testing.T) {
	clearMatchingEnvVars(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "matching.yaml")
	content := `
default_threshold: 0.65
type_thresholds:
  top: 0.75
  shoes: 0.6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("MATCHING_CONFIG_FILE", path)

	config, err := LoadMatchingConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.65, config.DefaultThreshold)
	assert.Equal(t, 0.75, config.TypeThresholds[entity.ClothingTypeTop])
	assert.Equal(t, 0.6, config.TypeThresholds[entity.ClothingTypeShoes])
}

func TestLoadMatchingConfig_YAMLFileUnknownType(t *testing.T) {
	clearMatchingEnvVars(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "matching.yaml")
	content := `
type_thresholds:
  cape: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("MATCHING_CONFIG_FILE", path)

	_, err := LoadMatchingConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cape")
}

func TestLoadMatchingConfig_FileMissing(t *testing.T) {
	clearMatchingEnvVars(t)
	t.Setenv("MATCHING_CONFIG_FILE", "/nonexistent/matching.yaml")

	_, err := LoadMatchingConfig()
	assert.Error(t, err)
}

func TestLoadMatchingConfig_InvalidThreshold(t *testing.T) {
	clearMatchingEnvVars(t)
	t.Setenv("MATCHING_DEFAULT_THRESHOLD", "1.5")

	_, err := LoadMatchingConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MATCHING_DEFAULT_THRESHOLD")
}

func TestLoadMatchingConfig_InvalidNearestK(t *testing.T) {
	clearMatchingEnvVars(t)
	t.Setenv("MATCHING_NEAREST_K", "0")

	_, err := LoadMatchingConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MATCHING_NEAREST_K")
}

func TestMatchingConfig_Threshold(t *testing.T) {
	config := &MatchingConfig{
		DefaultThreshold: 0.7,
		TypeThresholds: map[entity.ClothingType]float64{
			entity.ClothingTypeShoes: 0.6,
		},
	}

	assert.Equal(t, 0.6, config.Threshold(entity.ClothingTypeShoes))
	assert.Equal(t, 0.7, config.Threshold(entity.ClothingTypeTop))
	assert.Equal(t, 0.7, config.Threshold(entity.ClothingTypeBag))
}
