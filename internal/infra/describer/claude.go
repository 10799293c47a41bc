package describer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/resilience/circuitbreaker"
	"outfitmatch/internal/resilience/retry"
	"outfitmatch/internal/utils/text"
)

// ClaudeConfig holds configuration parameters for the Claude describer.
type ClaudeConfig struct {
	// CharacterLimit is the maximum number of characters in a description.
	// Loaded from DESCRIBER_CHAR_LIMIT. Valid range: 40-1000. Default: 280.
	CharacterLimit int

	// Model is the Claude API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single description API call.
	Timeout time.Duration
}

// GetCharacterLimit implements the Config interface.
func (c *ClaudeConfig) GetCharacterLimit() int {
	return c.CharacterLimit
}

// Validate implements the Config interface.
func (c *ClaudeConfig) Validate() error {
	if err := ValidateCharacterLimit(c.CharacterLimit); err != nil {
		return fmt.Errorf("invalid character limit: %w", err)
	}
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// LoadClaudeConfig loads configuration from environment variables.
// An out-of-range DESCRIBER_CHAR_LIMIT falls back to the default with a
// warning log.
func LoadClaudeConfig() ClaudeConfig {
	const defaultCharLimit = 280

	charLimit := defaultCharLimit

	if envLimit := os.Getenv("DESCRIBER_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			slog.Warn("Invalid DESCRIBER_CHAR_LIMIT format, using default",
				slog.String("value", envLimit),
				slog.Int("default", defaultCharLimit),
				slog.String("error", err.Error()))
		} else if verr := ValidateCharacterLimit(parsed); verr != nil {
			slog.Warn("DESCRIBER_CHAR_LIMIT out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("default", defaultCharLimit))
		} else {
			charLimit = parsed
		}
	}

	return ClaudeConfig{
		CharacterLimit: charLimit,
		Model:          string(anthropic.ModelClaudeSonnet4_5_20250929),
		MaxTokens:      1024,
		Timeout:        60 * time.Second,
	}
}

// Claude implements the Describer interface using Anthropic's Claude API.
// It includes circuit breaker and retry logic for improved reliability.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         ClaudeConfig
}

// NewClaude creates a new Claude describer with the given API key.
func NewClaude(apiKey string) *Claude {
	config := LoadClaudeConfig()

	slog.Info("Initialized Claude describer with configuration",
		slog.Int("character_limit", config.CharacterLimit),
		slog.String("model", config.Model))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:    retry.DescriberConfig(),
		config:         config,
	}
}

// Describe generates a description of the subject using Claude.
func (c *Claude) Describe(ctx context.Context, subject Subject) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doDescribe(ctx, subject)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("claude describe failed after retries: %w", retryErr)
	}

	return result, nil
}

// doDescribe performs the actual API call without retry or circuit breaker.
func (c *Claude) doDescribe(ctx context.Context, subject Subject) (string, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(subject, c.config.CharacterLimit)

	slog.InfoContext(ctx, "Starting description",
		slog.String("request_id", requestID),
		slog.String("clothing_type", string(subject.Type)),
		slog.Int("character_limit", c.config.CharacterLimit))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Description failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		metrics.RecordSlotDescribed(false, duration)
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		metrics.RecordSlotDescribed(false, duration)
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		metrics.RecordSlotDescribed(false, duration)
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	description := textBlock.Text
	descriptionLength := text.CountRunes(description)
	withinLimit := descriptionLength <= c.config.CharacterLimit

	slog.InfoContext(ctx, "Description completed",
		slog.String("request_id", requestID),
		slog.Int("description_length", descriptionLength),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	if !withinLimit {
		slog.WarnContext(ctx, "Description exceeds character limit",
			slog.String("request_id", requestID),
			slog.Int("description_length", descriptionLength),
			slog.Int("limit", c.config.CharacterLimit))
	}

	metrics.RecordSlotDescribed(true, duration)

	return description, nil
}
