package describer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/resilience/circuitbreaker"
	"outfitmatch/internal/resilience/retry"
	"outfitmatch/internal/utils/text"
)

// OpenAIConfig holds configuration parameters for the OpenAI describer.
type OpenAIConfig struct {
	// CharacterLimit is the maximum number of characters in a description.
	// Loaded from DESCRIBER_CHAR_LIMIT. Valid range: 40-1000. Default: 280.
	CharacterLimit int

	// Model is the OpenAI API model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single description API call.
	Timeout time.Duration
}

// GetCharacterLimit implements the Config interface.
func (c *OpenAIConfig) GetCharacterLimit() int {
	return c.CharacterLimit
}

// Validate implements the Config interface.
func (c *OpenAIConfig) Validate() error {
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

// LoadOpenAIConfig loads configuration from environment variables.
// Unlike the Claude loader this one fails closed: an invalid
// DESCRIBER_CHAR_LIMIT is an error, not a fallback.
func LoadOpenAIConfig() (*OpenAIConfig, error) {
	const defaultCharLimit = 280

	charLimit := defaultCharLimit

	if envLimit := os.Getenv("DESCRIBER_CHAR_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid DESCRIBER_CHAR_LIMIT format: %s: %w", envLimit, err)
		}

		if err := ValidateCharacterLimit(parsed); err != nil {
			return nil, fmt.Errorf("DESCRIBER_CHAR_LIMIT out of valid range: %w", err)
		}

		charLimit = parsed
	}

	config := &OpenAIConfig{
		CharacterLimit: charLimit,
		Model:          "gpt-3.5-turbo",
		MaxTokens:      1024,
		Timeout:        60 * time.Second,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid OpenAI configuration: %w", err)
	}

	return config, nil
}

// OpenAI implements the Describer interface using OpenAI's GPT API.
// It includes circuit breaker and retry logic for improved reliability.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewOpenAI creates a new OpenAI describer with the given API key.
func NewOpenAI(apiKey string, config Config) *OpenAI {
	slog.Info("Initialized OpenAI describer with configuration",
		slog.Int("character_limit", config.GetCharacterLimit()))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:    retry.DescriberConfig(),
		config:         config,
	}
}

// Describe generates a description of the subject using OpenAI's GPT API.
func (o *OpenAI) Describe(ctx context.Context, subject Subject) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doDescribe(ctx, subject)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("openai describe failed after retries: %w", retryErr)
	}

	return result, nil
}

// doDescribe performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doDescribe(ctx context.Context, subject Subject) (string, error) {
	prompt := buildPrompt(subject, o.config.GetCharacterLimit())

	slog.InfoContext(ctx, "Starting description",
		slog.String("clothing_type", string(subject.Type)),
		slog.Int("character_limit", o.config.GetCharacterLimit()))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: "gpt-3.5-turbo",
		Messages: []openai.ChatCompletionMessage{{
			Role:    "system",
			Content: prompt,
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Description failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		metrics.RecordSlotDescribed(false, duration)
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		metrics.RecordSlotDescribed(false, duration)
		return "", fmt.Errorf("openai api returned empty response")
	}

	description := resp.Choices[0].Message.Content
	descriptionLength := text.CountRunes(description)
	withinLimit := descriptionLength <= o.config.GetCharacterLimit()

	slog.InfoContext(ctx, "Description completed",
		slog.Int("description_length", descriptionLength),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	if !withinLimit {
		slog.WarnContext(ctx, "Description exceeds character limit",
			slog.Int("description_length", descriptionLength),
			slog.Int("limit", o.config.GetCharacterLimit()))
	}

	metrics.RecordSlotDescribed(true, duration)

	return description, nil
}
