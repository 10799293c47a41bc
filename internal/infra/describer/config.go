// Package describer generates short natural-language descriptions of clothing
// items and outfit slots. Descriptions back-fill wardrobe items uploaded
// without one and sharpen the search query for substitute suggestions.
// Adapters for the Anthropic and OpenAI APIs are provided, both wrapped in
// circuit breaker and retry logic, plus a template-based fallback that needs
// no API at all.
package describer

import (
	"context"
	"fmt"

	"outfitmatch/internal/domain/entity"
)

// Subject is the clothing item or slot to describe.
type Subject struct {
	Type  entity.ClothingType
	Style entity.Style

	// Notes carries any free-form hints the caller already has, such as a
	// user-supplied label. May be empty.
	Notes string
}

// Describer produces a short description of a clothing subject.
type Describer interface {
	Describe(ctx context.Context, subject Subject) (string, error)
}

// Config is the common configuration contract for API-backed describers.
type Config interface {
	// GetCharacterLimit returns the maximum description length in characters.
	GetCharacterLimit() int

	// Validate checks all configuration fields.
	Validate() error
}

const (
	// minCharLimit is the shortest useful description length.
	minCharLimit = 40

	// maxCharLimit keeps descriptions card-sized.
	maxCharLimit = 1000
)

// ValidateCharacterLimit checks that the limit is within the supported range.
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}

// buildPrompt turns a subject into the instruction sent to the API.
func buildPrompt(subject Subject, charLimit int) string {
	styled := string(subject.Type)
	if subject.Style != entity.StyleUnspecified {
		styled = fmt.Sprintf("%s %s", subject.Style, subject.Type)
	}
	prompt := fmt.Sprintf(
		"Write a concise product-style description of a %s in at most %d characters. "+
			"Mention material, cut, and color if they can be inferred. Plain text only.",
		styled, charLimit)
	if subject.Notes != "" {
		prompt += "\nAdditional notes: " + subject.Notes
	}
	return prompt
}
