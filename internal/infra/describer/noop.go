package describer

import (
	"context"
	"strings"
)

// NoOp composes a description from the subject's own attributes without
// calling any API. Used when no API key is configured.
type NoOp struct{}

// NewNoOp creates a new NoOp describer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Describe returns a plain attribute-based description.
func (n *NoOp) Describe(_ context.Context, subject Subject) (string, error) {
	parts := make([]string, 0, 3)
	if subject.Style != "" {
		parts = append(parts, string(subject.Style))
	}
	parts = append(parts, string(subject.Type))
	description := "A " + strings.Join(parts, " ") + "."
	if subject.Notes != "" {
		description += " " + subject.Notes
	}
	return description, nil
}
