// Package catalog provides read access to the outfit template catalog and
// the integrity sweep that retires broken templates.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/repository"
)

// Service provides outfit catalog use cases.
type Service struct {
	Templates repository.OutfitTemplateRepository
	Config    *config.MatchingConfig
}

// NewService creates a catalog service.
func NewService(templates repository.OutfitTemplateRepository, cfg *config.MatchingConfig) Service {
	return Service{Templates: templates, Config: cfg}
}

// ListTemplates returns the active catalog, optionally filtered by style.
func (s *Service) ListTemplates(ctx context.Context, styles []entity.Style) ([]*entity.OutfitTemplate, error) {
	for _, style := range styles {
		if !style.IsValid() {
			return nil, entity.ErrInvalidStyle
		}
	}
	return s.Templates.ListActive(ctx, styles)
}

// GetTemplate retrieves one template with its slots.
func (s *Service) GetTemplate(ctx context.Context, id uuid.UUID) (*entity.OutfitTemplate, error) {
	if id == uuid.Nil {
		return nil, entity.ErrInvalidInput
	}
	return s.Templates.Get(ctx, id)
}

// SweepStats summarizes one integrity sweep over the active catalog.
type SweepStats struct {
	Checked     int
	Deactivated int
	Duration    time.Duration
}

// SweepIntegrity validates every active template and deactivates the ones
// that can never match: zero slots, invalid clothing types, or slot
// embeddings with the wrong dimension. Catalog ingestion bugs surface here
// instead of as per-request warnings.
func (s *Service) SweepIntegrity(ctx context.Context) (*SweepStats, error) {
	start := time.Now()

	templates, err := s.Templates.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list active templates: %w", err)
	}

	stats := &SweepStats{Checked: len(templates)}
	for _, tpl := range templates {
		reason := s.checkTemplate(tpl)
		if reason == "" {
			continue
		}

		if err := s.Templates.Deactivate(ctx, tpl.ID, reason); err != nil {
			// Cancellation aborts the sweep; a single failed deactivation
			// is retried on the next run.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return stats, err
			}
			slog.Warn("failed to deactivate broken template",
				slog.String("outfit_id", tpl.ID.String()),
				slog.Any("error", err))
			continue
		}

		stats.Deactivated++
		metrics.RecordTemplateFailed("integrity_sweep")
		slog.Warn("template deactivated by integrity sweep",
			slog.String("outfit_id", tpl.ID.String()),
			slog.String("reason", reason))
	}

	metrics.UpdateTemplatesActiveTotal(stats.Checked - stats.Deactivated)

	stats.Duration = time.Since(start)
	slog.Info("catalog integrity sweep completed",
		slog.Int("checked", stats.Checked),
		slog.Int("deactivated", stats.Deactivated),
		slog.Duration("duration", stats.Duration))
	return stats, nil
}

// checkTemplate returns an empty string for a healthy template, otherwise a
// short reason suitable for the deactivated_reason column.
func (s *Service) checkTemplate(tpl *entity.OutfitTemplate) string {
	if err := tpl.Validate(); err != nil {
		return fmt.Sprintf("validation: %v", err)
	}
	if err := tpl.ValidateDimension(s.Config.EmbeddingDimension); err != nil {
		return fmt.Sprintf("dimension: %v", err)
	}
	return ""
}
