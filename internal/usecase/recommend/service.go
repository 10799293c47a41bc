package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/observability/metrics"
	"outfitmatch/internal/repository"
	"outfitmatch/internal/resilience/retry"
)

// Options narrows one recommendation request.
type Options struct {
	// Pool restricts matching to these wardrobe item ids. Empty means the
	// whole wardrobe is eligible.
	Pool []uuid.UUID

	// Styles filters the catalog to these template styles. Empty means all.
	Styles []entity.Style

	// Limit caps the number of returned recommendations. Zero means the
	// configured maximum.
	Limit int
}

// Result is the outcome of one recommendation request: the ranked outfits
// plus warnings for any templates that had to be dropped.
type Result struct {
	Recommendations []AssembledRecommendation
	Warnings        []Warning
}

// Service generates outfit recommendations for a wardrobe owner.
// The pipeline is stateless per request: load templates, match each one
// against the wardrobe, score, rank, assemble.
type Service struct {
	Templates repository.OutfitTemplateRepository
	Matcher   *Matcher
	Assembler *Assembler
	Config    *config.MatchingConfig
}

// NewService creates a recommendation service.
func NewService(
	templates repository.OutfitTemplateRepository,
	matcher *Matcher,
	assembler *Assembler,
	cfg *config.MatchingConfig,
) Service {
	return Service{
		Templates: templates,
		Matcher:   matcher,
		Assembler: assembler,
		Config:    cfg,
	}
}

// GenerateRecommendations matches every active catalog template against the
// owner's wardrobe and returns a ranked list.
//
// An empty wardrobe or empty catalog yields an empty list, not an error.
// A template that fails (oracle outage, invalid catalog data) is dropped and
// reported in Result.Warnings; sibling templates are unaffected. Only a
// catalog read failure or cancellation fails the whole request.
func (s *Service) GenerateRecommendations(ctx context.Context, ownerID uuid.UUID, opts Options) (*Result, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	start := time.Now()
	logger := slog.Default()

	templates, err := s.loadTemplates(ctx, opts.Styles)
	if err != nil {
		metrics.RecordRecommendationRequest("failure", time.Since(start))
		return nil, fmt.Errorf("list active templates: %w", err)
	}

	if len(templates) > s.Config.MaxTemplates {
		logger.Warn("active template count exceeds cap, truncating",
			slog.Int("templates", len(templates)),
			slog.Int("cap", s.Config.MaxTemplates))
		templates = templates[:s.Config.MaxTemplates]
	}

	recs, warnings, err := s.matchAll(ctx, templates, ownerID, opts.Pool)
	if err != nil {
		metrics.RecordRecommendationRequest("failure", time.Since(start))
		return nil, err
	}

	ranked := Rank(recs)

	limit := opts.Limit
	if limit <= 0 || limit > s.Config.MaxRecommendations {
		limit = s.Config.MaxRecommendations
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	assembled := s.Assembler.Assemble(ctx, ranked)

	status := "success"
	if len(warnings) > 0 {
		status = "partial"
	}
	metrics.RecordRecommendationRequest(status, time.Since(start))

	logger.Info("recommendations generated",
		slog.String("owner_id", ownerID.String()),
		slog.Int("templates", len(templates)),
		slog.Int("recommendations", len(assembled)),
		slog.Int("warnings", len(warnings)),
		slog.Duration("duration", time.Since(start)))

	return &Result{Recommendations: assembled, Warnings: warnings}, nil
}

// loadTemplates reads the active catalog with bounded retry.
func (s *Service) loadTemplates(ctx context.Context, styles []entity.Style) ([]*entity.OutfitTemplate, error) {
	var templates []*entity.OutfitTemplate
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var lerr error
		templates, lerr = s.Templates.ListActive(ctx, styles)
		return lerr
	})
	return templates, err
}

// matchAll fans out template matching, bounded by TemplateParallelism.
// Per-template failures become warnings; only cancellation aborts the batch.
func (s *Service) matchAll(ctx context.Context, templates []*entity.OutfitTemplate, ownerID uuid.UUID, pool []uuid.UUID) ([]entity.Recommendation, []Warning, error) {
	var (
		mu       sync.Mutex
		recs     []entity.Recommendation
		warnings []Warning
	)

	sem := make(chan struct{}, s.Config.TemplateParallelism)
	eg, egCtx := errgroup.WithContext(ctx)

	for _, template := range templates {
		tpl := template
		eg.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()

			rec, err := s.matchOne(egCtx, tpl, ownerID, pool)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Cancellation aborts the batch; anything else drops just
				// this template.
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				reason := failureReason(err)
				metrics.RecordTemplateFailed(reason)
				warnings = append(warnings, Warning{
					OutfitID: tpl.ID,
					Reason:   reason,
					Detail:   err.Error(),
				})
				slog.Warn("template dropped from recommendations",
					slog.String("outfit_id", tpl.ID.String()),
					slog.String("reason", reason),
					slog.Any("error", err))
				return nil
			}
			recs = append(recs, *rec)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return recs, warnings, nil
}

// matchOne matches and scores a single template.
func (s *Service) matchOne(ctx context.Context, tpl *entity.OutfitTemplate, ownerID uuid.UUID, pool []uuid.UUID) (*entity.Recommendation, error) {
	matches, err := s.Matcher.MatchTemplate(ctx, tpl, ownerID, pool)
	if err != nil {
		return nil, err
	}

	score, err := Score(matches)
	if err != nil {
		return nil, err
	}

	return &entity.Recommendation{
		OutfitID:          tpl.ID,
		Style:             tpl.Style,
		PreviewImageRef:   tpl.PreviewImageRef,
		CompletenessScore: score,
		Matches:           matches,
	}, nil
}

// failureReason classifies a per-template failure for warnings and metrics.
func failureReason(err error) string {
	var validationErr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrEmptyTemplate),
		errors.Is(err, entity.ErrDimensionMismatch),
		errors.Is(err, entity.ErrInvalidClothingType),
		errors.As(err, &validationErr):
		return "invalid_template"
	default:
		return "oracle_error"
	}
}
