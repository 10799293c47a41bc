package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/repository"
)

// OutfitTemplateRepo implements the OutfitTemplateRepository interface for PostgreSQL.
// Slots are loaded with a second query and grouped in memory, keeping the
// per-template slot ordering intact.
type OutfitTemplateRepo struct {
	db *sql.DB
}

// NewOutfitTemplateRepo creates a new PostgreSQL-based OutfitTemplateRepository.
func NewOutfitTemplateRepo(db *sql.DB) repository.OutfitTemplateRepository {
	return &OutfitTemplateRepo{db: db}
}

// ListActive retrieves all active templates with their slots, ordered by
// creation time. Slot order within a template follows the position column.
func (repo *OutfitTemplateRepo) ListActive(ctx context.Context, styleFilter []entity.Style) ([]*entity.OutfitTemplate, error) {
	query := `
SELECT id, style, preview_image_ref
FROM outfit_templates
WHERE active = TRUE`
	args := []any{}

	if len(styleFilter) > 0 {
		labels := make([]string, 0, len(styleFilter))
		for _, s := range styleFilter {
			labels = append(labels, string(s))
		}
		query += ` AND style = ANY($1)`
		args = append(args, pq.Array(labels))
	}
	query += ` ORDER BY created_at, id`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}
	defer func() { _ = rows.Close() }()

	templates := make([]*entity.OutfitTemplate, 0)
	byID := make(map[uuid.UUID]*entity.OutfitTemplate)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		tpl := &entity.OutfitTemplate{Active: true}
		var style string
		if err := rows.Scan(&tpl.ID, &style, &tpl.PreviewImageRef); err != nil {
			return nil, fmt.Errorf("ListActive: Scan: %w", err)
		}
		tpl.Style = entity.Style(style)
		templates = append(templates, tpl)
		byID[tpl.ID] = tpl
		ids = append(ids, tpl.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}

	if len(templates) == 0 {
		return templates, nil
	}

	if err := repo.loadSlots(ctx, byID, ids); err != nil {
		return nil, fmt.Errorf("ListActive: %w", err)
	}

	return templates, nil
}

// Get retrieves a single template with its slots.
func (repo *OutfitTemplateRepo) Get(ctx context.Context, id uuid.UUID) (*entity.OutfitTemplate, error) {
	const query = `
SELECT id, style, preview_image_ref, active
FROM outfit_templates
WHERE id = $1`

	tpl := &entity.OutfitTemplate{}
	var style string
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&tpl.ID, &style, &tpl.PreviewImageRef, &tpl.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	tpl.Style = entity.Style(style)

	byID := map[uuid.UUID]*entity.OutfitTemplate{tpl.ID: tpl}
	if err := repo.loadSlots(ctx, byID, []uuid.UUID{tpl.ID}); err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	return tpl, nil
}

// Deactivate marks a template inactive with a reason, excluding it from matching.
func (repo *OutfitTemplateRepo) Deactivate(ctx context.Context, id uuid.UUID, reason string) error {
	const query = `
UPDATE outfit_templates
SET active = FALSE, deactivated_reason = $2
WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return fmt.Errorf("Deactivate: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Deactivate: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// loadSlots fetches the slots for the given template ids and attaches them to
// the templates in position order.
func (repo *OutfitTemplateRepo) loadSlots(ctx context.Context, byID map[uuid.UUID]*entity.OutfitTemplate, ids []uuid.UUID) error {
	const query = `
SELECT id, outfit_id, position, clothing_type, embedding, external_url, external_image_url, external_label
FROM outfit_slots
WHERE outfit_id = ANY($1)
ORDER BY outfit_id, position`

	rows, err := repo.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("loadSlots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			slot      entity.OutfitSlot
			outfitID  uuid.UUID
			ctype     string
			vector    pgvector.Vector
			extURL    sql.NullString
			extImage  sql.NullString
			extLabel  sql.NullString
		)
		err := rows.Scan(&slot.ID, &outfitID, &slot.Position, &ctype, &vector, &extURL, &extImage, &extLabel)
		if err != nil {
			return fmt.Errorf("loadSlots: Scan: %w", err)
		}
		slot.Type = entity.ClothingType(ctype)
		slot.Embedding = vector.Slice()
		if extURL.Valid && extURL.String != "" {
			slot.ExternalRef = &entity.ExternalRef{
				URL:      extURL.String,
				ImageURL: extImage.String,
				Label:    extLabel.String,
			}
		}

		if tpl, ok := byID[outfitID]; ok {
			tpl.Slots = append(tpl.Slots, slot)
		}
	}

	return rows.Err()
}
