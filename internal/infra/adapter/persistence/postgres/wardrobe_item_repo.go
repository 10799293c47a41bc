// Package postgres provides PostgreSQL implementations of the repository
// interfaces, backed by pgvector for embedding similarity search.
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
)

// WardrobeItemRepo implements the WardrobeItemRepository interface for PostgreSQL.
type WardrobeItemRepo struct {
	db *sql.DB
}

// NewWardrobeItemRepo creates a new PostgreSQL-based WardrobeItemRepository.
func NewWardrobeItemRepo(db *sql.DB) *WardrobeItemRepo {
	return &WardrobeItemRepo{db: db}
}

// Create stores a new wardrobe item together with its embedding.
func (repo *WardrobeItemRepo) Create(ctx context.Context, item *entity.WardrobeItem) error {
	if item == nil {
		return fmt.Errorf("Create: item is nil")
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	const query = `
INSERT INTO wardrobe_items (id, owner_id, clothing_type, style, description, image_ref, embedding, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
RETURNING created_at`

	err := repo.db.QueryRowContext(ctx, query,
		item.ID,
		item.OwnerID,
		string(item.Type),
		string(item.Style),
		item.Description,
		item.ImageRef,
		pgvector.NewVector(item.Embedding),
	).Scan(&item.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	return nil
}

const itemColumns = `id, owner_id, clothing_type, style, description, image_ref, embedding, created_at`

func scanItem(scan func(dest ...any) error) (*entity.WardrobeItem, error) {
	item := &entity.WardrobeItem{}
	var vector pgvector.Vector
	var ctype, style string

	err := scan(
		&item.ID,
		&item.OwnerID,
		&ctype,
		&style,
		&item.Description,
		&item.ImageRef,
		&vector,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Type = entity.ClothingType(ctype)
	item.Style = entity.Style(style)
	item.Embedding = vector.Slice()
	return item, nil
}

// Get retrieves a single item by id.
func (repo *WardrobeItemRepo) Get(ctx context.Context, id uuid.UUID) (*entity.WardrobeItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wardrobe_items WHERE id = $1`

	item, err := scanItem(repo.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	return item, nil
}

// GetBatch retrieves the items with the given ids. Missing ids are absent
// from the result map.
func (repo *WardrobeItemRepo) GetBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.WardrobeItem, error) {
	result := make(map[uuid.UUID]*entity.WardrobeItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + itemColumns + ` FROM wardrobe_items WHERE id = ANY($1)`

	rows, err := repo.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("GetBatch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("GetBatch: Scan: %w", err)
		}
		result[item.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetBatch: %w", err)
	}

	return result, nil
}

// ListByOwner retrieves all items belonging to an owner, optionally restricted
// to the given clothing types. Returns an empty slice for an empty wardrobe.
func (repo *WardrobeItemRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, types []entity.ClothingType) ([]*entity.WardrobeItem, error) {
	query := `SELECT ` + itemColumns + ` FROM wardrobe_items WHERE owner_id = $1`
	args := []any{ownerID}

	if len(types) > 0 {
		labels := make([]string, 0, len(types))
		for _, t := range types {
			labels = append(labels, string(t))
		}
		query += ` AND clothing_type = ANY($2)`
		args = append(args, pq.Array(labels))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.WardrobeItem, 0)
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("ListByOwner: Scan: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByOwner: %w", err)
	}

	return items, nil
}

// CountByOwner returns the number of items an owner has, per clothing type.
func (repo *WardrobeItemRepo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (map[entity.ClothingType]int64, error) {
	const query = `
SELECT clothing_type, COUNT(*)
FROM wardrobe_items
WHERE owner_id = $1
GROUP BY clothing_type`

	rows, err := repo.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("CountByOwner: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[entity.ClothingType]int64)
	for rows.Next() {
		var ctype string
		var count int64
		if err := rows.Scan(&ctype, &count); err != nil {
			return nil, fmt.Errorf("CountByOwner: Scan: %w", err)
		}
		counts[entity.ClothingType(ctype)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountByOwner: %w", err)
	}

	return counts, nil
}

// CountAll returns the total number of stored wardrobe items across all
// owners. Used by the worker to refresh the items gauge.
func (repo *WardrobeItemRepo) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM wardrobe_items`

	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountAll: %w", err)
	}
	return count, nil
}

// Delete removes an item and its embedding.
func (repo *WardrobeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM wardrobe_items WHERE id = $1`

	result, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: RowsAffected: %w", err)
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}
