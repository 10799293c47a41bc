package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/repository"
)

// DefaultSearchTimeout bounds similarity search queries when no explicit
// timeout is configured.
const DefaultSearchTimeout = 5 * time.Second

// maxNearestK caps the number of neighbors a single query may request.
const maxNearestK = 100

// SimilarityOracle implements the repository.SimilarityOracle interface using
// pgvector cosine distance over the wardrobe_items table.
type SimilarityOracle struct {
	db            *sql.DB
	searchTimeout time.Duration
}

// NewSimilarityOracle creates a new pgvector-backed SimilarityOracle.
// searchTimeout bounds each Nearest query; zero or negative falls back to
// DefaultSearchTimeout.
func NewSimilarityOracle(db *sql.DB, searchTimeout time.Duration) repository.SimilarityOracle {
	if searchTimeout <= 0 {
		searchTimeout = DefaultSearchTimeout
	}
	return &SimilarityOracle{db: db, searchTimeout: searchTimeout}
}

// Nearest returns up to k wardrobe items of the given owner and clothing type,
// ordered by cosine similarity to the query vector, highest first.
// The cosine distance operator (<=>) yields distance in [0, 2]; similarity is
// recovered as 1 - distance, giving the [-1, 1] cosine convention.
func (o *SimilarityOracle) Nearest(ctx context.Context, query []float32, ownerID uuid.UUID, clothingType entity.ClothingType, pool []uuid.UUID, k int) ([]repository.SimilarItem, error) {
	searchCtx, cancel := context.WithTimeout(ctx, o.searchTimeout)
	defer cancel()

	if k <= 0 {
		k = 1
	}
	if k > maxNearestK {
		k = maxNearestK
	}

	vector := pgvector.NewVector(query)

	var (
		rows *sql.Rows
		err  error
	)
	if len(pool) > 0 {
		const poolQuery = `
SELECT id, 1 - (embedding <=> $1) AS similarity
FROM wardrobe_items
WHERE owner_id = $2 AND clothing_type = $3 AND id = ANY($4)
ORDER BY embedding <=> $1
LIMIT $5`
		rows, err = o.db.QueryContext(searchCtx, poolQuery, vector, ownerID, string(clothingType), pq.Array(pool), k)
	} else {
		const fullQuery = `
SELECT id, 1 - (embedding <=> $1) AS similarity
FROM wardrobe_items
WHERE owner_id = $2 AND clothing_type = $3
ORDER BY embedding <=> $1
LIMIT $4`
		rows, err = o.db.QueryContext(searchCtx, fullQuery, vector, ownerID, string(clothingType), k)
	}
	if err != nil {
		return nil, fmt.Errorf("Nearest: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := make([]repository.SimilarItem, 0, k)
	for rows.Next() {
		var result repository.SimilarItem
		if err := rows.Scan(&result.ItemID, &result.Similarity); err != nil {
			return nil, fmt.Errorf("Nearest: Scan: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Nearest: %w", err)
	}

	return results, nil
}
