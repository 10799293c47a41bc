package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/domain/entity"
	pg "outfitmatch/internal/infra/adapter/persistence/postgres"
	"outfitmatch/tests/fixtures"
)

func TestSimilarityOracle_Nearest_OrderedResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ownerID := uuid.New()
	first, second := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"id", "similarity"}).
		AddRow(first, 0.93).
		AddRow(second, 0.71)

	mock.ExpectQuery("SELECT id, 1 - \\(embedding <=> \\$1\\) AS similarity").
		WillReturnRows(rows)

	oracle := pg.NewSimilarityOracle(db, 0)
	results, err := oracle.Nearest(context.Background(),
		fixtures.GenerateTestVector(fixtures.EmbeddingDim, 0.5),
		ownerID, entity.ClothingTypeTop, nil, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, first, results[0].ItemID)
	assert.InDelta(t, 0.93, results[0].Similarity, 1e-9)
	assert.Equal(t, second, results[1].ItemID)
}

func TestSimilarityOracle_Nearest_EmptyPartition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, 1 - \\(embedding <=> \\$1\\) AS similarity").
		WillReturnRows(sqlmock.NewRows([]string{"id", "similarity"}))

	oracle := pg.NewSimilarityOracle(db, 0)
	results, err := oracle.Nearest(context.Background(),
		fixtures.GenerateTestVector(fixtures.EmbeddingDim, 0.5),
		uuid.New(), entity.ClothingTypeBag, nil, 1)

	// A clothing type with zero items is the expected wardrobe-gap case.
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSimilarityOracle_Nearest_PoolFilterUsesAllowList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	pool := []uuid.UUID{uuid.New(), uuid.New()}
	mock.ExpectQuery("(?s)SELECT id, 1 - \\(embedding <=> \\$1\\) AS similarity.+id = ANY\\(\\$4\\)").
		WillReturnRows(sqlmock.NewRows([]string{"id", "similarity"}).AddRow(pool[0], 0.8))

	oracle := pg.NewSimilarityOracle(db, 0)
	results, err := oracle.Nearest(context.Background(),
		fixtures.GenerateTestVector(fixtures.EmbeddingDim, 0.5),
		uuid.New(), entity.ClothingTypeTop, pool, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, pool[0], results[0].ItemID)
}

func TestSimilarityOracle_Nearest_HonorsConfiguredTimeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, 1 - \\(embedding <=> \\$1\\) AS similarity").
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id", "similarity"}))

	oracle := pg.NewSimilarityOracle(db, 10*time.Millisecond)
	_, err = oracle.Nearest(context.Background(),
		fixtures.GenerateTestVector(fixtures.EmbeddingDim, 0.5),
		uuid.New(), entity.ClothingTypeTop, nil, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSimilarityOracle_Nearest_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id, 1 - \\(embedding <=> \\$1\\) AS similarity").
		WillReturnError(errors.New("index unavailable"))

	oracle := pg.NewSimilarityOracle(db, 0)
	_, err = oracle.Nearest(context.Background(),
		fixtures.GenerateTestVector(fixtures.EmbeddingDim, 0.5),
		uuid.New(), entity.ClothingTypeTop, nil, 1)
	assert.Error(t, err)
}
