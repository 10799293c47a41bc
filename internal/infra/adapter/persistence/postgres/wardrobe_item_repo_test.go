package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/domain/entity"
	pg "outfitmatch/internal/infra/adapter/persistence/postgres"
	"outfitmatch/tests/fixtures"
)

const itemCols = "id, owner_id, clothing_type, style, description, image_ref, embedding, created_at"

/* ─────────────────────────── Create Tests ─────────────────────────── */

func TestWardrobeItemRepo_Create_ValidationError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := pg.NewWardrobeItemRepo(db)

	tests := []struct {
		name    string
		item    *entity.WardrobeItem
		wantErr error
	}{
		{
			name: "nil owner id",
			item: fixtures.NewTestItem(fixtures.WithOwner(uuid.Nil)),
		},
		{
			name:    "invalid clothing type",
			item:    fixtures.NewTestItem(fixtures.WithType(entity.ClothingType("cape"))),
			wantErr: entity.ErrInvalidClothingType,
		},
		{
			name: "empty embedding",
			item: fixtures.NewTestItem(fixtures.WithEmbedding(nil)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(context.Background(), tt.item)
			assert.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWardrobeItemRepo_Create_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	item := fixtures.NewTestItem()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wardrobe_items")).
		WithArgs(item.ID, item.OwnerID, string(item.Type), string(item.Style),
			item.Description, item.ImageRef, pgvector.NewVector(item.Embedding)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(item.CreatedAt))

	repo := pg.NewWardrobeItemRepo(db)
	err = repo.Create(context.Background(), item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ─────────────────────────── Get Tests ─────────────────────────── */

func TestWardrobeItemRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+itemCols+" FROM wardrobe_items WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{itemCols}))

	repo := pg.NewWardrobeItemRepo(db)
	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestWardrobeItemRepo_Get_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	item := fixtures.NewTestItem()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "clothing_type", "style", "description", "image_ref", "embedding", "created_at"}).
		AddRow(item.ID, item.OwnerID, string(item.Type), string(item.Style),
			item.Description, item.ImageRef, pgvector.NewVector(item.Embedding), item.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+itemCols+" FROM wardrobe_items WHERE id = $1")).
		WithArgs(item.ID).
		WillReturnRows(rows)

	repo := pg.NewWardrobeItemRepo(db)
	got, err := repo.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Type, got.Type)
	assert.Len(t, got.Embedding, fixtures.EmbeddingDim)
}

/* ─────────────────────────── ListByOwner Tests ─────────────────────────── */

func TestWardrobeItemRepo_ListByOwner_EmptyWardrobe(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ownerID := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM wardrobe_items WHERE owner_id").
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{itemCols}))

	repo := pg.NewWardrobeItemRepo(db)
	items, err := repo.ListByOwner(context.Background(), ownerID, nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestWardrobeItemRepo_ListByOwner_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ownerID := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM wardrobe_items WHERE owner_id").
		WithArgs(ownerID).
		WillReturnError(errors.New("connection refused"))

	repo := pg.NewWardrobeItemRepo(db)
	_, err = repo.ListByOwner(context.Background(), ownerID, nil)
	assert.Error(t, err)
}

/* ─────────────────────────── Delete Tests ─────────────────────────── */

func TestWardrobeItemRepo_Delete(t *testing.T) {
	t.Run("deletes existing item", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wardrobe_items WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := pg.NewWardrobeItemRepo(db)
		assert.NoError(t, repo.Delete(context.Background(), id))
	})

	t.Run("missing item yields ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.New()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM wardrobe_items WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := pg.NewWardrobeItemRepo(db)
		assert.ErrorIs(t, repo.Delete(context.Background(), id), entity.ErrNotFound)
	})
}

/* ─────────────────────────── CountByOwner Tests ─────────────────────────── */

func TestWardrobeItemRepo_CountByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ownerID := uuid.New()
	rows := sqlmock.NewRows([]string{"clothing_type", "count"}).
		AddRow("top", 4).
		AddRow("shoes", 2)

	mock.ExpectQuery("SELECT clothing_type, COUNT").
		WithArgs(ownerID).
		WillReturnRows(rows)

	repo := pg.NewWardrobeItemRepo(db)
	counts, err := repo.CountByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[entity.ClothingTypeTop])
	assert.Equal(t, int64(2), counts[entity.ClothingTypeShoes])
	assert.NotContains(t, counts, entity.ClothingTypeBag)
}

func TestWardrobeItemRepo_CountAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wardrobe_items")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	repo := pg.NewWardrobeItemRepo(db)
	count, err := repo.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), count)
}
