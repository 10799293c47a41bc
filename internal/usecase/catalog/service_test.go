package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/usecase/catalog"
	"outfitmatch/tests/fixtures"
)

/*──────────────────── in-memory stub ────────────────────*/

type stubRepo struct {
	templates     []*entity.OutfitTemplate
	listErr       error
	deactivateErr error
	deactivated   map[uuid.UUID]string
}

func newStub(templates ...*entity.OutfitTemplate) *stubRepo {
	return &stubRepo{templates: templates, deactivated: map[uuid.UUID]string{}}
}

func (s *stubRepo) ListActive(_ context.Context, styleFilter []entity.Style) ([]*entity.OutfitTemplate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	wanted := map[entity.Style]bool{}
	for _, style := range styleFilter {
		wanted[style] = true
	}
	out := []*entity.OutfitTemplate{}
	for _, tpl := range s.templates {
		if !tpl.Active {
			continue
		}
		if len(wanted) > 0 && !wanted[tpl.Style] {
			continue
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (s *stubRepo) Get(_ context.Context, id uuid.UUID) (*entity.OutfitTemplate, error) {
	for _, tpl := range s.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *stubRepo) Deactivate(_ context.Context, id uuid.UUID, reason string) error {
	if s.deactivateErr != nil {
		return s.deactivateErr
	}
	s.deactivated[id] = reason
	for _, tpl := range s.templates {
		if tpl.ID == id {
			tpl.Active = false
		}
	}
	return nil
}

func testConfig() *config.MatchingConfig {
	return &config.MatchingConfig{EmbeddingDimension: fixtures.EmbeddingDim}
}

/*──────────────────── tests ────────────────────*/

func TestListTemplates(t *testing.T) {
	formal := fixtures.NewTestTemplate(fixtures.WithTemplateStyle(entity.StyleFormal))
	street := fixtures.NewTestTemplate(fixtures.WithTemplateStyle(entity.StyleStreetwear))
	svc := catalog.NewService(newStub(formal, street), testConfig())

	all, err := svc.ListTemplates(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyFormal, err := svc.ListTemplates(context.Background(), []entity.Style{entity.StyleFormal})
	require.NoError(t, err)
	require.Len(t, onlyFormal, 1)
	assert.Equal(t, formal.ID, onlyFormal[0].ID)
}

func TestListTemplates_InvalidStyle(t *testing.T) {
	svc := catalog.NewService(newStub(), testConfig())

	_, err := svc.ListTemplates(context.Background(), []entity.Style{"baroque"})
	assert.ErrorIs(t, err, entity.ErrInvalidStyle)
}

func TestGetTemplate(t *testing.T) {
	tpl := fixtures.NewTestTemplate()
	svc := catalog.NewService(newStub(tpl), testConfig())

	got, err := svc.GetTemplate(context.Background(), tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.ID, got.ID)

	_, err = svc.GetTemplate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = svc.GetTemplate(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestSweepIntegrity_HealthyCatalogUntouched(t *testing.T) {
	repo := newStub(fixtures.NewTestTemplate(), fixtures.NewTestTemplate())
	svc := catalog.NewService(repo, testConfig())

	stats, err := svc.SweepIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Checked)
	assert.Zero(t, stats.Deactivated)
	assert.Empty(t, repo.deactivated)
}

func TestSweepIntegrity_DeactivatesWrongDimension(t *testing.T) {
	bad := fixtures.NewTestTemplate()
	bad.Slots[0].Embedding = []float32{1, 0, 0}
	good := fixtures.NewTestTemplate()

	repo := newStub(bad, good)
	svc := catalog.NewService(repo, testConfig())

	stats, err := svc.SweepIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Checked)
	assert.Equal(t, 1, stats.Deactivated)
	assert.Contains(t, repo.deactivated[bad.ID], "dimension")
	assert.True(t, good.Active)
}

func TestSweepIntegrity_DeactivatesInvalidSlotType(t *testing.T) {
	bad := fixtures.NewTestTemplate()
	bad.Slots[1].Type = "cape"

	repo := newStub(bad)
	svc := catalog.NewService(repo, testConfig())

	stats, err := svc.SweepIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Deactivated)
	assert.Contains(t, repo.deactivated[bad.ID], "validation")
}

func TestSweepIntegrity_DeactivationFailureContinues(t *testing.T) {
	bad := fixtures.NewTestTemplate()
	bad.Slots[0].Embedding = nil

	repo := newStub(bad)
	repo.deactivateErr = errors.New("db down")
	svc := catalog.NewService(repo, testConfig())

	stats, err := svc.SweepIntegrity(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Deactivated)
}

func TestSweepIntegrity_ListFailure(t *testing.T) {
	repo := newStub()
	repo.listErr = errors.New("catalog down")
	svc := catalog.NewService(repo, testConfig())

	_, err := svc.SweepIntegrity(context.Background())
	assert.Error(t, err)
}
