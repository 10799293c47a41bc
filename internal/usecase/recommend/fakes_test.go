package recommend_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"outfitmatch/internal/config"
	"outfitmatch/internal/domain/entity"
	"outfitmatch/internal/repository"
)

/*──────────────────── in-memory stubs ────────────────────*/

type oracleCall struct {
	Type entity.ClothingType
	Pool []uuid.UUID
	K    int
}

// fakeOracle serves canned nearest-neighbour results per clothing type and
// records every query it receives.
type fakeOracle struct {
	mu       sync.Mutex
	results  map[entity.ClothingType][]repository.SimilarItem
	errByTyp map[entity.ClothingType]error
	err      error
	calls    []oracleCall
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		results:  map[entity.ClothingType][]repository.SimilarItem{},
		errByTyp: map[entity.ClothingType]error{},
	}
}

func (f *fakeOracle) Nearest(_ context.Context, _ []float32, _ uuid.UUID, ct entity.ClothingType, pool []uuid.UUID, k int) ([]repository.SimilarItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, oracleCall{Type: ct, Pool: pool, K: k})

	if f.err != nil {
		return nil, f.err
	}
	if err := f.errByTyp[ct]; err != nil {
		return nil, err
	}

	hits := f.results[ct]
	if len(pool) > 0 {
		allowed := map[uuid.UUID]bool{}
		for _, id := range pool {
			allowed[id] = true
		}
		filtered := make([]repository.SimilarItem, 0, len(hits))
		for _, h := range hits {
			if allowed[h.ItemID] {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}
	if len(hits) > k {
		hits = hits[:k]
	}
	out := make([]repository.SimilarItem, len(hits))
	copy(out, hits)
	return out, nil
}

func (f *fakeOracle) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeTemplateRepo serves a fixed catalog.
type fakeTemplateRepo struct {
	templates []*entity.OutfitTemplate
	err       error

	mu          sync.Mutex
	deactivated map[uuid.UUID]string
}

func (f *fakeTemplateRepo) ListActive(_ context.Context, styleFilter []entity.Style) ([]*entity.OutfitTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := map[entity.Style]bool{}
	for _, s := range styleFilter {
		wanted[s] = true
	}
	out := []*entity.OutfitTemplate{}
	for _, tpl := range f.templates {
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

func (f *fakeTemplateRepo) Get(_ context.Context, id uuid.UUID) (*entity.OutfitTemplate, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, tpl := range f.templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (f *fakeTemplateRepo) Deactivate(_ context.Context, id uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deactivated == nil {
		f.deactivated = map[uuid.UUID]string{}
	}
	f.deactivated[id] = reason
	return f.err
}

// fakeItemRepo holds wardrobe items in a map. Only the read paths used by
// the assembler are meaningful here.
type fakeItemRepo struct {
	items map[uuid.UUID]*entity.WardrobeItem
	err   error
}

func newFakeItemRepo(items ...*entity.WardrobeItem) *fakeItemRepo {
	m := map[uuid.UUID]*entity.WardrobeItem{}
	for _, item := range items {
		m[item.ID] = item
	}
	return &fakeItemRepo{items: m}
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.WardrobeItem) error {
	if f.err != nil {
		return f.err
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) Get(_ context.Context, id uuid.UUID) (*entity.WardrobeItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) GetBatch(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.WardrobeItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[uuid.UUID]*entity.WardrobeItem{}
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (f *fakeItemRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, types []entity.ClothingType) ([]*entity.WardrobeItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := map[entity.ClothingType]bool{}
	for _, t := range types {
		wanted[t] = true
	}
	out := []*entity.WardrobeItem{}
	for _, item := range f.items {
		if item.OwnerID != ownerID {
			continue
		}
		if len(wanted) > 0 && !wanted[item.Type] {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeItemRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (map[entity.ClothingType]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[entity.ClothingType]int64{}
	for _, item := range f.items {
		if item.OwnerID == ownerID {
			out[item.Type]++
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeSuggester returns one canned suggestion for every lookup.
type fakeSuggester struct {
	mu         sync.Mutex
	suggestion *entity.Suggestion
	err        error
	calls      int
}

func (f *fakeSuggester) Suggest(_ context.Context, _ entity.ClothingType, _ entity.Style) (*entity.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

// testConfig returns a matching config with fast, deterministic settings.
func testConfig() *config.MatchingConfig {
	return &config.MatchingConfig{
		EmbeddingDimension:  4,
		DefaultThreshold:    0.7,
		TypeThresholds:      map[entity.ClothingType]float64{},
		NearestK:            3,
		SlotParallelism:     4,
		TemplateParallelism: 4,
		MaxTemplates:        50,
		MaxRecommendations:  20,
		OracleTimeout:       time.Second,
		SuggestEnabled:      true,
	}
}
