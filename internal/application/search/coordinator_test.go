package search

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	domerrors "github.com/Rluis14/Plant-Pals-App/internal/domain/errors"
)

const testWindow = 30 * time.Millisecond

type stubPlantRepo struct {
	mu     sync.Mutex
	plants []*domain.Plant
	calls  []string
	// gate, when set, blocks Search until closed or the context ends.
	gate chan struct{}
	err  error
}

func (r *stubPlantRepo) Search(ctx context.Context, term string, limit int) ([]*domain.Plant, error) {
	r.mu.Lock()
	r.calls = append(r.calls, term)
	gate := r.gate
	err := r.err
	r.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	var out []*domain.Plant
	for _, p := range r.plants {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPlantRepo) searchCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *stubPlantRepo) List(ctx context.Context) ([]*domain.Plant, error) { return r.plants, nil }

func (r *stubPlantRepo) GetByID(ctx context.Context, id int64) (*domain.Plant, error) {
	return nil, nil
}

func (r *stubPlantRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Plant, error) {
	return nil, nil
}

func (r *stubPlantRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return nil, nil
}

type stubSavedRepo struct {
	mu      sync.Mutex
	savedID map[int64]bool
}

func (r *stubSavedRepo) Insert(ctx context.Context, userID domain.UserID, plantID int64) (*domain.SavedPlant, error) {
	return nil, domerrors.ErrAlreadySaved
}

func (r *stubSavedRepo) Delete(ctx context.Context, userID domain.UserID, plantID int64) error {
	return nil
}

func (r *stubSavedRepo) Exists(ctx context.Context, userID domain.UserID, plantID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.savedID[plantID], nil
}

func (r *stubSavedRepo) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.SavedPlant, error) {
	return nil, nil
}

type stubSessions struct{}

func (stubSessions) Current(ctx context.Context) *domain.Session {
	return &domain.Session{UserID: domain.NewUserID(uuid.New())}
}

type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
	ch      chan Update
}

func newUpdateRecorder() *updateRecorder {
	return &updateRecorder{ch: make(chan Update, 16)}
}

func (rec *updateRecorder) sink(u Update) {
	rec.mu.Lock()
	rec.updates = append(rec.updates, u)
	rec.mu.Unlock()
	rec.ch <- u
}

func (rec *updateRecorder) next(t *testing.T) Update {
	t.Helper()
	select {
	case u := <-rec.ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func (rec *updateRecorder) all() []Update {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Update(nil), rec.updates...)
}

func newTestCoordinator(repo *stubPlantRepo, saved *stubSavedRepo) (*Coordinator, *updateRecorder) {
	rec := newUpdateRecorder()
	if saved == nil {
		saved = &stubSavedRepo{}
	}
	mgr := collection.NewManager(saved, stubSessions{}, zerolog.Nop())
	c := NewCoordinator(catalog.NewService(repo), mgr, testWindow, rec.sink)
	return c, rec
}

func TestRapidQueriesCollapseToOneDispatch(t *testing.T) {
	repo := &stubPlantRepo{plants: []*domain.Plant{{ID: 1, Name: "Monstera"}}}
	c, rec := newTestCoordinator(repo, nil)
	defer c.Close()

	c.SetQuery("m")
	c.SetQuery("mo")
	c.SetQuery("mon")

	update := rec.next(t)
	assert.Equal(t, "mon", update.Query)
	require.Len(t, update.Results, 1)
	assert.Equal(t, "Monstera", update.Results[0].Plant.Name)

	// Superseded inputs never reached the store.
	assert.Equal(t, []string{"mon"}, repo.searchCalls())
}

func TestEmptyQueryClearsImmediately(t *testing.T) {
	repo := &stubPlantRepo{}
	c, rec := newTestCoordinator(repo, nil)
	defer c.Close()

	start := time.Now()
	c.SetQuery("   ")
	update := rec.next(t)

	assert.True(t, update.Cleared)
	assert.Nil(t, update.Results)
	// The clear skips the debounce window.
	assert.Less(t, time.Since(start), testWindow)
	assert.Empty(t, repo.searchCalls())
}

func TestNoMatchesIsDistinctFromCleared(t *testing.T) {
	repo := &stubPlantRepo{plants: []*domain.Plant{{ID: 1, Name: "Monstera"}}}
	c, rec := newTestCoordinator(repo, nil)
	defer c.Close()

	c.SetQuery("zzzz")
	update := rec.next(t)

	assert.False(t, update.Cleared)
	require.NotNil(t, update.Results)
	assert.Empty(t, update.Results)
}

func TestStaleResponsesAreDropped(t *testing.T) {
	gate := make(chan struct{})
	repo := &stubPlantRepo{
		plants: []*domain.Plant{{ID: 1, Name: "first"}, {ID: 2, Name: "second"}},
		gate:   gate,
	}
	c, rec := newTestCoordinator(repo, nil)
	defer c.Close()

	c.SetQuery("first")
	// Let the first dispatch fire and block inside the store.
	time.Sleep(3 * testWindow)
	c.SetQuery("second")
	close(gate)

	update := rec.next(t)
	assert.Equal(t, "second", update.Query)

	// The first query's response must never surface, even after the fact.
	time.Sleep(3 * testWindow)
	for _, u := range rec.all() {
		assert.NotEqual(t, "first", u.Query)
	}
}

func TestSearchErrorDeliveredOnce(t *testing.T) {
	repo := &stubPlantRepo{err: domerrors.ErrNetwork}
	c, rec := newTestCoordinator(repo, nil)
	defer c.Close()

	c.SetQuery("mon")
	update := rec.next(t)

	require.ErrorIs(t, update.Err, domerrors.ErrNetwork)
	assert.Nil(t, update.Results)
	assert.Equal(t, []string{"mon"}, repo.searchCalls())
}

func TestResultsCarrySavedState(t *testing.T) {
	repo := &stubPlantRepo{plants: []*domain.Plant{
		{ID: 1, Name: "Monstera Deliciosa"},
		{ID: 2, Name: "Monstera Adansonii"},
	}}
	saved := &stubSavedRepo{savedID: map[int64]bool{1: true}}
	c, rec := newTestCoordinator(repo, saved)
	defer c.Close()

	c.SetQuery("monstera")
	update := rec.next(t)

	require.Len(t, update.Results, 2)
	byID := map[int64]bool{}
	for _, res := range update.Results {
		byID[res.Plant.ID] = res.Saved
	}
	assert.True(t, byID[1])
	assert.False(t, byID[2])
}

func TestCloseSuppressesPendingWork(t *testing.T) {
	repo := &stubPlantRepo{plants: []*domain.Plant{{ID: 1, Name: "Monstera"}}}
	c, rec := newTestCoordinator(repo, nil)

	c.SetQuery("mon")
	c.Close()

	time.Sleep(3 * testWindow)
	assert.Empty(t, rec.all())

	// SetQuery after Close is a no-op.
	c.SetQuery("mon")
	time.Sleep(3 * testWindow)
	assert.Empty(t, rec.all())
}
