package store

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/potluck/internal/cache"
	"github.com/gatherly/potluck/internal/database"
	"github.com/gatherly/potluck/internal/model"
)

// mockRemote is a hand-rolled Store[model.Dish] double.
type mockRemote struct {
	createFunc func(ctx context.Context, d model.Dish) (model.Dish, Source, error)
	getFunc    func(ctx context.Context, id string) (model.Dish, Source, error)
	updateFunc func(ctx context.Context, id string, patch map[string]interface{}) (model.Dish, Source, error)
	deleteFunc func(ctx context.Context, id string) (Source, error)
	findFunc   func(ctx context.Context, filter Filter) ([]model.Dish, Source, error)

	calls int
}

func (m *mockRemote) Create(ctx context.Context, d model.Dish) (model.Dish, Source, error) {
	m.calls++
	if m.createFunc != nil {
		return m.createFunc(ctx, d)
	}
	return d, SourceRemote, nil
}

func (m *mockRemote) Get(ctx context.Context, id string) (model.Dish, Source, error) {
	m.calls++
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return model.Dish{}, SourceRemote, database.ErrNotFound
}

func (m *mockRemote) Update(ctx context.Context, id string, patch map[string]interface{}) (model.Dish, Source, error) {
	m.calls++
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return model.Dish{}, SourceRemote, database.ErrNotFound
}

func (m *mockRemote) Delete(ctx context.Context, id string) (Source, error) {
	m.calls++
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return SourceRemote, nil
}

func (m *mockRemote) Find(ctx context.Context, filter Filter) ([]model.Dish, Source, error) {
	m.calls++
	if m.findFunc != nil {
		return m.findFunc(ctx, filter)
	}
	return nil, SourceRemote, nil
}

func newTestCached(t *testing.T) *Cached[model.Dish] {
	t.Helper()
	snaps, err := cache.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = snaps.Close() })
	return NewCached(snaps, DishCodec)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestFallbackRemoteFirst(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	d := model.Dish{ID: "d1", EventID: "e1", Name: "Lasagna", Category: model.DishMains}
	created, src, err := fb.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, src)
	assert.Equal(t, d, created)
	assert.Equal(t, 1, remote.calls)
}

func TestFallbackMirrorsRemoteWrites(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	d := model.Dish{ID: "d1", EventID: "e1", Name: "Lasagna", Category: model.DishMains}
	_, _, err := fb.Create(ctx, d)
	require.NoError(t, err)

	// Remote goes dark; the mirrored copy must answer
	remote.getFunc = func(ctx context.Context, id string) (model.Dish, Source, error) {
		return model.Dish{}, SourceRemote, database.ErrConnection
	}
	got, src, err := fb.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, d, got)
}

func TestFallbackCreateServedByCacheOnRemoteFailure(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{
		createFunc: func(ctx context.Context, d model.Dish) (model.Dish, Source, error) {
			return model.Dish{}, SourceRemote, database.ErrConnection
		},
	}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	d := model.Dish{ID: "d1", EventID: "e1", Name: "Salad", Category: model.DishAppetizers}
	created, src, err := fb.Create(ctx, d)
	require.NoError(t, err, "remote failure is recovered, not surfaced")
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, d, created)

	// Same process reads it back: remote misses, cache answers
	got, src, err := fb.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, "Salad", got.Name)
}

func TestFallbackLocalPrefixBypassesRemote(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	d := model.Dish{ID: "local-d1", EventID: "local-e1", Name: "Demo Dish", Category: model.DishMains}
	_, src, err := fb.Create(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Zero(t, remote.calls, "ephemeral entities never touch the remote")

	got, src, err := fb.Get(ctx, "local-d1")
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, "Demo Dish", got.Name)
	assert.Zero(t, remote.calls)
}

func TestFallbackNilRemoteIsCacheOnly(t *testing.T) {
	ctx := context.Background()
	snaps, err := cache.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = snaps.Close() })

	// Items have no remote table
	fb := NewFallback[model.Item](nil, NewCached(snaps, ItemCodec), ItemCodec, quietLogger())

	i := model.Item{ID: "i1", EventID: "e1", Name: "Napkins", Category: model.ItemSupplies, Quantity: 2}
	_, src, err := fb.Create(ctx, i)
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)

	updated, _, err := fb.Update(ctx, "i1", map[string]interface{}{"assigned_to": "g1"})
	require.NoError(t, err)
	assert.Equal(t, "g1", updated.AssignedTo)

	list, src, err := fb.Find(ctx, Filter{"event_id": "e1"})
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	require.Len(t, list, 1)

	_, err = fb.Delete(ctx, "i1")
	require.NoError(t, err)
	_, _, err = fb.Get(ctx, "i1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFallbackDeleteMirrorsRemoval(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	d := model.Dish{ID: "d1", EventID: "e1", Name: "Pie", Category: model.DishDesserts}
	_, _, err := fb.Create(ctx, d)
	require.NoError(t, err)

	_, err = fb.Delete(ctx, "d1")
	require.NoError(t, err)

	// Cache must not resurrect the deleted dish when remote fails later
	remote.getFunc = func(ctx context.Context, id string) (model.Dish, Source, error) {
		return model.Dish{}, SourceRemote, database.ErrConnection
	}
	_, _, err = fb.Get(ctx, "d1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestFallbackFindMergesLocalEntities(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remoteDish := model.Dish{ID: "d1", EventID: "e1", Name: "Lasagna", Category: model.DishMains}
	remote := &mockRemote{
		findFunc: func(ctx context.Context, filter Filter) ([]model.Dish, Source, error) {
			return []model.Dish{remoteDish}, SourceRemote, nil
		},
	}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	local := model.Dish{ID: "local-d2", EventID: "e1", Name: "Demo", Category: model.DishSides}
	_, _, err := fb.Create(ctx, local)
	require.NoError(t, err)

	list, src, err := fb.Find(ctx, Filter{"event_id": "e1"})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, src)
	require.Len(t, list, 2, "remote results plus local-only entities")
}

func TestFallbackFindFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	cached := newTestCached(t)
	remote := &mockRemote{
		findFunc: func(ctx context.Context, filter Filter) ([]model.Dish, Source, error) {
			return nil, SourceRemote, errors.New("connection reset")
		},
	}
	fb := NewFallback[model.Dish](remote, cached, DishCodec, quietLogger())

	_, _, err := cached.Create(ctx, model.Dish{ID: "d1", EventID: "e1", Name: "Pie", Category: model.DishDesserts})
	require.NoError(t, err)

	list, src, err := fb.Find(ctx, Filter{"event_id": "e1"})
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	require.Len(t, list, 1)
}
