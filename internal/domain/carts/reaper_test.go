package carts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	carts map[int64]Cart

	// claimed marks carts a customer grabbed between snapshot and delete.
	claimed map[int64]bool
}

func newFakeStore(carts ...Cart) *fakeStore {
	s := &fakeStore{carts: make(map[int64]Cart), claimed: make(map[int64]bool)}
	for _, c := range carts {
		s.carts[c.ID] = c
	}
	return s
}

func (s *fakeStore) ListCarts(_ context.Context) ([]Cart, error) {
	out := make([]Cart, 0, len(s.carts))
	for _, c := range s.carts {
		out = append(out, c)
	}
	return out, nil
}

func (s *fakeStore) DeleteIfStillAbandoned(_ context.Context, id int64) (bool, error) {
	c, ok := s.carts[id]
	if !ok || c.CustomerID != nil || s.claimed[id] {
		return false, nil
	}
	delete(s.carts, id)
	return true, nil
}

func ptr(v int64) *int64 { return &v }

func newTestReaper(store Store) *Reaper {
	return NewReaper(store, zap.NewNop().Sugar())
}

func TestReapRetentionBoundary(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(
		Cart{ID: 1, LastChangedAt: now.AddDate(0, 0, -3)},            // 3 whole days: reclaimed
		Cart{ID: 2, LastChangedAt: now.AddDate(0, 0, -2)},            // exactly 2 days: kept
		Cart{ID: 3, LastChangedAt: now.Add(-71 * time.Hour)},         // 2 days 23h rounds down: kept
		Cart{ID: 4, LastChangedAt: now.Add(-time.Hour)},              // fresh: kept
		Cart{ID: 5, CustomerID: ptr(7), LastChangedAt: now.AddDate(0, 0, -30)}, // owned: never reclaimed
	)

	n, err := newTestReaper(store).Reap(context.Background(), now, DefaultRetentionDays)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, stillThere := store.carts[1]
	assert.False(t, stillThere)
	for _, id := range []int64{2, 3, 4, 5} {
		_, kept := store.carts[id]
		assert.True(t, kept, "cart %d should survive", id)
	}
}

func TestReapSkipsConcurrentlyClaimedCart(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(
		Cart{ID: 1, LastChangedAt: now.AddDate(0, 0, -5)},
		Cart{ID: 2, LastChangedAt: now.AddDate(0, 0, -5)},
	)
	// Cart 2 gets claimed between the snapshot read and the delete: the
	// compare-and-delete must refuse it and it must not be counted.
	store.claimed[2] = true

	n, err := newTestReaper(store).Reap(context.Background(), now, DefaultRetentionDays)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, kept := store.carts[2]
	assert.True(t, kept)
}

func TestReapNothingToDo(t *testing.T) {
	now := time.Now()
	n, err := newTestReaper(newFakeStore()).Reap(context.Background(), now, DefaultRetentionDays)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReapCustomRetention(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newFakeStore(
		Cart{ID: 1, LastChangedAt: now.AddDate(0, 0, -1)},
	)

	n, err := newTestReaper(store).Reap(context.Background(), now, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
