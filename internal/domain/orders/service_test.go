package orders

import (
	"context"
	"testing"
	"time"

	"petshop/internal/domain/accesscontrol"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	orders []Order
}

func (s *fakeStore) GetWithLines(_ context.Context, id int64) (*Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) ListByCustomer(_ context.Context, customerID int64, status *Status) ([]Order, error) {
	var out []Order
	for _, o := range s.orders {
		if o.CustomerID == nil || *o.CustomerID != customerID {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context, status *Status) ([]Order, error) {
	var out []Order
	for _, o := range s.orders {
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func ptr(v int64) *int64 { return &v }

func seededStore() *fakeStore {
	stamp := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &fakeStore{orders: []Order{
		{ID: 1, CustomerID: ptr(10), Status: StatusOpen, LastChangedAt: stamp},
		{ID: 2, CustomerID: ptr(10), Status: StatusClosed, LastChangedAt: stamp},
		{ID: 3, CustomerID: ptr(20), Status: StatusOpen, LastChangedAt: stamp},
		{ID: 4, CustomerID: nil, Status: StatusCart, LastChangedAt: stamp},
	}}
}

var (
	adminCaller = accesscontrol.NewCaller(1, accesscontrol.RoleAdmin)
	userCaller  = accesscontrol.NewCaller(10, accesscontrol.RoleUser)
)

func newTestService(store Store) *Service {
	return NewService(store, zap.NewNop().Sugar())
}

func orderIDs(list []Order) []int64 {
	ids := make([]int64, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestListVisibility(t *testing.T) {
	svc := newTestService(seededStore())
	open := StatusOpen

	tests := []struct {
		name       string
		caller     accesscontrol.Caller
		status     *Status
		wantIDs    []int64
		wantFilter string
	}{
		{"admin sees everything", adminCaller, nil, []int64{1, 2, 3, 4}, "all"},
		{"admin with filter", adminCaller, &open, []int64{1, 3}, "open"},
		{"user sees only own orders", userCaller, nil, []int64{1, 2}, "all"},
		{"user with filter", userCaller, &open, []int64{1}, "open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.List(context.Background(), tt.caller, tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, orderIDs(res.Orders))
			assert.Equal(t, len(tt.wantIDs), res.Count)
			assert.Equal(t, tt.wantFilter, res.AppliedFilter)
		})
	}
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestService(seededStore())
	stranger := accesscontrol.NewCaller(999, accesscontrol.RoleUser)

	res, err := svc.List(context.Background(), stranger, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Orders)
}

func TestShow(t *testing.T) {
	svc := newTestService(seededStore())

	t.Run("owner reads own order", func(t *testing.T) {
		o, err := svc.Show(context.Background(), userCaller, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), o.ID)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		o, err := svc.Show(context.Background(), adminCaller, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), o.ID)
	})

	t.Run("user denied on another customer's order", func(t *testing.T) {
		_, err := svc.Show(context.Background(), userCaller, 3)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("user denied on missing order too", func(t *testing.T) {
		// Existence must not be observable through the error kind.
		_, err := svc.Show(context.Background(), userCaller, 404)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin gets not found on missing order", func(t *testing.T) {
		_, err := svc.Show(context.Background(), adminCaller, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("user denied on anonymous cart", func(t *testing.T) {
		_, err := svc.Show(context.Background(), userCaller, 4)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"cart", "open", "pending", "closed", "cancelled"} {
		st, ok := ParseStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Status(valid), st)
	}
	_, ok := ParseStatus("shipped")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}
