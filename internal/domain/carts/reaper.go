package carts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultRetentionDays is how long an anonymous cart may sit untouched before
// it becomes eligible for reclamation.
const DefaultRetentionDays = 2

// Cart is the slice of an order row the reaper needs.
type Cart struct {
	ID            int64
	CustomerID    *int64
	LastChangedAt time.Time
}

type Store interface {
	// ListCarts returns a snapshot of all orders in cart status.
	ListCarts(ctx context.Context) ([]Cart, error)
	// DeleteIfStillAbandoned removes the cart only if it still has cart
	// status and no customer at delete time, and reports whether a row was
	// actually removed. This is what keeps a cart a user just claimed safe.
	DeleteIfStillAbandoned(ctx context.Context, id int64) (bool, error)
}

// Reaper reclaims stale anonymous carts. It is policy-agnostic: the admin
// check happens at the call site so the reaper stays independently testable
// and usable from the cron CLI.
type Reaper struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewReaper(store Store, logger *zap.SugaredLogger) *Reaper {
	return &Reaper{store: store, logger: logger}
}

// Reap deletes every anonymous cart whose age in whole days strictly exceeds
// retentionDays, and returns how many were reclaimed. Partial days round
// down, so a cart exactly retentionDays old survives.
func (r *Reaper) Reap(ctx context.Context, now time.Time, retentionDays int) (int, error) {
	carts, err := r.store.ListCarts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list carts: %w", err)
	}

	reclaimed := 0
	for _, c := range carts {
		if c.CustomerID != nil {
			continue
		}
		days := int(now.Sub(c.LastChangedAt).Hours() / 24)
		if days <= retentionDays {
			continue
		}
		removed, err := r.store.DeleteIfStillAbandoned(ctx, c.ID)
		if err != nil {
			return reclaimed, fmt.Errorf("delete cart %d: %w", c.ID, err)
		}
		if removed {
			reclaimed++
		}
	}

	r.logger.Infow("stale carts reaped", "scanned", len(carts), "reclaimed", reclaimed, "retention_days", retentionDays)
	return reclaimed, nil
}
