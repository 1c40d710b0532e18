package carts

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListCarts(ctx context.Context) ([]Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
SELECT id, customer_id, last_changed_at
FROM orders
WHERE status = 'cart'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cart
	for rows.Next() {
		var c Cart
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.LastChangedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteIfStillAbandoned is a compare-and-delete: the row must still be an
// anonymous cart at delete time. Deleting by id alone could destroy a cart a
// customer claimed between the snapshot read and now.
func (r *Repository) DeleteIfStillAbandoned(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
DELETE FROM orders
WHERE id = $1
  AND status = 'cart'
  AND customer_id IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
