package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetWithLines(ctx context.Context, id int64) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
SELECT id, customer_id, status, last_changed_at
FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerID, &o.Status, &o.LastChangedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
SELECT id, order_id, product_id, quantity, price
FROM order_lines
WHERE order_id = $1
ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, status *Status) ([]Order, error) {
	return r.list(ctx, `
SELECT id, customer_id, status, last_changed_at
FROM orders
WHERE customer_id = $1 AND ($2::text IS NULL OR status = $2)
ORDER BY last_changed_at DESC`, customerID, statusArg(status))
}

func (r *Repository) ListAll(ctx context.Context, status *Status) ([]Order, error) {
	return r.list(ctx, `
SELECT id, customer_id, status, last_changed_at
FROM orders
WHERE $1::text IS NULL OR status = $1
ORDER BY last_changed_at DESC`, statusArg(status))
}

func statusArg(status *Status) any {
	if status == nil {
		return nil
	}
	return string(*status)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.LastChangedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
