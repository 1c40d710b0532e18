package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const queryTimeout = 5 * time.Second

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const productColumns = `
id, ref, category, type, name, description, price, stock, gender, species,
race, birth, requires_certification, dimensions_max, dimensions_unit,
specification, specification_value, specification_unit, author_id,
is_visible, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Ref, &p.Category, &p.Type, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.Gender, &p.Species, &p.Race, &p.Birth,
		&p.RequiresCertification, &p.DimensionsMax, &p.DimensionsUnit,
		&p.Specification, &p.SpecificationValue, &p.SpecificationUnit,
		&p.AuthorID, &p.IsVisible, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
SELECT`+productColumns+`
FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts the product, relying on the unique index on ref to reject
// colliding references atomically.
func (r *Repository) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
INSERT INTO products (
  ref, category, type, name, description, price, stock, gender, species,
  race, birth, requires_certification, dimensions_max, dimensions_unit,
  specification, specification_value, specification_unit, author_id, is_visible
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
RETURNING id, created_at, updated_at`,
		p.Ref, p.Category, p.Type, p.Name, p.Description, p.Price, p.Stock,
		p.Gender, p.Species, p.Race, p.Birth, p.RequiresCertification,
		p.DimensionsMax, p.DimensionsUnit, p.Specification,
		p.SpecificationValue, p.SpecificationUnit, p.AuthorID, p.IsVisible,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
UPDATE products SET
  category = $2, type = $3, name = $4, description = $5, price = $6,
  stock = $7, gender = $8, species = $9, race = $10, birth = $11,
  requires_certification = $12, dimensions_max = $13, dimensions_unit = $14,
  specification = $15, specification_value = $16, specification_unit = $17,
  is_visible = $18, updated_at = now()
WHERE id = $1
RETURNING updated_at`,
		p.ID, p.Category, p.Type, p.Name, p.Description, p.Price, p.Stock,
		p.Gender, p.Species, p.Race, p.Birth, p.RequiresCertification,
		p.DimensionsMax, p.DimensionsUnit, p.Specification,
		p.SpecificationValue, p.SpecificationUnit, p.IsVisible,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
