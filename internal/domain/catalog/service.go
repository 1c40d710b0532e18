package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petshop/internal/domain/accesscontrol"

	"go.uber.org/zap"
)

// refAttempts bounds the regenerate-and-retry loop on reference collisions.
const refAttempts = 3

type Store interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
}

// Service orchestrates product create/update: admin gate first, then
// field-by-field validation, then persistence.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// NewServiceWithClock pins the clock, for deterministic references in tests.
func NewServiceWithClock(store Store, logger *zap.SugaredLogger, now func() time.Time) *Service {
	return &Service{store: store, logger: logger, now: now}
}

// Create validates the full payload and persists a new product. The caller
// must hold the admin role; that check runs before any validation work.
// Violations are accumulated and returned together with the partially built
// product so the client can see what it sent. A reference collision during
// persist triggers a fresh count read and a regenerated reference; only after
// refAttempts collisions does it surface as a duplicate_reference violation.
func (s *Service) Create(ctx context.Context, caller accesscontrol.Caller, in Input) (*Product, []FieldViolation, error) {
	if !accesscontrol.CanMutateProduct(caller) {
		return nil, nil, ErrForbidden
	}

	now := s.now()
	values, violations := ValidateFields(CreateRules(now), in)

	p := &Product{AuthorID: caller.UserID, IsVisible: true}
	applyValues(p, values)

	if len(violations) > 0 {
		return p, violations, nil
	}

	for attempt := 0; attempt < refAttempts; attempt++ {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("count products: %w", err)
		}
		p.Ref = GenerateRef(p.Category, now, count)

		err = s.store.Create(ctx, p)
		if err == nil {
			s.logger.Infow("product created", "ref", p.Ref, "author_id", p.AuthorID)
			return p, nil, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, nil, fmt.Errorf("persist product: %w", err)
		}
		s.logger.Warnw("product reference collision, regenerating", "ref", p.Ref, "attempt", attempt+1)
	}

	violations = append(violations, FieldViolation{Field: "ref", Kind: ViolationDuplicateReference})
	return p, violations, nil
}

// Update loads the product and overwrites only the supplied fields, validated
// against the looser update table. An empty payload is a no-op reporting zero
// violations; repeating the same payload yields the same stored product.
func (s *Service) Update(ctx context.Context, caller accesscontrol.Caller, id int64, in Input) (*Product, []FieldViolation, error) {
	if !accesscontrol.CanMutateProduct(caller) {
		return nil, nil, ErrForbidden
	}

	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	values, violations := ValidateFields(UpdateRules(s.now()), in)
	if len(violations) > 0 {
		return p, violations, nil
	}
	if len(values) == 0 {
		return p, nil, nil
	}

	applyValues(p, values)
	if err := s.store.Update(ctx, p); err != nil {
		return nil, nil, fmt.Errorf("persist product: %w", err)
	}
	s.logger.Infow("product updated", "id", p.ID, "fields", len(values))
	return p, nil, nil
}

func applyValues(p *Product, values map[string]any) {
	for field, v := range values {
		switch field {
		case "category":
			p.Category = v.(string)
		case "type":
			p.Type = v.(string)
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = v.(float64)
		case "stock":
			p.Stock = v.(int64)
		case "gender":
			g := v.(string)
			p.Gender = &g
		case "species":
			p.Species = v.(string)
		case "race":
			r := v.(string)
			p.Race = &r
		case "birth":
			b := v.(int64)
			p.Birth = &b
		case "requiresCertification":
			p.RequiresCertification = v.(bool)
		case "dimensionsMax":
			p.DimensionsMax = v.(float64)
		case "dimensionsUnit":
			p.DimensionsUnit = v.(string)
		case "specification":
			p.Specification = v.(string)
		case "specificationValue":
			sv := v.(float64)
			p.SpecificationValue = &sv
		case "specificationUnit":
			p.SpecificationUnit = v.(string)
		}
	}
}
