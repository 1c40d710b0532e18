package orders

import (
	"context"
	"errors"
	"fmt"

	"petshop/internal/domain/accesscontrol"

	"go.uber.org/zap"
)

type Store interface {
	GetWithLines(ctx context.Context, id int64) (*Order, error)
	ListByCustomer(ctx context.Context, customerID int64, status *Status) ([]Order, error)
	ListAll(ctx context.Context, status *Status) ([]Order, error)
}

// Service decides which orders a caller may see and assembles the list
// envelope. It performs no writes.
type Service struct {
	store  Store
	logger *zap.SugaredLogger
}

func NewService(store Store, logger *zap.SugaredLogger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns the orders visible to the caller, optionally filtered by
// status: all orders for admins, own orders otherwise. An empty result is a
// normal outcome with Count zero.
func (s *Service) List(ctx context.Context, caller accesscontrol.Caller, status *Status) (*ListResult, error) {
	var (
		visible []Order
		err     error
	)
	if accesscontrol.CanListAllOrders(caller) {
		visible, err = s.store.ListAll(ctx, status)
	} else {
		visible, err = s.store.ListByCustomer(ctx, caller.UserID, status)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	applied := "all"
	if status != nil {
		applied = string(*status)
	}
	return &ListResult{
		Count:         len(visible),
		AppliedFilter: applied,
		Orders:        visible,
	}, nil
}

// Show returns one order with its lines eagerly attached. An order the
// caller may not see yields ErrForbidden; a missing id yields ErrNotFound for
// admins and ErrForbidden for everyone else, so non-admins cannot probe which
// order ids exist.
func (s *Service) Show(ctx context.Context, caller accesscontrol.Caller, id int64) (*Order, error) {
	order, err := s.store.GetWithLines(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) && !caller.HasRole(accesscontrol.RoleAdmin) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if !accesscontrol.CanViewOrder(caller, order.CustomerID) {
		s.logger.Infow("order access denied", "order_id", id, "user_id", caller.UserID)
		return nil, ErrForbidden
	}
	return order, nil
}
