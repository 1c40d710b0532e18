package orders

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrForbidden = errors.New("not allowed to access this order")
)

// Status is the order lifecycle state. The only transition owned by this
// module is the reaper's cart -> deleted; everything else belongs to the
// order-processing pipeline.
type Status string

const (
	StatusCart      Status = "cart"
	StatusOpen      Status = "open"
	StatusPending   Status = "pending"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a filter string to a Status. Unrecognized values report
// ok=false; callers treat that as "matches nothing", not as an error.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusCart, StatusOpen, StatusPending, StatusClosed, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

type Order struct {
	ID            int64       `json:"id"`
	CustomerID    *int64      `json:"customer_id,omitempty"`
	Status        Status      `json:"status"`
	LastChangedAt time.Time   `json:"last_changed_at"`
	Lines         []OrderLine `json:"lines,omitempty"`
}

type OrderLine struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ListResult is the envelope handed back to the response layer.
type ListResult struct {
	Count         int     `json:"nb"`
	AppliedFilter string  `json:"status"`
	Orders        []Order `json:"orders"`
}
