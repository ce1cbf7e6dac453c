package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses lists all valid order statuses in progression order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusShipping,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Cancelled is terminal: no transition leaves it. Cancellation itself must go
// through the dedicated cancel flow, so it is reachable from any non-terminal
// state. Completed only accepts cancellation-free termination.
func CanTransition(from, to string) bool {
	if from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusPreparing || to == OrderStatusShipping || to == OrderStatusCompleted
	case OrderStatusPreparing:
		return to == OrderStatusShipping || to == OrderStatusCompleted
	case OrderStatusShipping:
		return to == OrderStatusCompleted
	default:
		return false
	}
}

// Order represents a customer order.
type Order struct {
	ID           int64          `json:"id"`
	Status       string         `json:"status"`
	Details      string         `json:"details"` // JSON OrderDetails, or a legacy raw string
	UserID       sql.NullInt64  `json:"user_id"` // null for guest checkouts
	CancelReason sql.NullString `json:"cancel_reason,omitempty"`
	CancelNote   sql.NullString `json:"cancel_note,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// IsCancelled returns true if the order is in the terminal cancelled state.
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// OrderItem is a single line item in an order.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Amount    int     `json:"amount"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderDetails is the structured form of an order's details JSON.
type OrderDetails struct {
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Address       string      `json:"address,omitempty"`
	Items         []OrderItem `json:"items"`
}

// ParseDetails decodes the order's details JSON. Legacy orders stored details
// as a free-form string; those decode to a zero OrderDetails and ok=false so
// callers can fall back to displaying the raw value.
func (o *Order) ParseDetails() (OrderDetails, bool) {
	var d OrderDetails
	if err := json.Unmarshal([]byte(o.Details), &d); err != nil {
		return OrderDetails{}, false
	}
	return d, true
}

// ItemsEqual compares two item slices by value, in order. Used for the
// dirty-check that gates saving item edits.
func ItemsEqual(a, b []OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
