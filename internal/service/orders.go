// Package service holds the business logic between handlers and the
// store: order workflow rules, media upload processing, and contact
// message intake.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ferrogaz/website/internal/mailer"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

var (
	// ErrOrderNotFound is returned when the order ID does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderCancelled is returned for any mutation of a cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")

	// ErrInvalidStatus is returned for an unknown status value.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition is returned when the status change violates the
	// workflow: pending → preparing → shipping → completed, forward only.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCancelViaPatch is returned when a status update tries to set
	// cancelled directly; cancellation goes through the cancel endpoint
	// so a reason is always recorded.
	ErrCancelViaPatch = errors.New("cancellation requires the cancel endpoint")

	// ErrInvalidOrder is returned when a new order fails validation.
	ErrInvalidOrder = errors.New("invalid order")
)

// OrderService enforces the order workflow.
type OrderService struct {
	queries  *store.Queries
	notifier mailer.Notifier
}

// NewOrderService creates the order service. notifier may be nil to
// disable notifications.
func NewOrderService(db *sql.DB, notifier mailer.Notifier) *OrderService {
	return &OrderService{queries: store.New(db), notifier: notifier}
}

// Create validates and stores a new order in the pending state.
func (s *OrderService) Create(ctx context.Context, details model.OrderDetails, userID sql.NullInt64) (model.Order, error) {
	if strings.TrimSpace(details.CustomerName) == "" {
		return model.Order{}, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}
	if strings.TrimSpace(details.CustomerEmail) == "" {
		return model.Order{}, fmt.Errorf("%w: customer email is required", ErrInvalidOrder)
	}
	if len(details.Items) == 0 {
		return model.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	for _, item := range details.Items {
		if item.Amount <= 0 {
			return model.Order{}, fmt.Errorf("%w: item %q has non-positive amount", ErrInvalidOrder, item.Name)
		}
	}

	data, err := json.Marshal(details)
	if err != nil {
		return model.Order{}, fmt.Errorf("encoding order details: %w", err)
	}

	now := time.Now()
	order, err := s.queries.CreateOrder(ctx, store.CreateOrderParams{
		Status:    model.OrderStatusPending,
		Details:   string(data),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("creating order: %w", err)
	}

	s.notify(func(n mailer.Notifier) error { return n.OrderReceived(ctx, order) })
	slog.Info("order created", "category", model.EventCategoryOrder, "order_id", order.ID)
	return order, nil
}

// Get fetches one order.
func (s *OrderService) Get(ctx context.Context, id int64) (model.Order, error) {
	order, err := s.queries.GetOrderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("loading order %d: %w", id, err)
	}
	return order, nil
}

// List returns orders, optionally filtered by status, with the total
// count for pagination.
func (s *OrderService) List(ctx context.Context, status string, limit, offset int64) ([]model.Order, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	if status != "" {
		if !model.IsValidOrderStatus(status) {
			return nil, 0, ErrInvalidStatus
		}
		orders, err := s.queries.ListOrdersByStatus(ctx, store.ListOrdersByStatusParams{
			Status: status, Limit: limit, Offset: offset,
		})
		if err != nil {
			return nil, 0, err
		}
		total, err := s.queries.CountOrdersByStatus(ctx, status)
		return orders, total, err
	}

	orders, err := s.queries.ListOrders(ctx, store.ListOrdersParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountOrders(ctx)
	return orders, total, err
}

// ChangeStatus moves an order forward in the workflow. Cancellation is
// rejected here; it must go through Cancel.
func (s *OrderService) ChangeStatus(ctx context.Context, id int64, newStatus string) (model.Order, error) {
	if !model.IsValidOrderStatus(newStatus) {
		return model.Order{}, ErrInvalidStatus
	}
	if newStatus == model.OrderStatusCancelled {
		return model.Order{}, ErrCancelViaPatch
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if order.IsCancelled() {
		return model.Order{}, ErrOrderCancelled
	}
	if order.Status == newStatus {
		return order, nil
	}
	if !model.CanTransition(order.Status, newStatus) {
		return model.Order{}, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, order.Status, newStatus)
	}

	previous := order.Status
	updated, err := s.queries.UpdateOrderStatus(ctx, store.UpdateOrderStatusParams{
		ID:        id,
		Status:    newStatus,
		UpdatedAt: time.Now(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		// The order existed a moment ago, so the guarded UPDATE lost a
		// race against a concurrent cancel.
		return model.Order{}, ErrOrderCancelled
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("updating order status: %w", err)
	}

	s.notify(func(n mailer.Notifier) error { return n.OrderStatusChanged(ctx, updated, previous) })
	slog.Info("order status changed",
		"category", model.EventCategoryOrder,
		"order_id", id, "from", previous, "to", newStatus,
	)
	return updated, nil
}

// UpdateItems replaces the order details. The write is skipped when the
// items are unchanged. Cancelled orders are immutable.
func (s *OrderService) UpdateItems(ctx context.Context, id int64, details model.OrderDetails) (model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if order.IsCancelled() {
		return model.Order{}, ErrOrderCancelled
	}
	if len(details.Items) == 0 {
		return model.Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}

	if existing, ok := order.ParseDetails(); ok && model.ItemsEqual(existing.Items, details.Items) {
		return order, nil
	}

	data, err := json.Marshal(details)
	if err != nil {
		return model.Order{}, fmt.Errorf("encoding order details: %w", err)
	}
	updated, err := s.queries.UpdateOrderDetails(ctx, store.UpdateOrderDetailsParams{
		ID:        id,
		Details:   string(data),
		UpdatedAt: time.Now(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Order{}, ErrOrderCancelled
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("updating order details: %w", err)
	}
	return updated, nil
}

// Cancel moves an order to the terminal cancelled state, recording the
// reason and optional note. Cancelling an already-cancelled order fails
// with ErrOrderCancelled.
func (s *OrderService) Cancel(ctx context.Context, id int64, reason, note string) (model.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return model.Order{}, fmt.Errorf("%w: cancel reason is required", ErrInvalidOrder)
	}

	cancelled, err := s.queries.CancelOrder(ctx, store.CancelOrderParams{
		ID:        id,
		Reason:    reason,
		Note:      note,
		UpdatedAt: time.Now(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		// Either the order does not exist or it was already cancelled;
		// the guard clause in the update cannot tell them apart.
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return model.Order{}, getErr
		}
		return model.Order{}, ErrOrderCancelled
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("cancelling order %d: %w", id, err)
	}

	s.notify(func(n mailer.Notifier) error { return n.OrderCancelled(ctx, cancelled) })
	slog.Info("order cancelled",
		"category", model.EventCategoryOrder,
		"order_id", id, "reason", reason,
	)
	return cancelled, nil
}

// notify runs a notification, logging failures without failing the
// operation that triggered it.
func (s *OrderService) notify(fn func(mailer.Notifier) error) {
	if s.notifier == nil {
		return
	}
	if err := fn(s.notifier); err != nil {
		slog.Warn("order notification failed", "category", model.EventCategoryOrder, "error", err)
	}
}
