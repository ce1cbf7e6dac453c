// Package mailer defines order and contact notifications. The default
// implementation writes to the log; a real SMTP sender can be dropped in
// behind the same interface.
package mailer

import (
	"context"
	"log/slog"

	"github.com/ferrogaz/website/internal/model"
)

// Notifier delivers operational notifications triggered by site activity.
type Notifier interface {
	// OrderReceived is sent when a visitor submits a new order.
	OrderReceived(ctx context.Context, order model.Order) error

	// OrderStatusChanged is sent on every successful status transition.
	OrderStatusChanged(ctx context.Context, order model.Order, previousStatus string) error

	// OrderCancelled is sent when an order is cancelled, with the
	// recorded reason.
	OrderCancelled(ctx context.Context, order model.Order) error

	// ContactMessageReceived is sent when the contact form is submitted.
	ContactMessageReceived(ctx context.Context, msg model.ContactMessage) error
}

// LogNotifier logs notifications instead of sending them. Used in
// development and as the fallback when no mail transport is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderReceived(_ context.Context, order model.Order) error {
	n.logger.Info("notification: order received",
		"category", model.EventCategoryOrder,
		"order_id", order.ID,
		"status", order.Status,
	)
	return nil
}

func (n *LogNotifier) OrderStatusChanged(_ context.Context, order model.Order, previousStatus string) error {
	n.logger.Info("notification: order status changed",
		"category", model.EventCategoryOrder,
		"order_id", order.ID,
		"from", previousStatus,
		"to", order.Status,
	)
	return nil
}

func (n *LogNotifier) OrderCancelled(_ context.Context, order model.Order) error {
	n.logger.Info("notification: order cancelled",
		"category", model.EventCategoryOrder,
		"order_id", order.ID,
		"reason", order.CancelReason.String,
		"note", order.CancelNote.String,
	)
	return nil
}

func (n *LogNotifier) ContactMessageReceived(_ context.Context, msg model.ContactMessage) error {
	n.logger.Info("notification: contact message received",
		"category", model.EventCategorySystem,
		"message_id", msg.ID,
		"email", msg.Email,
	)
	return nil
}
