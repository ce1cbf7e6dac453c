package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ferrogaz/website/internal/model"
)

const orderColumns = `id, status, details, user_id, cancel_reason, cancel_note, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Status, &o.Details, &o.UserID, &o.CancelReason, &o.CancelNote, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// GetOrderByID fetches a single order.
func (q *Queries) GetOrderByID(ctx context.Context, id int64) (model.Order, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return scanOrder(row)
}

// ListOrdersParams holds pagination for the order list.
type ListOrdersParams struct {
	Limit  int64
	Offset int64
}

// ListOrders returns orders newest first.
func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]model.Order, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectOrders(rows)
}

// ListOrdersByStatusParams holds the status filter and pagination.
type ListOrdersByStatusParams struct {
	Status string
	Limit  int64
	Offset int64
}

// ListOrdersByStatus returns orders in a given status, newest first.
func (q *Queries) ListOrdersByStatus(ctx context.Context, arg ListOrdersByStatusParams) ([]model.Order, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// CountOrders returns the total number of orders.
func (q *Queries) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

// CountOrdersByStatus returns the number of orders in a status.
func (q *Queries) CountOrdersByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = ?`, status).Scan(&count)
	return count, err
}

// CreateOrderParams holds the fields for a new order.
type CreateOrderParams struct {
	Status    string
	Details   string
	UserID    sql.NullInt64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateOrder inserts a new order.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (model.Order, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO orders (status, details, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING `+orderColumns,
		arg.Status, arg.Details, arg.UserID, arg.CreatedAt, arg.UpdatedAt)
	return scanOrder(row)
}

// UpdateOrderStatusParams holds a status change.
type UpdateOrderStatusParams struct {
	ID        int64
	Status    string
	UpdatedAt time.Time
}

// UpdateOrderStatus updates only the order status. The WHERE guard keeps
// a concurrent cancel from being overwritten; a raced update returns
// sql.ErrNoRows.
func (q *Queries) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (model.Order, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status != ? RETURNING `+orderColumns,
		arg.Status, arg.UpdatedAt, arg.ID, model.OrderStatusCancelled)
	return scanOrder(row)
}

// UpdateOrderDetailsParams holds a details (line item) change.
type UpdateOrderDetailsParams struct {
	ID        int64
	Details   string
	UpdatedAt time.Time
}

// UpdateOrderDetails replaces the order's details JSON. Cancelled orders
// are immutable, enforced by the same WHERE guard as UpdateOrderStatus.
func (q *Queries) UpdateOrderDetails(ctx context.Context, arg UpdateOrderDetailsParams) (model.Order, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE orders SET details = ?, updated_at = ? WHERE id = ? AND status != ? RETURNING `+orderColumns,
		arg.Details, arg.UpdatedAt, arg.ID, model.OrderStatusCancelled)
	return scanOrder(row)
}

// CancelOrderParams holds the cancellation metadata.
type CancelOrderParams struct {
	ID        int64
	Reason    string
	Note      string
	UpdatedAt time.Time
}

// CancelOrder marks the order cancelled and records why. The WHERE clause
// guards the terminal-state invariant at the storage layer: a cancelled
// order is never re-cancelled or modified.
func (q *Queries) CancelOrder(ctx context.Context, arg CancelOrderParams) (model.Order, error) {
	row := q.db.QueryRowContext(ctx,
		`UPDATE orders SET status = ?, cancel_reason = ?, cancel_note = ?, updated_at = ?
		 WHERE id = ? AND status != ? RETURNING `+orderColumns,
		model.OrderStatusCancelled, arg.Reason, arg.Note, arg.UpdatedAt, arg.ID, model.OrderStatusCancelled)
	return scanOrder(row)
}

// DeleteOrder removes an order row.
func (q *Queries) DeleteOrder(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	return err
}
