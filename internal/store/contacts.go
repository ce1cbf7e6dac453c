package store

import (
	"context"
	"time"

	"github.com/ferrogaz/website/internal/model"
)

const contactColumns = `id, name, email, phone, subject, message, created_at`

// CreateContactMessageParams holds a contact form submission.
type CreateContactMessageParams struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// CreateContactMessage persists a contact form submission.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO contact_messages (name, email, phone, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING `+contactColumns,
		arg.Name, arg.Email, arg.Phone, arg.Subject, arg.Message, arg.CreatedAt)
	var m model.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt)
	return m, err
}

// ListContactMessagesParams holds pagination for the inbox list.
type ListContactMessagesParams struct {
	Limit  int64
	Offset int64
}

// ListContactMessages returns contact messages, newest first.
func (q *Queries) ListContactMessages(ctx context.Context, arg ListContactMessagesParams) ([]model.ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountContactMessages returns the total number of contact messages.
func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&count)
	return count, err
}
