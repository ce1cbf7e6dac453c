package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/ferrogaz/website/internal/mailer"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

// ErrInvalidContact is returned when a contact submission fails validation.
var ErrInvalidContact = errors.New("invalid contact message")

// Contact field limits, matching the public form.
const (
	maxContactNameLen    = 200
	maxContactSubjectLen = 300
	maxContactMessageLen = 5000
)

// ContactService persists contact form submissions and notifies staff.
type ContactService struct {
	queries  *store.Queries
	notifier mailer.Notifier
}

// NewContactService creates the contact service. notifier may be nil.
func NewContactService(db *sql.DB, notifier mailer.Notifier) *ContactService {
	return &ContactService{queries: store.New(db), notifier: notifier}
}

// Submit validates and stores a contact message.
func (s *ContactService) Submit(ctx context.Context, msg model.ContactMessage) (model.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "" || len(msg.Name) > maxContactNameLen:
		return model.ContactMessage{}, fmt.Errorf("%w: name", ErrInvalidContact)
	case msg.Message == "" || len(msg.Message) > maxContactMessageLen:
		return model.ContactMessage{}, fmt.Errorf("%w: message", ErrInvalidContact)
	case len(msg.Subject) > maxContactSubjectLen:
		return model.ContactMessage{}, fmt.Errorf("%w: subject", ErrInvalidContact)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return model.ContactMessage{}, fmt.Errorf("%w: email", ErrInvalidContact)
	}

	saved, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.ContactMessage{}, fmt.Errorf("saving contact message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.ContactMessageReceived(ctx, saved); err != nil {
			slog.Warn("contact notification failed", "error", err)
		}
	}
	return saved, nil
}

// List returns contact messages for the dashboard inbox.
func (s *ContactService) List(ctx context.Context, limit, offset int64) ([]model.ContactMessage, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	messages, err := s.queries.ListContactMessages(ctx, store.ListContactMessagesParams{Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	total, err := s.queries.CountContactMessages(ctx)
	return messages, total, err
}
