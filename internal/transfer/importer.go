// Package transfer imports accounts, orders, and contact messages from
// the previous site's MySQL database into the local store. It runs once,
// behind the -import-legacy flag.
package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

// Result counts what one import run brought over.
type Result struct {
	Users    int
	Orders   int
	Contacts int
	Skipped  int
}

// Importer reads the legacy MySQL database and writes into the local
// store.
type Importer struct {
	legacy  *sql.DB
	queries *store.Queries
	logger  *slog.Logger
}

// NewImporter connects to the legacy database.
func NewImporter(dsn string, target *sql.DB, logger *slog.Logger) (*Importer, error) {
	legacy, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening legacy database: %w", err)
	}
	if err := legacy.Ping(); err != nil {
		_ = legacy.Close()
		return nil, fmt.Errorf("connecting to legacy database: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{legacy: legacy, queries: store.New(target), logger: logger}, nil
}

// Close closes the legacy connection.
func (i *Importer) Close() error {
	return i.legacy.Close()
}

// Run imports users, orders, and contact messages. Rows that already
// exist locally (matched by email or legacy ID held in order details)
// are skipped, so re-running is safe.
func (i *Importer) Run(ctx context.Context) (Result, error) {
	var res Result

	users, err := i.importUsers(ctx)
	if err != nil {
		return res, fmt.Errorf("importing users: %w", err)
	}
	res.Users = users.imported
	res.Skipped += users.skipped

	orders, err := i.importOrders(ctx)
	if err != nil {
		return res, fmt.Errorf("importing orders: %w", err)
	}
	res.Orders = orders.imported
	res.Skipped += orders.skipped

	contacts, err := i.importContacts(ctx)
	if err != nil {
		return res, fmt.Errorf("importing contact messages: %w", err)
	}
	res.Contacts = contacts.imported
	res.Skipped += contacts.skipped

	i.logger.Info("legacy import finished",
		"users", res.Users, "orders", res.Orders, "contacts", res.Contacts, "skipped", res.Skipped)
	return res, nil
}

type counts struct {
	imported int
	skipped  int
}

func (i *Importer) importUsers(ctx context.Context) (counts, error) {
	var c counts

	rows, err := i.legacy.QueryContext(ctx,
		`SELECT email, password, role, name, created_at FROM users ORDER BY id`)
	if err != nil {
		return c, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var email, passwordHash, role, name string
		var createdAt time.Time
		if err := rows.Scan(&email, &passwordHash, &role, &name, &createdAt); err != nil {
			return c, err
		}

		email = strings.ToLower(strings.TrimSpace(email))
		exists, err := i.queries.EmailExists(ctx, email)
		if err != nil {
			return c, err
		}
		if exists {
			c.skipped++
			continue
		}

		if role != model.RoleAdmin && role != model.RoleEditor {
			role = model.RoleMember
		}
		// Hashes are carried over as-is. Non-argon2id hashes fail
		// verification, so those accounts need a password reset.
		if _, err := i.queries.CreateUser(ctx, store.CreateUserParams{
			Email:        email,
			PasswordHash: passwordHash,
			Role:         role,
			Name:         name,
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		}); err != nil {
			return c, err
		}
		c.imported++
	}
	return c, rows.Err()
}

// legacyOrderKey marks imported orders inside their details JSON so a
// re-run can recognize them.
const legacyOrderKey = "legacyId"

func (i *Importer) importOrders(ctx context.Context) (counts, error) {
	var c counts

	seen, err := i.existingLegacyOrderIDs(ctx)
	if err != nil {
		return c, err
	}

	rows, err := i.legacy.QueryContext(ctx,
		`SELECT id, customer_name, customer_email, customer_phone, address,
		        items, status, created_at
		 FROM orders ORDER BY id`)
	if err != nil {
		return c, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var legacyID int64
		var name, email, phone, address, itemsJSON, status string
		var createdAt time.Time
		if err := rows.Scan(&legacyID, &name, &email, &phone, &address, &itemsJSON, &status, &createdAt); err != nil {
			return c, err
		}
		if seen[legacyID] {
			c.skipped++
			continue
		}

		var items []model.OrderItem
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			i.logger.Warn("legacy order has unreadable items, importing without them",
				"legacy_id", legacyID, "error", err)
		}
		if !model.IsValidOrderStatus(status) {
			status = model.OrderStatusPending
		}

		details, err := json.Marshal(map[string]any{
			"customer_name":  name,
			"customer_email": email,
			"customer_phone": phone,
			"address":        address,
			"items":          items,
			legacyOrderKey:   legacyID,
		})
		if err != nil {
			return c, err
		}

		if _, err := i.queries.CreateOrder(ctx, store.CreateOrderParams{
			Status:    status,
			Details:   string(details),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}); err != nil {
			return c, err
		}
		c.imported++
	}
	return c, rows.Err()
}

// existingLegacyOrderIDs collects the legacy IDs already imported.
func (i *Importer) existingLegacyOrderIDs(ctx context.Context) (map[int64]bool, error) {
	seen := make(map[int64]bool)

	rows, err := i.queries.ListOrders(ctx, store.ListOrdersParams{Limit: 1 << 20, Offset: 0})
	if err != nil {
		return nil, err
	}
	for _, order := range rows {
		var details map[string]any
		if err := json.Unmarshal([]byte(order.Details), &details); err != nil {
			continue
		}
		if id, ok := details[legacyOrderKey].(float64); ok {
			seen[int64(id)] = true
		}
	}
	return seen, nil
}

func (i *Importer) importContacts(ctx context.Context) (counts, error) {
	var c counts

	have, err := i.queries.CountContactMessages(ctx)
	if err != nil {
		return c, err
	}
	if have > 0 {
		// Contact messages have no natural key; only import into an
		// empty inbox.
		return c, nil
	}

	rows, err := i.legacy.QueryContext(ctx,
		`SELECT name, email, phone, subject, message, created_at
		 FROM contact_messages ORDER BY id`)
	if err != nil {
		return c, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name, email, phone, subject, message string
		var createdAt time.Time
		if err := rows.Scan(&name, &email, &phone, &subject, &message, &createdAt); err != nil {
			return c, err
		}
		if _, err := i.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
			Name:      name,
			Email:     email,
			Phone:     phone,
			Subject:   subject,
			Message:   message,
			CreatedAt: createdAt,
		}); err != nil {
			return c, err
		}
		c.imported++
	}
	return c, rows.Err()
}
