package transfer

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	_ "modernc.org/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newLegacyDB builds a database with the old site's schema. The import
// queries are plain SQL, so sqlite stands in for MySQL here.
func newLegacyDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY,
			email TEXT, password TEXT, role TEXT, name TEXT, created_at DATETIME
		)`,
		`CREATE TABLE orders (
			id INTEGER PRIMARY KEY,
			customer_name TEXT, customer_email TEXT, customer_phone TEXT,
			address TEXT, items TEXT, status TEXT, created_at DATETIME
		)`,
		`CREATE TABLE contact_messages (
			id INTEGER PRIMARY KEY,
			name TEXT, email TEXT, phone TEXT, subject TEXT, message TEXT, created_at DATETIME
		)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func newTargetDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return db
}

func newTestImporter(t *testing.T, legacy, target *sql.DB) *Importer {
	t.Helper()
	return &Importer{legacy: legacy, queries: store.New(target), logger: testLogger()}
}

func seedLegacy(t *testing.T, legacy *sql.DB) {
	t.Helper()
	now := time.Now().UTC()

	_, err := legacy.Exec(
		`INSERT INTO users (email, password, role, name, created_at) VALUES
		 ('Mudur@Eski-Site.example', '$argon2id$v=19$m=65536,t=1,p=4$c2FsdHNhbHQ$aGFzaGhhc2g', 'admin', 'Eski Müdür', ?),
		 ('uye@eski-site.example', '$2a$10$eskibcrypthash', 'customer', 'Eski Üye', ?)`,
		now, now,
	)
	require.NoError(t, err)

	_, err = legacy.Exec(
		`INSERT INTO orders (customer_name, customer_email, customer_phone, address, items, status, created_at) VALUES
		 ('Ayşe Demir', 'ayse@example.com', '+905551112233', 'Ankara', '[{"product_id":1,"name":"Oksijen Tüpü","amount":2,"unit_price":450}]', 'completed', ?),
		 ('Can Yılmaz', 'can@example.com', '+905554445566', 'İzmir', 'bozuk json', 'delivered', ?)`,
		now, now,
	)
	require.NoError(t, err)

	_, err = legacy.Exec(
		`INSERT INTO contact_messages (name, email, phone, subject, message, created_at) VALUES
		 ('Ziyaretçi', 'z@example.com', '', 'Teklif', 'Fiyat listesi rica ederim.', ?)`,
		now,
	)
	require.NoError(t, err)
}

func TestImporterRun(t *testing.T) {
	legacy := newLegacyDB(t)
	target := newTargetDB(t)
	seedLegacy(t, legacy)

	imp := newTestImporter(t, legacy, target)
	ctx := context.Background()

	res, err := imp.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, 2, res.Orders)
	assert.Equal(t, 1, res.Contacts)

	queries := store.New(target)

	// Emails are lowercased on import.
	user, err := queries.GetUserByEmail(ctx, "mudur@eski-site.example")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "Eski Müdür", user.Name)

	// Unknown legacy roles map to member.
	member, err := queries.GetUserByEmail(ctx, "uye@eski-site.example")
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, member.Role)

	orders, err := queries.ListOrders(ctx, store.ListOrdersParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	var sawCompleted, sawPending bool
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusCompleted:
			sawCompleted = true
			assert.Contains(t, o.Details, "Oksijen Tüpü")
		case model.OrderStatusPending:
			// Unknown legacy status falls back to pending.
			sawPending = true
		}
	}
	assert.True(t, sawCompleted, "completed order not imported")
	assert.True(t, sawPending, "unknown status not mapped to pending")

	count, err := queries.CountContactMessages(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestImporterRunIsIdempotent(t *testing.T) {
	legacy := newLegacyDB(t)
	target := newTargetDB(t)
	seedLegacy(t, legacy)

	imp := newTestImporter(t, legacy, target)
	ctx := context.Background()

	_, err := imp.Run(ctx)
	require.NoError(t, err)

	res, err := imp.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.Users)
	assert.Zero(t, res.Orders)
	assert.Zero(t, res.Contacts)
	assert.Equal(t, 4, res.Skipped)

	orders, err := store.New(target).ListOrders(ctx, store.ListOrdersParams{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
