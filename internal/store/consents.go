package store

import (
	"context"
	"time"

	"github.com/ferrogaz/website/internal/model"
)

const consentColumns = `id, visitor_id, necessary, analytics, marketing, consented_at, updated_at`

func scanConsent(row interface{ Scan(...any) error }) (model.CookieConsent, error) {
	var c model.CookieConsent
	err := row.Scan(&c.ID, &c.VisitorID, &c.Necessary, &c.Analytics, &c.Marketing, &c.ConsentedAt, &c.UpdatedAt)
	return c, err
}

// GetConsentByVisitor fetches a visitor's recorded consent.
func (q *Queries) GetConsentByVisitor(ctx context.Context, visitorID string) (model.CookieConsent, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+consentColumns+` FROM cookie_consents WHERE visitor_id = ?`, visitorID)
	return scanConsent(row)
}

// UpsertConsentParams holds a visitor's consent choice.
type UpsertConsentParams struct {
	VisitorID string
	Necessary bool
	Analytics bool
	Marketing bool
	Now       time.Time
}

// UpsertConsent records or updates a visitor's cookie consent.
func (q *Queries) UpsertConsent(ctx context.Context, arg UpsertConsentParams) (model.CookieConsent, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO cookie_consents (visitor_id, necessary, analytics, marketing, consented_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (visitor_id)
		 DO UPDATE SET necessary = excluded.necessary, analytics = excluded.analytics,
		               marketing = excluded.marketing, updated_at = excluded.updated_at
		 RETURNING `+consentColumns,
		arg.VisitorID, arg.Necessary, arg.Analytics, arg.Marketing, arg.Now, arg.Now)
	return scanConsent(row)
}
