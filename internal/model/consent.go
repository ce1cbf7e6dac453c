package model

import "time"

// Cookie names set by the consent banner. Both carry a 1-year expiry.
const (
	CookieVisitorID   = "fg_visitor_id"
	CookieConsentName = "fg_cookie_consent"
)

// ConsentCookieMaxAge is one year in seconds.
const ConsentCookieMaxAge = 365 * 24 * 60 * 60

// CookieConsent mirrors a visitor's consent banner choice server-side,
// keyed by the fg_visitor_id cookie value.
type CookieConsent struct {
	ID          int64     `json:"id"`
	VisitorID   string    `json:"visitor_id"`
	Necessary   bool      `json:"necessary"`
	Analytics   bool      `json:"analytics"`
	Marketing   bool      `json:"marketing"`
	ConsentedAt time.Time `json:"consented_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
