package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

// visitorID reads the visitor cookie, minting a new UUID when absent.
func visitorID(r *http.Request) (string, bool) {
	if c, err := r.Cookie(model.CookieVisitorID); err == nil && c.Value != "" {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value, false
		}
	}
	return uuid.New().String(), true
}

func setConsentCookies(w http.ResponseWriter, visitor string, c model.CookieConsent) {
	http.SetCookie(w, &http.Cookie{
		Name:     model.CookieVisitorID,
		Value:    visitor,
		Path:     "/",
		MaxAge:   model.ConsentCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Compact flag triple: necessary-analytics-marketing.
	http.SetCookie(w, &http.Cookie{
		Name:     model.CookieConsentName,
		Value:    fmt.Sprintf("%d-%d-%d", boolFlag(c.Necessary), boolFlag(c.Analytics), boolFlag(c.Marketing)),
		Path:     "/",
		MaxAge:   model.ConsentCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ConsentRequest is the consent banner payload.
type ConsentRequest struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// SaveConsent upserts the visitor's cookie consent and refreshes both
// consent cookies for a year.
// POST /api/cookies/consent
func (h *Handler) SaveConsent(w http.ResponseWriter, r *http.Request) {
	var req ConsentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	visitor, _ := visitorID(r)
	consent, err := h.queries.UpsertConsent(r.Context(), store.UpsertConsentParams{
		VisitorID: visitor,
		Necessary: true, // necessary cookies cannot be refused
		Analytics: req.Analytics,
		Marketing: req.Marketing,
		Now:       time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Tercihler kaydedilemedi")
		return
	}

	setConsentCookies(w, visitor, consent)
	WriteSuccess(w, consent, nil)
}

// GetConsent returns the visitor's recorded consent, if any.
// GET /api/cookies/consent
func (h *Handler) GetConsent(w http.ResponseWriter, r *http.Request) {
	visitor, minted := visitorID(r)
	if minted {
		WriteNotFound(w, "Kayıtlı tercih yok")
		return
	}

	consent, err := h.queries.GetConsentByVisitor(r.Context(), visitor)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Kayıtlı tercih yok")
		return
	}
	if err != nil {
		WriteInternalError(w, "Tercihler yüklenemedi")
		return
	}
	WriteSuccess(w, consent, nil)
}
