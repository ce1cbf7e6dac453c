package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/service"
)

// verifyCaptcha checks the captcha token on public form submissions.
// Returns false after writing the error response. A verifier that is not
// configured lets everything through.
func (h *Handler) verifyCaptcha(w http.ResponseWriter, r *http.Request, token string) bool {
	if h.captcha == nil || !h.captcha.Enabled() {
		return true
	}
	ok, err := h.captcha.Verify(r.Context(), token, middleware.GetClientIP(r))
	if err != nil {
		WriteInternalError(w, "Doğrulama servisi yanıt vermedi")
		return false
	}
	if !ok {
		WriteError(w, http.StatusBadRequest, "captcha_failed", "Robot doğrulaması başarısız", nil)
		return false
	}
	return true
}

// SubmitContactRequest is the public contact form payload.
type SubmitContactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Subject      string `json:"subject,omitempty"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// SubmitContact handles the public contact form.
// POST /api/contact
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	if !h.verifyCaptcha(w, r, req.CaptchaToken) {
		return
	}

	saved, err := h.contact.Submit(r.Context(), model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if errors.Is(err, service.ErrInvalidContact) {
		WriteValidationError(w, map[string]string{"message": err.Error()})
		return
	}
	if err != nil {
		WriteInternalError(w, "Mesajınız kaydedilemedi")
		return
	}
	WriteCreated(w, saved)
}

// ListContactMessages returns the dashboard contact inbox.
// GET /api/dashboard/contact-messages?limit=&offset=
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)

	messages, total, err := h.contact.List(r.Context(), limit, offset)
	if err != nil {
		WriteInternalError(w, "Mesajlar yüklenemedi")
		return
	}
	WriteSuccess(w, messages, &Meta{Total: total, Limit: limit, Offset: offset})
}
