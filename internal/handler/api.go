// Package handler provides the HTTP handlers for the public site API and
// the dashboard API.
package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/ferrogaz/website/internal/analytics"
	"github.com/ferrogaz/website/internal/cache"
	"github.com/ferrogaz/website/internal/captcha"
	"github.com/ferrogaz/website/internal/content"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/service"
	"github.com/ferrogaz/website/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db         *sql.DB
	queries    *store.Queries
	sessions   *scs.SessionManager
	resolver   *content.Resolver
	orders     *service.OrderService
	media      *service.MediaService
	contact    *service.ContactService
	analytics  *analytics.Client
	captcha    *captcha.Verifier
	loginGuard *middleware.LoginProtection
	cache      cache.Cache
	site       content.SiteInfo
	isDev      bool
}

// Config carries the dependencies a Handler needs.
type Config struct {
	DB         *sql.DB
	Sessions   *scs.SessionManager
	Resolver   *content.Resolver
	Orders     *service.OrderService
	Media      *service.MediaService
	Contact    *service.ContactService
	Analytics  *analytics.Client
	Captcha    *captcha.Verifier
	LoginGuard *middleware.LoginProtection
	Cache      cache.Cache
	Site       content.SiteInfo
	IsDev      bool
}

// New creates a Handler.
func New(cfg Config) *Handler {
	return &Handler{
		db:         cfg.DB,
		queries:    store.New(cfg.DB),
		sessions:   cfg.Sessions,
		resolver:   cfg.Resolver,
		orders:     cfg.Orders,
		media:      cfg.Media,
		contact:    cfg.Contact,
		analytics:  cfg.Analytics,
		captcha:    cfg.Captcha,
		loginGuard: cfg.LoginGuard,
		cache:      cfg.Cache,
		site:       cfg.Site,
		isDev:      cfg.IsDev,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total  int64 `json:"total,omitempty"`
	Limit  int64 `json:"limit,omitempty"`
	Offset int64 `json:"offset,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, "conflict", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Doğrulama başarısız", fieldErrors)
}

// decodeJSON decodes a JSON request body, capped at 1MB.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
