package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/service"
	"github.com/ferrogaz/website/internal/session"
)

// orderIDParam parses the {id} route parameter.
func orderIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListOrders returns orders, newest first, optionally filtered by status.
// GET /api/orders?status=&limit=&offset=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	orders, total, err := h.orders.List(r.Context(), status, limit, offset)
	if errors.Is(err, service.ErrInvalidStatus) {
		WriteBadRequest(w, "Geçersiz sipariş durumu: "+status)
		return
	}
	if err != nil {
		WriteInternalError(w, "Siparişler yüklenemedi")
		return
	}

	WriteSuccess(w, orders, &Meta{Total: total, Limit: limit, Offset: offset})
}

// GetOrder returns one order.
// GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Geçersiz sipariş numarası")
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if errors.Is(err, service.ErrOrderNotFound) {
		WriteNotFound(w, "Sipariş bulunamadı")
		return
	}
	if err != nil {
		WriteInternalError(w, "Sipariş yüklenemedi")
		return
	}
	WriteSuccess(w, order, nil)
}

// CreateOrderRequest is the body for a new order from the site.
type CreateOrderRequest struct {
	Details      model.OrderDetails `json:"details"`
	CaptchaToken string             `json:"captchaToken"`
}

// CreateOrder records a new order from the public order form.
// POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	if !h.verifyCaptcha(w, r, req.CaptchaToken) {
		return
	}

	// The create route is public, so there is no loaded user in the
	// context; a logged-in member is identified from the session itself.
	var userID sql.NullInt64
	if id := h.sessions.GetInt64(r.Context(), session.KeyUserID); id != 0 {
		userID = sql.NullInt64{Int64: id, Valid: true}
	}

	order, err := h.orders.Create(r.Context(), req.Details, userID)
	if errors.Is(err, service.ErrInvalidOrder) {
		WriteValidationError(w, map[string]string{"details": err.Error()})
		return
	}
	if err != nil {
		WriteInternalError(w, "Sipariş oluşturulamadı")
		return
	}
	WriteCreated(w, order)
}

// PatchOrderRequest updates an order's status or its details.
type PatchOrderRequest struct {
	Status  string              `json:"status,omitempty"`
	Details *model.OrderDetails `json:"details,omitempty"`
}

// PatchOrder applies a status transition or a details edit. Cancellation
// is not accepted here; it has its own endpoint.
// PATCH /api/orders/{id}
func (h *Handler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Geçersiz sipariş numarası")
		return
	}

	var req PatchOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}
	if req.Status == "" && req.Details == nil {
		WriteBadRequest(w, "status veya details alanlarından biri gerekli")
		return
	}

	var order model.Order
	if req.Status != "" {
		order, err = h.orders.ChangeStatus(r.Context(), id, req.Status)
	} else {
		order, err = h.orders.UpdateItems(r.Context(), id, *req.Details)
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrOrderNotFound):
		WriteNotFound(w, "Sipariş bulunamadı")
		return
	case errors.Is(err, service.ErrCancelViaPatch):
		WriteConflict(w, "İptal için /cancel uç noktasını kullanın")
		return
	case errors.Is(err, service.ErrOrderCancelled):
		WriteConflict(w, "İptal edilmiş sipariş değiştirilemez")
		return
	case errors.Is(err, service.ErrInvalidTransition):
		WriteConflict(w, "Geçersiz durum geçişi: "+err.Error())
		return
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidOrder):
		WriteBadRequest(w, err.Error())
		return
	default:
		WriteInternalError(w, "Sipariş güncellenemedi")
		return
	}

	WriteSuccess(w, order, nil)
}

// CancelOrderRequest is the body of the dedicated cancel endpoint.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note,omitempty"`
}

// CancelOrder cancels an order with a required reason.
// POST /api/orders/{id}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Geçersiz sipariş numarası")
		return
	}

	var req CancelOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	order, err := h.orders.Cancel(r.Context(), id, req.Reason, req.Note)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrOrderNotFound):
		WriteNotFound(w, "Sipariş bulunamadı")
		return
	case errors.Is(err, service.ErrOrderCancelled):
		WriteConflict(w, "Sipariş zaten iptal edilmiş")
		return
	case errors.Is(err, service.ErrInvalidOrder):
		WriteValidationError(w, map[string]string{"reason": "gerekli"})
		return
	default:
		WriteInternalError(w, "Sipariş iptal edilemedi")
		return
	}

	WriteSuccess(w, order, nil)
}
