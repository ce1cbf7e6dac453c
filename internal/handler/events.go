package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

// EventResponse is the JSON shape of one event log entry.
type EventResponse struct {
	ID        int64           `json:"id"`
	Level     string          `json:"level"`
	Category  string          `json:"category"`
	Message   string          `json:"message"`
	UserID    *int64          `json:"user_id,omitempty"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
}

func toEventResponse(e model.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		Level:     e.Level,
		Category:  e.Category,
		Message:   e.Message,
		Metadata:  json.RawMessage(e.Metadata),
		CreatedAt: e.CreatedAt,
	}
	if e.UserID.Valid {
		resp.UserID = &e.UserID.Int64
	}
	if len(resp.Metadata) == 0 || !json.Valid(resp.Metadata) {
		resp.Metadata = json.RawMessage("{}")
	}
	return resp
}

// ListEvents returns the audit log for the dashboard, newest first.
// GET /api/dashboard/events?limit=&offset=
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{Limit: limit, Offset: offset})
	if err != nil {
		WriteInternalError(w, "Olay kayıtları yüklenemedi")
		return
	}

	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	WriteSuccess(w, out, &Meta{Limit: limit, Offset: offset})
}
