package handler

import (
	"net/http"
	"time"
)

var startedAt = time.Now()

// Health reports liveness and database reachability.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	WriteJSON(w, code, map[string]any{
		"status": status,
		"uptime": time.Since(startedAt).Round(time.Second).String(),
	})
}
