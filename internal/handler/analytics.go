package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ferrogaz/website/internal/analytics"
)

// GetAnalytics returns the visit summary for the requested range. The
// default range is served from the scheduler's snapshot when available,
// so dashboard loads do not hit the provider.
// GET /api/dashboard/analytics?dateRange=&customStart=&customEnd=
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := analytics.ParseRange(q.Get("dateRange"), q.Get("customStart"), q.Get("customEnd"), time.Now())
	if err != nil {
		WriteBadRequest(w, "Geçersiz tarih aralığı: "+err.Error())
		return
	}

	if h.analytics == nil || !h.analytics.Enabled() {
		WriteError(w, http.StatusServiceUnavailable, "analytics_unavailable",
			"Analitik sağlayıcı yapılandırılmamış", nil)
		return
	}

	if rng.Label == analytics.DefaultRange {
		if summary, ok := h.cachedSnapshot(r.Context()); ok {
			WriteSuccess(w, summary, nil)
			return
		}
	}

	summary, err := h.analytics.Summary(r.Context(), rng)
	if err != nil {
		slog.Error("analytics summary failed", "range", rng.Label, "error", err)
		WriteError(w, http.StatusBadGateway, "provider_error",
			"Analitik verileri alınamadı", nil)
		return
	}
	WriteSuccess(w, summary, nil)
}

func (h *Handler) cachedSnapshot(ctx context.Context) (analytics.Summary, bool) {
	if h.cache == nil {
		return analytics.Summary{}, false
	}
	raw, err := h.cache.Get(ctx, analytics.SnapshotCacheKey)
	if err != nil {
		return analytics.Summary{}, false
	}
	var summary analytics.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return analytics.Summary{}, false
	}
	return summary, true
}
