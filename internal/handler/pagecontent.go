package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferrogaz/website/internal/content"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/model"
)

// GetPageContent returns the resolved content of one page: defaults merged
// with any saved overrides, per section.
// GET /api/dashboard/page-content?slug=&language=
func (h *Handler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		WriteBadRequest(w, "slug parametresi gerekli")
		return
	}
	language := model.NormalizeLanguage(r.URL.Query().Get("language"))

	page, err := h.resolver.ResolvePage(r.Context(), slug, language)
	if errors.Is(err, content.ErrUnknownPage) {
		WriteNotFound(w, "Sayfa bulunamadı: "+slug)
		return
	}
	if err != nil {
		slog.Error("page content resolve failed", "slug", slug, "error", err)
		WriteInternalError(w, "Sayfa içeriği yüklenemedi")
		return
	}

	WriteSuccess(w, page, nil)
}

// SavePageContentRequest is the PUT body for a section override.
type SavePageContentRequest struct {
	PageSlug   string         `json:"pageSlug"`
	SectionKey string         `json:"sectionKey"`
	Language   string         `json:"language"`
	Content    map[string]any `json:"content"`
}

// SavePageContent stores a wholesale section override and returns the
// re-resolved section.
// PUT /api/dashboard/page-content
func (h *Handler) SavePageContent(w http.ResponseWriter, r *http.Request) {
	var req SavePageContentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}
	if req.PageSlug == "" || req.SectionKey == "" {
		WriteValidationError(w, map[string]string{
			"pageSlug":   "gerekli",
			"sectionKey": "gerekli",
		})
		return
	}
	if req.Content == nil {
		WriteValidationError(w, map[string]string{"content": "gerekli"})
		return
	}
	language := model.NormalizeLanguage(req.Language)

	section, err := h.resolver.SaveSection(r.Context(), req.PageSlug, req.SectionKey, language, req.Content)
	if errors.Is(err, content.ErrUnknownPage) || errors.Is(err, content.ErrUnknownSection) {
		WriteNotFound(w, "Bölüm bulunamadı: "+req.PageSlug+"/"+req.SectionKey)
		return
	}
	if err != nil {
		slog.Error("page content save failed",
			"category", model.EventCategoryContent,
			"slug", req.PageSlug, "section", req.SectionKey, "error", err,
		)
		WriteInternalError(w, "İçerik kaydedilemedi")
		return
	}

	slog.Info("page content saved",
		"category", model.EventCategoryContent,
		"user_id", middleware.GetUserID(r),
		"slug", req.PageSlug, "section", req.SectionKey, "language", language,
	)
	WriteSuccess(w, section, nil)
}

// DeletePageContent reverts one section to its defaults. Deleting a
// section that has no override is a no-op.
// DELETE /api/dashboard/page-content?slug=&section=&language=
func (h *Handler) DeletePageContent(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	sectionKey := r.URL.Query().Get("section")
	if slug == "" || sectionKey == "" {
		WriteBadRequest(w, "slug ve section parametreleri gerekli")
		return
	}
	language := model.NormalizeLanguage(r.URL.Query().Get("language"))

	err := h.resolver.RevertSection(r.Context(), slug, sectionKey, language)
	if errors.Is(err, content.ErrUnknownPage) || errors.Is(err, content.ErrUnknownSection) {
		WriteNotFound(w, "Bölüm bulunamadı: "+slug+"/"+sectionKey)
		return
	}
	if err != nil {
		slog.Error("page content revert failed",
			"category", model.EventCategoryContent,
			"slug", slug, "section", sectionKey, "error", err,
		)
		WriteInternalError(w, "İçerik sıfırlanamadı")
		return
	}

	slog.Info("page content reverted",
		"category", model.EventCategoryContent,
		"user_id", middleware.GetUserID(r),
		"slug", slug, "section", sectionKey, "language", language,
	)
	WriteSuccess(w, map[string]any{"reverted": true}, nil)
}
