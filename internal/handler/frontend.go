package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ferrogaz/website/internal/content"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/web"
)

var pageTemplates = template.Must(
	template.New("site").Funcs(template.FuncMap{
		"markdown": func(v any) template.HTML {
			s, _ := v.(string)
			return content.RenderMarkdown(s)
		},
	}).ParseFS(web.Templates, "templates/*.html"),
)

// pageData is what the site templates render.
type pageData struct {
	Title    string
	Language string
	Site     content.SiteInfo
	Page     content.ResolvedPage
}

// Page renders a public page from its resolved content.
// GET / and GET /{slug}
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Path
	language := middleware.GetLanguage(r)

	page, err := h.resolver.ResolvePage(r.Context(), slug, language)
	if errors.Is(err, content.ErrUnknownPage) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("page render failed", "slug", slug, "error", err)
		http.Error(w, "Sayfa yüklenemedi", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Title:    page.Title,
		Language: language,
		Site:     h.site,
		Page:     page,
	}
	if err := pageTemplates.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("template execution failed", "slug", slug, "error", err)
	}
}
