package content

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

var (
	// ErrUnknownPage is returned for a slug outside the compiled page set.
	ErrUnknownPage = errors.New("unknown page")

	// ErrUnknownSection is returned for a section key the page does not have.
	ErrUnknownSection = errors.New("unknown section")
)

// Cache stores resolved pages keyed by slug and language. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

// ResolvedSection is one section of a page after merging any stored
// override over the compiled defaults.
type ResolvedSection struct {
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Fields      []Field        `json:"fields"`
	Content     map[string]any `json:"content"`
	HasOverride bool           `json:"hasOverride"`
}

// ResolvedPage is a full page ready for rendering or the dashboard editor.
type ResolvedPage struct {
	Slug     string            `json:"slug"`
	Language string            `json:"language"`
	Title    string            `json:"title"`
	Sections []ResolvedSection `json:"sections"`
}

// Section returns one resolved section by key.
func (p ResolvedPage) Section(key string) (ResolvedSection, bool) {
	for _, s := range p.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return ResolvedSection{}, false
}

// Resolver merges page overrides over registry defaults. Safe for
// concurrent use.
type Resolver struct {
	queries   *store.Queries
	registry  *Registry
	cache     Cache
	sanitizer *bluemonday.Policy
}

// NewResolver creates a resolver. cache may be nil to disable caching.
func NewResolver(queries *store.Queries, registry *Registry, cache Cache) *Resolver {
	return &Resolver{
		queries:   queries,
		registry:  registry,
		cache:     cache,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func pageCacheKey(slug, language string) string {
	return fmt.Sprintf("page:%s:%s", slug, language)
}

// ResolvePage resolves every section of a page in the given language.
// An unknown language falls back to Turkish defaults.
func (r *Resolver) ResolvePage(ctx context.Context, slug, language string) (ResolvedPage, error) {
	language = model.NormalizeLanguage(language)

	schema, ok := Schema(slug)
	if !ok {
		return ResolvedPage{}, ErrUnknownPage
	}

	if r.cache != nil {
		if data, ok := r.cache.Get(ctx, pageCacheKey(slug, language)); ok {
			var page ResolvedPage
			if err := json.Unmarshal(data, &page); err == nil {
				return page, nil
			}
			// A cache entry we cannot decode gets dropped and rebuilt.
			r.cache.Delete(ctx, pageCacheKey(slug, language))
		}
	}

	overrides, err := r.queries.ListOverridesForPage(ctx, store.ListOverridesForPageParams{
		PageSlug: slug,
		Language: language,
	})
	if err != nil {
		return ResolvedPage{}, fmt.Errorf("loading overrides for %s: %w", slug, err)
	}
	bySection := make(map[string]model.PageOverride, len(overrides))
	for _, o := range overrides {
		bySection[o.SectionKey] = o
	}

	page := ResolvedPage{
		Slug:     slug,
		Language: language,
		Title:    r.registry.PageTitle(slug, language),
		Sections: make([]ResolvedSection, 0, len(schema.Sections)),
	}
	for _, section := range schema.Sections {
		override, hasOverride := bySection[section.Key]
		resolved := r.mergeSection(slug, section, language, override, hasOverride)
		page.Sections = append(page.Sections, resolved)
	}

	if r.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			r.cache.Set(ctx, pageCacheKey(slug, language), data)
		}
	}
	return page, nil
}

// ResolveSection resolves a single section of a page.
func (r *Resolver) ResolveSection(ctx context.Context, slug, sectionKey, language string) (ResolvedSection, error) {
	language = model.NormalizeLanguage(language)

	schema, ok := Schema(slug)
	if !ok {
		return ResolvedSection{}, ErrUnknownPage
	}
	section, ok := schema.SectionByKey(sectionKey)
	if !ok {
		return ResolvedSection{}, ErrUnknownSection
	}

	override, err := r.queries.GetOverride(ctx, store.GetOverrideParams{
		PageSlug:   slug,
		SectionKey: sectionKey,
		Language:   language,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return r.mergeSection(slug, section, language, model.PageOverride{}, false), nil
	}
	if err != nil {
		return ResolvedSection{}, fmt.Errorf("loading override %s/%s: %w", slug, sectionKey, err)
	}
	return r.mergeSection(slug, section, language, override, true), nil
}

// mergeSection applies an override on top of the section defaults. Merge
// is per top-level field: fields present in the override replace the
// default, fields absent keep the default. Malformed override JSON falls
// back to defaults entirely but still reports hasOverride.
func (r *Resolver) mergeSection(slug string, section Section, language string, override model.PageOverride, hasOverride bool) ResolvedSection {
	content := r.registry.Defaults(slug, section.Key, language)
	if content == nil {
		content = make(map[string]any)
	}

	if hasOverride {
		var overlay map[string]any
		if err := json.Unmarshal([]byte(override.Content), &overlay); err != nil {
			slog.Warn("malformed override content, using defaults",
				"page", slug, "section", section.Key, "language", language, "error", err)
		} else {
			for k, v := range overlay {
				if v == nil {
					continue
				}
				content[k] = v
			}
		}
	}

	return ResolvedSection{
		Key:         section.Key,
		Title:       section.Title,
		Fields:      section.Fields,
		Content:     content,
		HasOverride: hasOverride,
	}
}

// SaveSection replaces the stored override for a section wholesale and
// returns the freshly resolved section. String values are sanitized
// before storage. Concurrent saves are last-write-wins.
func (r *Resolver) SaveSection(ctx context.Context, slug, sectionKey, language string, content map[string]any) (ResolvedSection, error) {
	language = model.NormalizeLanguage(language)

	schema, ok := Schema(slug)
	if !ok {
		return ResolvedSection{}, ErrUnknownPage
	}
	section, ok := schema.SectionByKey(sectionKey)
	if !ok {
		return ResolvedSection{}, ErrUnknownSection
	}

	sanitized := r.sanitizeMap(content)
	data, err := json.Marshal(sanitized)
	if err != nil {
		return ResolvedSection{}, fmt.Errorf("encoding content: %w", err)
	}

	override, err := r.queries.UpsertOverride(ctx, store.UpsertOverrideParams{
		PageSlug:   slug,
		SectionKey: sectionKey,
		Language:   language,
		Content:    string(data),
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		return ResolvedSection{}, fmt.Errorf("saving override %s/%s: %w", slug, sectionKey, err)
	}
	r.invalidate(ctx, slug, language)

	return r.mergeSection(slug, section, language, override, true), nil
}

// RevertSection deletes the stored override so the section falls back to
// defaults. Reverting a section with no override is a no-op.
func (r *Resolver) RevertSection(ctx context.Context, slug, sectionKey, language string) error {
	language = model.NormalizeLanguage(language)

	schema, ok := Schema(slug)
	if !ok {
		return ErrUnknownPage
	}
	if _, ok := schema.SectionByKey(sectionKey); !ok {
		return ErrUnknownSection
	}

	if err := r.queries.DeleteOverride(ctx, store.DeleteOverrideParams{
		PageSlug:   slug,
		SectionKey: sectionKey,
		Language:   language,
	}); err != nil {
		return fmt.Errorf("deleting override %s/%s: %w", slug, sectionKey, err)
	}
	r.invalidate(ctx, slug, language)
	return nil
}

func (r *Resolver) invalidate(ctx context.Context, slug, language string) {
	if r.cache != nil {
		r.cache.Delete(ctx, pageCacheKey(slug, language))
	}
}

func (r *Resolver) sanitizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = r.sanitizeValue(v)
	}
	return out
}

func (r *Resolver) sanitizeValue(v any) any {
	switch val := v.(type) {
	case string:
		return r.sanitizer.Sanitize(val)
	case map[string]any:
		return r.sanitizeMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = r.sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var markdownSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts markdown to sanitized HTML. Used for the legal
// page body fields.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(markdownSanitizer.SanitizeBytes(buf.Bytes()))
}
