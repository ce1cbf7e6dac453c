package store

import (
	"context"
	"time"

	"github.com/ferrogaz/website/internal/model"
)

const overrideColumns = `id, page_slug, section_key, language, content, updated_at`

func scanOverride(row interface{ Scan(...any) error }) (model.PageOverride, error) {
	var o model.PageOverride
	err := row.Scan(&o.ID, &o.PageSlug, &o.SectionKey, &o.Language, &o.Content, &o.UpdatedAt)
	return o, err
}

// GetOverrideParams identifies a single override row.
type GetOverrideParams struct {
	PageSlug   string
	SectionKey string
	Language   string
}

// GetOverride fetches the override for one (slug, section, language) triple.
func (q *Queries) GetOverride(ctx context.Context, arg GetOverrideParams) (model.PageOverride, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+overrideColumns+` FROM page_overrides WHERE page_slug = ? AND section_key = ? AND language = ?`,
		arg.PageSlug, arg.SectionKey, arg.Language)
	return scanOverride(row)
}

// ListOverridesForPageParams selects all override rows for one page and language.
type ListOverridesForPageParams struct {
	PageSlug string
	Language string
}

// ListOverridesForPage returns all override rows for a page/language pair.
func (q *Queries) ListOverridesForPage(ctx context.Context, arg ListOverridesForPageParams) ([]model.PageOverride, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+overrideColumns+` FROM page_overrides WHERE page_slug = ? AND language = ? ORDER BY section_key`,
		arg.PageSlug, arg.Language)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var overrides []model.PageOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

// UpsertOverrideParams holds the full replacement content for a section override.
type UpsertOverrideParams struct {
	PageSlug   string
	SectionKey string
	Language   string
	Content    string
	UpdatedAt  time.Time
}

// UpsertOverride creates or wholesale-replaces a section override.
// Last write wins; there is no version check.
func (q *Queries) UpsertOverride(ctx context.Context, arg UpsertOverrideParams) (model.PageOverride, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO page_overrides (page_slug, section_key, language, content, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (page_slug, section_key, language)
		 DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at
		 RETURNING `+overrideColumns,
		arg.PageSlug, arg.SectionKey, arg.Language, arg.Content, arg.UpdatedAt)
	return scanOverride(row)
}

// DeleteOverrideParams identifies the override row to remove.
type DeleteOverrideParams struct {
	PageSlug   string
	SectionKey string
	Language   string
}

// DeleteOverride removes a section override, reverting reads to defaults.
// Deleting a non-existent row is a no-op.
func (q *Queries) DeleteOverride(ctx context.Context, arg DeleteOverrideParams) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM page_overrides WHERE page_slug = ? AND section_key = ? AND language = ?`,
		arg.PageSlug, arg.SectionKey, arg.Language)
	return err
}

// CountOverrides returns the total number of override rows.
func (q *Queries) CountOverrides(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_overrides`).Scan(&count)
	return count, err
}
