package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/ferrogaz/website/internal/model"
)

const mediaColumns = `id, uuid, filename, original_name, mime_type, size, folder, url, width, height, uploaded_by, created_at`

func scanMedia(row interface{ Scan(...any) error }) (model.Media, error) {
	var m model.Media
	err := row.Scan(&m.ID, &m.UUID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
		&m.Folder, &m.URL, &m.Width, &m.Height, &m.UploadedBy, &m.CreatedAt)
	return m, err
}

// GetMediaByID fetches one media record.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (model.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_files WHERE id = ?`, id)
	return scanMedia(row)
}

// ListMedia returns all media records, newest first (the library is a flat list).
func (q *Queries) ListMedia(ctx context.Context) ([]model.Media, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+mediaColumns+` FROM media_files ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var media []model.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// CreateMediaParams holds the fields for a new media record.
type CreateMediaParams struct {
	UUID         string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Folder       string
	URL          string
	Width        sql.NullInt64
	Height       sql.NullInt64
	UploadedBy   int64
	CreatedAt    time.Time
}

// CreateMedia inserts a media record.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (model.Media, error) {
	row := q.db.QueryRowContext(ctx,
		`INSERT INTO media_files (uuid, filename, original_name, mime_type, size, folder, url, width, height, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING `+mediaColumns,
		arg.UUID, arg.Filename, arg.OriginalName, arg.MimeType, arg.Size,
		arg.Folder, arg.URL, arg.Width, arg.Height, arg.UploadedBy, arg.CreatedAt)
	return scanMedia(row)
}

// DeleteMedia removes a media record.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media_files WHERE id = ?`, id)
	return err
}
