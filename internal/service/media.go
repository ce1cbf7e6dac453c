package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/ferrogaz/website/internal/imaging"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
	"github.com/ferrogaz/website/internal/util"
)

var (
	// ErrMediaNotFound is returned when the media ID does not exist.
	ErrMediaNotFound = errors.New("media not found")

	// ErrUploadTooLarge is returned when the upload exceeds the limit.
	ErrUploadTooLarge = errors.New("upload exceeds maximum size")

	// ErrUnsupportedType is returned for MIME types outside images + PDF.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// MediaService handles media library uploads and deletion.
type MediaService struct {
	queries   *store.Queries
	processor *imaging.Processor
}

// NewMediaService creates the media service writing under uploadDir.
func NewMediaService(db *sql.DB, uploadDir string) *MediaService {
	return &MediaService{
		queries:   store.New(db),
		processor: imaging.NewProcessor(uploadDir),
	}
}

// Upload validates, processes, and records one uploaded file. The
// sectionKey picks the storage folder (galeri, urunler, ...); images get
// thumbnail/medium/large variants, PDFs are stored as-is.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, sectionKey string, userID int64) (model.Media, error) {
	if header.Size > model.MaxUploadSize {
		return model.Media{}, ErrUploadTooLarge
	}

	// Sniff the MIME type from content rather than trusting the header.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return model.Media{}, fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]
	mimeType := s.processor.DetectMimeType(head)
	if !model.IsSupportedMimeType(mimeType) {
		return model.Media{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	reader := io.MultiReader(bytes.NewReader(head), file)

	folder := model.FolderForSection(sectionKey)
	fileUUID := uuid.New().String()
	filename := util.SafeFilename(header.Filename)

	params := store.CreateMediaParams{
		UUID:         fileUUID,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Folder:       folder,
		URL:          path.Join("/uploads", folder, "originals", fileUUID, filename),
		UploadedBy:   userID,
		CreatedAt:    time.Now(),
	}

	if mimeType == model.MimeTypePDF {
		_, size, err := s.processor.SaveRaw(reader, folder, fileUUID, filename)
		if err != nil {
			return model.Media{}, fmt.Errorf("saving pdf: %w", err)
		}
		params.Size = size
	} else {
		result, err := s.processor.ProcessImage(reader, folder, fileUUID, filename)
		if err != nil {
			return model.Media{}, fmt.Errorf("processing image: %w", err)
		}
		params.Size = result.Size
		params.Width = util.NullInt64FromValue(int64(result.Width))
		params.Height = util.NullInt64FromValue(int64(result.Height))

		if _, err := s.processor.CreateAllVariants(result.FilePath, folder, fileUUID, filename); err != nil {
			// Variants are a rendering optimisation; the original is safe.
			slog.Warn("variant generation failed",
				"category", model.EventCategoryMedia,
				"uuid", fileUUID, "error", err,
			)
		}
	}

	media, err := s.queries.CreateMedia(ctx, params)
	if err != nil {
		// Roll back the files so the library and disk stay in sync.
		_ = s.processor.DeleteMediaFiles(folder, fileUUID)
		return model.Media{}, fmt.Errorf("recording upload: %w", err)
	}

	slog.Info("media uploaded",
		"category", model.EventCategoryMedia,
		"media_id", media.ID, "folder", folder, "mime", mimeType,
	)
	return media, nil
}

// Get fetches one media record.
func (s *MediaService) Get(ctx context.Context, id int64) (model.Media, error) {
	media, err := s.queries.GetMediaByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Media{}, ErrMediaNotFound
	}
	if err != nil {
		return model.Media{}, fmt.Errorf("loading media %d: %w", id, err)
	}
	return media, nil
}

// List returns the flat media library, newest first.
func (s *MediaService) List(ctx context.Context) ([]model.Media, error) {
	return s.queries.ListMedia(ctx)
}

// Delete removes the record and all files of one upload.
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	media, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.queries.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}
	if err := s.processor.DeleteMediaFiles(media.Folder, media.UUID); err != nil {
		slog.Warn("media files not fully removed",
			"category", model.EventCategoryMedia,
			"media_id", id, "error", err,
		)
	}

	slog.Info("media deleted", "category", model.EventCategoryMedia, "media_id", id)
	return nil
}
