package model

import (
	"database/sql"
	"time"
)

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
)

// MaxUploadSize is the maximum accepted upload size (10MB).
const MaxUploadSize = 10 * 1024 * 1024

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 150, Height: 150, Quality: 80, Crop: true},
	VariantMedium:    {Width: 800, Height: 600, Quality: 85, Crop: false},
	VariantLarge:     {Width: 1920, Height: 1080, Quality: 90, Crop: false},
}

// SectionFolders maps page-content image section keys to upload subfolders.
// Unmapped sections fall back to DefaultUploadFolder.
var SectionFolders = map[string]string{
	"images":   "galeri",
	"gallery":  "galeri",
	"products": "urunler",
	"hero":     "anasayfa",
	"header":   "anasayfa",
	"about":    "hakkimizda",
}

// DefaultUploadFolder is used when a section has no folder mapping.
const DefaultUploadFolder = "uploads"

// FolderForSection returns the storage folder for a content section key.
func FolderForSection(sectionKey string) string {
	if folder, ok := SectionFolders[sectionKey]; ok {
		return folder
	}
	return DefaultUploadFolder
}

// Media represents an uploaded file in the media library.
type Media struct {
	ID           int64         `json:"id"`
	UUID         string        `json:"uuid"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"original_name"`
	MimeType     string        `json:"mime_type"`
	Size         int64         `json:"size"`
	Folder       string        `json:"folder"`
	URL          string        `json:"url"`
	Width        sql.NullInt64 `json:"width,omitempty"`
	Height       sql.NullInt64 `json:"height,omitempty"`
	UploadedBy   int64         `json:"uploaded_by"`
	CreatedAt    time.Time     `json:"created_at"`
}

// IsImage returns true if the media type is an image.
func (m *Media) IsImage() bool {
	switch m.MimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}

// IsPDF returns true if the media type is a PDF document.
func (m *Media) IsPDF() bool {
	return m.MimeType == MimeTypePDF
}

// SupportedImageTypes returns a list of supported image MIME types.
func SupportedImageTypes() []string {
	return []string{MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP}
}

// AllSupportedTypes returns all MIME types accepted by the media library
// (images plus PDF).
func AllSupportedTypes() []string {
	return append(SupportedImageTypes(), MimeTypePDF)
}

// IsSupportedMimeType checks if a MIME type is supported.
func IsSupportedMimeType(mimeType string) bool {
	for _, t := range AllSupportedTypes() {
		if t == mimeType {
			return true
		}
	}
	return false
}
