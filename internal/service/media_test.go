package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ferrogaz/website/internal/model"
)

// multipartUpload builds a multipart request part around raw file data.
func multipartUpload(t *testing.T, filename string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file, header
}

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestMediaService_UploadImage(t *testing.T) {
	dir := t.TempDir()
	s := NewMediaService(newTestDB(t), dir)
	ctx := context.Background()

	file, header := multipartUpload(t, "Tesis Fotoğrafı.jpg", testJPEG(t, 300, 200))
	media, err := s.Upload(ctx, file, header, "images", 1)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if media.Folder != "galeri" {
		t.Errorf("folder = %q, want galeri", media.Folder)
	}
	if media.Filename != "tesis-fotografi.jpg" {
		t.Errorf("filename = %q, want transliterated name", media.Filename)
	}
	if media.OriginalName != "Tesis Fotoğrafı.jpg" {
		t.Errorf("original name = %q", media.OriginalName)
	}
	if media.MimeType != model.MimeTypeJPEG {
		t.Errorf("mime = %q", media.MimeType)
	}
	if !media.Width.Valid || media.Width.Int64 != 300 {
		t.Errorf("width = %+v, want 300", media.Width)
	}
	if !strings.HasPrefix(media.URL, "/uploads/galeri/originals/") {
		t.Errorf("url = %q", media.URL)
	}
}

func TestMediaService_UploadPDF(t *testing.T) {
	s := NewMediaService(newTestDB(t), t.TempDir())
	ctx := context.Background()

	pdf := []byte("%PDF-1.4\n%âãÏÓ\ntest content")
	file, header := multipartUpload(t, "katalog.pdf", pdf)
	media, err := s.Upload(ctx, file, header, "unknown-section", 1)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}

	if media.MimeType != model.MimeTypePDF {
		t.Errorf("mime = %q, want application/pdf", media.MimeType)
	}
	if media.Folder != model.DefaultUploadFolder {
		t.Errorf("folder = %q, want uploads fallback", media.Folder)
	}
	if media.Width.Valid {
		t.Error("PDF should have no dimensions")
	}
}

func TestMediaService_UploadRejectsUnsupported(t *testing.T) {
	s := NewMediaService(newTestDB(t), t.TempDir())
	ctx := context.Background()

	file, header := multipartUpload(t, "script.exe", []byte{0x4D, 0x5A, 0x90, 0x00, 0x03})
	if _, err := s.Upload(ctx, file, header, "images", 1); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestMediaService_Delete(t *testing.T) {
	dir := t.TempDir()
	s := NewMediaService(newTestDB(t), dir)
	ctx := context.Background()

	file, header := multipartUpload(t, "silinecek.jpg", testJPEG(t, 300, 200))
	media, err := s.Upload(ctx, file, header, "images", 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, media.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := s.Get(ctx, media.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrMediaNotFound", err)
	}

	// The files are gone from disk too.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		sub, _ := os.ReadDir(dir + "/" + e.Name() + "/originals")
		if len(sub) != 0 {
			t.Errorf("originals directory not cleaned: %v", sub)
		}
	}

	if err := s.Delete(ctx, media.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("double delete: err = %v, want ErrMediaNotFound", err)
	}
}

func TestMediaService_List(t *testing.T) {
	s := NewMediaService(newTestDB(t), t.TempDir())
	ctx := context.Background()

	file, header := multipartUpload(t, "bir.jpg", testJPEG(t, 300, 200))
	if _, err := s.Upload(ctx, file, header, "images", 1); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("got %d media records, want 1", len(list))
	}
}
