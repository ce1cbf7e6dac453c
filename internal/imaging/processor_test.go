package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ferrogaz/website/internal/model"
)

// createTestImage builds a gradient image with the given dimensions.
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, createTestImage(width, height), nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	data := encodeTestJPEG(t, 200, 100)
	result, err := p.ProcessImage(bytes.NewReader(data), "galeri", "abc-123", "tesis.jpg")
	if err != nil {
		t.Fatalf("ProcessImage() error: %v", err)
	}

	if result.Width != 200 || result.Height != 100 {
		t.Errorf("dimensions = %dx%d, want 200x100", result.Width, result.Height)
	}
	if result.MimeType != model.MimeTypeJPEG {
		t.Errorf("mime type = %q, want image/jpeg", result.MimeType)
	}
	if _, err := os.Stat(result.FilePath); err != nil {
		t.Errorf("original not written: %v", err)
	}
	if want := filepath.Join("galeri", "originals", "abc-123", "tesis.jpg"); !strings.HasSuffix(result.FilePath, want) {
		t.Errorf("file path %q should end with %q", result.FilePath, want)
	}
}

func TestProcessImage_RejectsUnknownFormat(t *testing.T) {
	p := NewProcessor(t.TempDir())
	if _, err := p.ProcessImage(bytes.NewReader([]byte{0x00, 0x01, 0x02}), "galeri", "x", "f.jpg"); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestCreateVariant_SkipsSmallSource(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeTestJPEG(t, 100, 80)
	original, err := p.ProcessImage(bytes.NewReader(data), "galeri", "kucuk", "k.jpg")
	if err != nil {
		t.Fatal(err)
	}

	// 100x80 is smaller than the 800x600 medium target; no variant.
	result, err := p.CreateVariant(original.FilePath, "galeri", "kucuk", "k.jpg", model.ImageVariants[model.VariantMedium], model.VariantMedium)
	if err != nil {
		t.Fatalf("CreateVariant() error: %v", err)
	}
	if result != nil {
		t.Error("variant should be skipped for a smaller source")
	}

	// The thumbnail crops, so it is produced regardless of source size.
	thumb, err := p.CreateVariant(original.FilePath, "galeri", "kucuk", "k.jpg", model.ImageVariants[model.VariantThumbnail], model.VariantThumbnail)
	if err != nil {
		t.Fatal(err)
	}
	if thumb == nil {
		t.Fatal("thumbnail should always be produced")
	}
	if thumb.Width != 150 || thumb.Height != 150 {
		t.Errorf("thumbnail = %dx%d, want 150x150", thumb.Width, thumb.Height)
	}
}

func TestCreateAllVariants(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeTestJPEG(t, 2400, 1600)
	original, err := p.ProcessImage(bytes.NewReader(data), "urunler", "buyuk", "b.jpg")
	if err != nil {
		t.Fatal(err)
	}

	results, err := p.CreateAllVariants(original.FilePath, "urunler", "buyuk", "b.jpg")
	if err != nil {
		t.Fatalf("CreateAllVariants() error: %v", err)
	}
	if len(results) != len(model.ImageVariants) {
		t.Errorf("got %d variants, want %d", len(results), len(model.ImageVariants))
	}
	for _, r := range results {
		if _, err := os.Stat(r.FilePath); err != nil {
			t.Errorf("variant %s not written: %v", r.Type, err)
		}
	}
}

func TestDeleteMediaFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(dir)

	data := encodeTestJPEG(t, 2400, 1600)
	original, err := p.ProcessImage(bytes.NewReader(data), "galeri", "silinecek", "s.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateAllVariants(original.FilePath, "galeri", "silinecek", "s.jpg"); err != nil {
		t.Fatal(err)
	}

	if err := p.DeleteMediaFiles("galeri", "silinecek"); err != nil {
		t.Fatalf("DeleteMediaFiles() error: %v", err)
	}
	if _, err := os.Stat(original.FilePath); !os.IsNotExist(err) {
		t.Error("original should be deleted")
	}

	// Deleting again is a no-op.
	if err := p.DeleteMediaFiles("galeri", "silinecek"); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestSaveRaw(t *testing.T) {
	p := NewProcessor(t.TempDir())

	pdf := []byte("%PDF-1.4 test")
	path, size, err := p.SaveRaw(bytes.NewReader(pdf), "uploads", "belge", "katalog.pdf")
	if err != nil {
		t.Fatalf("SaveRaw() error: %v", err)
	}
	if size != int64(len(pdf)) {
		t.Errorf("size = %d, want %d", size, len(pdf))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pdf) {
		t.Error("saved data differs from input")
	}
}

func TestSaveFile_PathTraversal(t *testing.T) {
	p := NewProcessor(t.TempDir())

	if _, err := p.saveFile("../disari", "f.jpg", []byte("x")); err == nil {
		t.Error("subdirectory traversal should be rejected")
	}
	if _, err := p.saveFile("galeri", "..", []byte("x")); err == nil {
		t.Error("invalid filename should be rejected")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg magic bytes", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"png magic bytes", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "png"},
		{"gif magic bytes", []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, "gif"},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.data); got != tt.want {
				t.Errorf("detectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyOrientation(t *testing.T) {
	// Orientation 6 (90° CW rotation) swaps the dimensions.
	img := createTestImage(20, 10)
	rotated := applyOrientation(img, 6)
	b := rotated.Bounds()
	if b.Dx() != 10 || b.Dy() != 20 {
		t.Errorf("rotated = %dx%d, want 10x20", b.Dx(), b.Dy())
	}

	// Unknown orientations pass through unchanged.
	same := applyOrientation(img, 9)
	if same.Bounds() != img.Bounds() {
		t.Error("unknown orientation should not transform the image")
	}
}
