package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func newTestRelay(t *testing.T) *Relay {
	t.Helper()
	rl, err := NewRelay(t.TempDir())
	if err != nil {
		t.Fatalf("NewRelay: %v", err)
	}
	return rl
}

func TestSaveJPEG(t *testing.T) {
	rl := newTestRelay(t)

	path, err := rl.Save(bytes.NewReader(createTestJPEG(100, 100)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") || !strings.HasSuffix(path, ".jpg") {
		t.Errorf("unexpected reference path %q", path)
	}

	// The file exists under the relay directory.
	name := strings.TrimPrefix(path, "/uploads/")
	data, err := os.ReadFile(filepath.Join(rl.Dir, name))
	if err != nil {
		t.Fatalf("reading stored photo: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty stored photo")
	}
}

func TestSavePNGConvertedToJPEG(t *testing.T) {
	rl := newTestRelay(t)

	path, err := rl.Save(bytes.NewReader(createTestPNG(100, 100)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	name := strings.TrimPrefix(path, "/uploads/")
	data, _ := os.ReadFile(filepath.Join(rl.Dir, name))
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored photo: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if img.Bounds().Dx() != 100 {
		t.Errorf("small photo should not be resized, got width %d", img.Bounds().Dx())
	}
}

func TestSaveDownscalesLargePhoto(t *testing.T) {
	rl := newTestRelay(t)

	path, err := rl.Save(bytes.NewReader(createTestJPEG(2048, 1024)))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	name := strings.TrimPrefix(path, "/uploads/")
	data, _ := os.ReadFile(filepath.Join(rl.Dir, name))
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding stored photo: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dpx, got %dx%d", MaxDimension, bounds.Dx(), bounds.Dy())
	}
}

func TestSaveRejectsInvalidFormat(t *testing.T) {
	rl := newTestRelay(t)

	if _, err := rl.Save(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid format")
	}
	if _, err := rl.Save(bytes.NewReader([]byte("GIF89a..."))); err == nil {
		t.Error("expected error for GIF")
	}
}

func TestSaveUniqueNames(t *testing.T) {
	rl := newTestRelay(t)

	data := createTestJPEG(10, 10)
	a, _ := rl.Save(bytes.NewReader(data))
	b, _ := rl.Save(bytes.NewReader(data))
	if a == b {
		t.Errorf("expected unique paths, got %q twice", a)
	}
}
