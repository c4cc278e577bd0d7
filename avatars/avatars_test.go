// SPDX-License-Identifier: GPL-3.0-only

package avatars

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func encodeJPEG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return &buf
}

func TestSaveResizesWideImage(t *testing.T) {
	dir := t.TempDir()

	filename, err := Save(encodeJPEG(t, 1000, 500), "portrait.jpg", dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if len(filename) != 16+len(".jpg") {
		t.Errorf("Expected 16 hex chars plus extension, got %q", filename)
	}
	if filepath.Ext(filename) != ".jpg" {
		t.Errorf("Expected original extension preserved, got %q", filename)
	}

	stored, err := imaging.Open(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("failed to reopen stored avatar: %v", err)
	}
	bounds := stored.Bounds()
	if bounds.Dx() > 125 || bounds.Dy() > 125 {
		t.Errorf("Thumbnail exceeds bounding box: %dx%d", bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() != 125 {
		t.Errorf("Longer side should hit the box edge, got %d", bounds.Dx())
	}
	// 2:1 input stays 2:1 within rounding.
	if bounds.Dy() < 62 || bounds.Dy() > 63 {
		t.Errorf("Aspect ratio not preserved, height %d", bounds.Dy())
	}
}

func TestSaveKeepsSmallImage(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 50, 40))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	filename, err := Save(&buf, "small.png", dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, err := imaging.Open(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("failed to reopen stored avatar: %v", err)
	}
	if stored.Bounds().Dx() != 50 || stored.Bounds().Dy() != 40 {
		t.Errorf("Small image should not be upscaled, got %dx%d", stored.Bounds().Dx(), stored.Bounds().Dy())
	}
}

func TestSaveRejectsGIF(t *testing.T) {
	_, err := Save(bytes.NewReader([]byte("GIF89a")), "animated.gif", t.TempDir())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for .gif, got %v", err)
	}
}

func TestSaveRejectsCorruptData(t *testing.T) {
	_, err := Save(bytes.NewReader([]byte("not an image")), "broken.jpg", t.TempDir())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat for corrupt data, got %v", err)
	}
}

func TestSaveGeneratesFreshNames(t *testing.T) {
	dir := t.TempDir()

	first, err := Save(encodeJPEG(t, 10, 10), "a.jpg", dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := Save(encodeJPEG(t, 10, 10), "a.jpg", dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first == second {
		t.Error("Two saves should not collide on the same filename")
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()

	filename, err := Save(encodeJPEG(t, 10, 10), "a.jpg", dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	Remove(filename, dir)
	if _, err := os.Stat(filepath.Join(dir, filename)); !os.IsNotExist(err) {
		t.Error("Remove should delete the stored file")
	}

	// Idempotent, and never touches the placeholder.
	Remove(filename, dir)
	Remove("default.jpg", dir)
}
