// SPDX-License-Identifier: GPL-3.0-only

// Package avatars stores profile images as bounded thumbnails under
// randomly generated filenames.
package avatars

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"quillbox-server/commons"
	"quillbox-server/crypto"
	"quillbox-server/models"
	"strings"

	"github.com/disintegration/imaging"
)

// Dir is where stored avatars live, served by the static handler.
const Dir = "public/profile_pics"

// Thumbnails fit inside this bounding box, aspect ratio preserved.
const boundingBox = 125

var ErrUnsupportedFormat = errors.New("unsupported image format")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Save decodes the upload, downsamples it to fit the bounding box and
// writes it under a fresh 16-hex-character filename with the original
// extension. Returns the stored filename.
func Save(src io.Reader, originalName, dir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}

	img, err := imaging.Decode(src)
	if err != nil {
		return "", ErrUnsupportedFormat
	}

	bounds := img.Bounds()
	if bounds.Dx() > boundingBox || bounds.Dy() > boundingBox {
		img = imaging.Fit(img, boundingBox, boundingBox, imaging.Lanczos)
	}

	name, err := crypto.GenerateRandomString("", 8, "hex")
	if err != nil {
		return "", err
	}
	filename := name + ext

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	commons.Logger.Debugf("Stored avatar %s", filename)
	return filename, nil
}

// Remove discards a previously stored avatar. The placeholder image is
// never removed, and a missing file is not an error.
func Remove(filename, dir string) {
	if filename == "" || filename == models.DefaultImageFile {
		return
	}
	if err := os.Remove(filepath.Join(dir, filename)); err != nil && !os.IsNotExist(err) {
		commons.Logger.Warnf("Failed to remove old avatar %s: %v", filename, err)
	}
}
