// Package imageio writes rasters to image files, choosing the encoder
// from the file extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/stipple/ppm"
)

// ErrUnsupportedFormat is returned when no encoder matches the format.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// Supported output formats.
const (
	FormatPPM  = "ppm"
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// FormatOf returns the format name for a file path, based on its
// extension.
func FormatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, format string, img image.Image) error {
	var err error
	switch format {
	case FormatPPM:
		err = ppm.Encode(w, img)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}
	return nil
}

// Save writes img to the file at path. The format follows the extension.
func Save(path string, img image.Image) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}

	if err := Encode(f, format, img); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
