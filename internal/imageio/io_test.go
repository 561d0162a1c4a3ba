package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/stipple/ppm"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"out.ppm":         FormatPPM,
		"out.PNG":         FormatPNG,
		"a/b/out.jpg":     FormatJPEG,
		"out.jpeg":        FormatJPEG,
		"out.bmp":         FormatBMP,
		"out.tif":         FormatTIFF,
		"dir.v2/out.TIFF": FormatTIFF,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"out.gif", "out", "out.webp"} {
		_, err := FormatOf(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, path)
	}
}

func TestEncode_LosslessFormats(t *testing.T) {
	src := testImage()
	decoders := map[string]func(io.Reader) (image.Image, error){
		FormatPPM:  ppm.Decode,
		FormatPNG:  png.Decode,
		FormatBMP:  bmp.Decode,
		FormatTIFF: tiff.Decode,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, src))

			got, err := decode(&buf)
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), got.Bounds())

			for y := 0; y < 4; y++ {
				for x := 0; x < 8; x++ {
					want := src.NRGBAAt(x, y)
					have := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
					assert.Equal(t, want, have, "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestEncode_JPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJPEG, testImage()))

	cfg, format, err := image.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestEncode_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, "gif", testImage())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, buf.Len())
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ppm")

	require.NoError(t, Save(path, testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "ppm", format)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	err := Save(filepath.Join(dir, "out.gif"), testImage())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, filepath.Join(dir, "out.gif"))

	err = Save(filepath.Join(dir, "missing", "out.png"), testImage())
	assert.Error(t, err)
}
