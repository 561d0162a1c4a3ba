// Package ppm implements the plain-text (P3) variant of the portable
// pixmap format.
//
// A P3 file is a header line "P3", a line with the width and height, a
// line with the maximum channel value, and then one line per image row
// holding space-separated "r g b" triples.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
)

// MaxValue is the channel maximum written by Encode.
const MaxValue = 255

// MaxPixels is the largest image, in pixels, that Decode accepts.
const MaxPixels = 1 << 28

// ErrFormat is returned for input that is not a valid P3 file.
var ErrFormat = errors.New("ppm: invalid format")

const magic = "P3"

func init() {
	image.RegisterFormat("ppm", magic, Decode, DecodeConfig)
}

// Encode writes img to w as a P3 file. Alpha is ignored: the caller is
// expected to pass an opaque image.
func Encode(w io.Writer, img image.Image) error {
	b := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, b.Dx(), b.Dy(), MaxValue); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}

	line := make([]byte, 0, b.Dx()*12)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line = line[:0]
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if x > b.Min.X {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(c.R), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.G), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(c.B), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("ppm: write row %d: %w", y-b.Min.Y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ppm: flush: %w", err)
	}
	return nil
}

// DecodeConfig returns the dimensions of a P3 image without reading the
// pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	s := newScanner(r)
	w, h, _, err := s.header()
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: w, Height: h}, nil
}

// Decode reads a P3 image. Channels are rescaled to 8 bits when the
// file's maximum value is not 255.
func Decode(r io.Reader) (image.Image, error) {
	s := newScanner(r)
	w, h, maxVal, err := s.header()
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		var rgb [3]int
		for ch := range rgb {
			v, err := s.int()
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %v", ErrFormat, i, err)
			}
			if v > maxVal {
				return nil, fmt.Errorf("%w: pixel %d: value %d exceeds %d", ErrFormat, i, v, maxVal)
			}
			rgb[ch] = v * MaxValue / maxVal
		}
		j := i * 4
		img.Pix[j+0] = uint8(rgb[0])
		img.Pix[j+1] = uint8(rgb[1])
		img.Pix[j+2] = uint8(rgb[2])
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// scanner splits P3 input into whitespace-separated tokens, skipping
// '#' comments.
type scanner struct {
	s *bufio.Scanner
}

func newScanner(r io.Reader) *scanner {
	s := bufio.NewScanner(r)
	s.Split(splitTokens)
	return &scanner{s: s}
}

func (s *scanner) token() (string, error) {
	if !s.s.Scan() {
		if err := s.s.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return s.s.Text(), nil
}

func (s *scanner) int() (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("bad number %q", tok)
	}
	return v, nil
}

func (s *scanner) header() (w, h, maxVal int, err error) {
	tok, err := s.token()
	if err != nil || tok != magic {
		return 0, 0, 0, fmt.Errorf("%w: missing %s magic", ErrFormat, magic)
	}
	if w, err = s.int(); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: width: %v", ErrFormat, err)
	}
	if h, err = s.int(); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: height: %v", ErrFormat, err)
	}
	if w > 0 && h > MaxPixels/w {
		return 0, 0, 0, fmt.Errorf("%w: image %dx%d exceeds %d pixels", ErrFormat, w, h, MaxPixels)
	}
	if maxVal, err = s.int(); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: max value: %v", ErrFormat, err)
	}
	if maxVal == 0 || maxVal > 65535 {
		return 0, 0, 0, fmt.Errorf("%w: max value %d out of range", ErrFormat, maxVal)
	}
	return w, h, maxVal, nil
}

// splitTokens is a bufio.SplitFunc like bufio.ScanWords that also drops
// comments running from '#' to the end of the line.
func splitTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	i := 0
	for i < len(data) {
		switch c := data[i]; {
		case c == '#':
			end := i
			for end < len(data) && data[end] != '\n' {
				end++
			}
			if end == len(data) && !atEOF {
				return i, nil, nil
			}
			i = end
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			i++
		default:
			for j := i; j < len(data); j++ {
				if isSpace(data[j]) {
					return j, data[i:j], nil
				}
			}
			if atEOF {
				return len(data), data[i:], nil
			}
			return i, nil, nil
		}
	}
	return i, nil, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' || c == '#'
}
