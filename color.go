package stipple

import (
	"errors"
	"fmt"
	"image/color"
)

// MaxChannel is the largest value of a color channel.
const MaxChannel = 255

// ErrInvalidColor is returned by ParseHex for malformed input.
var ErrInvalidColor = errors.New("stipple: invalid color")

// Color is an 8-bit RGB color with a float alpha in [0, 1].
//
// When a low-alpha color is composited onto the same pixel many times,
// the channels act as the intensity each draw contributes, so dense
// regions converge towards the color itself.
type Color struct {
	R, G, B uint8
	A       float32
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color with the given alpha.
func RGBA(r, g, b uint8, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Mix composites c over bg and returns the resulting opaque color.
// Channels are truncated, not rounded.
func (c Color) Mix(bg Color) Color {
	return Color{
		R: mixChannel(c.R, bg.R, c.A),
		G: mixChannel(c.G, bg.G, c.A),
		B: mixChannel(c.B, bg.B, c.A),
		A: 1,
	}
}

func mixChannel(fg, bg uint8, a float32) uint8 {
	return uint8((1-a)*float32(bg) + a*float32(fg))
}

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clampUnit(c.A) * MaxChannel)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String returns the color in #RRGGBB form, followed by the alpha when
// the color is not opaque.
func (c Color) String() string {
	if c.A == 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x@%g", c.R, c.G, c.B, c.A)
}

// ParseHex parses a color from a hex string.
// Supported formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'. A missing alpha means opaque.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	a := uint32(MaxChannel)
	var ok bool

	switch len(s) {
	case 3:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b) &&
			parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8:
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) &&
			parseHex(s[6:8], &a)
	}
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: float32(a) / MaxChannel}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
// It is meant for package-level color literals.
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Common colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)
