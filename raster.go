package stipple

import (
	"image"
	"image/color"
)

// Raster is a finished image: opaque colors in row-major order.
// It implements image.Image, so it can be handed to any encoder.
type Raster struct {
	Pix        []Color
	Width      int
	Height     int
	MaxChannel uint8
}

// ColorModel implements the image.Image interface.
func (r *Raster) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements the image.Image interface.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// At implements the image.Image interface.
func (r *Raster) At(x, y int) color.Color {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return color.NRGBA{}
	}
	return r.Pix[y*r.Width+x].NRGBA()
}

// ToImage converts the raster to an image.NRGBA.
func (r *Raster) ToImage() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	for i, c := range r.Pix {
		n := c.NRGBA()
		j := i * 4
		img.Pix[j+0] = n.R
		img.Pix[j+1] = n.G
		img.Pix[j+2] = n.B
		img.Pix[j+3] = n.A
	}
	return img
}
