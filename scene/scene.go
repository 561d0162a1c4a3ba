// Package scene describes what to draw on a stipple canvas: its size,
// background, and a stack of layers, each a set of shapes drawn in one
// color with one point budget.
//
// Scenes are plain structs that can be built in code, decoded from TOML
// or YAML, or taken from Default.
//
// Example:
//
//	s, err := scene.Load("cardioids.toml")
//	if err != nil {
//		return err
//	}
//	canvas, stats, err := s.Render(stipple.WithSeed(1))
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/stipple"
)

// Scene errors.
var (
	// ErrInvalidScene is returned for scenes that cannot be rendered.
	ErrInvalidScene = errors.New("scene: invalid scene")

	// ErrUnknownShape is returned for a shape entry with an unknown type.
	ErrUnknownShape = errors.New("scene: unknown shape type")
)

// Scene is a complete drawing.
type Scene struct {
	Width      int     `toml:"width" yaml:"width"`
	Height     int     `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`
	Layers     []Layer `toml:"layers" yaml:"layers"`
}

// Layer is a group of shapes rasterized together. All shapes of a layer
// share one fitted projection, so their relative placement is kept.
type Layer struct {
	// Color is a hex color, see stipple.ParseHex.
	Color string `toml:"color" yaml:"color"`

	// Alpha overrides the alpha of Color when positive.
	Alpha float32 `toml:"alpha,omitempty" yaml:"alpha,omitempty"`

	// Points is the number of points sampled from each shape.
	Points int `toml:"points" yaml:"points"`

	Shapes []ShapeSpec `toml:"shapes,omitempty" yaml:"shapes,omitempty"`
	Grid   *Grid       `toml:"grid,omitempty" yaml:"grid,omitempty"`
}

// Stats is the outcome of rasterizing one layer.
type Stats struct {
	Layer    int
	Raster   stipple.RasterStats
	Duration time.Duration
}

// Default returns the reference drawing: a 3×3 grid of cardioids of
// orders 2 through 10 on a dark background.
func Default() *Scene {
	return &Scene{
		Width:      2000,
		Height:     2000,
		Background: "#073642",
		Layers: []Layer{{
			Color:  "#93a1a1",
			Alpha:  0.05,
			Points: 10_000_000,
			Grid: &Grid{
				N:          3,
				Spacing:    1,
				Radius:     0.5,
				OrderStart: 2,
				Chords:     stipple.DefaultChords,
			},
		}},
	}
}

// Validate checks that s can be rendered. It reports the first problem
// found, wrapped around ErrInvalidScene or ErrUnknownShape.
func (s *Scene) Validate() error {
	_, _, err := s.build()
	return err
}

// builtLayer is a layer ready to rasterize.
type builtLayer struct {
	shapes []stipple.Shape
	color  stipple.Color
	points int
}

// build parses the background and builds every layer.
func (s *Scene) build() (stipple.Color, []builtLayer, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return stipple.Color{}, nil, fmt.Errorf("%w: size %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	bg, err := stipple.ParseHex(s.Background)
	if err != nil {
		return stipple.Color{}, nil, fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
	}
	layers := make([]builtLayer, len(s.Layers))
	for i := range s.Layers {
		shapes, c, err := s.Layers[i].Build()
		if err != nil {
			return stipple.Color{}, nil, fmt.Errorf("layer %d: %w", i, err)
		}
		layers[i] = builtLayer{shapes: shapes, color: c, points: s.Layers[i].Points}
	}
	return bg, layers, nil
}

// Build returns the shapes of the layer and the color they are drawn in.
func (l *Layer) Build() ([]stipple.Shape, stipple.Color, error) {
	c, err := stipple.ParseHex(l.Color)
	if err != nil {
		return nil, stipple.Color{}, fmt.Errorf("%w: color: %w", ErrInvalidScene, err)
	}
	if l.Alpha < 0 || l.Alpha > 1 {
		return nil, stipple.Color{}, fmt.Errorf("%w: alpha %v outside [0, 1]", ErrInvalidScene, l.Alpha)
	}
	if l.Alpha > 0 {
		c.A = l.Alpha
	}
	if l.Points < 0 {
		return nil, stipple.Color{}, fmt.Errorf("%w: negative point count %d", ErrInvalidScene, l.Points)
	}

	shapes := make([]stipple.Shape, 0, len(l.Shapes))
	for i, spec := range l.Shapes {
		sh, err := spec.Shape()
		if err != nil {
			return nil, stipple.Color{}, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, sh)
	}
	if l.Grid != nil {
		grid, err := l.Grid.Shapes()
		if err != nil {
			return nil, stipple.Color{}, err
		}
		shapes = append(shapes, grid...)
	}
	return shapes, c, nil
}

// Render creates a canvas for s and rasterizes every layer onto it, in
// order. The options are passed to stipple.NewCanvas.
func (s *Scene) Render(opts ...stipple.CanvasOption) (*stipple.Canvas, []Stats, error) {
	bg, layers, err := s.build()
	if err != nil {
		return nil, nil, err
	}
	canvas := stipple.NewCanvas(s.Width, s.Height, bg, opts...)

	stats := make([]Stats, 0, len(layers))
	for i, l := range layers {
		if len(l.shapes) == 0 {
			stipple.Logger().Warn("scene: layer has no shapes", "layer", i)
		}

		start := time.Now()
		rs := canvas.Rasterize(l.shapes, l.color, l.points)
		st := Stats{Layer: i, Raster: rs, Duration: time.Since(start)}
		stats = append(stats, st)

		stipple.Logger().Info("scene: layer rendered",
			"layer", i,
			"shapes", len(l.shapes),
			"color", l.color.String(),
			"plotted", rs.Plotted,
			"duration", st.Duration)
	}
	return canvas, stats, nil
}
