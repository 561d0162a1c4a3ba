package scene

import (
	"fmt"

	"github.com/gogpu/stipple"
)

// Shape types understood by ShapeSpec.
const (
	TypeCircle   = "circle"
	TypeLine     = "line"
	TypeCardioid = "cardioid"
	TypePolyline = "polyline"
)

// ShapeSpec is the serialized form of one shape. Which fields are read
// depends on Type:
//
//	circle:   Center, Radius
//	line:     From, To
//	cardioid: Center, Radius, Order, Chords
//	polyline: Vertices, Closed
//
// Points are written as two-element [x, y] lists.
type ShapeSpec struct {
	Type     string      `toml:"type" yaml:"type"`
	Center   []float32   `toml:"center,omitempty" yaml:"center,omitempty"`
	Radius   float32     `toml:"radius,omitempty" yaml:"radius,omitempty"`
	From     []float32   `toml:"from,omitempty" yaml:"from,omitempty"`
	To       []float32   `toml:"to,omitempty" yaml:"to,omitempty"`
	Order    int         `toml:"order,omitempty" yaml:"order,omitempty"`
	Chords   int         `toml:"chords,omitempty" yaml:"chords,omitempty"`
	Vertices [][]float32 `toml:"vertices,omitempty" yaml:"vertices,omitempty"`
	Closed   bool        `toml:"closed,omitempty" yaml:"closed,omitempty"`
}

// Shape converts s into a stipple shape.
func (s ShapeSpec) Shape() (stipple.Shape, error) {
	switch s.Type {
	case TypeCircle:
		center, err := point("center", s.Center)
		if err != nil {
			return nil, err
		}
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: circle radius %v", ErrInvalidScene, s.Radius)
		}
		return stipple.Circle{Center: center, Radius: s.Radius}, nil

	case TypeLine:
		from, err := point("from", s.From)
		if err != nil {
			return nil, err
		}
		to, err := point("to", s.To)
		if err != nil {
			return nil, err
		}
		return stipple.NewLine(from, to), nil

	case TypeCardioid:
		center, err := point("center", s.Center)
		if err != nil {
			return nil, err
		}
		if s.Radius <= 0 {
			return nil, fmt.Errorf("%w: cardioid radius %v", ErrInvalidScene, s.Radius)
		}
		if s.Order < 0 || s.Chords < 0 {
			return nil, fmt.Errorf("%w: cardioid order %d, chords %d", ErrInvalidScene, s.Order, s.Chords)
		}
		c := stipple.NewCardioid(center, s.Radius, s.Order)
		if s.Chords > 0 {
			c.Chords = s.Chords
		}
		return c, nil

	case TypePolyline:
		if len(s.Vertices) < 2 {
			return nil, fmt.Errorf("%w: polyline needs at least 2 vertices, got %d", ErrInvalidScene, len(s.Vertices))
		}
		pts := make([]stipple.Point, len(s.Vertices))
		for i, v := range s.Vertices {
			p, err := point(fmt.Sprintf("vertex %d", i), v)
			if err != nil {
				return nil, err
			}
			pts[i] = p
		}
		return stipple.Polyline{Vertices: pts, Closed: s.Closed}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
}

// Grid lays out N×N cardioids on a square grid. The cardioid in column
// i, row j is centered at (i·Spacing, j·Spacing) and has order
// OrderStart + j·N + i.
type Grid struct {
	N          int     `toml:"n" yaml:"n"`
	Spacing    float32 `toml:"spacing" yaml:"spacing"`
	Radius     float32 `toml:"radius" yaml:"radius"`
	OrderStart int     `toml:"order_start" yaml:"order_start"`

	// Chords defaults to stipple.DefaultChords.
	Chords int `toml:"chords,omitempty" yaml:"chords,omitempty"`
}

// Shapes returns the cardioids of the grid, row by row.
func (g *Grid) Shapes() ([]stipple.Shape, error) {
	if g.N <= 0 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidScene, g.N)
	}
	if g.Radius <= 0 || g.Spacing < 0 {
		return nil, fmt.Errorf("%w: grid radius %v, spacing %v", ErrInvalidScene, g.Radius, g.Spacing)
	}
	if g.OrderStart < 0 || g.Chords < 0 {
		return nil, fmt.Errorf("%w: grid order start %d, chords %d", ErrInvalidScene, g.OrderStart, g.Chords)
	}

	shapes := make([]stipple.Shape, 0, g.N*g.N)
	for i := range g.N * g.N {
		col, row := i%g.N, i/g.N
		center := stipple.Pt(float32(col)*g.Spacing, float32(row)*g.Spacing)
		c := stipple.NewCardioid(center, g.Radius, g.OrderStart+i)
		if g.Chords > 0 {
			c.Chords = g.Chords
		}
		shapes = append(shapes, c)
	}
	return shapes, nil
}

func point(name string, v []float32) (stipple.Point, error) {
	if len(v) != 2 {
		return stipple.Point{}, fmt.Errorf("%w: %s must be [x, y], got %d values", ErrInvalidScene, name, len(v))
	}
	return stipple.Pt(v[0], v[1]), nil
}
