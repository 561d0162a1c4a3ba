package stipple

import "github.com/chewxy/math32"

// DefaultChords is the number of chords a Cardioid is built from when
// Chords is zero.
const DefaultChords = 10_000

// Circle is the boundary of a circle.
type Circle struct {
	Center Point
	Radius float32
}

// NewCircle creates a circle centered at (x, y).
func NewCircle(x, y, r float32) Circle {
	return Circle{Center: Pt(x, y), Radius: r}
}

// Points returns n points at jittered angles over [0, 2π).
func (c Circle) Points(n int, rng Rand) []Point {
	angles := JitteredSteps(rng, 0, 2*math32.Pi, n)
	pts := make([]Point, len(angles))
	for i, a := range angles {
		pts[i] = c.at(a)
	}
	return pts
}

// at returns the boundary point at the given angle.
func (c Circle) at(angle float32) Point {
	return Point{
		X: c.Center.X + c.Radius*math32.Cos(angle),
		Y: c.Center.Y + c.Radius*math32.Sin(angle),
	}
}

// Bounds returns the square around the circle.
func (c Circle) Bounds() Bounds {
	return Bounds{
		UpLeft:    Point{X: c.Center.X - c.Radius, Y: c.Center.Y + c.Radius},
		DownRight: Point{X: c.Center.X + c.Radius, Y: c.Center.Y - c.Radius},
	}
}

// Line is a straight segment between two points.
type Line struct {
	P1, P2 Point
}

// NewLine creates a segment from p1 to p2.
func NewLine(p1, p2 Point) Line {
	return Line{P1: p1, P2: p2}
}

// Points returns n jittered points on the segment.
func (l Line) Points(n int, rng Rand) []Point {
	return JitteredPoints(rng, l.P1, l.P2, n)
}

// Bounds returns the box spanned by the endpoints.
func (l Line) Bounds() Bounds {
	return BoundsOf(l.P1, l.P2)
}

// Cardioid is the envelope of chords of a base circle: the point at
// angle θ is joined to the point at angle Order·θ. Order 2 draws a
// cardioid, order 3 a nephroid, and so on.
type Cardioid struct {
	Circle Circle
	Order  int

	// Chords is the number of chords; zero means DefaultChords.
	Chords int
}

// NewCardioid creates a cardioid with DefaultChords chords.
func NewCardioid(center Point, radius float32, order int) Cardioid {
	return Cardioid{
		Circle: Circle{Center: center, Radius: radius},
		Order:  order,
	}
}

func (c Cardioid) chords() int {
	if c.Chords <= 0 {
		return DefaultChords
	}
	return c.Chords
}

// Subdivide picks the chords and gives each n/Chords points.
// The remainder of the division is dropped, so fewer than Chords points
// yield no chords at all.
func (c Cardioid) Subdivide(n int, rng Rand) []Part {
	chords := c.chords()
	per := n / chords
	if per <= 0 {
		return nil
	}

	base := c.Circle
	order := float32(c.Order)
	parts := make([]Part, 0, chords)
	for _, p1 := range base.Points(chords, rng) {
		theta := math32.Atan2(p1.Y-base.Center.Y, p1.X-base.Center.X)
		p2 := base.at(theta * order)
		parts = append(parts, Part{Shape: Line{P1: p1, P2: p2}, N: per})
	}
	return parts
}

// Points returns (n/Chords)·Chords points along the chords.
func (c Cardioid) Points(n int, rng Rand) []Point {
	return sampleParts(c.Subdivide(n, rng), rng)
}

// Bounds returns the bounds of the base circle. Every chord lies inside
// it.
func (c Cardioid) Bounds() Bounds {
	return c.Circle.Bounds()
}

// Polyline is a chain of line segments through Vertices. When Closed is
// set the last vertex is joined back to the first.
type Polyline struct {
	Vertices []Point
	Closed   bool
}

// segments returns the segments of the chain.
func (p Polyline) segments() []Line {
	if len(p.Vertices) < 2 {
		return nil
	}
	segs := make([]Line, 0, len(p.Vertices))
	for i := 1; i < len(p.Vertices); i++ {
		segs = append(segs, Line{P1: p.Vertices[i-1], P2: p.Vertices[i]})
	}
	if p.Closed && len(p.Vertices) > 2 {
		segs = append(segs, Line{P1: p.Vertices[len(p.Vertices)-1], P2: p.Vertices[0]})
	}
	return segs
}

// Subdivide gives every segment n/segments points; the remainder is
// dropped.
func (p Polyline) Subdivide(n int, _ Rand) []Part {
	segs := p.segments()
	if len(segs) == 0 {
		return nil
	}
	per := n / len(segs)
	if per <= 0 {
		return nil
	}
	parts := make([]Part, len(segs))
	for i, s := range segs {
		parts[i] = Part{Shape: s, N: per}
	}
	return parts
}

// Points returns (n/segments)·segments points along the chain.
func (p Polyline) Points(n int, rng Rand) []Point {
	return sampleParts(p.Subdivide(n, rng), rng)
}

// Bounds returns the union of the segment bounds. A single vertex gives
// a degenerate box at that vertex; no vertices give the empty box at the
// origin.
func (p Polyline) Bounds() Bounds {
	if len(p.Vertices) == 0 {
		return Bounds{}
	}
	b := BoundsOf(p.Vertices[0], p.Vertices[0])
	for _, v := range p.Vertices[1:] {
		b = b.Merge(BoundsOf(v, v))
	}
	return b
}
