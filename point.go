package stipple

// Point represents a 2D point in world or raster space.
// Which space is meant depends on context.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: (1-t)*p.X + t*q.X,
		Y: (1-t)*p.Y + t*q.Y,
	}
}

// Bounds is an axis-aligned box in world space, where y grows upwards.
//
// A valid box has UpLeft.X <= DownRight.X and UpLeft.Y >= DownRight.Y.
// Zero width or height is allowed.
type Bounds struct {
	UpLeft    Point
	DownRight Point
}

// BoundsOf returns the smallest box containing both points, which may be
// given in any order.
func BoundsOf(p, q Point) Bounds {
	return Bounds{
		UpLeft:    Point{X: min(p.X, q.X), Y: max(p.Y, q.Y)},
		DownRight: Point{X: max(p.X, q.X), Y: min(p.Y, q.Y)},
	}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	return Point{
		X: (b.UpLeft.X + b.DownRight.X) / 2,
		Y: (b.UpLeft.Y + b.DownRight.Y) / 2,
	}
}

// Width returns the horizontal extent of the box.
func (b Bounds) Width() float32 {
	return b.DownRight.X - b.UpLeft.X
}

// Height returns the vertical extent of the box.
func (b Bounds) Height() float32 {
	return b.UpLeft.Y - b.DownRight.Y
}

// Merge returns the union of b and other.
//
// Merge only compares coordinates, so any sequence of merges gives the
// same box regardless of order.
func (b Bounds) Merge(other Bounds) Bounds {
	if other.UpLeft.X < b.UpLeft.X {
		b.UpLeft.X = other.UpLeft.X
	}
	if other.UpLeft.Y > b.UpLeft.Y {
		b.UpLeft.Y = other.UpLeft.Y
	}
	if other.DownRight.X > b.DownRight.X {
		b.DownRight.X = other.DownRight.X
	}
	if other.DownRight.Y < b.DownRight.Y {
		b.DownRight.Y = other.DownRight.Y
	}
	return b
}

// FindMaximalBounds returns the union of the bounds of all shapes.
//
// The fold starts from the empty box at the origin, so the result always
// contains (0, 0) even when every shape lies away from it.
func FindMaximalBounds(shapes []Shape) Bounds {
	var b Bounds
	for _, s := range shapes {
		b = b.Merge(s.Bounds())
	}
	return b
}
