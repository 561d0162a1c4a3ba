package stipple

// Shape is anything that can be sampled along its boundary.
type Shape interface {
	// Points returns about n points spread evenly over the boundary.
	// Circles and lines return exactly n points; compound shapes may
	// return fewer (see Subdivider).
	Points(n int, rng Rand) []Point

	// Bounds returns the exact axis-aligned bounding box.
	Bounds() Bounds
}

// Part is one piece of a compound shape together with the number of
// points it contributes.
type Part struct {
	Shape Shape
	N     int
}

// Subdivider is implemented by compound shapes built from simpler ones.
//
// Subdivide splits a budget of n points over the pieces. Sampling every
// part and concatenating the results is equivalent to Points(n, rng),
// which lets the canvas spread one large shape over several workers.
type Subdivider interface {
	Shape
	Subdivide(n int, rng Rand) []Part
}

// sampleParts samples every part in order.
func sampleParts(parts []Part, rng Rand) []Point {
	total := 0
	for _, p := range parts {
		total += p.N
	}
	pts := make([]Point, 0, total)
	for _, p := range parts {
		pts = append(pts, p.Shape.Points(p.N, rng)...)
	}
	return pts
}
