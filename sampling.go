package stipple

// Rand is the source of randomness used for sampling.
// *rand.Rand from math/rand/v2 satisfies it.
//
// A Rand is used by one goroutine at a time; the canvas gives every
// parallel task its own.
type Rand interface {
	// Float32 returns a uniform value in the half-open interval [0.0,1.0).
	Float32() float32
}

// uniform returns a value drawn uniformly from [lo, hi).
func uniform(rng Rand, lo, hi float32) float32 {
	return lo + (hi-lo)*rng.Float32()
}

// jitteredParams returns n stratified parameters in [0, 1].
// Parameter i starts at i/n and is moved by at most half a stratum in
// either direction, then clamped to the unit interval.
func jitteredParams(rng Rand, n int) []float32 {
	if n <= 0 {
		return nil
	}
	dt := 1 / float32(n)
	ts := make([]float32, n)
	for i := range ts {
		t := dt*float32(i) + uniform(rng, -dt/2, dt/2)
		ts[i] = clampUnit(t)
	}
	return ts
}

// JitteredSteps returns n values covering [a, b] with one randomly
// perturbed sample per equal-width stratum. Unlike uniform random
// sampling the values cannot cluster, and unlike a regular grid they do
// not produce banding on curved shapes.
func JitteredSteps(rng Rand, a, b float32, n int) []float32 {
	ts := jitteredParams(rng, n)
	for i, t := range ts {
		ts[i] = (1-t)*a + t*b
	}
	return ts
}

// JitteredPoints returns n points on the segment from p to q, sampled
// like JitteredSteps.
func JitteredPoints(rng Rand, p, q Point, n int) []Point {
	ts := jitteredParams(rng, n)
	pts := make([]Point, len(ts))
	for i, t := range ts {
		pts[i] = p.Lerp(q, t)
	}
	return pts
}
