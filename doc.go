// Package stipple renders images by scattering colored points along
// parametric shapes.
//
// # Overview
//
// Every shape (Circle, Line, Cardioid, Polyline) can produce any number
// of points spread over its boundary with stratified jitter sampling.
// A Canvas fits the combined bounds of a set of shapes into its pixel
// grid, samples the shapes in parallel, and composites a translucent
// color onto each pixel that a point lands on. Many faint points build
// up dense, smooth strokes.
//
// # Quick Start
//
//	import "github.com/gogpu/stipple"
//
//	bg := stipple.RGB(0x07, 0x36, 0x42)
//	c := stipple.NewCanvas(1000, 1000, bg)
//
//	shapes := []stipple.Shape{
//	    stipple.NewCardioid(stipple.Pt(0, 0), 1, 2),
//	}
//	c.Rasterize(shapes, stipple.RGBA(0x93, 0xa1, 0xa1, 0.05), 5_000_000)
//
//	// Write as plain PPM
//	_ = ppm.Encode(os.Stdout, c.Serialize())
//
// # Coordinate System
//
// Shapes live in world space:
//   - X increases right
//   - Y increases up
//   - Angles in radians, 0 is right, increases counter-clockwise
//
// Raster space has its origin at the top-left pixel and Y increasing
// down. The world-to-raster fit keeps the aspect ratio of the shapes and
// centers them on the axis with spare room.
//
// # Concurrency
//
// Rasterize runs the sampling stage on a worker pool. Each task gets its
// own random source (see WithSeed and WithRandSource) and the pixel
// buffer is only written after all tasks have finished.
package stipple
