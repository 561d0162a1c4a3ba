package stipple

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/stipple/internal/parallel"
)

// Canvas is a fixed-size pixel grid that shapes are rasterized onto.
//
// Each cell holds the opaque color composited so far. Shapes are fitted
// into the grid preserving their aspect ratio: the world y axis points
// up, raster row 0 is the top row.
//
// A Canvas is not safe for concurrent use. Rasterize parallelizes
// internally.
type Canvas struct {
	buf    []Color
	width  int
	height int
	bg     Color
	opts   canvasOptions

	// indices recycles the per-task pixel buffers between calls.
	indices *parallel.IndexPool
}

// NewCanvas creates a canvas filled with the background color.
// It panics if width or height is not positive.
func NewCanvas(width, height int, bg Color, opts ...CanvasOption) *Canvas {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("stipple: invalid canvas size %dx%d", width, height))
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		buf:     make([]Color, width*height),
		width:   width,
		height:  height,
		bg:      bg,
		opts:    o,
		indices: parallel.NewIndexPool(),
	}
	c.Clear()
	return c
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Background returns the background color.
func (c *Canvas) Background() Color {
	return c.bg
}

// At returns the composited color of a pixel, or the background for
// coordinates outside the canvas.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return c.bg
	}
	return c.buf[y*c.width+x]
}

// Clear fills every pixel with the background color.
func (c *Canvas) Clear() {
	for i := range c.buf {
		c.buf[i] = c.bg
	}
}

// projection is the fitted world-to-raster transform for one box.
type projection struct {
	center        Point
	w, h          float32
	sx, sy        float32
	width, height int
}

func (c *Canvas) fit(b Bounds) projection {
	boundsAspect := b.Width() / b.Height()
	canvasAspect := float32(c.width) / float32(c.height)

	pr := projection{
		center: b.Center(),
		w:      b.Width(),
		h:      b.Height(),
		sx:     1,
		sy:     1,
		width:  c.width,
		height: c.height,
	}
	if canvasAspect > boundsAspect {
		// Canvas is relatively wider: shrink x, use the full height.
		pr.sx = boundsAspect / canvasAspect
	} else {
		pr.sy = canvasAspect / boundsAspect
	}
	return pr
}

// index maps p to a pixel index. Points whose raster position is not
// finite or falls outside the grid are rejected.
func (pr *projection) index(p Point) (int, bool) {
	nx := (p.X-pr.center.X)/pr.w*pr.sx + 0.5
	ny := (p.Y-pr.center.Y)/pr.h*pr.sy + 0.5

	rx := math32.Floor(nx * float32(pr.width-1))
	ry := math32.Floor((1 - ny) * float32(pr.height-1))

	// NaN fails every comparison, so test for the valid range.
	if !(rx >= 0 && rx < float32(pr.width)) || !(ry >= 0 && ry < float32(pr.height)) {
		return 0, false
	}
	return int(rx) + pr.width*int(ry), true
}

// Project maps a world-space point to a pixel index, fitting b into the
// canvas. The normalized box is scaled down on the axis where the canvas
// has room to spare and centered there. Renderers that instead align
// the fitted box to the left or bottom edge produce shifted images.
//
// The second result is false when the point does not land on the
// canvas, including every point of a zero-width or zero-height box.
func (c *Canvas) Project(p Point, b Bounds) (int, bool) {
	pr := c.fit(b)
	return pr.index(p)
}

// RasterStats summarizes one Rasterize call.
type RasterStats struct {
	Shapes  int // shapes rasterized
	Tasks   int // parallel sampling tasks
	Sampled int // points produced by the shapes
	Plotted int // points composited onto the canvas
	Dropped int // points that fell off the canvas
}

// sampleTask is one unit of parallel work: a run of parts sampled with
// a private random source.
type sampleTask struct {
	parts []Part
	rng   Rand
}

// taskResult holds the pixel indices hit by one task. Indices are
// stored as uint32; a canvas never has more than 1<<32 pixels.
type taskResult struct {
	pixels  []uint32
	sampled int
}

// Rasterize samples n points from every shape and composites color onto
// the pixel each point lands on.
//
// All shapes are fitted into the canvas together, using the union of
// their bounds. Sampling and projection run on a worker pool with a
// private random source per task; compositing happens afterwards on the
// calling goroutine, in task order.
func (c *Canvas) Rasterize(shapes []Shape, color Color, n int) RasterStats {
	start := time.Now()
	log := Logger()

	b := FindMaximalBounds(shapes)
	if len(shapes) > 0 && (b.Width() <= 0 || b.Height() <= 0) {
		log.Warn("stipple: degenerate bounds, nothing will be drawn",
			"bounds", b, "shapes", len(shapes))
	}
	pr := c.fit(b)

	pool := parallel.NewWorkerPool(c.opts.workers)
	defer pool.Close()

	tasks := c.plan(shapes, n)

	results := parallel.Map(pool, tasks, func(_ int, t sampleTask) taskResult {
		want := 0
		for _, part := range t.parts {
			want += max(part.N, 0)
		}
		res := taskResult{pixels: c.indices.Get(want)}
		for _, part := range t.parts {
			pts := part.Shape.Points(part.N, t.rng)
			res.sampled += len(pts)
			for _, p := range pts {
				if idx, ok := pr.index(p); ok {
					res.pixels = append(res.pixels, uint32(idx))
				}
			}
		}
		return res
	})
	sampled := time.Now()

	stats := RasterStats{Shapes: len(shapes), Tasks: len(tasks)}
	for _, res := range results {
		stats.Sampled += res.sampled
		for _, idx := range res.pixels {
			c.buf[idx] = color.Mix(c.buf[idx])
		}
		stats.Plotted += len(res.pixels)
		c.indices.Put(res.pixels)
	}
	stats.Dropped = stats.Sampled - stats.Plotted

	log.Debug("stipple: rasterized",
		"shapes", stats.Shapes,
		"tasks", stats.Tasks,
		"workers", pool.Workers(),
		"bounds", b,
		"sampled", stats.Sampled,
		"plotted", stats.Plotted,
		"dropped", stats.Dropped,
		"sample_time", sampled.Sub(start),
		"composite_time", time.Since(sampled))

	return stats
}

// plan turns the shapes into sampling tasks. Plain shapes become one
// task each. Compound shapes are subdivided on the calling goroutine,
// with the planning source (task -1), and their parts are grouped into
// batches so a single large shape is spread over the workers.
func (c *Canvas) plan(shapes []Shape, n int) []sampleTask {
	var planRng Rand
	var groups [][]Part

	for _, s := range shapes {
		sd, ok := s.(Subdivider)
		if !ok {
			groups = append(groups, []Part{{Shape: s, N: n}})
			continue
		}
		if planRng == nil {
			planRng = c.opts.source(-1)
		}
		parts := sd.Subdivide(n, planRng)
		size := c.opts.batchSize
		for lo := 0; lo < len(parts); lo += size {
			groups = append(groups, parts[lo:min(lo+size, len(parts))])
		}
	}

	tasks := make([]sampleTask, len(groups))
	for i, g := range groups {
		tasks[i] = sampleTask{parts: g, rng: c.opts.source(i)}
	}
	return tasks
}

// Serialize returns the finished image. Every cell is composited once
// more onto the background, which leaves opaque cells unchanged.
func (c *Canvas) Serialize() *Raster {
	pix := make([]Color, len(c.buf))
	for i, cell := range c.buf {
		pix[i] = cell.Mix(c.bg)
	}
	return &Raster{
		Pix:        pix,
		Width:      c.width,
		Height:     c.height,
		MaxChannel: MaxChannel,
	}
}
