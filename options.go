package stipple

import "math/rand/v2"

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	// Reproducible output on four workers
//	c := stipple.NewCanvas(800, 600, bg, stipple.WithWorkers(4), stipple.WithSeed(42))
type CanvasOption func(*canvasOptions)

// DefaultBatchSize is the number of compound-shape parts per task.
const DefaultBatchSize = 256

// canvasOptions holds optional configuration for Canvas creation.
type canvasOptions struct {
	workers   int
	batchSize int
	source    func(task int) Rand
}

// defaultOptions returns the default canvas options.
func defaultOptions() canvasOptions {
	return canvasOptions{
		workers:   0, // GOMAXPROCS
		batchSize: DefaultBatchSize,
		source:    freshRand,
	}
}

// WithWorkers sets how many goroutines sample shapes in parallel.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) CanvasOption {
	return func(o *canvasOptions) {
		o.workers = n
	}
}

// WithSeed makes rasterization reproducible. Task i of every Rasterize
// call draws from a PCG generator seeded with (seed, i), so the output
// does not depend on how tasks are scheduled.
func WithSeed(seed uint64) CanvasOption {
	return func(o *canvasOptions) {
		o.source = func(task int) Rand {
			return rand.New(rand.NewPCG(seed, uint64(task)))
		}
	}
}

// WithRandSource sets the function that creates the random source of
// each parallel task. It is called on the calling goroutine before the
// tasks start: once per task index, and once with -1 for the source that
// splits compound shapes. Every returned Rand must be independent of the
// others.
func WithRandSource(fn func(task int) Rand) CanvasOption {
	return func(o *canvasOptions) {
		if fn != nil {
			o.source = fn
		}
	}
}

// WithBatchSize sets how many parts of a compound shape one task
// samples. Zero or a negative value means DefaultBatchSize.
//
// The batch size, not the worker count, decides how work is split into
// tasks, so seeded output is the same for any number of workers.
func WithBatchSize(parts int) CanvasOption {
	return func(o *canvasOptions) {
		if parts <= 0 {
			parts = DefaultBatchSize
		}
		o.batchSize = parts
	}
}

// freshRand returns an unseeded generator for one task.
func freshRand(int) Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
