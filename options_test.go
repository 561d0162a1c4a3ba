package stipple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, 0, o.workers)
	assert.Equal(t, DefaultBatchSize, o.batchSize)
	assert.NotNil(t, o.source)

	// Unseeded sources are independent of each other.
	a, b := o.source(0), o.source(0)
	assert.NotEqual(t, a.Float32(), b.Float32())
}

func TestWithWorkers(t *testing.T) {
	c := NewCanvas(2, 2, Black, WithWorkers(3))
	assert.Equal(t, 3, c.opts.workers)
}

func TestWithBatchSize(t *testing.T) {
	c := NewCanvas(2, 2, Black, WithBatchSize(17))
	assert.Equal(t, 17, c.opts.batchSize)

	c = NewCanvas(2, 2, Black, WithBatchSize(0))
	assert.Equal(t, DefaultBatchSize, c.opts.batchSize)
}

func TestWithSeed(t *testing.T) {
	a := NewCanvas(2, 2, Black, WithSeed(99))
	b := NewCanvas(2, 2, Black, WithSeed(99))

	for task := -1; task < 4; task++ {
		ra, rb := a.opts.source(task), b.opts.source(task)
		for range 8 {
			assert.Equal(t, ra.Float32(), rb.Float32(), "task %d", task)
		}
	}

	// Different tasks draw different streams.
	assert.NotEqual(t, a.opts.source(0).Float32(), a.opts.source(1).Float32())
}

func TestWithRandSource(t *testing.T) {
	c := NewCanvas(2, 2, Black, WithRandSource(func(int) Rand { return constRand(0.25) }))
	assert.Equal(t, float32(0.25), c.opts.source(7).Float32())

	// nil keeps the default.
	c = NewCanvas(2, 2, Black, WithRandSource(nil))
	assert.NotNil(t, c.opts.source)
}
