package parallel

import (
	"math/bits"
	"sync"
)

// maxIndexClass bounds the size classes of an IndexPool. Buffers larger
// than 1<<maxIndexClass indices are not pooled.
const maxIndexClass = 30

// IndexPool reuses pixel index buffers between rasterization passes.
//
// Buffers are kept in power-of-two size classes, one sync.Pool per
// class, so a request is served by a buffer at least as large as asked
// for.
//
// Thread safety: IndexPool is safe for concurrent use.
type IndexPool struct {
	classes [maxIndexClass + 1]sync.Pool
}

// NewIndexPool creates an empty pool.
func NewIndexPool() *IndexPool {
	return &IndexPool{}
}

// Get returns an empty buffer with capacity for at least n indices.
func (p *IndexPool) Get(n int) []uint32 {
	if n <= 0 {
		return nil
	}
	class := indexClass(n)
	if class > maxIndexClass {
		return make([]uint32, 0, n)
	}
	if buf, ok := p.classes[class].Get().(*[]uint32); ok {
		return (*buf)[:0]
	}
	return make([]uint32, 0, 1<<class)
}

// Put returns buf to the pool. Its contents are discarded.
// Buffers without capacity, or too large to pool, are dropped.
func (p *IndexPool) Put(buf []uint32) {
	if cap(buf) == 0 {
		return
	}
	// The largest class the buffer can fully serve.
	class := bits.Len(uint(cap(buf))) - 1
	if class > maxIndexClass {
		return
	}
	buf = buf[:0]
	p.classes[class].Put(&buf)
}

// indexClass returns the smallest class whose buffers hold n indices.
func indexClass(n int) int {
	return bits.Len(uint(n - 1))
}
