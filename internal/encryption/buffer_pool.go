package encryption

import (
	"sync"
)

// chunkBuffers recycles chunk-sized buffers between the jobs of one engine.
type chunkBuffers struct {
	pool sync.Pool
}

func newChunkBuffers(size int) *chunkBuffers {
	buffers := &chunkBuffers{}
	buffers.pool.New = func() any {
		buf := make([]byte, size)

		return &buf
	}

	return buffers
}

func (b *chunkBuffers) get() *[]byte {
	buf, ok := b.pool.Get().(*[]byte)
	if !ok {
		panic("encryption: invalid buffer type from pool")
	}

	return buf
}

func (b *chunkBuffers) put(buf *[]byte) {
	b.pool.Put(buf)
}
