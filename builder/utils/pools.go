package utils

import (
	"bytes"
	"sync"
)

// MaxBufferSize caps buffers returned to the pool; article bodies can be large
// and one huge post should not pin its buffer for the rest of the run.
const MaxBufferSize = 256 * 1024

// BufferPool manages reusable bytes.Buffer objects for JSON encoding.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new(bytes.Buffer)
			},
		},
	}
}

// Get retrieves an empty buffer from the pool
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put resets buf and returns it to the pool; oversized buffers are dropped.
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf.Cap() > MaxBufferSize {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

var SharedBufferPool = NewBufferPool()
