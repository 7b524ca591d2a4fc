// Package pool provides a reusable byte-buffer pool used by store to
// assemble a block's header+payload bytes into one buffer before a single
// Write call.
package pool

import "sync"

const (
	// DefaultBufferSize is the default capacity of a ByteBuffer obtained
	// from the default pool: generous enough for a header plus a small
	// payload without growing.
	DefaultBufferSize = 4 * 1024 // 4KiB

	// MaxBufferThreshold is the largest buffer the default pool retains;
	// larger buffers are discarded on Put to avoid pinning a large
	// allocation in the pool after one oversized block.
	MaxBufferThreshold = 1024 * 1024 // 1MiB
)

// ByteBuffer is a reusable, growable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while retaining its allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Write appends data to the buffer, growing it as needed. It always
// returns len(data), nil.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a sync.Pool of ByteBuffers, with an optional ceiling on
// the capacity of buffers it will retain.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers start at defaultSize
// capacity and are discarded on Put once they exceed maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, creating one if necessary.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets and returns bb to the pool, unless its capacity exceeds the
// pool's maxThreshold, in which case it is discarded.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var defaultPool = NewByteBufferPool(DefaultBufferSize, MaxBufferThreshold)

// Get retrieves a ByteBuffer from the package-level default pool.
func Get() *ByteBuffer {
	return defaultPool.Get()
}

// Put returns a ByteBuffer to the package-level default pool.
func Put(bb *ByteBuffer) {
	defaultPool.Put(bb)
}
