package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.B = append(bb.B, []byte("hello")...)

	got := bb.Bytes()

	assert.Equal(t, []byte("hello"), got)
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.B = append(bb.B, []byte("test")...)
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.B = append(bb.B, []byte(" data")...)
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_Cap(t *testing.T) {
	bb := NewByteBuffer(256)
	assert.Equal(t, 256, bb.Cap())
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.B)
}

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)

	n1, err1 := bb.Write([]byte("hello"))
	require.NoError(t, err1)
	assert.Equal(t, 5, n1)

	n2, err2 := bb.Write([]byte(" world"))
	require.NoError(t, err2)
	assert.Equal(t, 6, n2)

	assert.Equal(t, []byte("hello world"), bb.B)
	assert.Equal(t, 11, bb.Len())
}

func TestByteBuffer_Write_GrowsBeyondInitialCapacity(t *testing.T) {
	bb := NewByteBuffer(4)

	_, err := bb.Write([]byte("this is longer than four bytes"))
	require.NoError(t, err)
	assert.Equal(t, []byte("this is longer than four bytes"), bb.B)
}

func TestByteBuffer_ResetAndReuse(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)

	_, err := bb.Write([]byte("first"))
	require.NoError(t, err)
	assert.Equal(t, 5, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())

	_, err = bb.Write([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), bb.B)
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(8192, 65536)
	require.NotNil(t, p)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	p.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"Small pool", 1024, 4096},
		{"Medium pool", 16384, 131072},
		{"Large pool", 1048576, 8388608},
		{"No threshold", 8192, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewByteBufferPool(tt.defaultSize, tt.maxThreshold)
			bb := p.Get()
			assert.GreaterOrEqual(t, cap(bb.B), tt.defaultSize)
			p.Put(bb)
		})
	}
}

func TestByteBufferPool_Put_ResetsBuffer(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	_, err := bb.Write([]byte("sensitive data"))
	require.NoError(t, err)

	p.Put(bb)
	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer before returning it to the pool")
}

func TestByteBufferPool_Put_Nil(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)
	assert.NotPanics(t, func() {
		p.Put(nil)
	})
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.B = make([]byte, 0, 10000)

	p.Put(bb)

	bb2 := p.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096, "should not reuse a buffer larger than the threshold")
}

func TestByteBufferPool_MaxThreshold_Zero_NoLimit(t *testing.T) {
	p := NewByteBufferPool(1024, 0)

	bb := p.Get()
	bb.B = make([]byte, 0, 1024*1024)

	assert.NotPanics(t, func() {
		p.Put(bb)
	})
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	p := NewByteBufferPool(DefaultBufferSize, MaxBufferThreshold)

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				bb := p.Get()
				_, _ = bb.Write([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				p.Put(bb)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// Default Package-Level Pool Tests
// =============================================================================

func TestDefaultPool_GetPut(t *testing.T) {
	bb := Get()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), DefaultBufferSize)

	_, err := bb.Write([]byte("round trip"))
	require.NoError(t, err)

	Put(bb)
	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")
}

func TestDefaultPool_MultipleGetsAndPuts(t *testing.T) {
	buffers := make([]*ByteBuffer, 10)

	for i := range buffers {
		buffers[i] = Get()
		require.NotNil(t, buffers[i])
		_, err := buffers[i].Write([]byte("data"))
		require.NoError(t, err)
	}

	for _, bb := range buffers {
		Put(bb)
	}

	for i := 0; i < 10; i++ {
		bb := Get()
		assert.Equal(t, 0, bb.Len(), "each buffer should be reset")
		Put(bb)
	}
}
