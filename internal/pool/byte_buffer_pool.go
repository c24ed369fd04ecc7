// Package pool provides pooled byte buffers for the transient buffers of the
// codec adapter: element staging buffers handed to the encoder and read
// buffers that hold a blob only for the duration of a decode call.
//
// Buffers returned to callers (encoded blobs, decoded datasets) are never
// pooled.
package pool

import (
	"io"
	"sync"
)

const (
	StagingBufferDefaultSize  = 1024 * 64        // 64KiB
	StagingBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
	ReadBufferDefaultSize     = 1024 * 64        // 64KiB
	ReadBufferMaxThreshold    = 1024 * 1024 * 32 // 32MiB
)

// ByteBuffer is a growable byte slice.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its memory.
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

// Grow ensures room for requiredBytes more bytes without reallocation.
//
// Small buffers grow by at least StagingBufferDefaultSize, larger ones by 25%
// of their capacity, and never by less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := StagingBufferDefaultSize
	if cap(bb.B) > 4*StagingBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ExtendOrGrow extends the buffer length by n bytes, growing it if necessary.
// The new bytes are zeroed.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
	clear(bb.B[start:])
}

// Write appends data to the buffer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ReadFrom appends everything read from r until io.EOF.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		bb.Grow(512)
		n, err := r.Read(bb.B[len(bb.B):cap(bb.B)])
		if n < 0 {
			return total, io.ErrNoProgress
		}
		bb.B = bb.B[:len(bb.B)+n]
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// ByteBufferPool pools ByteBuffers and drops buffers that grew past
// maxThreshold so a single large raster does not pin memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given default capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
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

var (
	stagingPool = NewByteBufferPool(StagingBufferDefaultSize, StagingBufferMaxThreshold)
	readPool    = NewByteBufferPool(ReadBufferDefaultSize, ReadBufferMaxThreshold)
)

// GetStagingBuffer retrieves a buffer for marshaling encoder input elements.
func GetStagingBuffer() *ByteBuffer {
	return stagingPool.Get()
}

// PutStagingBuffer returns a staging buffer to its pool.
func PutStagingBuffer(bb *ByteBuffer) {
	stagingPool.Put(bb)
}

// GetReadBuffer retrieves a buffer for reading a blob from a stream.
func GetReadBuffer() *ByteBuffer {
	return readPool.Get()
}

// PutReadBuffer returns a read buffer to its pool.
func PutReadBuffer(bb *ByteBuffer) {
	readPool.Put(bb)
}
