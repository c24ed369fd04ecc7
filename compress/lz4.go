package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4SizePrefix is the little-endian uint32 holding the uncompressed length
// in front of every LZ4 block produced by LZ4Compressor.
const lz4SizePrefix = 4

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// ErrLZ4Corrupted is returned when an LZ4 block does not expand to its
// recorded size.
var ErrLZ4Corrupted = errors.New("lz4: corrupted block")

// LZ4Compressor wraps blobs in a size-prefixed LZ4 block.
//
// Layout: uint32 LE uncompressed length, then the raw LZ4 block. Knowing the
// length up front lets Decompress allocate exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using a pooled lz4.Compressor.
//
// Parameters:
//   - data: Input data to compress
//
// Returns:
//   - []byte: Size prefix followed by the LZ4 block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data))) //nolint: gosec

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress decompresses a size-prefixed LZ4 block.
//
// Returns:
//   - []byte: Decompressed data (nil if input is empty)
//   - error: ErrLZ4Corrupted if the prefix is missing, too large, or disagrees with the block
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, fmt.Errorf("%w: missing size prefix", ErrLZ4Corrupted)
	}

	size := int(binary.LittleEndian.Uint32(data))
	if size > maxDecompressedSize {
		return nil, fmt.Errorf("%w: decoded size %d exceeds limit", ErrLZ4Corrupted, size)
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(data[lz4SizePrefix:], buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrLZ4Corrupted, size, n)
	}

	return buf, nil
}
