package compress

// ZstdCompressor wraps blobs in a Zstandard frame.
//
// LERC output of the one-sweep and constant payloads is often highly redundant,
// and Zstd recovers most of that at moderate speed. The pure-Go implementation
// (klauspost/compress) is used unless the module is built with cgo and the
// gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(blob)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
