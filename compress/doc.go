// Package compress provides the outer codecs that can be layered around a
// complete LERC blob.
//
// LERC itself is the inner, error-bounded raster codec. Containers such as
// GeoTIFF (LERC_DEFLATE, LERC_ZSTD) add a general-purpose compressor on top of
// the blob; this package provides those layers so a Decoder can unwrap them
// before inspection and an Encoder can apply them after encoding:
//   - None: blob bytes as-is
//   - Zstd: Zstandard frame (klauspost/compress, or libzstd via gozstd)
//   - S2: single S2 block
//   - LZ4: uint32 length prefix followed by an LZ4 block
//   - Deflate: raw DEFLATE stream
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	wrapped, err := codec.Compress(blob)
//
// # Build Tags
//
// Building with cgo and the gozstd tag switches ZstdCompressor to the libzstd
// binding (github.com/valyala/gozstd). Both implementations produce standard
// Zstandard frames and can read each other's output.
//
// All codecs are stateless values; internal encoders are pooled and every
// codec is safe for concurrent use.
package compress
