// Package lerc decodes and encodes LERC (Limited Error Raster Compression)
// blobs.
//
// A blob holds one or more bands of a cols x rows raster, optionally with a
// validity mask per band, compressed so that no decoded value differs from the
// original by more than a caller-chosen error bound.
//
// # Basic Usage
//
// Inspecting and decoding a blob:
//
//	info, rng, err := lerc.Inspect(buf)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.NumCols, info.NumRows, info.NumBands, rng.ZMin, rng.ZMax)
//
//	ds, err := lerc.Decode(buf)
//	v := ds.At(0, 10, 20) // band 0, row 10, column 20
//
// Encoding a raster:
//
//	buf, err := lerc.Encode(values, nRows, nCols, nBands, 0.01)
//
// # Errors
//
// Codec failures are *errs.StatusError values carrying the library status code;
// match them with errors.Is against errs.ErrHeaderParse, errs.ErrPixelDecode,
// errs.ErrSizeProbe or errs.ErrEncode, and read the code with errs.StatusCode.
//
// # Package Structure
//
// This package wraps a default blob.Decoder and blob.Encoder for the common
// cases. Use the blob package directly to pick the codec library, enable
// metrics or logging, set limits, or wrap blobs in an outer compression codec.
package lerc

import (
	"io"

	"github.com/arloliu/lerc/blob"
)

var (
	defaultDecoder = mustDecoder()
	defaultEncoder = mustEncoder()
)

func mustDecoder() *blob.Decoder {
	d, err := blob.NewDecoder()
	if err != nil {
		panic(err)
	}

	return d
}

func mustEncoder() *blob.Encoder {
	e, err := blob.NewEncoder()
	if err != nil {
		panic(err)
	}

	return e
}

// NewDecoder creates a decoder with custom options.
//
// Example:
//
//	dec, err := lerc.NewDecoder(
//	    blob.WithLogger(logger),
//	    blob.WithMetrics(native.NewMetrics(prometheus.DefaultRegisterer)),
//	    blob.WithInspectCache(256),
//	)
func NewDecoder(opts ...blob.Option) (*blob.Decoder, error) {
	return blob.NewDecoder(opts...)
}

// NewEncoder creates an encoder with custom options. Without
// blob.WithDataType the encoder writes Float elements.
func NewEncoder(opts ...blob.Option) (*blob.Encoder, error) {
	return blob.NewEncoder(opts...)
}

// Inspect returns the metadata of buf without decoding pixels.
func Inspect(buf []byte) (blob.BlobInfo, blob.DataRange, error) {
	return defaultDecoder.Inspect(buf)
}

// Decode decodes buf with the default decoder.
func Decode(buf []byte) (blob.Dataset, error) {
	return defaultDecoder.Decode(buf)
}

// DecodeReader reads r to EOF and decodes the result.
func DecodeReader(r io.Reader) (blob.Dataset, error) {
	return defaultDecoder.DecodeReader(r)
}

// DecodeFile reads and decodes the blob stored at path.
func DecodeFile(path string) (blob.Dataset, error) {
	return defaultDecoder.DecodeFile(path)
}

// Encode encodes a single-value-per-pixel raster of Float elements.
//
// Parameters:
//   - data: nRows*nCols*nBands values, band-major then row-major
//   - nRows, nCols, nBands: Raster shape
//   - maxZErr: Largest allowed per-value error; 0 asks for lossless
//
// Returns:
//   - []byte: The blob
//   - error: Argument or codec error
func Encode(data []float64, nRows, nCols, nBands int, maxZErr float64) ([]byte, error) {
	return defaultEncoder.Encode(data, nRows, nCols, nBands, maxZErr)
}

// EncodeGrid encodes g, including masks and values per pixel, as Float elements.
func EncodeGrid(g blob.Grid, maxZErr float64) ([]byte, error) {
	return defaultEncoder.EncodeGrid(g, maxZErr)
}
