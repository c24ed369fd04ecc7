package blob

import (
	"fmt"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/lerc/compress"
	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/internal/pool"
	"github.com/arloliu/lerc/native"
)

// Encoder encodes rasters into LERC blobs.
//
// An Encoder is immutable after construction and safe for concurrent use.
type Encoder struct {
	lib       native.Library
	codec     compress.Codec
	logger    log.Logger
	dataType  format.DataType
	maxValues int64
}

// NewEncoder creates an Encoder.
//
// Parameters:
//   - opts: Library, element type, logging, metrics, outer compression and limit options
//
// Returns:
//   - *Encoder: Ready-to-use encoder
//   - error: Invalid option
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		lib:       cfg.library(),
		codec:     cfg.codec,
		logger:    cfg.logger,
		dataType:  cfg.dataType,
		maxValues: cfg.maxValues,
	}, nil
}

// DataType returns the element type blobs are written with.
func (e *Encoder) DataType() format.DataType {
	return e.dataType
}

// Encode encodes a single-value-per-pixel raster without mask.
//
// Values are stored as the encoder's element type before the error bound
// applies. With the default Float type every value is first rounded to
// float32, so a lossless (maxZErr 0) round trip reproduces float32-exact input
// only; use WithDataType(format.DataTypeDouble) to keep arbitrary float64
// values within maxZErr.
//
// Parameters:
//   - data: nRows*nCols*nBands values, band-major then row-major
//   - nRows, nCols, nBands: Raster shape
//   - maxZErr: Largest allowed per-value error; 0 asks for lossless
//
// Returns:
//   - []byte: Blob, exactly as long as the library reported writing
//   - error: Argument errors from errs, or *errs.StatusError matching
//     errs.ErrSizeProbe or errs.ErrEncode
func (e *Encoder) Encode(data []float64, nRows, nCols, nBands int, maxZErr float64) ([]byte, error) {
	return e.EncodeGrid(Grid{
		Data:              data,
		NumRows:           nRows,
		NumCols:           nCols,
		NumBands:          nBands,
		NumValuesPerPixel: 1,
	}, maxZErr)
}

// EncodeGrid encodes g, including its masks and values per pixel.
//
// The library is always asked for the required capacity first; the output
// buffer is allocated at exactly that size and truncated to the bytes written.
func (e *Encoder) EncodeGrid(g Grid, maxZErr float64) ([]byte, error) {
	if math.IsNaN(maxZErr) || maxZErr < 0 {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidMaxZError, maxZErr)
	}

	n, err := g.validate(e.maxValues)
	if err != nil {
		return nil, err
	}

	staging := pool.GetStagingBuffer()
	defer pool.PutStagingBuffer(staging)

	staging.ExtendOrGrow(n * e.dataType.Size())
	elems := staging.Bytes()
	if err := format.MarshalElements(endian.NativeEngine(), e.dataType, elems, g.Data); err != nil {
		return nil, err
	}

	params := native.EncodeParams{
		DataType:          e.dataType,
		NumValuesPerPixel: g.depth(),
		NumCols:           g.NumCols,
		NumRows:           g.NumRows,
		NumBands:          g.NumBands,
		NumMasks:          g.NumMasks,
		ValidBytes:        g.Mask,
		MaxZError:         maxZErr,
	}

	size, st := e.lib.ComputeCompressedSize(elems, params)
	if !st.OK() {
		level.Debug(e.logger).Log("msg", "size probe failed", "status", st)
		return nil, errs.NewStatusError(errs.OpSizeProbe, uint32(st))
	}

	out := make([]byte, size)
	written, st := e.lib.Encode(elems, params, out)
	if !st.OK() {
		level.Debug(e.logger).Log("msg", "encode failed", "status", st, "capacity", size)
		return nil, errs.NewStatusError(errs.OpEncode, uint32(st))
	}
	out = out[:min(int(written), len(out))]

	level.Debug(e.logger).Log("msg", "encoded blob",
		"data_type", e.dataType, "values", n, "max_z_err", maxZErr,
		"probed", size, "written", len(out))

	wrapped, err := e.codec.Compress(out)
	if err != nil {
		return nil, fmt.Errorf("lerc: wrap blob: %w", err)
	}

	return wrapped, nil
}
