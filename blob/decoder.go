package blob

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/arloliu/lerc/compress"
	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/internal/hash"
	"github.com/arloliu/lerc/internal/pool"
	"github.com/arloliu/lerc/native"
	"github.com/arloliu/lerc/section"
)

type inspection struct {
	info BlobInfo
	rng  DataRange
}

// Decoder inspects and decodes LERC blobs.
//
// A Decoder is immutable after construction and safe for concurrent use.
type Decoder struct {
	lib         native.Library
	codec       compress.Codec
	logger      log.Logger
	cache       *lru.Cache[hash.Key, inspection]
	maxBlobSize int64
	maxValues   int64
}

// NewDecoder creates a Decoder.
//
// Parameters:
//   - opts: Library, logging, metrics, outer compression, limits and cache options
//
// Returns:
//   - *Decoder: Ready-to-use decoder
//   - error: Invalid option
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		lib:         cfg.library(),
		codec:       cfg.codec,
		logger:      cfg.logger,
		maxBlobSize: cfg.maxBlobSize,
		maxValues:   cfg.maxValues,
	}

	if cfg.cacheSize > 0 {
		cache, err := lru.New[hash.Key, inspection](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create inspect cache: %w", err)
		}
		d.cache = cache
	}

	return d, nil
}

// Inspect returns the metadata of buf without decoding pixels.
//
// Repeated calls on the same bytes return identical values.
//
// Returns:
//   - BlobInfo: Integer metadata
//   - DataRange: Value range and error bound actually used
//   - error: *errs.StatusError matching errs.ErrHeaderParse when the library
//     rejects the header (or the buffer is shorter than section.MinBlobSize),
//     errs.ErrBlobTooLarge, errs.ErrInvalidDimensions when the header
//     describes more values than WithMaxPixels allows, or an outer
//     decompression error
func (d *Decoder) Inspect(buf []byte) (BlobInfo, DataRange, error) {
	blob, err := d.unwrap(buf)
	if err != nil {
		return BlobInfo{}, DataRange{}, err
	}

	return d.inspect(blob)
}

// Decode decodes buf into a Dataset.
//
// Returns:
//   - Dataset: Data of exactly Info.NumValues() values and Mask of Info.MaskLen() bytes
//   - error: Inspect errors unchanged, or *errs.StatusError matching
//     errs.ErrPixelDecode; a blob_size that differs from the buffer length
//     also matches errs.ErrBlobSizeMismatch
func (d *Decoder) Decode(buf []byte) (Dataset, error) {
	blob, err := d.unwrap(buf)
	if err != nil {
		return Dataset{}, err
	}

	info, rng, err := d.inspect(blob)
	if err != nil {
		return Dataset{}, err
	}

	if int(info.BlobSize) != len(blob) {
		return Dataset{}, errs.NewStatusError(errs.OpPixelDecode, uint32(native.StatusWrongParam)).
			WithCause(fmt.Errorf("%w: header says %d bytes, buffer has %d",
				errs.ErrBlobSizeMismatch, info.BlobSize, len(blob)))
	}

	numValues, maskLen, err := info.checkSizes(d.maxValues)
	if err != nil {
		return Dataset{}, err
	}

	data := make([]float64, numValues)
	mask := make([]byte, maskLen)
	if st := d.lib.DecodeToDouble(blob, info.decodeParams(), mask, data); !st.OK() {
		level.Debug(d.logger).Log("msg", "decode failed", "status", st, "blob_size", len(blob))
		return Dataset{}, errs.NewStatusError(errs.OpPixelDecode, uint32(st))
	}

	level.Debug(d.logger).Log("msg", "decoded blob", "values", numValues, "mask_bytes", maskLen)

	ds := Dataset{Info: info, Range: rng, Data: data}
	if maskLen > 0 {
		ds.Mask = mask
	}

	return ds, nil
}

// DecodeReader reads r to EOF and decodes the result.
//
// A read failure is returned wrapped, never as a *errs.StatusError.
func (d *Decoder) DecodeReader(r io.Reader) (Dataset, error) {
	bb := pool.GetReadBuffer()
	defer pool.PutReadBuffer(bb)

	if _, err := bb.ReadFrom(io.LimitReader(r, d.maxBlobSize+1)); err != nil {
		return Dataset{}, fmt.Errorf("lerc: read blob: %w", err)
	}
	if int64(bb.Len()) > d.maxBlobSize {
		return Dataset{}, fmt.Errorf("%w: more than %d bytes", errs.ErrBlobTooLarge, d.maxBlobSize)
	}

	return d.Decode(bb.Bytes())
}

// DecodeFile reads the file at path and decodes it.
//
// Open and read failures are returned wrapped, so errors.Is(err,
// fs.ErrNotExist) works as usual.
func (d *Decoder) DecodeFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("lerc: open blob file: %w", err)
	}
	defer f.Close()

	return d.DecodeReader(f)
}

func (d *Decoder) unwrap(buf []byte) ([]byte, error) {
	blob, err := d.codec.Decompress(buf)
	if err != nil {
		return nil, fmt.Errorf("lerc: unwrap blob: %w", err)
	}

	return blob, nil
}

func (d *Decoder) inspect(blob []byte) (BlobInfo, DataRange, error) {
	if len(blob) < section.MinBlobSize {
		return BlobInfo{}, DataRange{}, errs.NewStatusError(errs.OpHeaderParse, uint32(native.StatusBufferTooSmall)).
			WithCause(fmt.Errorf("%w: %d bytes", errs.ErrBlobTooShort, len(blob)))
	}
	if int64(len(blob)) > d.maxBlobSize {
		return BlobInfo{}, DataRange{}, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrBlobTooLarge, len(blob), d.maxBlobSize)
	}

	var key hash.Key
	if d.cache != nil {
		key = hash.BlobKey(blob)
		if hit, ok := d.cache.Get(key); ok {
			return hit.info, hit.rng, nil
		}
	}

	infoFields := make([]uint32, native.InfoFieldCount)
	rangeFields := make([]float64, native.RangeFieldCount)
	if st := d.lib.GetBlobInfo(blob, infoFields, rangeFields); !st.OK() {
		level.Debug(d.logger).Log("msg", "inspect failed", "status", st, "blob_size", len(blob))
		return BlobInfo{}, DataRange{}, errs.NewStatusError(errs.OpHeaderParse, uint32(st))
	}

	info, err := NewBlobInfo(infoFields)
	if err != nil {
		return BlobInfo{}, DataRange{}, err
	}
	rng, err := NewDataRange(rangeFields)
	if err != nil {
		return BlobInfo{}, DataRange{}, err
	}
	if _, _, err := info.checkSizes(d.maxValues); err != nil {
		level.Debug(d.logger).Log("msg", "rejected blob dimensions", "err", err)
		return BlobInfo{}, DataRange{}, err
	}

	level.Debug(d.logger).Log("msg", "inspected blob",
		"version", info.Version, "data_type", info.DataType,
		"cols", info.NumCols, "rows", info.NumRows, "bands", info.NumBands,
		"masks", info.NumMasks, "blob_size", info.BlobSize)

	if d.cache != nil {
		d.cache.Add(key, inspection{info: info, rng: rng})
	}

	return info, rng, nil
}
