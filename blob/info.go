package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/native"
)

// BlobInfo is the integer metadata of a blob, in the codec's field order.
type BlobInfo struct {
	Version           uint32
	DataType          format.DataType
	NumValuesPerPixel uint32
	NumCols           uint32
	NumRows           uint32
	NumBands          uint32
	NumValidPixels    uint32
	BlobSize          uint32
	NumMasks          uint32
}

// DataRange is the floating-point metadata of a blob.
type DataRange struct {
	ZMin        float64
	ZMax        float64
	MaxZErrUsed float64 // may be below the error bound requested at encode time
}

// NewBlobInfo converts the info array filled by a codec library.
//
// Returns:
//   - BlobInfo: Named view of fields
//   - error: errs.ErrInvalidFieldCount unless len(fields) == native.InfoFieldCount
func NewBlobInfo(fields []uint32) (BlobInfo, error) {
	if len(fields) != native.InfoFieldCount {
		return BlobInfo{}, fmt.Errorf("%w: info has %d fields, want %d",
			errs.ErrInvalidFieldCount, len(fields), native.InfoFieldCount)
	}

	return BlobInfo{
		Version:           fields[native.InfoVersion],
		DataType:          format.DataType(fields[native.InfoDataType]),
		NumValuesPerPixel: fields[native.InfoNumValuesPerPixel],
		NumCols:           fields[native.InfoNumCols],
		NumRows:           fields[native.InfoNumRows],
		NumBands:          fields[native.InfoNumBands],
		NumValidPixels:    fields[native.InfoNumValidPixels],
		BlobSize:          fields[native.InfoBlobSize],
		NumMasks:          fields[native.InfoNumMasks],
	}, nil
}

// Fields returns the info array in codec order.
func (i BlobInfo) Fields() [native.InfoFieldCount]uint32 {
	return [native.InfoFieldCount]uint32{
		native.InfoVersion:           i.Version,
		native.InfoDataType:          uint32(i.DataType),
		native.InfoNumValuesPerPixel: i.NumValuesPerPixel,
		native.InfoNumCols:           i.NumCols,
		native.InfoNumRows:           i.NumRows,
		native.InfoNumBands:          i.NumBands,
		native.InfoNumValidPixels:    i.NumValidPixels,
		native.InfoBlobSize:          i.BlobSize,
		native.InfoNumMasks:          i.NumMasks,
	}
}

// NumPixels returns cols*rows.
func (i BlobInfo) NumPixels() int {
	return int(i.NumCols) * int(i.NumRows)
}

// NumValues returns cols*rows*values_per_pixel*bands, the decoded data length.
func (i BlobInfo) NumValues() int {
	return i.NumPixels() * int(i.NumValuesPerPixel) * int(i.NumBands)
}

// MaskLen returns cols*rows*masks, the decoded mask length.
func (i BlobInfo) MaskLen() int {
	return i.NumPixels() * int(i.NumMasks)
}

// checkSizes validates the shape and returns the data and mask lengths, with
// 64-bit arithmetic bounded by maxValues.
func (i BlobInfo) checkSizes(maxValues int64) (int, int, error) {
	if i.NumCols == 0 || i.NumRows == 0 || i.NumBands == 0 || i.NumValuesPerPixel == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%dx%d with %d values per pixel",
			errs.ErrInvalidDimensions, i.NumCols, i.NumRows, i.NumBands, i.NumValuesPerPixel)
	}
	if i.NumMasks != 0 && i.NumMasks != 1 && i.NumMasks != i.NumBands {
		return 0, 0, fmt.Errorf("%w: %d masks for %d bands", errs.ErrInvalidMaskCount, i.NumMasks, i.NumBands)
	}

	n, ok := checkedProduct(maxValues, i.NumCols, i.NumRows, i.NumValuesPerPixel, i.NumBands)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %dx%dx%dx%d values exceed limit %d",
			errs.ErrInvalidDimensions, i.NumCols, i.NumRows, i.NumValuesPerPixel, i.NumBands, maxValues)
	}

	return n, i.MaskLen(), nil
}

func (i BlobInfo) decodeParams() native.DecodeParams {
	return native.DecodeParams{
		NumMasks:          int(i.NumMasks),
		NumValuesPerPixel: int(i.NumValuesPerPixel),
		NumCols:           int(i.NumCols),
		NumRows:           int(i.NumRows),
		NumBands:          int(i.NumBands),
	}
}

// NewDataRange converts the range array filled by a codec library.
//
// Returns:
//   - DataRange: Named view of fields
//   - error: errs.ErrInvalidFieldCount unless len(fields) == native.RangeFieldCount
func NewDataRange(fields []float64) (DataRange, error) {
	if len(fields) != native.RangeFieldCount {
		return DataRange{}, fmt.Errorf("%w: range has %d fields, want %d",
			errs.ErrInvalidFieldCount, len(fields), native.RangeFieldCount)
	}

	return DataRange{
		ZMin:        fields[native.RangeZMin],
		ZMax:        fields[native.RangeZMax],
		MaxZErrUsed: fields[native.RangeMaxZErrUsed],
	}, nil
}

// Fields returns the range array in codec order.
func (r DataRange) Fields() [native.RangeFieldCount]float64 {
	return [native.RangeFieldCount]float64{
		native.RangeZMin:        r.ZMin,
		native.RangeZMax:        r.ZMax,
		native.RangeMaxZErrUsed: r.MaxZErrUsed,
	}
}

// checkedProduct multiplies factors and reports false when the product
// exceeds limit or math.MaxInt.
func checkedProduct(limit int64, factors ...uint32) (int, bool) {
	if limit <= 0 || limit > math.MaxInt {
		limit = math.MaxInt
	}

	p := int64(1)
	for _, f := range factors {
		if f == 0 {
			return 0, true
		}
		if p > limit/int64(f) {
			return 0, false
		}
		p *= int64(f)
	}

	return int(p), true
}
