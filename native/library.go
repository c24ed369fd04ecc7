package native

import (
	"fmt"

	"github.com/arloliu/lerc/format"
)

// Field counts of the two metadata arrays filled by GetBlobInfo.
const (
	InfoFieldCount  = 9
	RangeFieldCount = 3
)

// Positions within the info array, in the order the codec fills it.
const (
	InfoVersion = iota
	InfoDataType
	InfoNumValuesPerPixel
	InfoNumCols
	InfoNumRows
	InfoNumBands
	InfoNumValidPixels
	InfoBlobSize
	InfoNumMasks
)

// Positions within the data range array.
const (
	RangeZMin = iota
	RangeZMax
	RangeMaxZErrUsed
)

// Status is the code returned by every codec entry point.
type Status uint32

const (
	StatusOK             Status = 0
	StatusFailed         Status = 1
	StatusWrongParam     Status = 2
	StatusBufferTooSmall Status = 3
	StatusNaN            Status = 4
	StatusHasNoData      Status = 5

	// StatusUnsupported is returned by implementations that recognize a blob
	// but cannot decode its payload.
	StatusUnsupported Status = 1000
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusWrongParam:
		return "wrong_param"
	case StatusBufferTooSmall:
		return "buffer_too_small"
	case StatusNaN:
		return "nan"
	case StatusHasNoData:
		return "has_no_data"
	case StatusUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("status_%d", uint32(s))
	}
}

// OK reports whether s is StatusOK.
func (s Status) OK() bool {
	return s == StatusOK
}

// DecodeParams describes the output buffers of a DecodeToDouble call.
//
// The data buffer holds NumCols*NumRows*NumValuesPerPixel*NumBands values and the
// mask buffer NumCols*NumRows*NumMasks bytes.
type DecodeParams struct {
	NumMasks          int
	NumValuesPerPixel int
	NumCols           int
	NumRows           int
	NumBands          int
}

// NumValues returns the number of values the data buffer must hold.
func (p DecodeParams) NumValues() int {
	return p.NumCols * p.NumRows * p.NumValuesPerPixel * p.NumBands
}

// MaskLen returns the number of bytes the mask buffer must hold.
func (p DecodeParams) MaskLen() int {
	return p.NumCols * p.NumRows * p.NumMasks
}

// EncodeParams describes the input of ComputeCompressedSize and Encode.
//
// The data buffer holds NumCols*NumRows*NumValuesPerPixel*NumBands elements of
// DataType in native byte order. ValidBytes holds NumCols*NumRows*NumMasks
// bytes (1 = valid) and is nil when NumMasks is 0.
type EncodeParams struct {
	DataType          format.DataType
	NumValuesPerPixel int
	NumCols           int
	NumRows           int
	NumBands          int
	NumMasks          int
	ValidBytes        []byte
	MaxZError         float64
}

// NumValues returns the number of elements in the data buffer.
func (p EncodeParams) NumValues() int {
	return p.NumCols * p.NumRows * p.NumValuesPerPixel * p.NumBands
}

// Library is a LERC codec.
//
// Implementations must be safe for concurrent use unless wrapped with Serialize.
type Library interface {
	// GetBlobInfo fills info (InfoFieldCount values) and dataRange
	// (RangeFieldCount values) from the blob header without decoding pixels.
	GetBlobInfo(blob []byte, info []uint32, dataRange []float64) Status

	// DecodeToDouble decodes blob into data, converting every element to
	// float64, and writes the validity masks into validBytes.
	DecodeToDouble(blob []byte, p DecodeParams, validBytes []byte, data []float64) Status

	// ComputeCompressedSize returns the buffer capacity Encode needs for data.
	ComputeCompressedSize(data []byte, p EncodeParams) (uint32, Status)

	// Encode compresses data into out and returns the number of bytes written.
	Encode(data []byte, p EncodeParams, out []byte) (uint32, Status)
}
