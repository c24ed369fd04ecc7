package format

import (
	"fmt"
	"math"

	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/errs"
)

// Element reads one element of type dt from the start of b.
//
// b must hold at least dt.Size() bytes; unknown types read as 0.
func Element(engine endian.EndianEngine, dt DataType, b []byte) float64 {
	switch dt {
	case DataTypeChar:
		return float64(int8(b[0]))
	case DataTypeByte:
		return float64(b[0])
	case DataTypeShort:
		return float64(int16(engine.Uint16(b)))
	case DataTypeUShort:
		return float64(engine.Uint16(b))
	case DataTypeInt:
		return float64(int32(engine.Uint32(b)))
	case DataTypeUInt:
		return float64(engine.Uint32(b))
	case DataTypeFloat:
		return float64(math.Float32frombits(engine.Uint32(b)))
	case DataTypeDouble:
		return math.Float64frombits(engine.Uint64(b))
	default:
		return 0
	}
}

// PutElement writes v into b as an element of type dt.
//
// Integer types round v to the nearest integer. NaN and infinities pass through
// unchanged for float types; for integer types, and for finite values outside
// the type's bounds, PutElement returns errs.ErrValueOutOfRange.
func PutElement(engine endian.EndianEngine, dt DataType, b []byte, v float64) error {
	if dt.IsInteger() {
		r := math.Round(v)
		lo, hi := dt.Bounds()
		if math.IsNaN(r) || r < lo || r > hi {
			return fmt.Errorf("%w: %v as %s", errs.ErrValueOutOfRange, v, dt)
		}
		v = r
	} else if dt == DataTypeFloat && !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) > math.MaxFloat32 {
		return fmt.Errorf("%w: %v as %s", errs.ErrValueOutOfRange, v, dt)
	}

	switch dt {
	case DataTypeChar:
		b[0] = byte(int8(v))
	case DataTypeByte:
		b[0] = byte(v)
	case DataTypeShort:
		engine.PutUint16(b, uint16(int16(v)))
	case DataTypeUShort:
		engine.PutUint16(b, uint16(v))
	case DataTypeInt:
		engine.PutUint32(b, uint32(int32(v)))
	case DataTypeUInt:
		engine.PutUint32(b, uint32(v))
	case DataTypeFloat:
		engine.PutUint32(b, math.Float32bits(float32(v)))
	case DataTypeDouble:
		engine.PutUint64(b, math.Float64bits(v))
	default:
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedDataType, uint32(dt))
	}

	return nil
}

// MarshalElements encodes src as consecutive dt elements into dst.
//
// Parameters:
//   - engine: Byte order of the produced elements
//   - dt: Element type
//   - dst: Destination, must hold len(src)*dt.Size() bytes
//   - src: Values to encode
//
// Returns:
//   - error: ErrUnsupportedDataType, ErrValueOutOfRange (with the offending index)
func MarshalElements(engine endian.EndianEngine, dt DataType, dst []byte, src []float64) error {
	size := dt.Size()
	if size == 0 {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedDataType, uint32(dt))
	}
	if len(dst) < len(src)*size {
		return fmt.Errorf("element buffer too small: %d < %d", len(dst), len(src)*size)
	}

	for i, v := range src {
		if err := PutElement(engine, dt, dst[i*size:], v); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	return nil
}
