package format

import (
	"fmt"
	"math"
	"strings"
)

type (
	// DataType is the LERC pixel element type code as stored in the blob header.
	DataType uint32
	// CompressionType identifies an outer codec applied around a whole LERC blob.
	CompressionType uint8
)

const (
	DataTypeChar   DataType = 0 // DataTypeChar is a signed 8-bit integer.
	DataTypeByte   DataType = 1 // DataTypeByte is an unsigned 8-bit integer.
	DataTypeShort  DataType = 2 // DataTypeShort is a signed 16-bit integer.
	DataTypeUShort DataType = 3 // DataTypeUShort is an unsigned 16-bit integer.
	DataTypeInt    DataType = 4 // DataTypeInt is a signed 32-bit integer.
	DataTypeUInt   DataType = 5 // DataTypeUInt is an unsigned 32-bit integer.
	DataTypeFloat  DataType = 6 // DataTypeFloat is a 32-bit IEEE 754 float.
	DataTypeDouble DataType = 7 // DataTypeDouble is a 64-bit IEEE 754 float.
)

const (
	CompressionNone    CompressionType = 0x1 // CompressionNone leaves the blob as produced by the codec.
	CompressionZstd    CompressionType = 0x2 // CompressionZstd wraps the blob in a Zstandard frame.
	CompressionS2      CompressionType = 0x3 // CompressionS2 wraps the blob in an S2 block.
	CompressionLZ4     CompressionType = 0x4 // CompressionLZ4 wraps the blob in a size-prefixed LZ4 block.
	CompressionDeflate CompressionType = 0x5 // CompressionDeflate wraps the blob in a raw DEFLATE stream.
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeChar:
		return "Char"
	case DataTypeByte:
		return "Byte"
	case DataTypeShort:
		return "Short"
	case DataTypeUShort:
		return "UShort"
	case DataTypeInt:
		return "Int"
	case DataTypeUInt:
		return "UInt"
	case DataTypeFloat:
		return "Float"
	case DataTypeDouble:
		return "Double"
	default:
		return "Unknown"
	}
}

// IsValid reports whether dt is one of the eight LERC element types.
func (dt DataType) IsValid() bool {
	return dt <= DataTypeDouble
}

// Size returns the element width in bytes, or 0 for an unknown type.
func (dt DataType) Size() int {
	switch dt {
	case DataTypeChar, DataTypeByte:
		return 1
	case DataTypeShort, DataTypeUShort:
		return 2
	case DataTypeInt, DataTypeUInt, DataTypeFloat:
		return 4
	case DataTypeDouble:
		return 8
	default:
		return 0
	}
}

// IsInteger reports whether dt is an integer element type.
func (dt DataType) IsInteger() bool {
	return dt < DataTypeFloat
}

// Bounds returns the smallest and largest finite value representable by dt.
func (dt DataType) Bounds() (float64, float64) {
	switch dt {
	case DataTypeChar:
		return math.MinInt8, math.MaxInt8
	case DataTypeByte:
		return 0, math.MaxUint8
	case DataTypeShort:
		return math.MinInt16, math.MaxInt16
	case DataTypeUShort:
		return 0, math.MaxUint16
	case DataTypeInt:
		return math.MinInt32, math.MaxInt32
	case DataTypeUInt:
		return 0, math.MaxUint32
	case DataTypeFloat:
		return -math.MaxFloat32, math.MaxFloat32
	default:
		return -math.MaxFloat64, math.MaxFloat64
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionDeflate:
		return "Deflate"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2",
// "lz4", "deflate") to its CompressionType. The empty string means none.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "deflate":
		return CompressionDeflate, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
