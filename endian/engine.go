// Package endian provides the byte order engines used when marshaling LERC data.
//
// Two orders matter to the binding:
//
//   - Blob order: Lerc2 blobs are always little-endian on disk. BlobEngine returns it.
//   - Native order: element buffers handed to the C library are read through raw
//     pointers, so they must be laid out in the host's byte order. NativeEngine
//     returns it.
//
// On little-endian hosts (x86-64, arm64) both engines are binary.LittleEndian.
//
// All engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

func detectNative() EndianEngine {
	// 0x0100: the first byte in memory is 0x01 only on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// NativeEngine returns the host byte order.
func NativeEngine() EndianEngine {
	return nativeEngine
}

// BlobEngine returns the byte order of every multi-byte field in a Lerc2 blob.
func BlobEngine() EndianEngine {
	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return nativeEngine == EndianEngine(binary.LittleEndian)
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
