//go:build cgo && lerc

package native

// #cgo LDFLAGS: -lLerc
// #include <stdint.h>
// #include <Lerc_c_api.h>
import "C"

import "unsafe"

// CLibrary calls the liblerc C API.
type CLibrary struct{}

var _ Library = CLibrary{}

// NewCLibrary returns the cgo binding to liblerc.
func NewCLibrary() CLibrary {
	return CLibrary{}
}

// Available reports whether the cgo binding to liblerc is compiled in.
func Available() bool {
	return true
}

func bytePtr(b []byte) *C.uchar {
	if len(b) == 0 {
		return nil
	}

	return (*C.uchar)(unsafe.Pointer(&b[0]))
}

func voidPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}

	return unsafe.Pointer(&b[0])
}

func (CLibrary) GetBlobInfo(blob []byte, info []uint32, dataRange []float64) Status {
	if len(blob) == 0 || len(info) == 0 || len(dataRange) == 0 {
		return StatusWrongParam
	}

	return Status(C.lerc_getBlobInfo(
		bytePtr(blob), C.uint(len(blob)),
		(*C.uint)(unsafe.Pointer(&info[0])),
		(*C.double)(unsafe.Pointer(&dataRange[0])),
		C.int(len(info)), C.int(len(dataRange)),
	))
}

func (CLibrary) DecodeToDouble(blob []byte, p DecodeParams, validBytes []byte, data []float64) Status {
	if len(blob) == 0 || len(data) < p.NumValues() || len(validBytes) < p.MaskLen() || len(data) == 0 {
		return StatusWrongParam
	}

	return Status(C.lerc_decodeToDouble(
		bytePtr(blob), C.uint(len(blob)),
		C.int(p.NumMasks), bytePtr(validBytes),
		C.int(p.NumValuesPerPixel), C.int(p.NumCols), C.int(p.NumRows), C.int(p.NumBands),
		(*C.double)(unsafe.Pointer(&data[0])),
	))
}

func (CLibrary) ComputeCompressedSize(data []byte, p EncodeParams) (uint32, Status) {
	if len(data) < p.NumValues()*p.DataType.Size() {
		return 0, StatusWrongParam
	}

	var n C.uint
	st := Status(C.lerc_computeCompressedSize(
		voidPtr(data), C.uint(p.DataType),
		C.int(p.NumValuesPerPixel), C.int(p.NumCols), C.int(p.NumRows), C.int(p.NumBands),
		C.int(p.NumMasks), bytePtr(p.ValidBytes),
		C.double(p.MaxZError), &n,
	))

	return uint32(n), st
}

func (CLibrary) Encode(data []byte, p EncodeParams, out []byte) (uint32, Status) {
	if len(data) < p.NumValues()*p.DataType.Size() || len(out) == 0 {
		return 0, StatusWrongParam
	}

	var n C.uint
	st := Status(C.lerc_encode(
		voidPtr(data), C.uint(p.DataType),
		C.int(p.NumValuesPerPixel), C.int(p.NumCols), C.int(p.NumRows), C.int(p.NumBands),
		C.int(p.NumMasks), bytePtr(p.ValidBytes),
		C.double(p.MaxZError),
		bytePtr(out), C.uint(len(out)), &n,
	))

	return uint32(n), st
}
