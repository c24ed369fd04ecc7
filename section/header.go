package section

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/format"
)

// Header is the fixed-layout header at the start of every Lerc2 band blob.
//
// All fields are little-endian on disk. Fields introduced by later versions
// are zero when parsed from an older blob, except NumDepth which defaults to 1.
type Header struct {
	Version  int32
	Checksum uint32 // v3+

	NumRows        int32
	NumCols        int32
	NumDepth       int32 // v4+, values per pixel
	NumValid       int32
	MicroBlockSize int32
	BlobSize       int32 // bytes of this band blob, header included
	DataType       format.DataType
	NumBlobsMore   int32 // v6+

	PassNoDataValues bool // v6+
	IsInt            bool // v6+

	MaxZError float64
	ZMin      float64
	ZMax      float64

	NoDataValue     float64 // v6+
	NoDataValueOrig float64 // v6+
}

// NewHeader returns a WriteVersion header for a band of the given shape.
// NumValid, BlobSize and the value range are filled in by the encoder.
func NewHeader(nRows, nCols, nDepth int32, dt format.DataType) Header {
	return Header{
		Version:        WriteVersion,
		NumRows:        nRows,
		NumCols:        nCols,
		NumDepth:       nDepth,
		MicroBlockSize: DefaultMicroBlockSize,
		DataType:       dt,
	}
}

// Size returns the encoded size of h.
func (h *Header) Size() int {
	return HeaderSize(h.Version)
}

// NumPixels returns rows*cols.
func (h *Header) NumPixels() int {
	return int(h.NumRows) * int(h.NumCols)
}

// IsConst reports whether every valid value of the band equals ZMin.
func (h *Header) IsConst() bool {
	return h.ZMin == h.ZMax
}

// Parse parses the header at the start of data.
//
// Parameters:
//   - data: Band blob, at least HeaderSize(version) bytes
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidFileKey, ErrUnsupportedVer,
//     ErrInvalidDimensions or ErrUnsupportedDataType
func (h *Header) Parse(data []byte) error {
	if len(data) < MinBlobSize {
		return errs.ErrInvalidHeaderSize
	}
	if !bytes.Equal(data[:FileKeyLen], []byte(FileKey)) {
		return errs.ErrInvalidFileKey
	}

	engine := endian.BlobEngine()
	r := reader{b: data, off: VersionOffset, engine: engine}

	version := r.readInt32()
	size := HeaderSize(version)
	if size == 0 {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVer, version)
	}
	if len(data) < size {
		return fmt.Errorf("%w: need %d bytes for v%d, have %d", errs.ErrInvalidHeaderSize, size, version, len(data))
	}

	*h = Header{Version: version, NumDepth: 1}
	if version >= 3 {
		h.Checksum = r.readUint32()
	}
	h.NumRows = r.readInt32()
	h.NumCols = r.readInt32()
	if version >= 4 {
		h.NumDepth = r.readInt32()
	}
	h.NumValid = r.readInt32()
	h.MicroBlockSize = r.readInt32()
	h.BlobSize = r.readInt32()
	h.DataType = format.DataType(r.readInt32())
	if version >= 6 {
		h.NumBlobsMore = r.readInt32()
		flags := r.readBytes(4)
		h.PassNoDataValues = flags[0] != 0
		h.IsInt = flags[1] != 0
	}
	h.MaxZError = r.readFloat64()
	h.ZMin = r.readFloat64()
	h.ZMax = r.readFloat64()
	if version >= 6 {
		h.NoDataValue = r.readFloat64()
		h.NoDataValueOrig = r.readFloat64()
	}

	return h.validate()
}

func (h *Header) validate() error {
	if h.NumRows <= 0 || h.NumCols <= 0 || h.NumDepth <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", errs.ErrInvalidDimensions, h.NumRows, h.NumCols, h.NumDepth)
	}
	if h.NumValid < 0 || int64(h.NumValid) > int64(h.NumRows)*int64(h.NumCols) {
		return fmt.Errorf("%w: %d valid pixels in %dx%d", errs.ErrInvalidDimensions, h.NumValid, h.NumRows, h.NumCols)
	}
	if !h.DataType.IsValid() {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedDataType, uint32(h.DataType))
	}
	if int(h.BlobSize) < h.Size() {
		return fmt.Errorf("%w: blob size %d below header size %d", errs.ErrInvalidHeaderSize, h.BlobSize, h.Size())
	}

	return nil
}

// Bytes serializes h using the layout of h.Version.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, h.Size()))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := endian.BlobEngine()

	dst = append(dst, FileKey...)
	dst = engine.AppendUint32(dst, uint32(h.Version))
	if h.Version >= 3 {
		dst = engine.AppendUint32(dst, h.Checksum)
	}
	dst = engine.AppendUint32(dst, uint32(h.NumRows))
	dst = engine.AppendUint32(dst, uint32(h.NumCols))
	if h.Version >= 4 {
		dst = engine.AppendUint32(dst, uint32(h.NumDepth))
	}
	dst = engine.AppendUint32(dst, uint32(h.NumValid))
	dst = engine.AppendUint32(dst, uint32(h.MicroBlockSize))
	dst = engine.AppendUint32(dst, uint32(h.BlobSize))
	dst = engine.AppendUint32(dst, uint32(h.DataType))
	if h.Version >= 6 {
		dst = engine.AppendUint32(dst, uint32(h.NumBlobsMore))
		dst = append(dst, boolByte(h.PassNoDataValues), boolByte(h.IsInt), 0, 0)
	}
	dst = engine.AppendUint64(dst, math.Float64bits(h.MaxZError))
	dst = engine.AppendUint64(dst, math.Float64bits(h.ZMin))
	dst = engine.AppendUint64(dst, math.Float64bits(h.ZMax))
	if h.Version >= 6 {
		dst = engine.AppendUint64(dst, math.Float64bits(h.NoDataValue))
		dst = engine.AppendUint64(dst, math.Float64bits(h.NoDataValueOrig))
	}

	return dst
}

// ParseHeader parses a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

// HasFileKey reports whether data starts with the Lerc2 file key.
func HasFileKey(data []byte) bool {
	return len(data) >= FileKeyLen && string(data[:FileKeyLen]) == FileKey
}

func boolByte(b bool) byte {
	if b {
		return 1
	}

	return 0
}

// reader reads consecutive fields; callers check the length up front.
type reader struct {
	b      []byte
	off    int
	engine endian.EndianEngine
}

func (r *reader) readInt32() int32 {
	return int32(r.readUint32())
}

func (r *reader) readUint32() uint32 {
	v := r.engine.Uint32(r.b[r.off:])
	r.off += 4

	return v
}

func (r *reader) readFloat64() float64 {
	v := math.Float64frombits(r.engine.Uint64(r.b[r.off:]))
	r.off += 8

	return v
}

func (r *reader) readBytes(n int) []byte {
	v := r.b[r.off : r.off+n]
	r.off += n

	return v
}
