package lerc2

import (
	"math"

	"github.com/arloliu/lerc/native"
)

// Codec is a stateless Lerc2 codec. The zero value is ready to use and safe
// for concurrent use.
type Codec struct{}

var _ native.Library = (*Codec)(nil)

// NewCodec returns a Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// GetBlobInfo fills info and dataRange from the band headers of blob.
//
// Up to len(info) and len(dataRange) fields are written, in native field
// order. n_valid_pixels is the first band's count. The range spans every band
// with at least one valid pixel.
func (c *Codec) GetBlobInfo(blob []byte, info []uint32, dataRange []float64) native.Status {
	if len(blob) == 0 || (len(info) == 0 && len(dataRange) == 0) {
		return native.StatusWrongParam
	}

	bands, st := parseBands(blob)
	if !st.OK() {
		return st
	}

	first := &bands[0].hdr
	blobSize := 0
	for i := range bands {
		blobSize += int(bands[i].hdr.BlobSize)
	}

	fields := [native.InfoFieldCount]uint32{
		native.InfoVersion:           uint32(first.Version),
		native.InfoDataType:          uint32(first.DataType),
		native.InfoNumValuesPerPixel: uint32(first.NumDepth),
		native.InfoNumCols:           uint32(first.NumCols),
		native.InfoNumRows:           uint32(first.NumRows),
		native.InfoNumBands:          uint32(len(bands)),
		native.InfoNumValidPixels:    uint32(first.NumValid),
		native.InfoBlobSize:          uint32(blobSize),
		native.InfoNumMasks:          uint32(countMasks(bands)),
	}
	copy(info, fields[:])

	zMin, zMax, maxZErr := math.Inf(1), math.Inf(-1), 0.0
	for i := range bands {
		h := &bands[i].hdr
		maxZErr = math.Max(maxZErr, h.MaxZError)
		if h.NumValid == 0 {
			continue
		}
		zMin = math.Min(zMin, h.ZMin)
		zMax = math.Max(zMax, h.ZMax)
	}
	if zMin > zMax {
		zMin, zMax = 0, 0
	}

	ranges := [native.RangeFieldCount]float64{
		native.RangeZMin:        zMin,
		native.RangeZMax:        zMax,
		native.RangeMaxZErrUsed: maxZErr,
	}
	copy(dataRange, ranges[:])

	return native.StatusOK
}

// countMasks returns 0 when every band is fully valid, 1 when all bands share
// one mask and the band count otherwise.
func countMasks(bands []band) int {
	allValid := true
	shared := true
	for i := range bands {
		if !bands[i].allValid() {
			allValid = false
		}
		if i > 0 && !sameMask(&bands[0], &bands[i]) {
			shared = false
		}
	}

	switch {
	case allValid:
		return 0
	case shared:
		return 1
	default:
		return len(bands)
	}
}

// DecodeToDouble decodes the first p.NumBands bands of blob into data.
//
// Invalid pixels decode as 0. With p.NumMasks == p.NumBands each band's mask
// is written to its own slice of validBytes; with 1, the first band's mask is
// written; with 0, validBytes is untouched.
func (c *Codec) DecodeToDouble(blob []byte, p native.DecodeParams, validBytes []byte, data []float64) native.Status {
	if len(blob) == 0 || p.NumBands <= 0 {
		return native.StatusWrongParam
	}

	bands, st := parseBands(blob)
	if !st.OK() {
		return st
	}

	hdr := &bands[0].hdr
	if p.NumCols != int(hdr.NumCols) || p.NumRows != int(hdr.NumRows) ||
		p.NumValuesPerPixel != int(hdr.NumDepth) || p.NumBands > len(bands) {
		return native.StatusWrongParam
	}
	if p.NumMasks != 0 && p.NumMasks != 1 && p.NumMasks != p.NumBands {
		return native.StatusWrongParam
	}
	if len(data) < p.NumValues() || len(validBytes) < p.MaskLen() {
		return native.StatusBufferTooSmall
	}

	pixels := hdr.NumPixels()
	bandLen := pixels * int(hdr.NumDepth)
	for i := 0; i < p.NumBands; i++ {
		b := &bands[i]
		if st := decodeBand(b, data[i*bandLen:(i+1)*bandLen]); !st.OK() {
			return st
		}

		if p.NumMasks == p.NumBands || (p.NumMasks == 1 && i == 0) {
			writeValidBytes(b, validBytes[i*pixels:(i+1)*pixels])
		}
	}

	return native.StatusOK
}

func writeValidBytes(b *band, dst []byte) {
	switch {
	case b.noneValid:
		clear(dst)
		return
	case b.mask == nil:
		for k := range dst {
			dst[k] = 1
		}

		return
	}
	b.mask.ValidBytes(dst)
}
