package lerc2

import (
	"math"

	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/native"
	"github.com/arloliu/lerc/section"
)

// ComputeCompressedSize returns the exact size Encode will produce for data.
func (c *Codec) ComputeCompressedSize(data []byte, p native.EncodeParams) (uint32, native.Status) {
	out, st := encodeBlob(data, p)
	if !st.OK() {
		return 0, st
	}

	return uint32(len(out)), native.StatusOK //nolint: gosec
}

// Encode writes the Lerc2 blob for data into out.
//
// Returns native.StatusBufferTooSmall without writing when out cannot hold the
// whole blob.
func (c *Codec) Encode(data []byte, p native.EncodeParams, out []byte) (uint32, native.Status) {
	blob, st := encodeBlob(data, p)
	if !st.OK() {
		return 0, st
	}
	if len(out) < len(blob) {
		return 0, native.StatusBufferTooSmall
	}

	return uint32(copy(out, blob)), native.StatusOK //nolint: gosec
}

func checkEncodeParams(data []byte, p native.EncodeParams) native.Status {
	if p.NumCols <= 0 || p.NumRows <= 0 || p.NumValuesPerPixel <= 0 || p.NumBands <= 0 {
		return native.StatusWrongParam
	}
	if !p.DataType.IsValid() || len(data) < p.NumValues()*p.DataType.Size() {
		return native.StatusWrongParam
	}
	if p.NumMasks != 0 && p.NumMasks != 1 && p.NumMasks != p.NumBands {
		return native.StatusWrongParam
	}
	if len(p.ValidBytes) < p.NumCols*p.NumRows*p.NumMasks {
		return native.StatusWrongParam
	}
	if math.IsNaN(p.MaxZError) || p.MaxZError < 0 {
		return native.StatusWrongParam
	}
	if int64(p.NumCols)*int64(p.NumRows) > math.MaxInt32 {
		return native.StatusWrongParam
	}

	return native.StatusOK
}

// encodeBlob encodes every band of data and concatenates the band blobs.
func encodeBlob(data []byte, p native.EncodeParams) ([]byte, native.Status) {
	if st := checkEncodeParams(data, p); !st.OK() {
		return nil, st
	}

	pixels := p.NumCols * p.NumRows
	bandBytes := pixels * p.NumValuesPerPixel * p.DataType.Size()

	var (
		out  []byte
		prev *section.BitMask
	)
	for i := 0; i < p.NumBands; i++ {
		var mask *section.BitMask
		switch p.NumMasks {
		case 0:
		case 1:
			mask = section.BitMaskFromValidBytes(p.ValidBytes[:pixels])
		default:
			mask = section.BitMaskFromValidBytes(p.ValidBytes[i*pixels : (i+1)*pixels])
		}
		if mask != nil && mask.CountValid() == pixels {
			mask = nil
		}

		enc := bandEncoder{
			p:    p,
			data: data[i*bandBytes : (i+1)*bandBytes],
			mask: mask,
			prev: prev,
		}
		var st native.Status
		out, st = enc.appendTo(out)
		if !st.OK() {
			return nil, st
		}
		prev = mask
	}

	return out, native.StatusOK
}

// bandEncoder writes one band blob.
type bandEncoder struct {
	p    native.EncodeParams
	data []byte // native byte order elements of this band
	mask *section.BitMask
	prev *section.BitMask
}

func (e *bandEncoder) isValid(k int) bool {
	return e.mask == nil || e.mask.IsValid(k)
}

func (e *bandEncoder) appendTo(dst []byte) ([]byte, native.Status) {
	p := e.p
	depth := p.NumValuesPerPixel
	size := p.DataType.Size()
	pixels := p.NumCols * p.NumRows
	host := endian.NativeEngine()

	hdr := section.NewHeader(int32(p.NumRows), int32(p.NumCols), int32(depth), p.DataType) //nolint: gosec

	mins := make([]float64, depth)
	maxs := make([]float64, depth)
	for m := range mins {
		mins[m], maxs[m] = math.Inf(1), math.Inf(-1)
	}

	numValid := 0
	for k := 0; k < pixels; k++ {
		if !e.isValid(k) {
			continue
		}
		numValid++
		for m := 0; m < depth; m++ {
			v := format.Element(host, p.DataType, e.data[(k*depth+m)*size:])
			if math.IsNaN(v) {
				return nil, native.StatusNaN
			}
			mins[m] = math.Min(mins[m], v)
			maxs[m] = math.Max(maxs[m], v)
		}
	}

	hdr.NumValid = int32(numValid) //nolint: gosec
	if numValid > 0 {
		hdr.ZMin, hdr.ZMax = mins[0], maxs[0]
		for m := 1; m < depth; m++ {
			hdr.ZMin = math.Min(hdr.ZMin, mins[m])
			hdr.ZMax = math.Max(hdr.ZMax, maxs[m])
		}
	}

	start := len(dst)
	dst = hdr.AppendTo(dst)
	dst = e.appendMask(dst, numValid, pixels)

	if numValid > 0 && !hdr.IsConst() {
		var constDepth bool
		dst, constDepth = appendRanges(dst, p.DataType, mins, maxs)
		if !constDepth {
			dst = append(dst, payloadOneSweep)
			dst = e.appendValues(dst, pixels)
		}
	}

	return finishBand(dst, start, &hdr), native.StatusOK
}

// appendMask writes the mask section. Fully valid and fully invalid bands carry
// no mask bytes, nor does a band whose mask repeats the previous band's.
func (e *bandEncoder) appendMask(dst []byte, numValid, pixels int) []byte {
	engine := endian.BlobEngine()
	if numValid == 0 || numValid == pixels || (e.prev != nil && e.prev.Equal(e.mask)) {
		return engine.AppendUint32(dst, 0)
	}

	rle := section.EncodeRLE(e.mask.Bits())
	dst = engine.AppendUint32(dst, uint32(len(rle))) //nolint: gosec

	return append(dst, rle...)
}

func (e *bandEncoder) appendValues(dst []byte, pixels int) []byte {
	depth := e.p.NumValuesPerPixel
	size := e.p.DataType.Size()
	src, blob := endian.NativeEngine(), endian.BlobEngine()

	for k := 0; k < pixels; k++ {
		if !e.isValid(k) {
			continue
		}
		for m := 0; m < depth; m++ {
			off := (k*depth + m) * size
			dst = appendElement(dst, src, blob, e.data[off:off+size])
		}
	}

	return dst
}

// appendRanges writes the per-depth minima and maxima and reports whether
// every depth slice is constant.
func appendRanges(dst []byte, dt format.DataType, mins, maxs []float64) ([]byte, bool) {
	engine := endian.BlobEngine()
	size := dt.Size()
	equal := true

	for _, vals := range [][]float64{mins, maxs} {
		for _, v := range vals {
			n := len(dst)
			dst = append(dst, make([]byte, size)...)
			// values were read from elements of dt, so they always fit
			_ = format.PutElement(engine, dt, dst[n:], v)
		}
	}
	for m := range mins {
		if mins[m] != maxs[m] {
			equal = false
		}
	}

	return dst, equal
}

// appendElement converts one element from src to blob byte order.
func appendElement(dst []byte, src, blob endian.EndianEngine, elem []byte) []byte {
	switch len(elem) {
	case 1:
		return append(dst, elem[0])
	case 2:
		return blob.AppendUint16(dst, src.Uint16(elem))
	case 4:
		return blob.AppendUint32(dst, src.Uint32(elem))
	default:
		return blob.AppendUint64(dst, src.Uint64(elem))
	}
}

func finishBand(dst []byte, start int, hdr *section.Header) []byte {
	b := dst[start:]
	hdr.BlobSize = int32(len(b)) //nolint: gosec
	copy(b, hdr.Bytes())
	section.PatchChecksum(b)

	return dst
}
