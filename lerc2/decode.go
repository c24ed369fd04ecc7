package lerc2

import (
	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/native"
)

// Payload layouts selected by the byte following the depth ranges.
const (
	payloadTiled    = 0
	payloadOneSweep = 1
)

// decodeBand expands one band into out, which holds NumPixels*NumDepth values.
func decodeBand(b *band, out []float64) native.Status {
	clear(out)

	h := &b.hdr
	if h.NumValid == 0 {
		return native.StatusOK
	}
	if h.IsConst() {
		fillConst(b, out, nil, h.ZMin)
		remapNoData(b, out)

		return native.StatusOK
	}

	engine := endian.BlobEngine()
	depth := int(h.NumDepth)
	size := h.DataType.Size()
	payload := b.payload

	if h.Version >= 4 {
		if len(payload) < 2*depth*size {
			return native.StatusFailed
		}
		mins := make([]float64, depth)
		equal := true
		for m := 0; m < depth; m++ {
			mins[m] = format.Element(engine, h.DataType, payload[m*size:])
			if mins[m] != format.Element(engine, h.DataType, payload[(depth+m)*size:]) {
				equal = false
			}
		}
		payload = payload[2*depth*size:]

		if equal {
			fillConst(b, out, mins, 0)
			remapNoData(b, out)

			return native.StatusOK
		}
	}

	if len(payload) == 0 {
		return native.StatusFailed
	}
	if payload[0] != payloadOneSweep {
		return native.StatusUnsupported
	}
	payload = payload[1:]

	if len(payload) < int(h.NumValid)*depth*size {
		return native.StatusFailed
	}

	pos := 0
	for k := 0; k < h.NumPixels(); k++ {
		if !b.isValid(k) {
			continue
		}
		for m := 0; m < depth; m++ {
			out[k*depth+m] = format.Element(engine, h.DataType, payload[pos:])
			pos += size
		}
	}
	remapNoData(b, out)

	return native.StatusOK
}

// fillConst writes a constant into every valid pixel, per depth slice when
// perDepth is set.
func fillConst(b *band, out []float64, perDepth []float64, z float64) {
	depth := int(b.hdr.NumDepth)
	for k := 0; k < b.hdr.NumPixels(); k++ {
		if !b.isValid(k) {
			continue
		}
		for m := 0; m < depth; m++ {
			if perDepth != nil {
				out[k*depth+m] = perDepth[m]
			} else {
				out[k*depth+m] = z
			}
		}
	}
}

// remapNoData restores the caller's original no-data value in valid pixels of
// version 6 bands that substituted it during encoding.
func remapNoData(b *band, out []float64) {
	h := &b.hdr
	if h.Version < 6 || !h.PassNoDataValues || h.NoDataValue == h.NoDataValueOrig {
		return
	}

	depth := int(h.NumDepth)
	for k := 0; k < h.NumPixels(); k++ {
		if !b.isValid(k) {
			continue
		}
		for m := 0; m < depth; m++ {
			if out[k*depth+m] == h.NoDataValue {
				out[k*depth+m] = h.NoDataValueOrig
			}
		}
	}
}
