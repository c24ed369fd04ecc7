package lerc2

import (
	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/native"
	"github.com/arloliu/lerc/section"
)

// band is one parsed Lerc2 band blob.
type band struct {
	hdr section.Header
	// mask is nil when every pixel is valid or, with noneValid, when none is.
	mask      *section.BitMask
	noneValid bool
	// payload holds the bytes after the mask, up to BlobSize.
	payload []byte
}

func (b *band) isValid(k int) bool {
	if b.noneValid {
		return false
	}

	return b.mask == nil || b.mask.IsValid(k)
}

func (b *band) allValid() bool {
	return b.mask == nil && !b.noneValid
}

func sameMask(a, b *band) bool {
	if a.noneValid || b.noneValid {
		return a.noneValid == b.noneValid
	}
	if a.mask == nil || b.mask == nil {
		return a.mask == nil && b.mask == nil
	}

	return a.mask.Equal(b.mask)
}

// parseBands splits blob into its concatenated band blobs.
//
// Every band must share the first band's shape and data type. Scanning stops
// at the first position that does not start with the file key; a tail too
// short to hold a key and version is a truncated band and fails.
func parseBands(blob []byte) ([]band, native.Status) {
	var (
		bands []band
		prev  *section.BitMask
		pos   int
	)

	for pos < len(blob) {
		rest := blob[pos:]
		if len(bands) > 0 && len(rest) < section.MinBlobSize {
			return nil, native.StatusFailed
		}
		if len(bands) > 0 && !section.HasFileKey(rest) {
			break
		}

		var b band
		if err := b.hdr.Parse(rest); err != nil {
			return nil, native.StatusFailed
		}
		size := int(b.hdr.BlobSize)
		if size > len(rest) {
			return nil, native.StatusFailed
		}
		raw := rest[:size]

		if b.hdr.Version >= 3 && section.ComputeChecksum(raw) != b.hdr.Checksum {
			return nil, native.StatusFailed
		}
		if len(bands) > 0 && !sameShape(&bands[0].hdr, &b.hdr) {
			return nil, native.StatusFailed
		}

		maskEnd, st := readMask(&b, raw, prev)
		if !st.OK() {
			return nil, st
		}
		b.payload = raw[maskEnd:]
		prev = b.mask
		bands = append(bands, b)
		pos += size
	}

	if len(bands) == 0 {
		return nil, native.StatusFailed
	}

	return bands, native.StatusOK
}

func sameShape(a, b *section.Header) bool {
	return a.NumRows == b.NumRows && a.NumCols == b.NumCols &&
		a.NumDepth == b.NumDepth && a.DataType == b.DataType
}

// readMask decodes the mask section following the header and returns the
// offset of the first payload byte.
//
// A band with partially valid pixels and no mask bytes reuses prev.
func readMask(b *band, raw []byte, prev *section.BitMask) (int, native.Status) {
	pos := b.hdr.Size()
	if pos+4 > len(raw) {
		return 0, native.StatusFailed
	}
	numBytes := int(int32(endian.BlobEngine().Uint32(raw[pos:])))
	pos += 4
	if numBytes < 0 || pos+numBytes > len(raw) {
		return 0, native.StatusFailed
	}

	n := b.hdr.NumPixels()
	numValid := int(b.hdr.NumValid)

	switch {
	case numValid == n:
		if numBytes != 0 {
			return 0, native.StatusFailed
		}
		b.mask = nil
	case numValid == 0:
		if numBytes != 0 {
			return 0, native.StatusFailed
		}
		b.noneValid = true
	case numBytes > 0:
		if (n+7)/8 > section.MaxRLEDecodedLen(numBytes) {
			return 0, native.StatusFailed
		}
		m := section.NewBitMask(n)
		if _, err := section.DecodeRLE(raw[pos:pos+numBytes], m.Bits()); err != nil {
			return 0, native.StatusFailed
		}
		if m.CountValid() != numValid {
			return 0, native.StatusFailed
		}
		b.mask = m
	default:
		if prev == nil || prev.CountValid() != numValid {
			return 0, native.StatusFailed
		}
		b.mask = prev
	}

	return pos + numBytes, native.StatusOK
}
