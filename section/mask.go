package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/lerc/endian"
	"github.com/arloliu/lerc/errs"
)

// BitMask is a per-pixel validity bitmap in Lerc2 bit order: pixel k lives in
// byte k/8 under bit 0x80>>(k%8).
type BitMask struct {
	bits []byte
	n    int
}

// NewBitMask returns a mask of n pixels, all invalid.
func NewBitMask(n int) *BitMask {
	return &BitMask{bits: make([]byte, (n+7)/8), n: n}
}

// BitMaskFromValidBytes packs a byte-per-pixel mask (non-zero = valid).
func BitMaskFromValidBytes(valid []byte) *BitMask {
	m := NewBitMask(len(valid))
	for k, v := range valid {
		if v != 0 {
			m.SetValid(k)
		}
	}

	return m
}

// Len returns the number of pixels.
func (m *BitMask) Len() int {
	return m.n
}

// Size returns the packed size in bytes.
func (m *BitMask) Size() int {
	return len(m.bits)
}

// Bits returns the packed bitmap.
func (m *BitMask) Bits() []byte {
	return m.bits
}

func (m *BitMask) IsValid(k int) bool {
	return m.bits[k>>3]&(0x80>>(k&7)) != 0
}

func (m *BitMask) SetValid(k int) {
	m.bits[k>>3] |= 0x80 >> (k & 7)
}

func (m *BitMask) SetInvalid(k int) {
	m.bits[k>>3] &^= 0x80 >> (k & 7)
}

func (m *BitMask) SetAllValid() {
	for i := range m.bits {
		m.bits[i] = 0xff
	}
}

func (m *BitMask) SetAllInvalid() {
	clear(m.bits)
}

// CountValid returns the number of valid pixels.
func (m *BitMask) CountValid() int {
	cnt := 0
	for k := 0; k < m.n; k++ {
		if m.IsValid(k) {
			cnt++
		}
	}

	return cnt
}

// Equal reports whether both masks flag the same pixels, ignoring padding bits.
func (m *BitMask) Equal(o *BitMask) bool {
	if m.n != o.n {
		return false
	}
	full := m.n / 8
	if !bytes.Equal(m.bits[:full], o.bits[:full]) {
		return false
	}
	for k := full * 8; k < m.n; k++ {
		if m.IsValid(k) != o.IsValid(k) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of m.
func (m *BitMask) Clone() *BitMask {
	return &BitMask{bits: bytes.Clone(m.bits), n: m.n}
}

// ValidBytes writes one byte per pixel (1 = valid) into dst[:m.Len()].
func (m *BitMask) ValidBytes(dst []byte) {
	for k := 0; k < m.n; k++ {
		if m.IsValid(k) {
			dst[k] = 1
		} else {
			dst[k] = 0
		}
	}
}

// EncodeRLE compresses src with the Lerc2 mask RLE.
//
// The stream is a sequence of blocks, each led by a little-endian int16 count:
// a positive count is followed by that many literal bytes, a negative count by
// one byte repeated -count times. The count -32768 terminates the stream.
func EncodeRLE(src []byte) []byte {
	engine := endian.BlobEngine()
	out := make([]byte, 0, len(src)+2*(len(src)/rleMaxCount+2))

	litStart := 0
	flushLiteral := func(end int) {
		for litStart < end {
			n := min(end-litStart, rleMaxCount)
			out = engine.AppendUint16(out, uint16(int16(n)))
			out = append(out, src[litStart:litStart+n]...)
			litStart += n
		}
	}

	for i := 0; i < len(src); {
		run := 1
		for i+run < len(src) && src[i+run] == src[i] && run < rleMaxCount {
			run++
		}
		if run < rleMinRepeat {
			i += run
			continue
		}

		flushLiteral(i)
		out = engine.AppendUint16(out, uint16(int16(-run)))
		out = append(out, src[i])
		i += run
		litStart = i
	}
	flushLiteral(len(src))

	eof := rleEOF

	return engine.AppendUint16(out, uint16(eof))
}

// MaxRLEDecodedLen returns the largest output an RLE stream of encodedLen
// bytes can expand to. Every repeat block costs 3 bytes and yields at most
// 32767 bytes.
func MaxRLEDecodedLen(encodedLen int) int {
	return encodedLen / 3 * rleMaxCount
}

// DecodeRLE expands an RLE stream from src into dst.
//
// Returns:
//   - int: Number of bytes of src consumed, terminator included
//   - error: ErrInvalidMask if the stream is truncated, would overflow dst,
//     or ends before dst is filled
func DecodeRLE(src []byte, dst []byte) (int, error) {
	engine := endian.BlobEngine()
	pos, idx := 0, 0

	for {
		if pos+2 > len(src) {
			return 0, fmt.Errorf("%w: truncated RLE stream at byte %d", errs.ErrInvalidMask, pos)
		}
		cnt := int16(engine.Uint16(src[pos:]))
		pos += 2
		if cnt == rleEOF {
			if idx != len(dst) {
				return 0, fmt.Errorf("%w: stream fills %d of %d bytes", errs.ErrInvalidMask, idx, len(dst))
			}

			return pos, nil
		}

		if cnt > 0 {
			n := int(cnt)
			if pos+n > len(src) || idx+n > len(dst) {
				return 0, fmt.Errorf("%w: literal block of %d bytes out of bounds", errs.ErrInvalidMask, n)
			}
			copy(dst[idx:], src[pos:pos+n])
			pos += n
			idx += n

			continue
		}

		n := int(-cnt)
		if pos+1 > len(src) || idx+n > len(dst) {
			return 0, fmt.Errorf("%w: repeat block of %d bytes out of bounds", errs.ErrInvalidMask, n)
		}
		fill := src[pos]
		for i := idx; i < idx+n; i++ {
			dst[i] = fill
		}
		pos++
		idx += n
	}
}
