package section

import (
	"testing"

	"github.com/arloliu/lerc/errs"
	"github.com/stretchr/testify/require"
)

func TestBitMask(t *testing.T) {
	m := NewBitMask(10)
	require.Equal(t, 10, m.Len())
	require.Equal(t, 2, m.Size())
	require.Equal(t, 0, m.CountValid())

	m.SetValid(0)
	m.SetValid(9)
	require.Equal(t, []byte{0x80, 0x40}, m.Bits(), "bits are MSB first")
	require.True(t, m.IsValid(0))
	require.False(t, m.IsValid(1))
	require.Equal(t, 2, m.CountValid())

	m.SetInvalid(0)
	require.False(t, m.IsValid(0))

	m.SetAllValid()
	require.Equal(t, 10, m.CountValid())
	m.SetAllInvalid()
	require.Equal(t, 0, m.CountValid())
}

func TestBitMask_ValidBytes(t *testing.T) {
	valid := []byte{1, 0, 0, 3, 1, 0, 1, 1, 0}
	m := BitMaskFromValidBytes(valid)
	require.Equal(t, 5, m.CountValid())

	out := make([]byte, len(valid))
	m.ValidBytes(out)
	require.Equal(t, []byte{1, 0, 0, 1, 1, 0, 1, 1, 0}, out)
}

func TestBitMask_Equal(t *testing.T) {
	a := BitMaskFromValidBytes([]byte{1, 0, 1})
	b := a.Clone()
	require.True(t, a.Equal(b))

	// padding bits are ignored
	b.Bits()[0] |= 0x01
	require.True(t, a.Equal(b))

	b.SetInvalid(2)
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(NewBitMask(4)))
}

func TestRLE_RoundTrip(t *testing.T) {
	long := make([]byte, 70000)
	for i := 40000; i < len(long); i++ {
		long[i] = byte(i)
	}

	tests := []struct {
		name string
		src  []byte
	}{
		{"empty", nil},
		{"single", []byte{0xaa}},
		{"short run stays literal", []byte{1, 1, 1, 1, 2}},
		{"repeat", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"mixed", []byte{1, 2, 3, 0, 0, 0, 0, 0, 0, 9, 8, 7, 7, 7, 7, 7}},
		{"longer than one block", long},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := EncodeRLE(tt.src)
			dst := make([]byte, len(tt.src))
			n, err := DecodeRLE(enc, dst)
			require.NoError(t, err)
			require.Equal(t, len(enc), n)
			require.Equal(t, len(tt.src), len(dst))
			if len(tt.src) > 0 {
				require.Equal(t, tt.src, dst)
			}
		})
	}
}

func TestEncodeRLE_Layout(t *testing.T) {
	enc := EncodeRLE([]byte{0, 0, 0, 0, 0, 0, 7})
	require.Equal(t, []byte{
		0xfa, 0xff, 0x00, // repeat 6 x 0x00
		0x01, 0x00, 0x07, // 1 literal
		0x00, 0x80, // terminator
	}, enc)
}

func TestDecodeRLE_Errors(t *testing.T) {
	dst := make([]byte, 4)

	_, err := DecodeRLE([]byte{0x02}, dst)
	require.ErrorIs(t, err, errs.ErrInvalidMask)

	_, err = DecodeRLE([]byte{0x03, 0x00, 1, 2}, dst)
	require.ErrorIs(t, err, errs.ErrInvalidMask, "literal runs past the input")

	_, err = DecodeRLE([]byte{0xf6, 0xff, 1, 0x00, 0x80}, dst)
	require.ErrorIs(t, err, errs.ErrInvalidMask, "repeat overflows the output")

	_, err = DecodeRLE([]byte{0x01, 0x00, 5}, dst)
	require.ErrorIs(t, err, errs.ErrInvalidMask, "missing terminator")

	_, err = DecodeRLE([]byte{0xfe, 0xff, 0xff, 0x00, 0x80}, dst)
	require.ErrorIs(t, err, errs.ErrInvalidMask, "terminator before the output is filled")
}

func TestMaxRLEDecodedLen(t *testing.T) {
	require.Equal(t, 0, MaxRLEDecodedLen(2))
	require.Equal(t, 32767, MaxRLEDecodedLen(5))

	// a single full repeat block reaches the bound exactly
	src := []byte{0x01, 0x80, 0xff, 0x00, 0x80}
	dst := make([]byte, MaxRLEDecodedLen(len(src)))
	n, err := DecodeRLE(src, dst)
	require.NoError(t, err)
	require.Equal(t, len(src), n)
	require.Equal(t, byte(0xff), dst[len(dst)-1])
}
