package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNativeEngine(t *testing.T) {
	var v uint32 = 0x01020304
	raw := (*[4]byte)(unsafe.Pointer(&v))

	engine := NativeEngine()
	require.Equal(t, v, engine.Uint32(raw[:]), "native engine must read host memory as-is")

	buf := make([]byte, 4)
	engine.PutUint32(buf, v)
	require.Equal(t, raw[:], buf)
}

func TestBlobEngine(t *testing.T) {
	engine := BlobEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint16(nil, 0x0102)
	require.Equal(t, []byte{0x02, 0x01}, buf)
}

func TestIsNativeLittleEndian(t *testing.T) {
	var v uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&v))[0]

	require.Equal(t, first == 0x02, IsNativeLittleEndian())
	require.Equal(t, IsNativeLittleEndian(), CompareNativeEndian(GetLittleEndianEngine()))
	require.NotEqual(t, CompareNativeEndian(GetLittleEndianEngine()), CompareNativeEndian(GetBigEndianEngine()))
}

func TestEngines(t *testing.T) {
	little := GetLittleEndianEngine()
	big := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), little)
	require.Implements(t, (*EndianEngine)(nil), big)

	lb := make([]byte, 8)
	bb := make([]byte, 8)
	little.PutUint64(lb, 0x0102030405060708)
	big.PutUint64(bb, 0x0102030405060708)

	require.Equal(t, byte(0x08), lb[0])
	require.Equal(t, byte(0x01), bb[0])
	require.Equal(t, uint64(0x0102030405060708), little.Uint64(lb))
	require.Equal(t, uint64(0x0102030405060708), big.Uint64(bb))
}
