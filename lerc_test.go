package lerc

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lerc/blob"
	"github.com/arloliu/lerc/errs"
	"github.com/arloliu/lerc/format"
)

func TestEncodeDecode(t *testing.T) {
	data := make([]float64, 3*4*2)
	for i := range data {
		data[i] = float64(float32(math.Sin(float64(i)) * 100))
	}

	buf, err := Encode(data, 3, 4, 2, 0)
	require.NoError(t, err)

	info, rng, err := Inspect(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(4), info.NumCols)
	require.Equal(t, uint32(3), info.NumRows)
	require.Equal(t, uint32(2), info.NumBands)
	require.Equal(t, format.DataTypeFloat, info.DataType)
	require.Equal(t, uint32(len(buf)), info.BlobSize)
	require.LessOrEqual(t, rng.ZMin, rng.ZMax)

	ds, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, data, ds.Data)
	require.Equal(t, info, ds.Info)
}

func TestEncodeGrid(t *testing.T) {
	g := blob.Grid{
		Data:     []float64{1, 2, 3, 4},
		NumRows:  2,
		NumCols:  2,
		NumBands: 1,
		Mask:     []byte{1, 0, 1, 1},
		NumMasks: 1,
	}
	buf, err := EncodeGrid(g, 0)
	require.NoError(t, err)

	ds, err := DecodeReader(bytes.NewReader(buf))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 1, 1}, ds.Mask)
	require.Equal(t, []float64{1, 0, 3, 4}, ds.Data)
}

func TestDecodeFile(t *testing.T) {
	buf, err := Encode([]float64{5, 5, 5, 5}, 2, 2, 1, 0)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "const.lerc")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	ds, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 5, 5, 5}, ds.Data)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, errs.ErrHeaderParse)

	_, err = Decode([]byte("Lerc2 \x04\x00\x00\x00garbage"))
	require.ErrorIs(t, err, errs.ErrHeaderParse)
	_, ok := errs.StatusCode(err)
	require.True(t, ok)
}

func TestNewDecoderEncoder(t *testing.T) {
	enc, err := NewEncoder(blob.WithDataType(format.DataTypeByte), blob.WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	dec, err := NewDecoder(blob.WithCompression(format.CompressionZstd), blob.WithInspectCache(4))
	require.NoError(t, err)

	buf, err := enc.Encode([]float64{0, 1, 2, 255}, 1, 4, 1, 0)
	require.NoError(t, err)

	ds, err := dec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, format.DataTypeByte, ds.Info.DataType)
	require.Equal(t, []float64{0, 1, 2, 255}, ds.Data)

	_, err = NewEncoder(blob.WithDataType(format.DataType(12)))
	require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
}
