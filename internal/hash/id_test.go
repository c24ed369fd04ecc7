package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlob(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Blob([]byte(tt.data)))
		})
	}
}

func TestBlobKey(t *testing.T) {
	data := []byte("Lerc2 \x04\x00\x00\x00")

	k1 := BlobKey(data)
	k2 := BlobKey(append([]byte(nil), data...))
	require.Equal(t, k1, k2)
	require.Equal(t, len(data), k1.Len)

	k3 := BlobKey(data[:len(data)-1])
	require.NotEqual(t, k1, k3)
}
