package native

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialize_NoOverlap(t *testing.T) {
	fake := &fakeLibrary{delay: time.Millisecond}
	a := Serialize(fake)
	b := Serialize(fake)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lib := a
			if i%2 == 1 {
				lib = b
			}
			switch i % 4 {
			case 0:
				lib.GetBlobInfo([]byte{1}, make([]uint32, InfoFieldCount), make([]float64, RangeFieldCount))
			case 1:
				lib.DecodeToDouble([]byte{1}, DecodeParams{}, nil, nil)
			case 2:
				lib.ComputeCompressedSize(nil, EncodeParams{})
			default:
				lib.Encode(nil, EncodeParams{}, nil)
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(16), fake.calls.Load())
	require.Equal(t, int32(1), fake.peak.Load(), "serialized calls must never overlap")
}

func TestSerialize_Idempotent(t *testing.T) {
	fake := &fakeLibrary{}
	once := Serialize(fake)
	require.Equal(t, once, Serialize(once))
}

func TestSerialize_PassesThrough(t *testing.T) {
	fake := &fakeLibrary{status: StatusBufferTooSmall, written: 21}
	lib := Serialize(fake)

	info := make([]uint32, InfoFieldCount)
	require.Equal(t, StatusBufferTooSmall, lib.GetBlobInfo([]byte{1}, info, make([]float64, RangeFieldCount)))
	require.Equal(t, uint32(4), info[InfoVersion])

	n, st := lib.Encode(nil, EncodeParams{}, nil)
	require.Equal(t, uint32(21), n)
	require.Equal(t, StatusBufferTooSmall, st)

	n, st = lib.ComputeCompressedSize(nil, EncodeParams{})
	require.Equal(t, uint32(42), n)
	require.Equal(t, StatusBufferTooSmall, st)
}
