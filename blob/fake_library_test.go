package blob

import (
	"sync"

	"github.com/arloliu/lerc/native"
)

// fakeLibrary is a scripted native.Library that records its calls.
type fakeLibrary struct {
	mu sync.Mutex

	info      [native.InfoFieldCount]uint32
	dataRange [native.RangeFieldCount]float64

	infoStatus   native.Status
	decodeStatus native.Status
	probeStatus  native.Status
	encodeStatus native.Status

	probeSize uint32
	written   uint32
	fill      float64

	calls        []string
	encodeParams native.EncodeParams
	encodeData   []byte
	encodeOutLen int
	decodeParams native.DecodeParams
}

var _ native.Library = (*fakeLibrary)(nil)

func (f *fakeLibrary) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *fakeLibrary) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}

	return n
}

func (f *fakeLibrary) GetBlobInfo(_ []byte, info []uint32, dataRange []float64) native.Status {
	f.record(native.OpGetBlobInfo)
	copy(info, f.info[:])
	copy(dataRange, f.dataRange[:])

	return f.infoStatus
}

func (f *fakeLibrary) DecodeToDouble(_ []byte, p native.DecodeParams, validBytes []byte, data []float64) native.Status {
	f.record(native.OpDecodeToDouble)
	f.decodeParams = p
	for i := range data {
		data[i] = f.fill
	}
	for i := range validBytes {
		validBytes[i] = 1
	}

	return f.decodeStatus
}

func (f *fakeLibrary) ComputeCompressedSize(_ []byte, _ native.EncodeParams) (uint32, native.Status) {
	f.record(native.OpComputeCompressedSize)

	return f.probeSize, f.probeStatus
}

func (f *fakeLibrary) Encode(data []byte, p native.EncodeParams, out []byte) (uint32, native.Status) {
	f.record(native.OpEncode)
	f.encodeParams = p
	f.encodeData = append([]byte(nil), data...)
	f.encodeOutLen = len(out)
	for i := range out {
		out[i] = byte(i)
	}

	return f.written, f.encodeStatus
}

// fakeInfo returns an info array describing a cols x rows x bands float blob of size bytes.
func fakeInfo(cols, rows, bands, masks, size uint32) [native.InfoFieldCount]uint32 {
	return [native.InfoFieldCount]uint32{4, 6, 1, cols, rows, bands, cols * rows, size, masks}
}
