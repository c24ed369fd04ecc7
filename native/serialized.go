package native

import "sync"

// globalMu is the single coordination point shared by every serialized Library.
var globalMu sync.Mutex

type serialized struct {
	lib Library
}

var _ Library = serialized{}

// Serialize returns a Library that runs every call of lib under one
// process-wide mutex.
//
// All Libraries returned by Serialize share the same lock, so wrapping the
// same codec twice, or two handles to one C library, never lets calls overlap.
func Serialize(lib Library) Library {
	if s, ok := lib.(serialized); ok {
		return s
	}

	return serialized{lib: lib}
}

func (s serialized) GetBlobInfo(blob []byte, info []uint32, dataRange []float64) Status {
	globalMu.Lock()
	defer globalMu.Unlock()

	return s.lib.GetBlobInfo(blob, info, dataRange)
}

func (s serialized) DecodeToDouble(blob []byte, p DecodeParams, validBytes []byte, data []float64) Status {
	globalMu.Lock()
	defer globalMu.Unlock()

	return s.lib.DecodeToDouble(blob, p, validBytes, data)
}

func (s serialized) ComputeCompressedSize(data []byte, p EncodeParams) (uint32, Status) {
	globalMu.Lock()
	defer globalMu.Unlock()

	return s.lib.ComputeCompressedSize(data, p)
}

func (s serialized) Encode(data []byte, p EncodeParams, out []byte) (uint32, Status) {
	globalMu.Lock()
	defer globalMu.Unlock()

	return s.lib.Encode(data, p, out)
}
