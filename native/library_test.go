package native

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/arloliu/lerc/format"
	"github.com/stretchr/testify/require"
)

// fakeLibrary records calls and returns canned statuses.
type fakeLibrary struct {
	status   Status
	written  uint32
	inflight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
	delay    time.Duration
}

var _ Library = (*fakeLibrary)(nil)

func (f *fakeLibrary) enter() func() {
	f.calls.Add(1)
	n := f.inflight.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	return func() { f.inflight.Add(-1) }
}

func (f *fakeLibrary) GetBlobInfo(_ []byte, info []uint32, _ []float64) Status {
	defer f.enter()()
	info[InfoVersion] = 4

	return f.status
}

func (f *fakeLibrary) DecodeToDouble(_ []byte, _ DecodeParams, _ []byte, _ []float64) Status {
	defer f.enter()()

	return f.status
}

func (f *fakeLibrary) ComputeCompressedSize(_ []byte, _ EncodeParams) (uint32, Status) {
	defer f.enter()()

	return f.written * 2, f.status
}

func (f *fakeLibrary) Encode(_ []byte, _ EncodeParams, _ []byte) (uint32, Status) {
	defer f.enter()()

	return f.written, f.status
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusOK:             "ok",
		StatusFailed:         "failed",
		StatusWrongParam:     "wrong_param",
		StatusBufferTooSmall: "buffer_too_small",
		StatusNaN:            "nan",
		StatusHasNoData:      "has_no_data",
		StatusUnsupported:    "unsupported",
		Status(77):           "status_77",
	}
	for st, want := range tests {
		require.Equal(t, want, st.String())
	}
	require.True(t, StatusOK.OK())
	require.False(t, StatusFailed.OK())
}

func TestParams_Sizes(t *testing.T) {
	dp := DecodeParams{NumMasks: 1, NumValuesPerPixel: 2, NumCols: 4, NumRows: 3, NumBands: 5}
	require.Equal(t, 4*3*2*5, dp.NumValues())
	require.Equal(t, 12, dp.MaskLen())

	ep := EncodeParams{DataType: format.DataTypeFloat, NumValuesPerPixel: 1, NumCols: 2, NumRows: 2, NumBands: 3}
	require.Equal(t, 12, ep.NumValues())
}

func TestFieldPositions(t *testing.T) {
	require.Equal(t, 0, InfoVersion)
	require.Equal(t, 1, InfoDataType)
	require.Equal(t, 5, InfoNumBands)
	require.Equal(t, InfoFieldCount-1, InfoNumMasks)
	require.Equal(t, RangeFieldCount-1, RangeMaxZErrUsed)
}

func TestAvailable(t *testing.T) {
	// The default test build has no lerc tag.
	require.Equal(t, Available(), Available())
}
