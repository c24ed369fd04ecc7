package native

import "github.com/prometheus/client_golang/prometheus"

// Operation label values.
const (
	OpGetBlobInfo           = "get_blob_info"
	OpDecodeToDouble        = "decode_to_double"
	OpComputeCompressedSize = "compute_compressed_size"
	OpEncode                = "encode"
)

// Metrics holds the Prometheus collectors for codec calls.
type Metrics struct {
	Calls *prometheus.CounterVec
	Bytes *prometheus.CounterVec
}

// NewMetrics creates the codec metrics and registers them with reg.
// A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lerc_native_calls_total",
		Help: "Total codec library calls by operation and status",
	}, []string{"op", "status"})

	bytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lerc_native_bytes_total",
		Help: "Total blob bytes read (decode side) or written (encode side) by the codec library",
	}, []string{"op"})

	if reg != nil {
		reg.MustRegister(calls, bytes)
	}

	return &Metrics{Calls: calls, Bytes: bytes}
}

type instrumented struct {
	lib Library
	m   *Metrics
}

var _ Library = instrumented{}

// Instrument returns a Library that records every call of lib in m.
// A nil m returns lib unchanged.
func Instrument(lib Library, m *Metrics) Library {
	if m == nil {
		return lib
	}

	return instrumented{lib: lib, m: m}
}

func (i instrumented) observe(op string, st Status, n int) {
	i.m.Calls.WithLabelValues(op, st.String()).Inc()
	if st.OK() && n > 0 {
		i.m.Bytes.WithLabelValues(op).Add(float64(n))
	}
}

func (i instrumented) GetBlobInfo(blob []byte, info []uint32, dataRange []float64) Status {
	st := i.lib.GetBlobInfo(blob, info, dataRange)
	i.observe(OpGetBlobInfo, st, len(blob))

	return st
}

func (i instrumented) DecodeToDouble(blob []byte, p DecodeParams, validBytes []byte, data []float64) Status {
	st := i.lib.DecodeToDouble(blob, p, validBytes, data)
	i.observe(OpDecodeToDouble, st, len(blob))

	return st
}

func (i instrumented) ComputeCompressedSize(data []byte, p EncodeParams) (uint32, Status) {
	n, st := i.lib.ComputeCompressedSize(data, p)
	i.observe(OpComputeCompressedSize, st, 0)

	return n, st
}

func (i instrumented) Encode(data []byte, p EncodeParams, out []byte) (uint32, Status) {
	n, st := i.lib.Encode(data, p, out)
	i.observe(OpEncode, st, int(n))

	return n, st
}
