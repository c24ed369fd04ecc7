// Command lercinfo prints the metadata of LERC blob files as JSON.
//
// Usage:
//
//	lercinfo [-decode] [-compression zstd] [-serialize] [-metrics] file...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/arloliu/lerc/blob"
	"github.com/arloliu/lerc/format"
	"github.com/arloliu/lerc/native"
)

// Non-finite statistics are omitted; JSON has no representation for them.
type bandSummary struct {
	Band  int      `json:"band"`
	Valid int      `json:"valid"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
	Mean  *float64 `json:"mean,omitempty"`
}

type fileSummary struct {
	File              string        `json:"file"`
	Version           uint32        `json:"version"`
	DataType          string        `json:"data_type"`
	NumValuesPerPixel uint32        `json:"values_per_pixel"`
	NumCols           uint32        `json:"cols"`
	NumRows           uint32        `json:"rows"`
	NumBands          uint32        `json:"bands"`
	NumValidPixels    uint32        `json:"valid_pixels"`
	BlobSize          uint32        `json:"blob_size"`
	NumMasks          uint32        `json:"masks"`
	ZMin              *float64      `json:"z_min,omitempty"`
	ZMax              *float64      `json:"z_max,omitempty"`
	MaxZErrUsed       *float64      `json:"max_z_err_used,omitempty"`
	Bands             []bandSummary `json:"bands_decoded,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		decode      bool
		compression string
		serialize   bool
		dumpMetrics bool
		verbose     bool
	)

	fs := flag.NewFlagSet("lercinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&decode, "decode", false, "Decode pixels and print per-band statistics")
	fs.StringVar(&compression, "compression", "none", "Outer compression around each blob: none, zstd, s2, lz4, deflate")
	fs.BoolVar(&serialize, "serialize", false, "Serialize all codec library calls")
	fs.BoolVar(&dumpMetrics, "metrics", false, "Print codec call metrics to stderr on exit")
	fs.BoolVar(&verbose, "v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "Error: at least one blob file must be specified\n")
		fs.Usage()
		return 2
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	logger = log.With(logger, "caller", log.DefaultCaller)
	if verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	ct, err := format.ParseCompressionType(compression)
	if err != nil {
		level.Error(logger).Log("msg", "invalid compression", "compression", compression, "err", err)
		return 1
	}

	reg := prometheus.NewRegistry()
	opts := []blob.Option{
		blob.WithLogger(logger),
		blob.WithCompression(ct),
		blob.WithMetrics(native.NewMetrics(reg)),
	}
	if serialize {
		opts = append(opts, blob.WithSerializedCalls())
	}

	dec, err := blob.NewDecoder(opts...)
	if err != nil {
		level.Error(logger).Log("msg", "failed to create decoder", "err", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	failed := false
	for _, path := range fs.Args() {
		summary, err := summarize(dec, path, decode)
		if err != nil {
			level.Error(logger).Log("msg", "failed to read blob", "file", path, "err", err)
			failed = true
			continue
		}
		if err := enc.Encode(summary); err != nil {
			level.Error(logger).Log("msg", "failed to write summary", "file", path, "err", err)
			failed = true
		}
	}

	if dumpMetrics {
		if err := writeMetrics(stderr, reg); err != nil {
			level.Warn(logger).Log("msg", "failed to write metrics", "err", err)
		}
	}

	if failed {
		return 1
	}

	return 0
}

func summarize(dec *blob.Decoder, path string, decode bool) (fileSummary, error) {
	var (
		info blob.BlobInfo
		rng  blob.DataRange
		ds   blob.Dataset
		err  error
	)

	if decode {
		ds, err = dec.DecodeFile(path)
		info, rng = ds.Info, ds.Range
	} else {
		var buf []byte
		buf, err = os.ReadFile(path)
		if err != nil {
			return fileSummary{}, fmt.Errorf("read %s: %w", path, err)
		}
		info, rng, err = dec.Inspect(buf)
	}
	if err != nil {
		return fileSummary{}, err
	}

	s := fileSummary{
		File:              path,
		Version:           info.Version,
		DataType:          info.DataType.String(),
		NumValuesPerPixel: info.NumValuesPerPixel,
		NumCols:           info.NumCols,
		NumRows:           info.NumRows,
		NumBands:          info.NumBands,
		NumValidPixels:    info.NumValidPixels,
		BlobSize:          info.BlobSize,
		NumMasks:          info.NumMasks,
		ZMin:              finite(rng.ZMin),
		ZMax:              finite(rng.ZMax),
		MaxZErrUsed:       finite(rng.MaxZErrUsed),
	}

	if decode {
		for b := 0; b < int(info.NumBands); b++ {
			st := ds.Stats(b)
			s.Bands = append(s.Bands, bandSummary{
				Band:  b,
				Valid: st.Valid,
				Min:   finite(st.Min),
				Max:   finite(st.Max),
				Mean:  finite(st.Mean),
			})
		}
	}

	return s, nil
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}

	return &v
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
