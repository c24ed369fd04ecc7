package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/lerc/blob"
	"github.com/arloliu/lerc/format"
)

func ptr(v float64) *float64 { return &v }

func writeBlob(t *testing.T, dir string, opts ...blob.Option) string {
	t.Helper()

	enc, err := blob.NewEncoder(opts...)
	require.NoError(t, err)
	buf, err := enc.EncodeGrid(blob.Grid{
		Data:     []float64{1, 2, 3, 4, 10, 20, 30, 40},
		NumRows:  2,
		NumCols:  2,
		NumBands: 2,
		Mask:     []byte{1, 1, 0, 1},
		NumMasks: 1,
	}, 0)
	require.NoError(t, err)

	path := filepath.Join(dir, "raster.lerc")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	return path
}

func TestRun_Inspect(t *testing.T) {
	path := writeBlob(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{path}, &stdout, &stderr), stderr.String())

	var s fileSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &s))
	require.Equal(t, path, s.File)
	require.Equal(t, "Float", s.DataType)
	require.Equal(t, uint32(2), s.NumCols)
	require.Equal(t, uint32(2), s.NumBands)
	require.Equal(t, uint32(3), s.NumValidPixels)
	require.Equal(t, uint32(1), s.NumMasks)
	require.Equal(t, ptr(1.0), s.ZMin)
	require.Equal(t, ptr(40.0), s.ZMax)
	require.Empty(t, s.Bands)
}

func TestRun_Decode(t *testing.T) {
	dir := t.TempDir()
	path := writeBlob(t, dir, blob.WithCompression(format.CompressionS2))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-decode", "-compression", "s2", "-serialize", "-metrics", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var s fileSummary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &s))
	require.Len(t, s.Bands, 2)
	require.Equal(t, bandSummary{Band: 0, Valid: 3, Min: ptr(1.0), Max: ptr(4.0), Mean: ptr(7.0 / 3)}, s.Bands[0])
	require.Equal(t, bandSummary{Band: 1, Valid: 3, Min: ptr(10.0), Max: ptr(40.0), Mean: ptr(70.0 / 3)}, s.Bands[1])

	require.Contains(t, stderr.String(), `lerc_native_calls_total{op="decode_to_double",status="ok"} 1`)
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeBlob(t, dir)
	bad := filepath.Join(dir, "bad.lerc")
	require.NoError(t, os.WriteFile(bad, []byte("not a lerc blob at all"), 0o600))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 1, run([]string{bad, good, filepath.Join(dir, "missing.lerc")}, &stdout, &stderr))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 1, "the good file is still reported")
	require.Contains(t, stderr.String(), "level=error")
	require.Contains(t, stderr.String(), "bad.lerc")
	require.Contains(t, stderr.String(), "missing.lerc")

	stdout.Reset()
	stderr.Reset()
	require.Equal(t, 2, run(nil, &stdout, &stderr))
	require.Equal(t, 1, run([]string{"-compression", "brotli", good}, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-nope"}, &stdout, &stderr))
}

func TestRun_NonFiniteValues(t *testing.T) {
	dir := t.TempDir()
	enc, err := blob.NewEncoder()
	require.NoError(t, err)
	buf, err := enc.Encode([]float64{1, math.Inf(1), 2, 3}, 2, 2, 1, 0)
	require.NoError(t, err)
	inf := filepath.Join(dir, "inf.lerc")
	require.NoError(t, os.WriteFile(inf, buf, 0o600))
	good := writeBlob(t, dir)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-decode", inf, good}, &stdout, &stderr), stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)

	var s fileSummary
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &s))
	require.Equal(t, ptr(1.0), s.ZMin)
	require.Nil(t, s.ZMax)
	require.Equal(t, bandSummary{Band: 0, Valid: 4, Min: ptr(1.0)}, s.Bands[0])
	require.NotContains(t, lines[0], "Inf")
}
