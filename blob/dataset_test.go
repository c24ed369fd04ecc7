package blob

import (
	"testing"

	"github.com/arloliu/lerc/errs"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	// 2 bands, 2 rows, 3 cols, 2 values per pixel, one mask per band
	data := make([]float64, 2*2*3*2)
	for i := range data {
		data[i] = float64(i)
	}

	return Dataset{
		Info: BlobInfo{NumValuesPerPixel: 2, NumCols: 3, NumRows: 2, NumBands: 2, NumMasks: 2},
		Data: data,
		Mask: []byte{
			1, 1, 0,
			1, 1, 1,

			0, 0, 0,
			0, 1, 0,
		},
	}
}

func TestDataset_Accessors(t *testing.T) {
	ds := sampleDataset()

	require.Equal(t, 24, ds.Len())
	require.Equal(t, 0.0, ds.At(0, 0, 0))
	require.Equal(t, 3.0, ds.AtDepth(0, 0, 1, 1))
	require.Equal(t, 12.0, ds.At(1, 0, 0))
	require.Equal(t, 23.0, ds.AtDepth(1, 1, 2, 1))
	require.Equal(t, ds.Data[12:24], ds.Band(1))

	require.True(t, ds.IsValid(0, 0, 1))
	require.False(t, ds.IsValid(0, 0, 2))
	require.False(t, ds.IsValid(1, 0, 0))
	require.True(t, ds.IsValid(1, 1, 1))

	require.Equal(t, 5, ds.ValidCount(0))
	require.Equal(t, 1, ds.ValidCount(1))
}

func TestDataset_SharedAndNoMask(t *testing.T) {
	ds := sampleDataset()
	ds.Info.NumMasks = 1
	ds.Mask = ds.Mask[:6]
	require.False(t, ds.IsValid(1, 0, 2), "band 1 uses the shared mask")
	require.Equal(t, 5, ds.ValidCount(1))

	ds.Info.NumMasks = 0
	ds.Mask = nil
	require.True(t, ds.IsValid(1, 0, 2))
	require.Equal(t, 6, ds.ValidCount(1))
}

func TestDataset_Stats(t *testing.T) {
	ds := sampleDataset()

	s := ds.Stats(1)
	require.Equal(t, BandStats{Valid: 1, Min: 20, Max: 21, Mean: 20.5}, s)

	ds.Mask[10] = 0
	require.Equal(t, BandStats{}, ds.Stats(1))
}

func TestDataset_Grid(t *testing.T) {
	ds := sampleDataset()
	g := ds.Grid()

	require.Equal(t, 2, g.NumRows)
	require.Equal(t, 3, g.NumCols)
	require.Equal(t, 2, g.NumBands)
	require.Equal(t, 2, g.NumValuesPerPixel)
	require.Equal(t, 2, g.NumMasks)

	n, err := g.validate(DefaultMaxValues)
	require.NoError(t, err)
	require.Equal(t, 24, n)
}

func TestGrid_Validate(t *testing.T) {
	base := Grid{Data: make([]float64, 12), NumRows: 2, NumCols: 3, NumBands: 2}

	tests := []struct {
		name   string
		mutate func(g *Grid)
		err    error
	}{
		{"zero rows", func(g *Grid) { g.NumRows = 0 }, errs.ErrInvalidDimensions},
		{"negative depth", func(g *Grid) { g.NumValuesPerPixel = -1 }, errs.ErrInvalidDimensions},
		{"short data", func(g *Grid) { g.Data = g.Data[:11] }, errs.ErrDataLengthMismatch},
		{"depth mismatch", func(g *Grid) { g.NumValuesPerPixel = 2 }, errs.ErrDataLengthMismatch},
		{"mask count", func(g *Grid) { g.NumMasks = 3; g.Mask = make([]byte, 18) }, errs.ErrInvalidMaskCount},
		{"mask length", func(g *Grid) { g.NumMasks = 1; g.Mask = make([]byte, 5) }, errs.ErrMaskLengthMismatch},
		{"mask without count", func(g *Grid) { g.Mask = make([]byte, 6) }, errs.ErrMaskLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base
			tt.mutate(&g)
			_, err := g.validate(DefaultMaxValues)
			require.ErrorIs(t, err, tt.err)
		})
	}

	n, err := base.validate(DefaultMaxValues)
	require.NoError(t, err)
	require.Equal(t, 12, n)

	_, err = base.validate(11)
	require.ErrorIs(t, err, errs.ErrInvalidDimensions)
}
