package blob

import (
	"fmt"
	"math"

	"github.com/arloliu/lerc/errs"
)

// Dataset is a decoded raster.
//
// Data is band-major, then row, column and value within the pixel:
//
//	Data[((band*rows+row)*cols+col)*depth+d]
//
// Mask holds one byte per pixel and mask (1 = valid): nil when NumMasks is 0,
// one shared mask when 1, otherwise one mask per band.
type Dataset struct {
	Info  BlobInfo
	Range DataRange
	Data  []float64
	Mask  []byte
}

// Len returns the number of decoded values.
func (d Dataset) Len() int {
	return len(d.Data)
}

func (d Dataset) depth() int {
	return max(1, int(d.Info.NumValuesPerPixel))
}

// At returns the first value of the pixel at (band, row, col).
// Like slice indexing, it panics on out-of-range coordinates.
func (d Dataset) At(band, row, col int) float64 {
	return d.AtDepth(band, row, col, 0)
}

// AtDepth returns value depth of the pixel at (band, row, col).
func (d Dataset) AtDepth(band, row, col, depth int) float64 {
	rows, cols := int(d.Info.NumRows), int(d.Info.NumCols)

	return d.Data[((band*rows+row)*cols+col)*d.depth()+depth]
}

// Band returns the values of band i as a sub-slice of Data.
func (d Dataset) Band(i int) []float64 {
	n := d.Info.NumPixels() * d.depth()

	return d.Data[i*n : (i+1)*n]
}

// IsValid reports whether the pixel at (band, row, col) is valid.
func (d Dataset) IsValid(band, row, col int) bool {
	k := row*int(d.Info.NumCols) + col
	switch d.Info.NumMasks {
	case 0:
		return true
	case 1:
		return d.Mask[k] != 0
	default:
		return d.Mask[band*d.Info.NumPixels()+k] != 0
	}
}

// ValidCount returns the number of valid pixels of band.
func (d Dataset) ValidCount(band int) int {
	pixels := d.Info.NumPixels()
	var mask []byte
	switch d.Info.NumMasks {
	case 0:
		return pixels
	case 1:
		mask = d.Mask[:pixels]
	default:
		mask = d.Mask[band*pixels : (band+1)*pixels]
	}

	cnt := 0
	for _, v := range mask {
		if v != 0 {
			cnt++
		}
	}

	return cnt
}

// BandStats summarizes the valid values of one band.
type BandStats struct {
	Valid int
	Min   float64
	Max   float64
	Mean  float64
}

// Stats computes BandStats over the valid pixels of band. Min, Max and Mean
// are 0 when the band has no valid pixel.
func (d Dataset) Stats(band int) BandStats {
	rows, cols, depth := int(d.Info.NumRows), int(d.Info.NumCols), d.depth()
	vals := d.Band(band)

	s := BandStats{Min: math.Inf(1), Max: math.Inf(-1)}
	sum := 0.0
	n := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if !d.IsValid(band, row, col) {
				continue
			}
			s.Valid++
			base := (row*cols + col) * depth
			for m := 0; m < depth; m++ {
				v := vals[base+m]
				s.Min = math.Min(s.Min, v)
				s.Max = math.Max(s.Max, v)
				sum += v
				n++
			}
		}
	}

	if n == 0 {
		return BandStats{}
	}
	s.Mean = sum / float64(n)

	return s
}

// Grid returns d as encoder input. Data and Mask are shared, not copied.
func (d Dataset) Grid() Grid {
	return Grid{
		Data:              d.Data,
		NumRows:           int(d.Info.NumRows),
		NumCols:           int(d.Info.NumCols),
		NumBands:          int(d.Info.NumBands),
		NumValuesPerPixel: d.depth(),
		Mask:              d.Mask,
		NumMasks:          int(d.Info.NumMasks),
	}
}

// Grid is the input of Encoder.EncodeGrid, laid out like Dataset.
type Grid struct {
	Data              []float64
	NumRows           int
	NumCols           int
	NumBands          int
	NumValuesPerPixel int // 0 means 1
	Mask              []byte
	NumMasks          int // 0, 1 or NumBands
}

func (g Grid) depth() int {
	return max(1, g.NumValuesPerPixel)
}

// validate checks the shape against Data and Mask and returns the number of
// values.
func (g Grid) validate(maxValues int64) (int, error) {
	if g.NumRows <= 0 || g.NumCols <= 0 || g.NumBands <= 0 || g.NumValuesPerPixel < 0 {
		return 0, fmt.Errorf("%w: %dx%dx%d with %d values per pixel",
			errs.ErrInvalidDimensions, g.NumRows, g.NumCols, g.NumBands, g.NumValuesPerPixel)
	}
	for _, v := range []int{g.NumRows, g.NumCols, g.NumBands, g.depth()} {
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("%w: dimension %d exceeds int32", errs.ErrInvalidDimensions, v)
		}
	}

	n, ok := checkedProduct(maxValues,
		uint32(g.NumCols), uint32(g.NumRows), uint32(g.depth()), uint32(g.NumBands)) //nolint: gosec
	if !ok {
		return 0, fmt.Errorf("%w: %dx%dx%dx%d values exceed limit %d",
			errs.ErrInvalidDimensions, g.NumCols, g.NumRows, g.depth(), g.NumBands, maxValues)
	}
	if len(g.Data) != n {
		return 0, fmt.Errorf("%w: have %d values, want %d", errs.ErrDataLengthMismatch, len(g.Data), n)
	}

	if g.NumMasks != 0 && g.NumMasks != 1 && g.NumMasks != g.NumBands {
		return 0, fmt.Errorf("%w: %d masks for %d bands", errs.ErrInvalidMaskCount, g.NumMasks, g.NumBands)
	}
	if want := g.NumRows * g.NumCols * g.NumMasks; len(g.Mask) != want {
		return 0, fmt.Errorf("%w: have %d bytes, want %d", errs.ErrMaskLengthMismatch, len(g.Mask), want)
	}

	return n, nil
}
