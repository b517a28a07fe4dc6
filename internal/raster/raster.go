package raster

import "fmt"

// Default sample bounds and channel count used by New.
const (
	DefaultMinValue = 0
	DefaultMaxValue = 255
	DefaultChannels = 3
)

// Raster is an immutable grid of integer samples.
//
// Samples are stored row-major in a single slice: the sample for
// (row, col, channel) lives at ((row*width)+col)*channels + channel.
// The zero value is not usable; construct rasters with New.
type Raster struct {
	height   int
	width    int
	minValue int
	maxValue int
	channels int
	pix      []int
}

// Option configures optional attributes of a Raster during New.
type Option func(*options)

type options struct {
	minValue int
	maxValue int
	channels int
}

func defaultOptions() options {
	return options{
		minValue: DefaultMinValue,
		maxValue: DefaultMaxValue,
		channels: DefaultChannels,
	}
}

// WithBounds sets the inclusive sample bounds. The default is [0, 255].
func WithBounds(minValue, maxValue int) Option {
	return func(o *options) {
		o.minValue = minValue
		o.maxValue = maxValue
	}
}

// WithChannels sets the number of channels per pixel. The default is 3 (RGB);
// use 4 for RGB plus alpha.
func WithChannels(n int) Option {
	return func(o *options) {
		o.channels = n
	}
}

// New validates the supplied grid and builds a Raster from it.
//
// Parameters:
//   - height, width: Raster dimensions in pixels. Both must be positive.
//   - grid: Samples indexed [row][col][channel]. The grid is copied, so the
//     caller may reuse or modify it afterwards.
//   - opts: Optional bounds and channel count.
//
// # Errors
//
//   - ErrInvalidDimensions if height, width or the channel count is not positive
//   - ErrMissingData if grid is nil
//   - ErrDimensionMismatch if any row, pixel or channel slice has the wrong length
//   - ErrOutOfBounds if minValue exceeds maxValue or a sample lies outside them
func New(height, width int, grid [][][]int, opts ...Option) (*Raster, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: height=%d width=%d", ErrInvalidDimensions, height, width)
	}
	if o.channels <= 0 {
		return nil, fmt.Errorf("%w: channels=%d", ErrInvalidDimensions, o.channels)
	}
	if o.minValue > o.maxValue {
		return nil, fmt.Errorf("%w: min %d above max %d", ErrOutOfBounds, o.minValue, o.maxValue)
	}
	if grid == nil {
		return nil, ErrMissingData
	}
	if len(grid) != height {
		return nil, fmt.Errorf("%w: grid has %d rows, want %d", ErrDimensionMismatch, len(grid), height)
	}

	pix := make([]int, 0, height*width*o.channels)
	for row := range grid {
		if len(grid[row]) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrDimensionMismatch, row, len(grid[row]), width)
		}
		for col := range grid[row] {
			if len(grid[row][col]) != o.channels {
				return nil, fmt.Errorf("%w: pixel (%d,%d) has %d channels, want %d",
					ErrDimensionMismatch, row, col, len(grid[row][col]), o.channels)
			}
			for ch, v := range grid[row][col] {
				if v < o.minValue || v > o.maxValue {
					return nil, fmt.Errorf("%w: pixel (%d,%d) channel %d is %d, want [%d,%d]",
						ErrOutOfBounds, row, col, ch, v, o.minValue, o.maxValue)
				}
			}
			pix = append(pix, grid[row][col]...)
		}
	}

	return &Raster{
		height:   height,
		width:    width,
		minValue: o.minValue,
		maxValue: o.maxValue,
		channels: o.channels,
		pix:      pix,
	}, nil
}

// derive builds an output raster that takes ownership of pix. Engine code
// only calls it with a correctly sized buffer.
func derive(height, width, channels, minValue, maxValue int, pix []int) *Raster {
	return &Raster{
		height:   height,
		width:    width,
		minValue: minValue,
		maxValue: maxValue,
		channels: channels,
		pix:      pix,
	}
}

// Height returns the number of rows.
func (r *Raster) Height() int { return r.height }

// Width returns the number of columns.
func (r *Raster) Width() int { return r.width }

// Channels returns the number of samples per pixel.
func (r *Raster) Channels() int { return r.channels }

// MinValue returns the inclusive lower sample bound.
func (r *Raster) MinValue() int { return r.minValue }

// MaxValue returns the inclusive upper sample bound.
func (r *Raster) MaxValue() int { return r.maxValue }

// At returns the sample at (row, col, channel).
// Indices must be in range; out-of-range access panics.
func (r *Raster) At(row, col, channel int) int {
	if row < 0 || row >= r.height || col < 0 || col >= r.width || channel < 0 || channel >= r.channels {
		panic(fmt.Sprintf("raster: index (%d,%d,%d) out of range %dx%dx%d",
			row, col, channel, r.height, r.width, r.channels))
	}
	return r.pix[r.offset(row, col)+channel]
}

// offset returns the index of channel 0 of the pixel at (row, col).
func (r *Raster) offset(row, col int) int {
	return (row*r.width + col) * r.channels
}

// Grid returns a copy of the samples indexed [row][col][channel].
func (r *Raster) Grid() [][][]int {
	grid := make([][][]int, r.height)
	for row := 0; row < r.height; row++ {
		grid[row] = make([][]int, r.width)
		for col := 0; col < r.width; col++ {
			i := r.offset(row, col)
			px := make([]int, r.channels)
			copy(px, r.pix[i:i+r.channels])
			grid[row][col] = px
		}
	}
	return grid
}

// Equal reports whether both rasters have the same dimensions, bounds,
// channel count and samples.
func (r *Raster) Equal(other *Raster) bool {
	if r == nil || other == nil {
		return r == other
	}
	if !r.sameShape(other) {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// sameShape reports whether both rasters agree on dimensions, channel count
// and bounds.
func (r *Raster) sameShape(other *Raster) bool {
	return r.height == other.height &&
		r.width == other.width &&
		r.channels == other.channels &&
		r.minValue == other.minValue &&
		r.maxValue == other.maxValue
}

// String summarizes the raster without dumping its samples.
func (r *Raster) String() string {
	return fmt.Sprintf("Raster{%dx%d, channels=%d, bounds=[%d,%d]}",
		r.height, r.width, r.channels, r.minValue, r.maxValue)
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// clampFloat constrains a real value to the range [lo, hi].
func clampFloat(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
