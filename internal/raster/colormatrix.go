package raster

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// ColorMatrix is a 3x3 linear transform over the red, green and blue channels.
//
// The transformation is:
//
//	[R']   [m00 m01 m02]   [R]
//	[G'] = [m10 m11 m12] * [G]
//	[B']   [m20 m21 m22]   [B]
type ColorMatrix [][]float64

// Validate checks that the matrix is exactly 3x3.
func (m ColorMatrix) Validate() error {
	if len(m) != 3 {
		return fmt.Errorf("%w: %d rows, want 3", ErrInvalidTransform, len(m))
	}
	for i, row := range m {
		if len(row) != 3 {
			return fmt.Errorf("%w: row %d has %d columns, want 3", ErrInvalidTransform, i, len(row))
		}
	}
	return nil
}

// LumaMatrix returns the greyscale transform using Rec. 709 luma weights
// in every row.
func LumaMatrix() ColorMatrix {
	return ColorMatrix{
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
	}
}

// SepiaMatrix returns the sepia tone transform.
func SepiaMatrix() ColorMatrix {
	return ColorMatrix{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	}
}

// ColorTransform applies m to the first three channels of every pixel.
//
// Each result is clamped to [0, 255] and then rounded to the nearest integer.
// Channels beyond the third (alpha) are copied unchanged. The output declares
// bounds [0, 255].
//
// # Errors
//
//   - ErrInvalidTransform if m is not 3x3
//   - ErrUnsupportedChannels if the raster has fewer than 3 channels
func (r *Raster) ColorTransform(m ColorMatrix) (*Raster, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if r.channels < 3 {
		return nil, fmt.Errorf("color transform: %w (have %d)", ErrUnsupportedChannels, r.channels)
	}

	pix := make([]int, len(r.pix))
	copy(pix, r.pix)

	parallel.Line(r.height, func(start, end int) {
		for i := r.offset(start, 0); i < r.offset(end, 0); i += r.channels {
			red := float64(r.pix[i])
			green := float64(r.pix[i+1])
			blue := float64(r.pix[i+2])
			for c := 0; c < 3; c++ {
				v := m[c][0]*red + m[c][1]*green + m[c][2]*blue
				pix[i+c] = int(math.Round(clampFloat(v, 0, 255)))
			}
		}
	})

	return derive(r.height, r.width, r.channels, 0, 255, pix), nil
}
