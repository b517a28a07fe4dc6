package raster

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Kernel is a square matrix of weights with an odd side length.
type Kernel [][]float64

// Validate checks that the kernel is non-empty, square and odd-sized.
func (k Kernel) Validate() error {
	n := len(k)
	if n == 0 {
		return fmt.Errorf("%w: empty kernel", ErrInvalidKernel)
	}
	for i, row := range k {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), n)
		}
	}
	if n%2 == 0 {
		return fmt.Errorf("%w: side length %d is even", ErrInvalidKernel, n)
	}
	return nil
}

// BlurKernel returns the 3x3 Gaussian-style blur kernel:
//
//	1/16 1/8 1/16
//	1/8  1/4 1/8
//	1/16 1/8 1/16
func BlurKernel() Kernel {
	return Kernel{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	}
}

// SharpenKernel returns the 5x5 sharpen kernel: 1 at the centre, 1/4 on the
// surrounding ring and -1/8 on the outer ring.
func SharpenKernel() Kernel {
	o := -1.0 / 8
	q := 1.0 / 4
	return Kernel{
		{o, o, o, o, o},
		{o, q, q, q, o},
		{o, q, 1.0, q, o},
		{o, q, q, q, o},
		{o, o, o, o, o},
	}
}

// Filter convolves every channel of the raster with the kernel.
//
// Parameters:
//   - k: A square kernel with odd side length. It is validated before any
//     sample is read.
//
// Returns:
//   - *Raster: The filtered raster, bounded to [0, 255].
//   - error: ErrInvalidKernel if the kernel is empty, non-square or even-sized.
//
// # Algorithm
//
// For each channel c and pixel (i, j), with half = len(k)/2:
//
//	out[i][j][c] = sum over (ki, kj) of k[ki][kj] * in[i+ki-half][j+kj-half][c]
//
// Samples outside the raster contribute zero (zero padding). The real-valued
// sum is rounded to the nearest integer and clamped to [0, 255], independent
// of the input bounds. Rows are computed in parallel.
func (r *Raster) Filter(k Kernel) (*Raster, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}

	size := len(k)
	half := size / 2
	pix := make([]int, len(r.pix))

	parallel.Line(r.height, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < r.width; j++ {
				dst := r.offset(i, j)
				for c := 0; c < r.channels; c++ {
					var sum float64
					for ki := 0; ki < size; ki++ {
						ii := i + ki - half
						if ii < 0 || ii >= r.height {
							continue
						}
						for kj := 0; kj < size; kj++ {
							jj := j + kj - half
							if jj < 0 || jj >= r.width {
								continue
							}
							sum += k[ki][kj] * float64(r.pix[r.offset(ii, jj)+c])
						}
					}
					pix[dst+c] = clamp(int(math.Round(sum)), 0, 255)
				}
			}
		}
	})

	return derive(r.height, r.width, r.channels, 0, 255, pix), nil
}
