// Package raster implements the pixel-transformation engine of image-wizard.
//
// A Raster is an immutable grid of integer samples indexed by row, column and
// channel. Every operation in this package borrows its receiver read-only and
// returns a new, independently owned Raster; inputs are never modified.
//
// # Coordinate System
//
// Samples are addressed as (row, col, channel):
//   - row: 0 = topmost line, increases downward
//   - col: 0 = leftmost pixel, increases rightward
//   - channel: 0 = red, 1 = green, 2 = blue, 3 = alpha (when present)
//
// # Operations
//
// Channel operations:
//   - Brighten: add a constant to every sample, clamped to the raster bounds
//   - Flip: mirror rows or columns
//   - Greyscale: broadcast one component (red, green, blue, value, luma, intensity)
//   - Split / Combine: separate into per-channel greyscales and merge them back
//
// Engines:
//   - Filter: square odd-sized kernel convolution with zero padding
//   - ColorTransform: 3x3 color matrix over the first three channels
//   - Dither: two-level quantization with forward error diffusion
//   - Mosaic: random seed clustering with per-cluster average colors
//
// # Bounds
//
// Each raster declares inclusive sample bounds (0 and 255 unless WithBounds is
// given). Brighten clamps to the declared bounds. Filter, ColorTransform and
// Dither always clamp to the 8-bit range [0, 255] and declare those bounds on
// their output.
//
// # Thread Safety
//
// Rasters are never mutated after construction, so any number of goroutines
// may read the same raster and run operations on it concurrently. Split and
// Filter parallelize internally; Dither is strictly sequential.
//
// # Error Handling
//
// Invalid parameters are reported with the sentinel errors declared in
// errors.go, wrapped with context. Use errors.Is to test for them.
package raster
