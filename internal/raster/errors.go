package raster

import "errors"

// Construction errors.
var (
	// ErrInvalidDimensions is returned when height, width or channel count is not positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrMissingData is returned when no sample grid was supplied.
	ErrMissingData = errors.New("raster: missing pixel data")

	// ErrDimensionMismatch is returned when the grid shape disagrees with the
	// declared height, width or channel count.
	ErrDimensionMismatch = errors.New("raster: grid does not match dimensions")

	// ErrOutOfBounds is returned when the bounds are inverted or a sample lies
	// outside them.
	ErrOutOfBounds = errors.New("raster: sample out of bounds")
)

// Operation errors.
var (
	ErrInvalidComponent    = errors.New("raster: invalid component")
	ErrInvalidDirection    = errors.New("raster: invalid flip direction")
	ErrIncompatibleImages  = errors.New("raster: incompatible images")
	ErrInvalidKernel       = errors.New("raster: invalid kernel")
	ErrInvalidTransform    = errors.New("raster: invalid color transform")
	ErrInvalidSeed         = errors.New("raster: invalid mosaic seed")
	ErrUnsupportedChannels = errors.New("raster: operation needs at least 3 channels")
)
