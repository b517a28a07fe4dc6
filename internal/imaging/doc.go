// Package imaging connects rasters to image files and reports on their contents.
//
// This package converts between raster.Raster values and standard Go image
// types, reads and writes image files, renders PNG previews, and computes
// color statistics and histograms. The pixel transformations themselves live
// in the raster package.
//
// # Coordinate System
//
// Rasters are indexed (row, col); functions that take pixel coordinates use
// the image convention (x, y) with x = col and y = row, both 0-based from the
// top-left corner.
//
// # File Formats
//
// The codec is selected by file extension:
//   - ".ppm": plain-text PPM (P3), read and written by DecodePPM/EncodePPM
//   - ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp": read and
//     written through github.com/disintegration/imaging
//   - ".webp": read only
//
// Decoded images become 3-channel rasters, or 4-channel rasters when any
// pixel is not fully opaque.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Paths without an extension (ErrMissingExtension)
//   - Extensions no codec handles (ErrUnsupportedFormat)
//   - Malformed PPM data (ErrInvalidPPM)
//   - Coordinates outside the raster
//   - File I/O and encoding failures
package imaging
