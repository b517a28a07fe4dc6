package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-wizard/internal/raster"
)

// ErrMissingExtension is returned by Load and Save when the path has no file
// extension to select a codec from.
var ErrMissingExtension = errors.New("image extension missing")

// ErrUnsupportedFormat is returned by Load and Save for extensions no codec
// handles. It is the same value as imaging.ErrUnsupportedFormat.
var ErrUnsupportedFormat = imaging.ErrUnsupportedFormat

// FromImage converts a decoded image into a raster with bounds [0, 255].
//
// The image is first normalized to 8-bit non-premultiplied RGBA. The raster
// has 3 channels when every pixel is fully opaque and 4 channels (red, green,
// blue, alpha) otherwise.
//
// Returns:
//   - *raster.Raster: The converted raster. Row 0 is the top of the image.
//   - error: Non-nil if the image is empty.
func FromImage(img image.Image) (*raster.Raster, error) {
	src := imaging.Clone(img)
	width, height := src.Rect.Dx(), src.Rect.Dy()

	channels := 3
	if !src.Opaque() {
		channels = 4
	}

	grid := make([][][]int, height)
	for y := 0; y < height; y++ {
		grid[y] = make([][]int, width)
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			px := make([]int, channels)
			for c := 0; c < channels; c++ {
				px[c] = int(src.Pix[i+c])
			}
			grid[y][x] = px
		}
	}

	r, err := raster.New(height, width, grid, raster.WithChannels(channels))
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return r, nil
}

// ToImage renders a raster as an 8-bit NRGBA image.
//
// # Channel Mapping
//
//   - 1 or 2 channels: channel 0 is broadcast to red, green and blue
//   - 3 or more channels: channels 0, 1 and 2 become red, green and blue
//   - 4 or more channels: channel 3 becomes alpha; otherwise alpha is 255
//
// Samples outside [0, 255] are clamped.
func ToImage(r *raster.Raster) *image.NRGBA {
	width, height := r.Width(), r.Height()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*img.Stride + x*4
			if r.Channels() < 3 {
				v := clampByte(r.At(y, x, 0))
				img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
			} else {
				img.Pix[i] = clampByte(r.At(y, x, 0))
				img.Pix[i+1] = clampByte(r.At(y, x, 1))
				img.Pix[i+2] = clampByte(r.At(y, x, 2))
			}
			img.Pix[i+3] = 255
			if r.Channels() >= 4 {
				img.Pix[i+3] = clampByte(r.At(y, x, 3))
			}
		}
	}
	return img
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Load reads an image file into a raster.
//
// The codec is chosen by file extension:
//   - ".ppm": plain-text PPM (P3), see DecodePPM
//   - ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
//     decoded by content and converted with FromImage
//
// # Errors
//
//   - ErrMissingExtension if the path has no extension
//   - ErrUnsupportedFormat for any other extension
//   - Returns error if the file does not exist or cannot be decoded
func Load(path string) (*raster.Raster, error) {
	ext, err := extension(path)
	if err != nil {
		return nil, err
	}

	switch ext {
	case ".ppm":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		return DecodePPM(f)
	case ".webp":
		// Decoded through the x/image/webp registration; imaging has no encoder for it.
	default:
		if _, err := imaging.FormatFromFilename(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return FromImage(img)
}

// Save writes a raster to path, creating parent directories as needed.
//
// ".ppm" files are written as plain-text P3 with the raster's maximum bound
// as maxval. Other extensions are encoded with ToImage and the matching
// format (png, jpeg, gif, tiff, bmp).
//
// # Errors
//
//   - ErrMissingExtension if the path has no extension
//   - ErrUnsupportedFormat if no encoder handles the extension
//   - Returns error if the file cannot be created or written
func Save(path string, r *raster.Raster) error {
	ext, err := extension(path)
	if err != nil {
		return err
	}
	if ext != ".ppm" {
		if _, err := imaging.FormatFromFilename(path); err != nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if ext == ".ppm" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}
		if err := EncodePPM(f, r); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	if err := imaging.Save(ToImage(r), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// extension returns the lower-cased file extension of path.
func extension(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" || ext == "." {
		return "", fmt.Errorf("%w: %s", ErrMissingExtension, path)
	}
	return ext, nil
}
