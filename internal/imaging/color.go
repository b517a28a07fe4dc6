package imaging

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-wizard/internal/raster"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// newColorResult builds every representation of an 8-bit color.
func newColorResult(r8, g8, b8, a8 uint8) ColorResult {
	return ColorResult{
		Hex:  hexColor(r8, g8, b8),
		RGB:  RGBColor{R: r8, G: g8, B: b8},
		RGBA: RGBAColor{R: r8, G: g8, B: b8, A: a8},
		HSL:  rgbToHSL(r8, g8, b8),
	}
}

// pixelColor returns the 8-bit color of the raster at (row, col) using the
// same channel mapping as ToImage.
func pixelColor(r *raster.Raster, row, col int) (r8, g8, b8, a8 uint8) {
	if r.Channels() < 3 {
		v := clampByte(r.At(row, col, 0))
		r8, g8, b8 = v, v, v
	} else {
		r8 = clampByte(r.At(row, col, 0))
		g8 = clampByte(r.At(row, col, 1))
		b8 = clampByte(r.At(row, col, 2))
	}
	a8 = 255
	if r.Channels() >= 4 {
		a8 = clampByte(r.At(row, col, 3))
	}
	return r8, g8, b8, a8
}

// SampleColor returns the color of the pixel at column x, row y.
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the raster.
func SampleColor(r *raster.Raster, x, y int) (*ColorResult, error) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}
	c := newColorResult(pixelColor(r, y, x))
	return &c, nil
}

// RasterInfo summarizes a stored raster.
type RasterInfo struct {
	// Name is the store key, when known.
	Name string `json:"name,omitempty"`

	Width    int  `json:"width"`
	Height   int  `json:"height"`
	Channels int  `json:"channels"`
	MinValue int  `json:"min_value"`
	MaxValue int  `json:"max_value"`
	HasAlpha bool `json:"has_alpha"`

	// MeanColor is the truncated average of every pixel.
	MeanColor ColorResult `json:"mean_color"`
}

// Describe reports the shape, bounds and mean color of a raster.
func Describe(r *raster.Raster) *RasterInfo {
	var sumR, sumG, sumB, sumA int64
	for row := 0; row < r.Height(); row++ {
		for col := 0; col < r.Width(); col++ {
			r8, g8, b8, a8 := pixelColor(r, row, col)
			sumR += int64(r8)
			sumG += int64(g8)
			sumB += int64(b8)
			sumA += int64(a8)
		}
	}
	n := int64(r.Width() * r.Height())

	return &RasterInfo{
		Width:    r.Width(),
		Height:   r.Height(),
		Channels: r.Channels(),
		MinValue: r.MinValue(),
		MaxValue: r.MaxValue(),
		HasAlpha: r.Channels() >= 4,
		MeanColor: newColorResult(
			uint8(sumR/n), uint8(sumG/n), uint8(sumB/n), uint8(sumA/n)),
	}
}

// ColorFrequency represents a color and its occurrence frequency in a raster.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequent colors, most common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns up to count of the most common colors.
//
// Components are quantized to multiples of 16 before counting, so colors
// within 16 units of each other per component are grouped together:
//
//	quantized = (original / 16) * 16
//
// Ties are broken by hex value so the result is deterministic.
func DominantColors(r *raster.Raster, count int) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	counts := make(map[RGBColor]int)
	for row := 0; row < r.Height(); row++ {
		for col := 0; col < r.Width(); col++ {
			r8, g8, b8, _ := pixelColor(r, row, col)
			counts[RGBColor{R: r8 / 16 * 16, G: g8 / 16 * 16, B: b8 / 16 * 16}]++
		}
	}
	total := float64(r.Width() * r.Height())

	colors := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        hexColor(c.R, c.G, c.B),
			Percentage: float64(n) / total * 100,
			RGB:        c,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}, nil
}

// hexColor formats an 8-bit color as "#RRGGBB".
func hexColor(r8, g8, b8 uint8) string {
	c, _ := colorful.MakeColor(color.RGBA{R: r8, G: g8, B: b8, A: 255})
	return strings.ToUpper(c.Hex())
}

// rgbToHSL converts 8-bit RGB values to HSL with hue in degrees and
// saturation and lightness in percent, truncated to integers.
func rgbToHSL(r8, g8, b8 uint8) HSLColor {
	c, _ := colorful.MakeColor(color.RGBA{R: r8, G: g8, B: b8, A: 255})
	h, s, l := c.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
