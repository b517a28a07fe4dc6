package imaging

import (
	"github.com/anthonynsimon/bild/histogram"

	"github.com/ironsheep/image-wizard/internal/raster"
)

// HistogramBins is the number of bins per channel.
const HistogramBins = 256

// HistogramResult holds per-channel sample counts of an 8-bit raster.
//
// Red, Green and Blue count channel values; Intensity counts the truncated
// mean (r+g+b)/3 of each pixel. Normalized holds the same four rows, in that
// order, rescaled to 0..100 for plotting.
type HistogramResult struct {
	Red        []int    `json:"red"`
	Green      []int    `json:"green"`
	Blue       []int    `json:"blue"`
	Intensity  []int    `json:"intensity"`
	Normalized [4][]int `json:"normalized"`
}

// Histogram counts the red, green, blue and intensity values of r.
//
// Samples outside [0, 255] are clamped first; rasters with fewer than 3
// channels are treated as grey. Alpha is ignored.
//
// # Normalization
//
// Each row is rescaled independently:
//
//	normalized = (count - min) * 100 / (max - min)
//
// where min and max are the smallest and largest counts in that row. A row
// whose counts are all equal is reported as min(count, 100).
func Histogram(r *raster.Raster) *HistogramResult {
	img := ToImage(r)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	rgba := histogram.NewRGBAHistogram(img)

	intensity := make([]int, HistogramBins)
	for i := 0; i < len(img.Pix); i += 4 {
		sum := int(img.Pix[i]) + int(img.Pix[i+1]) + int(img.Pix[i+2])
		intensity[sum/3]++
	}

	result := &HistogramResult{
		Red:       copyBins(rgba.R.Bins),
		Green:     copyBins(rgba.G.Bins),
		Blue:      copyBins(rgba.B.Bins),
		Intensity: intensity,
	}
	for i, row := range [][]int{result.Red, result.Green, result.Blue, result.Intensity} {
		result.Normalized[i] = normalizeBins(row)
	}
	return result
}

func copyBins(bins []int) []int {
	out := make([]int, HistogramBins)
	copy(out, bins)
	return out
}

// normalizeBins rescales counts to 0..100.
func normalizeBins(bins []int) []int {
	lo, hi := bins[0], bins[0]
	for _, v := range bins {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]int, len(bins))
	for i, v := range bins {
		if hi == lo {
			out[i] = min(v, 100)
			continue
		}
		out[i] = (v - lo) * 100 / (hi - lo)
	}
	return out
}
