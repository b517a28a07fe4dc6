package raster

import (
	"fmt"
	"math"
	"strings"
	"sync"
)

// Component selects the value broadcast by Greyscale.
type Component int

// Greyscale components. Red, Green and Blue copy a single channel; Value,
// Luma and Intensity derive a brightness from the first three channels.
const (
	Red Component = iota
	Green
	Blue
	Value
	Luma
	Intensity
)

var componentNames = map[Component]string{
	Red:       "red",
	Green:     "green",
	Blue:      "blue",
	Value:     "value",
	Luma:      "luma",
	Intensity: "intensity",
}

func (c Component) String() string {
	if name, ok := componentNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

// ParseComponent converts a component name to a Component.
//
// Both the short form ("red", "luma") and the command-language form
// ("red-component", "luma-component") are accepted, case-insensitively.
func ParseComponent(name string) (Component, error) {
	key := strings.TrimSuffix(strings.ToLower(name), "-component")
	for c, n := range componentNames {
		if n == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidComponent, name)
}

// FlipDirection selects the axis mirrored by Flip.
type FlipDirection int

const (
	// Horizontal mirrors columns: col -> width-1-col.
	Horizontal FlipDirection = iota
	// Vertical mirrors rows: row -> height-1-row.
	Vertical
)

func (d FlipDirection) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("FlipDirection(%d)", int(d))
	}
}

// ParseFlipDirection converts "horizontal" or "vertical" to a FlipDirection.
func ParseFlipDirection(name string) (FlipDirection, error) {
	switch strings.ToLower(name) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, name)
	}
}

// Brighten adds amount to every sample, clamping to the raster bounds.
// A negative amount darkens. Bounds and channel count are preserved.
func (r *Raster) Brighten(amount int) *Raster {
	pix := make([]int, len(r.pix))
	for i, v := range r.pix {
		pix[i] = clamp(v+amount, r.minValue, r.maxValue)
	}
	return derive(r.height, r.width, r.channels, r.minValue, r.maxValue, pix)
}

// Flip mirrors the raster along the given direction.
func (r *Raster) Flip(d FlipDirection) (*Raster, error) {
	if d != Horizontal && d != Vertical {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}

	pix := make([]int, len(r.pix))
	for row := 0; row < r.height; row++ {
		for col := 0; col < r.width; col++ {
			srcRow, srcCol := row, col
			if d == Horizontal {
				srcCol = r.width - 1 - col
			} else {
				srcRow = r.height - 1 - row
			}
			dst := r.offset(row, col)
			src := r.offset(srcRow, srcCol)
			copy(pix[dst:dst+r.channels], r.pix[src:src+r.channels])
		}
	}
	return derive(r.height, r.width, r.channels, r.minValue, r.maxValue, pix), nil
}

// Greyscale broadcasts a single component into every channel of each pixel.
//
// # Components
//
//   - Red, Green, Blue: the value of that channel
//   - Value: max(R, G, B)
//   - Intensity: round(mean(R, G, B))
//   - Luma: round(0.2126*R + 0.7152*G + 0.0722*B)
//
// Rounding is to the nearest integer, halves away from zero.
//
// # Errors
//
//   - ErrInvalidComponent for an unknown component
//   - ErrUnsupportedChannels if the raster has fewer than 3 channels
func (r *Raster) Greyscale(c Component) (*Raster, error) {
	var pick func(px []int) int
	switch c {
	case Red, Green, Blue:
		ch := int(c)
		pick = func(px []int) int { return px[ch] }
	case Value:
		pick = func(px []int) int {
			m := px[0]
			if px[1] > m {
				m = px[1]
			}
			if px[2] > m {
				m = px[2]
			}
			return m
		}
	case Intensity:
		pick = func(px []int) int {
			return int(math.Round(float64(px[0]+px[1]+px[2]) / 3))
		}
	case Luma:
		pick = func(px []int) int {
			return int(math.Round(0.2126*float64(px[0]) + 0.7152*float64(px[1]) + 0.0722*float64(px[2])))
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidComponent, int(c))
	}
	if r.channels < 3 {
		return nil, fmt.Errorf("greyscale %s: %w (have %d)", c, ErrUnsupportedChannels, r.channels)
	}

	pix := make([]int, len(r.pix))
	for i := 0; i < len(r.pix); i += r.channels {
		v := pick(r.pix[i : i+r.channels])
		for ch := 0; ch < r.channels; ch++ {
			pix[i+ch] = v
		}
	}
	return derive(r.height, r.width, r.channels, r.minValue, r.maxValue, pix), nil
}

// Split returns the red, green and blue channel greyscales, in that order.
//
// The three extractions run concurrently; each writes its own output buffer.
func (r *Raster) Split() ([3]*Raster, error) {
	var (
		out  [3]*Raster
		errs [3]error
		wg   sync.WaitGroup
	)
	for i, c := range []Component{Red, Green, Blue} {
		wg.Add(1)
		go func(i int, c Component) {
			defer wg.Done()
			out[i], errs[i] = r.Greyscale(c)
		}(i, c)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return [3]*Raster{}, fmt.Errorf("split: %w", err)
		}
	}
	return out, nil
}

// Combine builds a raster whose channel 0 is sample 0 of the receiver and
// whose channel i+1 is sample 0 of others[i].
//
// All inputs must share height, width, channel count and bounds; otherwise
// ErrIncompatibleImages is returned. Combining the three rasters produced by
// Split restores the original RGB raster.
func (r *Raster) Combine(others ...*Raster) (*Raster, error) {
	inputs := make([]*Raster, 0, len(others)+1)
	inputs = append(inputs, r)
	for i, o := range others {
		if o == nil || !r.sameShape(o) {
			return nil, fmt.Errorf("%w: image %d differs from the first image", ErrIncompatibleImages, i+1)
		}
		inputs = append(inputs, o)
	}

	channels := len(inputs)
	pix := make([]int, r.height*r.width*channels)
	for p := 0; p < r.height*r.width; p++ {
		for ch, in := range inputs {
			pix[p*channels+ch] = in.pix[p*in.channels]
		}
	}
	return derive(r.height, r.width, channels, r.minValue, r.maxValue, pix), nil
}
