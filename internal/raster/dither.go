package raster

import (
	"fmt"
	"strings"
)

// Channel names one of the three color channels.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
)

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel converts "red", "green" or "blue" to a Channel. The
// "-component" suffix used by the greyscale command is tolerated.
func ParseChannel(name string) (Channel, error) {
	switch strings.TrimSuffix(strings.ToLower(name), "-component") {
	case "red":
		return ChannelRed, nil
	case "green":
		return ChannelGreen, nil
	case "blue":
		return ChannelBlue, nil
	default:
		return 0, fmt.Errorf("%w: channel %q", ErrInvalidComponent, name)
	}
}

// Quantization threshold and output levels used by Dither.
const (
	ditherThreshold = 128
	ditherLow       = 0
	ditherHigh      = 255
)

// Dither reduces one channel to two levels using forward error diffusion.
//
// The chosen channel is copied into a scratch buffer whose values may leave
// [0, 255] while errors accumulate. Pixels are visited row by row, left to
// right. Each pixel is quantized to 0 (below 128) or 255, the quantized value
// is written to output channels 0..2, and the quantization error is pushed to
// the unvisited neighbours with truncating integer division:
//
//	        .     *   7/16
//	      3/16  5/16  1/16
//
// Neighbours outside the raster are skipped. Channels beyond the third are
// copied unchanged. The scan order is a dependency chain, so this runs on a
// single goroutine.
//
// # Errors
//
//   - ErrInvalidComponent for an unknown channel
//   - ErrUnsupportedChannels if the raster has fewer than 3 channels
func (r *Raster) Dither(ch Channel) (*Raster, error) {
	if ch != ChannelRed && ch != ChannelGreen && ch != ChannelBlue {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidComponent, int(ch))
	}
	if r.channels < 3 {
		return nil, fmt.Errorf("dither: %w (have %d)", ErrUnsupportedChannels, r.channels)
	}

	h, w := r.height, r.width
	buf := make([]int, h*w)
	for p := range buf {
		buf[p] = r.pix[p*r.channels+int(ch)]
	}

	pix := make([]int, len(r.pix))
	copy(pix, r.pix)

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			old := buf[i*w+j]
			quantized := ditherLow
			if old >= ditherThreshold {
				quantized = ditherHigh
			}
			errVal := old - quantized

			dst := r.offset(i, j)
			pix[dst] = quantized
			pix[dst+1] = quantized
			pix[dst+2] = quantized

			if j+1 < w {
				buf[i*w+j+1] += 7 * errVal / 16
			}
			if i+1 < h {
				if j > 0 {
					buf[(i+1)*w+j-1] += 3 * errVal / 16
				}
				buf[(i+1)*w+j] += 5 * errVal / 16
				if j+1 < w {
					buf[(i+1)*w+j+1] += errVal / 16
				}
			}
		}
	}

	return derive(h, w, r.channels, 0, 255, pix), nil
}
