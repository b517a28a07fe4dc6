package raster

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// ClusterCenter is a mosaic seed position together with the running color
// sums of the pixels assigned to it.
type ClusterCenter struct {
	X int // Column of the center
	Y int // Row of the center

	red, green, blue int64
	count            int64
}

// Distance returns the Euclidean distance from the center to (row, col).
func (c *ClusterCenter) Distance(row, col int) float64 {
	dy := float64(c.Y - row)
	dx := float64(c.X - col)
	return math.Sqrt(dy*dy + dx*dx)
}

func (c *ClusterCenter) add(red, green, blue int) {
	c.red += int64(red)
	c.green += int64(green)
	c.blue += int64(blue)
	c.count++
}

// Mean returns the integer-truncated average color of the assigned pixels.
// A center with no pixels reports black.
func (c *ClusterCenter) Mean() (red, green, blue int) {
	if c.count == 0 {
		return 0, 0, 0
	}
	return int(c.red / c.count), int(c.green / c.count), int(c.blue / c.count)
}

// Mosaic partitions the raster into seeds clusters around random centers and
// paints every pixel with the average color of its cluster.
//
// Parameters:
//   - seeds: Number of cluster centers, 1 <= seeds <= height*width. When seeds
//     equals height*width every pixel is its own cluster and the result is a
//     copy of the receiver with all of its channels.
//   - rng: Source of center positions. A time-seeded generator is used when nil.
//
// Returns:
//   - *Raster: A 3-channel raster with the receiver's bounds.
//   - error: ErrInvalidSeed for an out-of-range seed count, or
//     ErrUnsupportedChannels for rasters with fewer than 3 channels.
//
// # Algorithm
//
//  1. Placement: draw uniform (x, y) positions, rejecting any position that is
//     already a center, until seeds distinct centers exist.
//  2. Assignment: each pixel joins the center at the smallest Euclidean
//     distance; on ties the earliest placed center wins. Its red, green and
//     blue samples are added to that center's sums.
//  3. Recoloring: each pixel takes the truncated mean color of its center.
//
// Alpha and any other extra channels are dropped.
func (r *Raster) Mosaic(seeds int, rng *rand.Rand) (*Raster, error) {
	area := r.height * r.width
	if seeds < 1 || seeds > area {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSeed, seeds, area)
	}
	if seeds == area {
		pix := make([]int, len(r.pix))
		copy(pix, r.pix)
		return derive(r.height, r.width, r.channels, r.minValue, r.maxValue, pix), nil
	}
	if r.channels < 3 {
		return nil, fmt.Errorf("mosaic: %w (have %d)", ErrUnsupportedChannels, r.channels)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	centers := placeCenters(r.height, r.width, seeds, rng)

	assigned := make([]int, area)
	for row := 0; row < r.height; row++ {
		for col := 0; col < r.width; col++ {
			k := nearestCenter(centers, row, col)
			assigned[row*r.width+col] = k
			i := r.offset(row, col)
			centers[k].add(r.pix[i], r.pix[i+1], r.pix[i+2])
		}
	}

	const channels = 3
	pix := make([]int, area*channels)
	for p, k := range assigned {
		red, green, blue := centers[k].Mean()
		pix[p*channels] = red
		pix[p*channels+1] = green
		pix[p*channels+2] = blue
	}
	return derive(r.height, r.width, channels, r.minValue, r.maxValue, pix), nil
}

// placeCenters draws seeds distinct positions uniformly from the raster.
func placeCenters(height, width, seeds int, rng *rand.Rand) []ClusterCenter {
	centers := make([]ClusterCenter, 0, seeds)
	taken := make(map[int]struct{}, seeds)
	for len(centers) < seeds {
		x := rng.Intn(width)
		y := rng.Intn(height)
		key := y*width + x
		if _, dup := taken[key]; dup {
			continue
		}
		taken[key] = struct{}{}
		centers = append(centers, ClusterCenter{X: x, Y: y})
	}
	return centers
}

// nearestCenter returns the index of the closest center to (row, col).
// The first center at the minimum distance wins.
func nearestCenter(centers []ClusterCenter, row, col int) int {
	best := 0
	bestDist := centers[0].Distance(row, col)
	for k := 1; k < len(centers); k++ {
		if d := centers[k].Distance(row, col); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
