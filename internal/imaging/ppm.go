package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironsheep/image-wizard/internal/raster"
)

// ErrInvalidPPM is returned by DecodePPM for malformed input.
var ErrInvalidPPM = errors.New("invalid PPM file")

const ppmMagic = "P3"

// DecodePPM reads a plain-text PPM (P3) image.
//
// The header is the magic "P3" followed by width, height and maxval, then
// width*height red, green, blue triples in row-major order. Tokens are
// separated by any whitespace and "#" starts a comment that runs to the end
// of the line.
//
// The raster has 3 channels and bounds [0, maxval].
//
// # Errors
//
//   - ErrInvalidPPM if the magic is not P3, a token is not a number, a
//     header value is not positive, a sample is outside [0, maxval], or the
//     data ends before width*height triples
func DecodePPM(rd io.Reader) (*raster.Raster, error) {
	tokens, err := ppmTokens(rd)
	if err != nil {
		return nil, err
	}

	if len(tokens) == 0 || tokens[0] != ppmMagic {
		return nil, fmt.Errorf("%w: plain PPM must begin with %s", ErrInvalidPPM, ppmMagic)
	}
	if len(tokens) < 4 {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalidPPM)
	}

	header := make([]int, 3)
	for i := range header {
		v, err := strconv.Atoi(tokens[i+1])
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: bad header value %q", ErrInvalidPPM, tokens[i+1])
		}
		header[i] = v
	}
	width, height, maxVal := header[0], header[1], header[2]

	samples := tokens[4:]
	if width > len(samples)/3 || height > len(samples)/3/width {
		return nil, fmt.Errorf("%w: have %d samples for a %dx%d image", ErrInvalidPPM, len(samples), width, height)
	}

	grid := make([][][]int, height)
	n := 0
	for row := 0; row < height; row++ {
		grid[row] = make([][]int, width)
		for col := 0; col < width; col++ {
			px := make([]int, 3)
			for c := range px {
				v, err := strconv.Atoi(samples[n])
				if err != nil {
					return nil, fmt.Errorf("%w: bad sample %q", ErrInvalidPPM, samples[n])
				}
				if v < 0 || v > maxVal {
					return nil, fmt.Errorf("%w: sample %d outside [0,%d]", ErrInvalidPPM, v, maxVal)
				}
				px[c] = v
				n++
			}
			grid[row][col] = px
		}
	}

	return raster.New(height, width, grid, raster.WithBounds(0, maxVal))
}

// ppmTokens splits the input into whitespace-separated tokens with comments
// removed.
func ppmTokens(rd io.Reader) ([]string, error) {
	var tokens []string
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read PPM: %w", err)
	}
	return tokens, nil
}

// EncodePPM writes r as plain-text PPM (P3) with one pixel per line.
//
// The raster's maximum bound is written as maxval. Rasters with fewer than
// 3 channels are written as grey; channels beyond the third are dropped.
//
// # Errors
//
//   - ErrInvalidPPM if the raster's bounds are not within [0, maxval] with a
//     positive maxval
func EncodePPM(w io.Writer, r *raster.Raster) error {
	if r.MinValue() < 0 || r.MaxValue() < 1 {
		return fmt.Errorf("%w: cannot encode bounds [%d,%d]", ErrInvalidPPM, r.MinValue(), r.MaxValue())
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", ppmMagic, r.Width(), r.Height(), r.MaxValue())

	for row := 0; row < r.Height(); row++ {
		for col := 0; col < r.Width(); col++ {
			if r.Channels() < 3 {
				v := r.At(row, col, 0)
				fmt.Fprintf(bw, "%d %d %d\n", v, v, v)
				continue
			}
			fmt.Fprintf(bw, "%d %d %d\n", r.At(row, col, 0), r.At(row, col, 1), r.At(row, col, 2))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write PPM: %w", err)
	}
	return nil
}
