package raster

import (
	"errors"
	"testing"
)

func TestDither_KnownPattern(t *testing.T) {
	r := mustNew(t, uniformGrid(2, 2, 3, 100))

	got, err := r.Dither(ChannelRed)
	if err != nil {
		t.Fatalf("Dither failed: %v", err)
	}

	// (0,0): 100 -> 0, error 100 spreads +43, +31, +6
	// (0,1): 143 -> 255, error -112 spreads -21, -35
	// (1,0): 110 -> 0, error 110 spreads +48
	// (1,1): 100 + 6 - 35 + 48 = 119 -> 0
	want := [][]int{{0, 255}, {0, 0}}
	for row := range want {
		for col := range want[row] {
			for ch := 0; ch < 3; ch++ {
				if got.At(row, col, ch) != want[row][col] {
					t.Errorf("(%d,%d,%d): got %d, want %d", row, col, ch, got.At(row, col, ch), want[row][col])
				}
			}
		}
	}
}

func TestDither_SingleRow(t *testing.T) {
	r := mustNew(t, [][][]int{{{100, 0, 0}, {100, 0, 0}, {100, 0, 0}}})

	got, err := r.Dither(ChannelRed)
	if err != nil {
		t.Fatalf("Dither failed: %v", err)
	}

	// 100 -> 0 (+43), 143 -> 255 (-112*7/16 = -49), 51 -> 0
	want := []int{0, 255, 0}
	for col, w := range want {
		if got.At(0, col, 0) != w {
			t.Errorf("col %d: got %d, want %d", col, got.At(0, col, 0), w)
		}
	}
}

func TestDither_OnlyTwoLevels(t *testing.T) {
	r := mustNew(t, gradientGrid(16, 16))

	for _, ch := range []Channel{ChannelRed, ChannelGreen, ChannelBlue} {
		t.Run(ch.String(), func(t *testing.T) {
			got, err := r.Dither(ch)
			if err != nil {
				t.Fatalf("Dither failed: %v", err)
			}
			for row := 0; row < got.Height(); row++ {
				for col := 0; col < got.Width(); col++ {
					for c := 0; c < 3; c++ {
						if v := got.At(row, col, c); v != 0 && v != 255 {
							t.Fatalf("(%d,%d,%d): got %d, want 0 or 255", row, col, c, v)
						}
					}
				}
			}
		})
	}
}

func TestDither_SelectsChannel(t *testing.T) {
	r := mustNew(t, uniformGrid(3, 3, 3, 0))
	grid := r.Grid()
	for row := range grid {
		for col := range grid[row] {
			grid[row][col][1] = 255
		}
	}
	greenOnly := mustNew(t, grid)

	red, err := greenOnly.Dither(ChannelRed)
	if err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	green, err := greenOnly.Dither(ChannelGreen)
	if err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	if red.At(1, 1, 0) != 0 {
		t.Errorf("red dither: got %d, want 0", red.At(1, 1, 0))
	}
	if green.At(1, 1, 0) != 255 {
		t.Errorf("green dither: got %d, want 255", green.At(1, 1, 0))
	}
}

func TestDither_PreservesAlpha(t *testing.T) {
	r := mustNew(t, [][][]int{{{200, 0, 0, 12}}})

	got, err := r.Dither(ChannelRed)
	if err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	if got.At(0, 0, 0) != 255 || got.At(0, 0, 3) != 12 {
		t.Errorf("pixel: got (%d, alpha %d), want (255, alpha 12)", got.At(0, 0, 0), got.At(0, 0, 3))
	}
}

func TestDither_Errors(t *testing.T) {
	r := mustNew(t, uniformGrid(2, 2, 3, 0))
	if _, err := r.Dither(Channel(5)); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("unknown channel: got %v, want ErrInvalidComponent", err)
	}

	mono := mustNew(t, uniformGrid(2, 2, 1, 0))
	if _, err := mono.Dither(ChannelRed); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("single channel: got %v, want ErrUnsupportedChannels", err)
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		input string
		want  Channel
	}{
		{"red", ChannelRed},
		{"Green", ChannelGreen},
		{"blue-component", ChannelBlue},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChannel(tt.input)
			if err != nil {
				t.Fatalf("ParseChannel failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := ParseChannel("luma"); !errors.Is(err, ErrInvalidComponent) {
		t.Errorf("ParseChannel(luma): got %v, want ErrInvalidComponent", err)
	}
}
