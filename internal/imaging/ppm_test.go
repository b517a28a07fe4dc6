package imaging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/image-wizard/internal/raster"
)

func TestDecodePPM(t *testing.T) {
	input := `P3
# created by hand
2 2
255
255 0 0    0 255 0
0 0 255    10 20 30 # trailing comment
`
	r, err := DecodePPM(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}

	if r.Width() != 2 || r.Height() != 2 || r.Channels() != 3 {
		t.Fatalf("shape: got %dx%dx%d, want 2x2x3", r.Height(), r.Width(), r.Channels())
	}

	want := [][][]int{
		{{255, 0, 0}, {0, 255, 0}},
		{{0, 0, 255}, {10, 20, 30}},
	}
	for row := range want {
		for col := range want[row] {
			for ch, v := range want[row][col] {
				if r.At(row, col, ch) != v {
					t.Errorf("(%d,%d,%d): got %d, want %d", row, col, ch, r.At(row, col, ch), v)
				}
			}
		}
	}
}

func TestDecodePPM_MaxValBecomesBound(t *testing.T) {
	r, err := DecodePPM(strings.NewReader("P3 1 1 100 50 60 70"))
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if r.MinValue() != 0 || r.MaxValue() != 100 {
		t.Errorf("bounds: got [%d,%d], want [0,100]", r.MinValue(), r.MaxValue())
	}
	if r.At(0, 0, 2) != 70 {
		t.Errorf("blue: got %d, want 70", r.At(0, 0, 2))
	}
}

func TestDecodePPM_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"binary magic", "P6 1 1 255 0 0 0"},
		{"truncated header", "P3 1 1"},
		{"zero width", "P3 0 1 255"},
		{"non-numeric height", "P3 1 x 255 0 0 0"},
		{"missing samples", "P3 2 1 255 1 2 3 4 5"},
		{"missing rows", "P3 1 2 255 1 2 3"},
		{"overflowing dimensions", "P3\n3074457345618258603 1\n255\n1 2 3\n"},
		{"overflowing product", "P3 3037000500 3037000500 255 1 2 3"},
		{"non-numeric sample", "P3 1 1 255 1 two 3"},
		{"sample above maxval", "P3 1 1 15 1 2 16"},
		{"negative sample", "P3 1 1 255 1 -2 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePPM(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidPPM) {
				t.Errorf("got %v, want ErrInvalidPPM", err)
			}
		})
	}
}

func TestEncodePPM(t *testing.T) {
	r := mustRaster(t, [][][]int{{{1, 2, 3}, {4, 5, 6}}})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, r); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	want := "P3\n2 1\n255\n1 2 3\n4 5 6\n"
	if buf.String() != want {
		t.Errorf("output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestEncodePPM_RejectsNegativeBounds(t *testing.T) {
	r := mustRaster(t, [][][]int{{{-5, 0, 5}}}, raster.WithBounds(-10, 10))

	var buf bytes.Buffer
	err := EncodePPM(&buf, r)
	if !errors.Is(err, ErrInvalidPPM) {
		t.Fatalf("got %v, want ErrInvalidPPM", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestEncodePPM_GreyAndAlpha(t *testing.T) {
	tests := []struct {
		name string
		grid [][][]int
		want string
	}{
		{"single channel broadcasts", [][][]int{{{9}}}, "P3\n1 1\n255\n9 9 9\n"},
		{"alpha dropped", [][][]int{{{1, 2, 3, 4}}}, "P3\n1 1\n255\n1 2 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodePPM(&buf, mustRaster(t, tt.grid)); err != nil {
				t.Fatalf("EncodePPM failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPPM_RoundTrip(t *testing.T) {
	r := mustRaster(t, [][][]int{
		{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
		{{1000, 0, 999}, {12, 13, 14}, {15, 16, 17}},
	}, raster.WithBounds(0, 1000))

	var buf bytes.Buffer
	if err := EncodePPM(&buf, r); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}
	back, err := DecodePPM(&buf)
	if err != nil {
		t.Fatalf("DecodePPM failed: %v", err)
	}
	if !back.Equal(r) {
		t.Errorf("round trip: got %v, want %v", back.Grid(), r.Grid())
	}
}
