package command

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ironsheep/image-wizard/internal/raster"
)

func TestCommands_Table(t *testing.T) {
	cmds := Commands()

	want := []string{
		"load", "save", "brighten", "greyscale", "rgb-split", "rgb-combine",
		"horizontal-flip", "vertical-flip", "blur", "sharpen", "sepia",
		"dither", "mosaic", "list", "help", "run", "quit",
	}
	if len(cmds) != len(want) {
		t.Fatalf("got %d commands, want %d", len(cmds), len(want))
	}
	for i, c := range cmds {
		if c.Name != want[i] {
			t.Errorf("command %d: got %s, want %s", i, c.Name, want[i])
		}
		if c.Syntax == "" || c.Description == "" || len(c.Arity) == 0 || c.run == nil {
			t.Errorf("%s: incomplete definition %+v", c.Name, c)
		}
		if !strings.HasPrefix(c.Syntax, c.Name) {
			t.Errorf("%s: syntax %q should start with the name", c.Name, c.Syntax)
		}
	}

	// Commands returns a copy
	cmds[0].Name = "changed"
	if Commands()[0].Name != "load" {
		t.Error("Commands should not expose the internal table")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"load", "mosaic", "q", "quit"} {
		if _, err := lookup(name); err != nil {
			t.Errorf("lookup(%q): %v", name, err)
		}
	}
	q, _ := lookup("q")
	if q.Name != "quit" {
		t.Errorf("q should alias quit, got %s", q.Name)
	}
	if _, err := lookup("nope"); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("lookup(nope): got %v, want ErrCommandNotFound", err)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{"-25", -25, false},
		{"0", 0, false},
		{"1.5", 0, true},
		{"ten", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseInt("amount", tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidArguments) {
				t.Errorf("parseInt(%q): got %v, want ErrInvalidArguments", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseInt(%q): got %d, %v, want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestLoadSave(t *testing.T) {
	in, _ := newTestInterpreter(t)
	writeFile(t, in, "img.ppm", "P3\n# sample\n1 2\n100\n1 2 3\n4 5 6\n")

	mustExecute(t, in, "load img.ppm img")
	r := mustGet(t, in, "img")
	if r.Height() != 2 || r.Width() != 1 || r.MaxValue() != 100 {
		t.Errorf("loaded %v, want 2x1 with max 100", r)
	}

	mustExecute(t, in, "save copy.png img")
	mustExecute(t, in, "load copy.png copy")
	if got := mustGet(t, in, "copy").At(1, 0, 2); got != 6 {
		t.Errorf("png round trip (1,0,2): got %d, want 6", got)
	}

	if err := in.Execute("load missing.png x"); err == nil {
		t.Error("loading a missing file should fail")
	}
	if err := in.Execute("save noext img"); err == nil {
		t.Error("saving without an extension should fail")
	}
	if err := in.Execute("save out.png nothing"); err == nil {
		t.Error("saving an unknown image should fail")
	}
	if _, err := os.Stat(in.resolve("out.png")); err == nil {
		t.Error("failed save should not create a file")
	}
}

func TestBrighten(t *testing.T) {
	in, _ := newTestInterpreter(t)
	putRaster(t, in, "img", [][][]int{
		{{10, 10, 10}, {250, 250, 250}},
		{{0, 0, 0}, {5, 5, 5}},
	})

	mustExecute(t, in, "brighten 20 img bright")
	mustExecute(t, in, "brighten -20 img dark")

	bright := mustGet(t, in, "bright")
	for _, tt := range []struct{ row, col, want int }{{0, 0, 30}, {0, 1, 255}, {1, 0, 20}, {1, 1, 25}} {
		if got := bright.At(tt.row, tt.col, 0); got != tt.want {
			t.Errorf("bright (%d,%d): got %d, want %d", tt.row, tt.col, got, tt.want)
		}
	}
	if got := mustGet(t, in, "dark").At(1, 1, 0); got != 0 {
		t.Errorf("dark (1,1): got %d, want 0", got)
	}
	if got := mustGet(t, in, "img").At(0, 0, 0); got != 10 {
		t.Errorf("source changed: got %d, want 10", got)
	}
}

func TestGreyscale(t *testing.T) {
	in, _ := newTestInterpreter(t)
	putRaster(t, in, "img", [][][]int{{{200, 100, 50}}})

	tests := []struct {
		line string
		want int
	}{
		{"greyscale red-component img out", 200},
		{"greyscale green-component img out", 100},
		{"greyscale blue-component img out", 50},
		{"greyscale value-component img out", 200},
		{"greyscale intensity-component img out", 117},
		{"greyscale luma-component img out", 118},
		{"greyscale img out", 118},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			mustExecute(t, in, tt.line)
			out := mustGet(t, in, "out")
			for ch := 0; ch < 3; ch++ {
				if got := out.At(0, 0, ch); got != tt.want {
					t.Errorf("channel %d: got %d, want %d", ch, got, tt.want)
				}
			}
		})
	}
}

func TestSplitCombine(t *testing.T) {
	in, _ := newTestInterpreter(t)
	original := putRaster(t, in, "img", [][][]int{
		{{10, 20, 30}, {40, 50, 60}},
		{{70, 80, 90}, {100, 110, 120}},
	})

	mustExecute(t, in, "rgb-split img r g b")
	for name, want := range map[string]int{"r": 10, "g": 20, "b": 30} {
		if got := mustGet(t, in, name).At(0, 0, 1); got != want {
			t.Errorf("%s (0,0,1): got %d, want %d", name, got, want)
		}
	}

	mustExecute(t, in, "rgb-combine combined r g b")
	if !mustGet(t, in, "combined").Equal(original) {
		t.Errorf("combine(split(img)) differs: %v", mustGet(t, in, "combined").Grid())
	}

	if err := in.Execute("rgb-combine combined r g missing"); err == nil {
		t.Error("combining a missing image should fail")
	}
}

func TestFlip(t *testing.T) {
	in, _ := newTestInterpreter(t)
	original := putRaster(t, in, "img", [][][]int{
		{{1, 1, 1}, {2, 2, 2}},
		{{3, 3, 3}, {4, 4, 4}},
	})

	mustExecute(t, in, "horizontal-flip img h")
	mustExecute(t, in, "vertical-flip img v")

	if got := mustGet(t, in, "h").At(0, 0, 0); got != 2 {
		t.Errorf("horizontal (0,0): got %d, want 2", got)
	}
	if got := mustGet(t, in, "v").At(0, 0, 0); got != 3 {
		t.Errorf("vertical (0,0): got %d, want 3", got)
	}

	mustExecute(t, in, "horizontal-flip h hh")
	if !mustGet(t, in, "hh").Equal(original) {
		t.Error("flipping twice should restore the image")
	}
}

func TestBlurSharpen(t *testing.T) {
	in, _ := newTestInterpreter(t)
	putRaster(t, in, "img", [][][]int{
		{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 0, 0}, {160, 160, 160}, {0, 0, 0}},
		{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	})

	mustExecute(t, in, "blur img blurred")
	mustExecute(t, in, "sharpen img sharp")

	if got := mustGet(t, in, "blurred").At(1, 1, 0); got != 40 {
		t.Errorf("blur center: got %d, want 40", got)
	}
	if got := mustGet(t, in, "blurred").At(0, 0, 2); got != 10 {
		t.Errorf("blur corner: got %d, want 10", got)
	}
	if got := mustGet(t, in, "sharp").At(1, 1, 0); got != 160 {
		t.Errorf("sharpen center: got %d, want 160", got)
	}
	// Direct neighbours receive a quarter of the center
	if got := mustGet(t, in, "sharp").At(0, 1, 0); got != 40 {
		t.Errorf("sharpen edge: got %d, want 40", got)
	}
}

func TestSepia(t *testing.T) {
	in, _ := newTestInterpreter(t)
	putRaster(t, in, "img", [][][]int{{{200, 50, 10}, {255, 255, 255}}})

	mustExecute(t, in, "sepia img out")

	got := mustGet(t, in, "out").Grid()[0]
	want := [][]int{{119, 106, 82}, {255, 255, 239}}
	for col := range want {
		for ch := range want[col] {
			if got[col][ch] != want[col][ch] {
				t.Errorf("pixel %d: got %v, want %v", col, got[col], want[col])
				break
			}
		}
	}
}

func TestDither(t *testing.T) {
	in, _ := newTestInterpreter(t)
	putRaster(t, in, "img", [][][]int{
		{{0, 100, 0}, {0, 100, 0}},
		{{0, 100, 0}, {0, 100, 0}},
	})

	mustExecute(t, in, "dither green img out")

	want := [][]int{{0, 255}, {0, 0}}
	out := mustGet(t, in, "out")
	for row := range want {
		for col := range want[row] {
			for ch := 0; ch < 3; ch++ {
				if got := out.At(row, col, ch); got != want[row][col] {
					t.Errorf("(%d,%d,%d): got %d, want %d", row, col, ch, got, want[row][col])
				}
			}
		}
	}
}

func TestMosaic(t *testing.T) {
	in, _ := newTestInterpreter(t)
	original := putRaster(t, in, "img", [][][]int{
		{{0, 10, 255}, {1, 20, 0}},
		{{2, 30, 0}, {4, 41, 0}},
	})

	mustExecute(t, in, "mosaic 4 img same")
	if !mustGet(t, in, "same").Equal(original) {
		t.Error("one seed per pixel should reproduce the input")
	}

	mustExecute(t, in, "mosaic 1 img one")
	grid := mustGet(t, in, "one").Grid()
	for _, row := range grid {
		for _, px := range row {
			if px[0] != 1 || px[1] != 25 || px[2] != 63 {
				t.Errorf("single seed pixel: got %v, want [1 25 63]", px)
			}
		}
	}

	mustExecute(t, in, "mosaic 2 img two")
	colors := map[[3]int]bool{}
	for _, row := range mustGet(t, in, "two").Grid() {
		for _, px := range row {
			colors[[3]int{px[0], px[1], px[2]}] = true
		}
	}
	if len(colors) > 2 {
		t.Errorf("two seeds gave %d colors", len(colors))
	}
}

func TestList(t *testing.T) {
	in, out := newTestInterpreter(t)
	putRaster(t, in, "zeta", [][][]int{{{1, 2, 3}}})
	putRaster(t, in, "alpha", [][][]int{{{1, 2, 3}, {4, 5, 6}}})

	mustExecute(t, in, "list")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "alpha\t") || !strings.Contains(lines[0], "1x2") {
		t.Errorf("first line: got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "zeta\t") {
		t.Errorf("second line: got %q", lines[1])
	}
	if strings.Contains(out.String(), SuccessMessage) {
		t.Error("list should not print a success message")
	}
}

func TestHelp(t *testing.T) {
	in, out := newTestInterpreter(t)

	mustExecute(t, in, "help")

	for _, c := range Commands() {
		if !strings.Contains(out.String(), c.Syntax) {
			t.Errorf("help should show %q", c.Syntax)
		}
	}
}

func TestCommandsDoNotMutateSources(t *testing.T) {
	in, _ := newTestInterpreter(t)
	original := putRaster(t, in, "img", [][][]int{
		{{10, 200, 30}, {40, 50, 160}},
		{{70, 80, 90}, {100, 110, 120}},
	})
	snapshot, err := raster.New(2, 2, original.Grid())
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}

	for _, line := range []string{
		"brighten 50 img o1",
		"greyscale luma-component img o2",
		"greyscale img o3",
		"rgb-split img o4 o5 o6",
		"horizontal-flip img o7",
		"vertical-flip img o8",
		"blur img o9",
		"sharpen img o10",
		"sepia img o11",
		"dither red img o12",
		"mosaic 2 img o13",
	} {
		mustExecute(t, in, line)
	}

	if !mustGet(t, in, "img").Equal(snapshot) {
		t.Errorf("source image changed: %v", mustGet(t, in, "img").Grid())
	}
}
