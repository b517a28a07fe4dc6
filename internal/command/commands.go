package command

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/image-wizard/internal/imaging"
	"github.com/ironsheep/image-wizard/internal/raster"
)

// Command describes one instruction of the command language.
type Command struct {
	// Name is the first token of the instruction.
	Name string

	// Arity lists the accepted argument counts, excluding the name.
	Arity []int

	// Syntax shows the expected form, printed by help and on argument errors.
	Syntax string

	// Description is a one-line summary for help.
	Description string

	// Message is printed before the command runs.
	Message string

	run func(in *Interpreter, args []string) error
}

func (c *Command) acceptsArgs(n int) bool {
	for _, a := range c.Arity {
		if a == n {
			return true
		}
	}
	return false
}

// Commands returns the command table in help order.
func Commands() []Command {
	out := make([]Command, len(commandTable))
	copy(out, commandTable)
	return out
}

var (
	commandTable []Command
	commandIndex map[string]*Command
)

// init builds the command table and its name index.
func init() {
	commandTable = []Command{
		{
			Name:        "load",
			Arity:       []int{2},
			Syntax:      "load <image-path> <image-name>",
			Description: "load image",
			Message:     "Loading image...",
			run:         runLoad,
		},
		{
			Name:        "save",
			Arity:       []int{2},
			Syntax:      "save <image-path> <image-name>",
			Description: "save image",
			Message:     "Saving image...",
			run:         runSave,
		},
		{
			Name:        "brighten",
			Arity:       []int{3},
			Syntax:      "brighten <amount> <image-name> <dest-image-name>",
			Description: "brighten or darken image",
			Message:     "Brightening image...",
			run:         runBrighten,
		},
		{
			Name:        "greyscale",
			Arity:       []int{2, 3},
			Syntax:      "greyscale [<component>-component] <image-name> <dest-image-name>",
			Description: "create greyscale image",
			Message:     "Creating greyscale image...",
			run:         runGreyscale,
		},
		{
			Name:        "rgb-split",
			Arity:       []int{4},
			Syntax:      "rgb-split <image-name> <red-image-name> <green-image-name> <blue-image-name>",
			Description: "split image into greyscale images",
			Message:     "Splitting image...",
			run:         runSplit,
		},
		{
			Name:        "rgb-combine",
			Arity:       []int{4},
			Syntax:      "rgb-combine <image-name> <red-image-name> <green-image-name> <blue-image-name>",
			Description: "combine greyscale images",
			Message:     "Combining images...",
			run:         runCombine,
		},
		{
			Name:        "horizontal-flip",
			Arity:       []int{2},
			Syntax:      "horizontal-flip <image-name> <dest-image-name>",
			Description: "flip image horizontally",
			Message:     "Horizontally flipping image...",
			run:         flipRunner(raster.Horizontal),
		},
		{
			Name:        "vertical-flip",
			Arity:       []int{2},
			Syntax:      "vertical-flip <image-name> <dest-image-name>",
			Description: "flip image vertically",
			Message:     "Vertically flipping image...",
			run:         flipRunner(raster.Vertical),
		},
		{
			Name:        "blur",
			Arity:       []int{2},
			Syntax:      "blur <image-name> <dest-image-name>",
			Description: "blur an image",
			Message:     "Blurring image...",
			run:         filterRunner(raster.BlurKernel),
		},
		{
			Name:        "sharpen",
			Arity:       []int{2},
			Syntax:      "sharpen <image-name> <dest-image-name>",
			Description: "sharpen an image",
			Message:     "Sharpening image...",
			run:         filterRunner(raster.SharpenKernel),
		},
		{
			Name:        "sepia",
			Arity:       []int{2},
			Syntax:      "sepia <image-name> <dest-image-name>",
			Description: "create sepia image",
			Message:     "Creating sepia image...",
			run:         runSepia,
		},
		{
			Name:        "dither",
			Arity:       []int{3},
			Syntax:      "dither <red|green|blue> <image-name> <dest-image-name>",
			Description: "create a dithered image",
			Message:     "Creating dithered image...",
			run:         runDither,
		},
		{
			Name:        "mosaic",
			Arity:       []int{3},
			Syntax:      "mosaic <seeds> <image-name> <dest-image-name>",
			Description: "mosaic image",
			Message:     "Mosaicking image...",
			run:         runMosaic,
		},
		{
			Name:        "list",
			Arity:       []int{0},
			Syntax:      "list",
			Description: "list loaded images",
			run:         runList,
		},
		{
			Name:        "help",
			Arity:       []int{0},
			Syntax:      "help",
			Description: "show available commands",
			run:         runHelp,
		},
		{
			Name:        "run",
			Arity:       []int{1},
			Syntax:      "run <script-path>",
			Description: "run script",
			run: func(in *Interpreter, args []string) error {
				return in.RunScript(args[0])
			},
		},
		{
			Name:        "quit",
			Arity:       []int{0},
			Syntax:      "quit | q",
			Description: "quit program",
			Message:     QuittingMessage,
			run: func(*Interpreter, []string) error {
				return ErrQuit
			},
		},
	}

	commandIndex = make(map[string]*Command, len(commandTable)+1)
	for i := range commandTable {
		commandIndex[commandTable[i].Name] = &commandTable[i]
	}
	commandIndex["q"] = commandIndex["quit"]
}

func lookup(name string) (*Command, error) {
	cmd, ok := commandIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}
	return cmd, nil
}

func parseInt(what, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid value for %s: %q", ErrInvalidArguments, what, s)
	}
	return v, nil
}

func runLoad(in *Interpreter, args []string) error {
	r, err := imaging.Load(in.resolve(args[0]))
	if err != nil {
		return err
	}
	in.store.Put(args[1], r)
	return nil
}

func runSave(in *Interpreter, args []string) error {
	r, err := in.store.Get(args[1])
	if err != nil {
		return err
	}
	return imaging.Save(in.resolve(args[0]), r)
}

func runBrighten(in *Interpreter, args []string) error {
	amount, err := parseInt("brightening amount", args[0])
	if err != nil {
		return err
	}
	src, err := in.store.Get(args[1])
	if err != nil {
		return err
	}
	in.store.Put(args[2], src.Brighten(amount))
	return nil
}

func runGreyscale(in *Interpreter, args []string) error {
	if len(args) == 2 {
		return in.transform(args[0], args[1], func(r *raster.Raster) (*raster.Raster, error) {
			return r.ColorTransform(raster.LumaMatrix())
		})
	}

	component, err := raster.ParseComponent(args[0])
	if err != nil {
		return err
	}
	return in.transform(args[1], args[2], func(r *raster.Raster) (*raster.Raster, error) {
		return r.Greyscale(component)
	})
}

func runSplit(in *Interpreter, args []string) error {
	src, err := in.store.Get(args[0])
	if err != nil {
		return err
	}
	parts, err := src.Split()
	if err != nil {
		return err
	}
	for i, part := range parts {
		in.store.Put(args[i+1], part)
	}
	return nil
}

func runCombine(in *Interpreter, args []string) error {
	channels := make([]*raster.Raster, 3)
	for i, name := range args[1:] {
		r, err := in.store.Get(name)
		if err != nil {
			return err
		}
		channels[i] = r
	}
	combined, err := channels[0].Combine(channels[1], channels[2])
	if err != nil {
		return err
	}
	in.store.Put(args[0], combined)
	return nil
}

func flipRunner(d raster.FlipDirection) func(*Interpreter, []string) error {
	return func(in *Interpreter, args []string) error {
		return in.transform(args[0], args[1], func(r *raster.Raster) (*raster.Raster, error) {
			return r.Flip(d)
		})
	}
}

func filterRunner(kernel func() raster.Kernel) func(*Interpreter, []string) error {
	return func(in *Interpreter, args []string) error {
		return in.transform(args[0], args[1], func(r *raster.Raster) (*raster.Raster, error) {
			return r.Filter(kernel())
		})
	}
}

func runSepia(in *Interpreter, args []string) error {
	return in.transform(args[0], args[1], func(r *raster.Raster) (*raster.Raster, error) {
		return r.ColorTransform(raster.SepiaMatrix())
	})
}

func runDither(in *Interpreter, args []string) error {
	ch, err := raster.ParseChannel(args[0])
	if err != nil {
		return err
	}
	return in.transform(args[1], args[2], func(r *raster.Raster) (*raster.Raster, error) {
		return r.Dither(ch)
	})
}

func runMosaic(in *Interpreter, args []string) error {
	seeds, err := parseInt("mosaic seeds", args[0])
	if err != nil {
		return err
	}
	return in.transform(args[1], args[2], func(r *raster.Raster) (*raster.Raster, error) {
		return r.Mosaic(seeds, in.rng)
	})
}

func runList(in *Interpreter, _ []string) error {
	for _, name := range in.store.Names() {
		r, err := in.store.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(in.out, "%s\t%s\n", name, r)
	}
	return nil
}

func runHelp(in *Interpreter, _ []string) error {
	for _, c := range commandTable {
		fmt.Fprintf(in.out, "  %-16s %s\n", c.Name, c.Description)
		fmt.Fprintf(in.out, "  %-16s   %s\n", "", c.Syntax)
	}
	return nil
}
