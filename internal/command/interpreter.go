// Package command implements the image-wizard command language.
//
// An instruction is a command name followed by whitespace-separated
// arguments, for example:
//
//	load images/cat.png cat
//	greyscale luma-component cat cat-grey
//	mosaic 500 cat cat-mosaic
//	save out/cat-mosaic.png cat-mosaic
//
// Images are referred to by name and live in a store.Store shared with the
// caller. Instructions can be typed interactively (Run) or read from a
// script file (RunScript), where blank lines and lines starting with "#" are
// ignored.
package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/image-wizard/internal/raster"
	"github.com/ironsheep/image-wizard/internal/store"
)

var (
	// ErrCommandNotFound is returned for an unknown command name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrInvalidArguments is returned for a wrong argument count or an
	// argument that does not parse.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrQuit is returned by Execute for the quit command.
	ErrQuit = errors.New("quit")

	// ErrScriptDepth is returned when scripts nest deeper than MaxScriptDepth.
	ErrScriptDepth = errors.New("scripts nested too deeply")
)

// MaxScriptDepth bounds how many run commands may be active at once.
const MaxScriptDepth = 16

// Messages printed by the interpreter.
const (
	WelcomeMessage  = "Welcome to Image Wizard"
	Prompt          = "Type an instruction : "
	SuccessMessage  = "Task executed successfully"
	FinishedScript  = "Finished running script : "
	AbortingScript  = "Aborting script"
	QuittingMessage = "Quitting..."
)

// Interpreter executes instructions against a store.
//
// An Interpreter is not safe for concurrent use; the store it wraps is.
type Interpreter struct {
	store   *store.Store
	out     io.Writer
	logger  *log.Logger
	rng     *rand.Rand
	baseDir string
	depth   int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for diagnostic output. By default
// diagnostics are discarded.
func WithLogger(l *log.Logger) Option {
	return func(in *Interpreter) {
		in.logger = l
	}
}

// WithRand sets the random source used by mosaic.
func WithRand(rng *rand.Rand) Option {
	return func(in *Interpreter) {
		in.rng = rng
	}
}

// WithBaseDir resolves relative file paths against dir instead of the
// working directory.
func WithBaseDir(dir string) Option {
	return func(in *Interpreter) {
		in.baseDir = dir
	}
}

// New creates an interpreter that stores images in s and writes messages to out.
func New(s *store.Store, out io.Writer, opts ...Option) *Interpreter {
	in := &Interpreter{
		store:  s,
		out:    out,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.rng == nil {
		in.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return in
}

// Execute runs a single instruction.
//
// The command's progress message is written before it runs and
// SuccessMessage after it succeeds. Blank lines are ignored.
//
// # Errors
//
//   - ErrCommandNotFound for an unknown command
//   - ErrInvalidArguments for a wrong argument count or bad number
//   - ErrQuit for quit or q
//   - Store, codec and raster errors are returned wrapped
func (in *Interpreter) Execute(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	cmd, err := lookup(tokens[0])
	if err != nil {
		return err
	}
	args := tokens[1:]
	if !cmd.acceptsArgs(len(args)) {
		return fmt.Errorf("%w: %s takes %s, got %d (usage: %s)",
			ErrInvalidArguments, cmd.Name, arityText(cmd.Arity), len(args), cmd.Syntax)
	}

	if cmd.Message != "" {
		fmt.Fprintln(in.out, cmd.Message)
	}

	start := time.Now()
	if err := cmd.run(in, args); err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	in.logger.Printf("%s completed in %v", cmd.Name, time.Since(start))

	if cmd.Message != "" {
		fmt.Fprintln(in.out, SuccessMessage)
	}
	return nil
}

// RunScript executes every instruction in the file at path.
//
// Blank lines and lines whose first non-space character is "#" are skipped.
// Execution stops at the first failing instruction, whose error is returned
// with its line number. A quit instruction ends the script early without an
// error.
func (in *Interpreter) RunScript(path string) error {
	if in.depth >= MaxScriptDepth {
		return fmt.Errorf("%w: %s", ErrScriptDepth, path)
	}

	path = in.resolve(path)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	in.depth++
	defer func() { in.depth-- }()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := in.Execute(line); err != nil {
			if errors.Is(err, ErrQuit) {
				break
			}
			fmt.Fprintln(in.out, AbortingScript)
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	fmt.Fprintln(in.out, FinishedScript+path)
	return nil
}

// Run reads instructions from r until quit or end of input.
//
// Errors from individual instructions are printed and the loop continues.
// The returned error is non-nil only if reading r fails.
func (in *Interpreter) Run(r io.Reader) error {
	fmt.Fprintln(in.out, WelcomeMessage)

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(in.out, Prompt)
		if !scanner.Scan() {
			break
		}

		err := in.Execute(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			in.logger.Printf("instruction failed: %v", err)
			fmt.Fprintln(in.out, err)
		}
	}

	fmt.Fprintln(in.out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Store returns the interpreter's image store.
func (in *Interpreter) Store() *store.Store {
	return in.store
}

// transform applies fn to the image named src and stores the result as dst.
func (in *Interpreter) transform(src, dst string, fn func(*raster.Raster) (*raster.Raster, error)) error {
	r, err := in.store.Get(src)
	if err != nil {
		return err
	}
	out, err := fn(r)
	if err != nil {
		return err
	}
	in.store.Put(dst, out)
	return nil
}

// resolve interprets relative paths against the base directory.
func (in *Interpreter) resolve(path string) string {
	if in.baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(in.baseDir, path)
}

func arityText(arity []int) string {
	parts := make([]string, len(arity))
	for i, n := range arity {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " or ") + " arguments"
}
