package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/image-wizard/internal/command"
	"github.com/ironsheep/image-wizard/internal/server"
	"github.com/ironsheep/image-wizard/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "image-wizard - raster image editor and MCP server")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage: image-wizard [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fmt.Fprintln(out, "  -file <script>   Run the instructions in a script file and exit")
	fmt.Fprintln(out, "  -text            Read instructions interactively from stdin")
	fmt.Fprintln(out, "  --version, -v    Print version information")
	fmt.Fprintln(out, "  --help, -h       Print this help message")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Environment variables:")
	fmt.Fprintln(out, "  IMAGE_WIZARD_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Without -file or -text the MCP server runs over stdin/stdout.")
	fmt.Fprintln(out, "Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-wizard %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "help":
			flag.CommandLine.SetOutput(os.Stdout)
			usage()
			return
		}
	}

	flag.Usage = usage
	script := flag.String("file", "", "run the instructions in a script file and exit")
	text := flag.Bool("text", false, "read instructions interactively from stdin")
	flag.Parse()

	// Configure logging to stderr (stdout is for MCP protocol and command output)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_WIZARD_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Wizard v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	images := store.New()

	switch {
	case *script != "":
		in := command.New(images, os.Stdout, command.WithLogger(commandLogger(debug)))
		if err := in.RunScript(*script); err != nil {
			log.Fatalf("Script error: %v", err)
		}
	case *text:
		in := command.New(images, os.Stdout, command.WithLogger(commandLogger(debug)))
		if err := in.Run(os.Stdin); err != nil {
			log.Fatalf("Input error: %v", err)
		}
	default:
		server.Version = Version
		srv := server.New(server.WithStore(images))
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// commandLogger returns the interpreter's diagnostic logger, silent unless
// debug logging is enabled.
func commandLogger(debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "command: ", log.Ldate|log.Ltime|log.Lshortfile)
}
