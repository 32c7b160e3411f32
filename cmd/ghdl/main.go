package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/release"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

// Exit codes
const (
	exitOK       = 0
	exitError    = 1
	exitNotFound = 2
)

// Replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitOK
	}

	var err error
	switch args[0] {
	case "--version":
		fmt.Fprintf(stdout, "ghdl %s\n", Version)
		return exitOK
	case "--help", "-h", "help":
		printUsage()
		return exitOK
	case "select":
		err = runSelect(args[1:])
	case "matchers":
		err = runMatchers(args[1:])
	case "eval":
		err = runEval(args[1:])
	default:
		fmt.Fprintf(stderr, "Error: unknown command: %s\n", args[0])
		printUsage()
		return exitError
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, release.ErrNotFound) {
			return exitNotFound
		}
		return exitError
	}
	return exitOK
}

func printUsage() {
	fmt.Fprintln(stdout, "ghdl - pick the raw binary download from a release manifest")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintln(stdout, "  ghdl --version                    Show version information")
	fmt.Fprintln(stdout, "  ghdl select [options] [manifest]  Print the selected download URL")
	fmt.Fprintln(stdout, "  ghdl matchers [options]           Print the platform matchers")
	fmt.Fprintln(stdout, "  ghdl eval [options] <script.lua>  Run a Lua selection script")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Run 'ghdl <command> --help' for command options.")
}
