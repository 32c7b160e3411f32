package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/filter"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/release"
)

type evalOptions struct {
	commonOptions
	scriptPath   string
	manifestPath string
}

func parseEvalArgs(args []string) (*evalOptions, error) {
	opts := &evalOptions{}

	for i := 0; i < len(args); i++ {
		skip, handled, err := opts.parseCommon(args, i)
		if err != nil {
			return nil, err
		}
		if handled {
			i += skip
			continue
		}

		switch arg := args[i]; arg {
		case "--manifest":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--manifest requires a value")
			}
			opts.manifestPath = args[i+1]
			i++
		default:
			if len(arg) > 0 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown option: %s\nRun 'ghdl eval --help' for usage", arg)
			}
			if opts.scriptPath != "" {
				return nil, fmt.Errorf("only one script may be given")
			}
			opts.scriptPath = arg
		}
	}

	if !opts.showHelp && opts.scriptPath == "" {
		return nil, fmt.Errorf("no script specified; run 'ghdl eval --help' for usage")
	}
	return opts, nil
}

// runEval handles the `ghdl eval` subcommand
func runEval(args []string) error {
	opts, err := parseEvalArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printEvalHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	code, err := os.ReadFile(opts.scriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	info, err := opts.platformInfo(ctx)
	if err != nil {
		return err
	}

	log := opts.logger()
	// Scripts on platforms without a matcher list see matchers = nil.
	matchers, err := opts.resolveMatchers(ctx, log)
	if err != nil {
		log.Warn("no matchers for script", "error", err)
	}

	rt, err := filter.NewRuntime(
		filter.WithLogger(log),
		filter.WithPlatform(info),
	)
	if err != nil {
		return err
	}
	defer rt.Close()
	if matchers != nil {
		rt.SetMatchers(matchers)
	}

	if opts.manifestPath != "" {
		data, err := os.ReadFile(opts.manifestPath)
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		manifest, err := release.DecodeManifest(data)
		if err != nil {
			return err
		}
		rt.SetManifest(manifest)
	}

	url, err := rt.Run(ctx, string(code))
	if err != nil {
		return &scriptFailure{text: filter.FormatError(err, opts.verbose), err: err}
	}

	fmt.Fprintln(stdout, url)
	return nil
}

// scriptFailure shows a script error in its display form while keeping the
// underlying chain for exit status decisions.
type scriptFailure struct {
	text string
	err  error
}

func (e *scriptFailure) Error() string { return e.text }

func (e *scriptFailure) Unwrap() error { return e.err }

func printEvalHelp() {
	fmt.Fprintln(stdout, "Usage: ghdl eval [options] <script.lua>")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Run a sandboxed Lua script and print the string it stores in the")
	fmt.Fprintln(stdout, "global 'result'. Scripts see:")
	fmt.Fprintln(stdout, "  ghdl.filter_binaries(manifest, matchers)  selected URL, raises on failure")
	fmt.Fprintln(stdout, "  ghdl.select(manifest, matchers)           URL or nil, message, kind")
	fmt.Fprintln(stdout, "  ghdl.decode_manifest(json)                manifest table")
	fmt.Fprintln(stdout, "  platform                                  os, arch, matchers, ...")
	fmt.Fprintln(stdout, "  matchers                                  --match, $GHDL_MATCHERS or platform matchers")
	fmt.Fprintln(stdout, "  release                                   the --manifest, if given")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "      --manifest <file>  Release JSON exposed as 'release'")
	fmt.Fprintln(stdout, "  -m, --match <string>   Matcher exposed in 'matchers' (repeatable)")
	fmt.Fprintln(stdout, "  -t, --target <os/arch> Platform for the 'platform' table")
	fmt.Fprintln(stdout, "  -v, --verbose          Log selections and show full Lua errors")
	fmt.Fprintln(stdout, "  -h, --help             Show this help")
}
