package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/logging"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/release"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/verify"
)

type selectOptions struct {
	commonOptions
	manifestPath string // "" or "-" reads stdin
	signature    string
	keyring      string
}

func parseSelectArgs(args []string) (*selectOptions, error) {
	opts := &selectOptions{}

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
		case "--signature", "--keyring":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			if arg == "--signature" {
				opts.signature = args[i+1]
			} else {
				opts.keyring = args[i+1]
			}
			i++
		default:
			if arg != "-" && len(arg) > 0 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown option: %s\nRun 'ghdl select --help' for usage", arg)
			}
			if opts.manifestPath != "" {
				return nil, fmt.Errorf("only one manifest may be given")
			}
			opts.manifestPath = arg
		}
	}

	if (opts.signature == "") != (opts.keyring == "") {
		return nil, fmt.Errorf("--signature and --keyring must be used together")
	}
	return opts, nil
}

// runSelect handles the `ghdl select` subcommand
func runSelect(args []string) error {
	opts, err := parseSelectArgs(args)
	if err != nil {
		return err
	}
	if opts.showHelp {
		printSelectHelp()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := opts.logger()

	manifest, err := loadManifest(opts, log)
	if err != nil {
		return err
	}

	matchers, err := opts.resolveMatchers(ctx, log)
	if err != nil {
		return err
	}

	url, err := release.SelectBinary(manifest, matchers)
	if err != nil {
		return err
	}

	log.Debug("selected binary", "asset", release.Basename(url))
	fmt.Fprintln(stdout, url)
	return nil
}

// loadManifest reads, optionally verifies, and decodes the manifest.
func loadManifest(opts *selectOptions, log logging.Logger) (map[string]any, error) {
	var r io.Reader = stdin
	name := "stdin"
	if opts.manifestPath != "" && opts.manifestPath != "-" {
		f, err := os.Open(opts.manifestPath)
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		defer f.Close()
		r = f
		name = opts.manifestPath
	}

	if opts.signature == "" {
		return release.ReadManifest(r)
	}

	verifier, err := verify.LoadKeyring(opts.keyring)
	if err != nil {
		return nil, err
	}
	data, result, err := verifier.VerifyReader(r, opts.signature)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", name, err)
	}
	log.Info("manifest signature verified", "key", result.KeyID, "identity", result.Identity)

	return release.DecodeManifest(data)
}

func printSelectHelp() {
	fmt.Fprintln(stdout, "Usage: ghdl select [options] [manifest.json]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Print the first asset URL that contains a matcher and is not a")
	fmt.Fprintln(stdout, "package, checksum or update file. The manifest is a release API")
	fmt.Fprintln(stdout, "response, bare or wrapped under a \"json\" key. Reads stdin when no")
	fmt.Fprintln(stdout, "file (or \"-\") is given.")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fmt.Fprintln(stdout, "  -m, --match <s>        Substring to match (repeatable)")
	fmt.Fprintln(stdout, "  -t, --target <os/arch> Use matchers for this platform instead of the host")
	fmt.Fprintln(stdout, "      --signature <file> Detached OpenPGP signature of the manifest")
	fmt.Fprintln(stdout, "      --keyring <file>   Public keyring for --signature")
	fmt.Fprintln(stdout, "  -v, --verbose          Log matcher and selection details")
	fmt.Fprintln(stdout, "  -h, --help             Show this help")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Without --match, matchers come from $%s (comma separated),\n", envMatchers)
	fmt.Fprintln(stdout, "then from the platform.")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Exit status is 2 when no asset qualifies.")
}
