package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/platform"
)

// runMatchers handles the `ghdl matchers` subcommand
func runMatchers(args []string) error {
	var opts commonOptions
	for i := 0; i < len(args); i++ {
		skip, handled, err := opts.parseCommon(args, i)
		if err != nil {
			return err
		}
		if !handled {
			return fmt.Errorf("unknown option: %s\nRun 'ghdl matchers --help' for usage", args[i])
		}
		i += skip
	}

	if opts.showHelp {
		fmt.Fprintln(stdout, "Usage: ghdl matchers [--target os/arch]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Print the asset-name matchers for the host or the given platform.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := opts.platformInfo(ctx)
	if err != nil {
		return err
	}
	matchers, err := platform.Matchers(info)
	if err != nil {
		return err
	}

	for _, m := range matchers {
		fmt.Fprintln(stdout, m)
	}
	return nil
}
