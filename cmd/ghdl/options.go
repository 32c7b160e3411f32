package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ZebulonRouseFrantzich/ghdl/internal/logging"
	"github.com/ZebulonRouseFrantzich/ghdl/internal/platform"
)

// envMatchers holds comma-separated matchers used when no --match flag is
// given.
const envMatchers = "GHDL_MATCHERS"

// commonOptions are shared by every subcommand that selects a binary.
type commonOptions struct {
	showHelp bool
	verbose  bool
	target   string   // os/arch override for platform matchers
	matchers []string // explicit --match values
}

// parseCommon consumes the option at args[i] if it is a common one. It returns
// the number of extra arguments consumed and whether the option was handled.
func (o *commonOptions) parseCommon(args []string, i int) (int, bool, error) {
	switch arg := args[i]; {
	case arg == "--help" || arg == "-h":
		o.showHelp = true
	case arg == "--verbose" || arg == "-v":
		o.verbose = true
	case arg == "--match" || arg == "-m" || arg == "--target" || arg == "-t":
		if i+1 >= len(args) {
			return 0, true, fmt.Errorf("%s requires a value", arg)
		}
		if arg == "--match" || arg == "-m" {
			o.matchers = append(o.matchers, args[i+1])
		} else {
			o.target = args[i+1]
		}
		return 1, true, nil
	case strings.HasPrefix(arg, "--match="):
		o.matchers = append(o.matchers, strings.TrimPrefix(arg, "--match="))
	case strings.HasPrefix(arg, "--target="):
		o.target = strings.TrimPrefix(arg, "--target=")
	default:
		return 0, false, nil
	}
	return 0, true, nil
}

func (o *commonOptions) logger() logging.Logger {
	level := logging.LevelWarn
	if o.verbose {
		level = logging.LevelDebug
	}
	return logging.NewConsole(stderr, level)
}

// platformInfo returns the --target platform, or the detected host platform.
func (o *commonOptions) platformInfo(ctx context.Context) (*platform.Info, error) {
	if o.target != "" {
		return platform.ParseTarget(o.target)
	}
	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	return info, nil
}

// resolveMatchers picks matchers from --match, then $GHDL_MATCHERS, then the
// platform.
func (o *commonOptions) resolveMatchers(ctx context.Context, log logging.Logger) ([]string, error) {
	if len(o.matchers) > 0 {
		log.Debug("using matchers from flags", "matchers", o.matchers)
		return o.matchers, nil
	}

	if env := os.Getenv(envMatchers); env != "" {
		var matchers []string
		for _, m := range strings.Split(env, ",") {
			if m = strings.TrimSpace(m); m != "" {
				matchers = append(matchers, m)
			}
		}
		if len(matchers) > 0 {
			log.Debug("using matchers from environment", "var", envMatchers, "matchers", matchers)
			return matchers, nil
		}
	}

	info, err := o.platformInfo(ctx)
	if err != nil {
		return nil, err
	}
	matchers, err := platform.Matchers(info)
	if err != nil {
		return nil, err
	}
	log.Debug("using platform matchers", "target", info.Target(), "matchers", matchers)
	return matchers, nil
}
