package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ben-ranford/cmdtransport/internal/app"
	"github.com/ben-ranford/cmdtransport/internal/config"
	"github.com/ben-ranford/cmdtransport/internal/report"
	"github.com/ben-ranford/cmdtransport/internal/transport"
)

var ErrHelpRequested = errors.New("help requested")

type globalFlags struct {
	repo      string
	config    string
	format    string
	include   string
	ignore    string
	idleading string
	styleBox  bool
	workers   int
	verbose   bool
}

// ParseArgs turns command line arguments into an app request. Nothing is
// executed; the command tree only records what was asked for.
func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, nil
	}
	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	var (
		flags  globalFlags
		origin string
		parsed bool
	)
	capture := func(mode app.Mode) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			next, err := buildRequest(cmd, mode, args, flags, origin)
			if err != nil {
				return err
			}
			req = next
			parsed = true
			return nil
		}
	}

	root := &cobra.Command{
		Use:           "cmdtransport",
		Short:         "Transport package files into CMD modules",
		Args:          cobra.NoArgs,
		RunE:          capture(app.ModeBuild),
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.CompletionOptions.DisableDefaultCmd = true

	persistent := root.PersistentFlags()
	persistent.StringVar(&flags.repo, "repo", req.RepoPath, "package directory")
	persistent.StringVar(&flags.config, "config", "", "config file path")
	persistent.StringVar(&flags.format, "format", string(req.Format), "output format")
	persistent.StringVar(&flags.include, "include", "", "include mode")
	persistent.StringVar(&flags.ignore, "ignore", "", "comma separated ignored packages")
	persistent.StringVar(&flags.idleading, "idleading", "", "module id prefix template")
	persistent.BoolVar(&flags.styleBox, "style-box", false, "scope stylesheets")
	persistent.IntVar(&flags.workers, "workers", config.DefaultWorkers, "concurrent files for build")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	locate := &cobra.Command{
		Use:  "locate <path>",
		Args: cobra.ExactArgs(1),
		RunE: capture(app.ModeLocate),
	}
	locate.Flags().StringVar(&origin, "origin", "", "pre-rename path")

	root.AddCommand(
		&cobra.Command{Use: "build", Args: cobra.NoArgs, RunE: capture(app.ModeBuild)},
		&cobra.Command{Use: "id <file>", Args: cobra.ExactArgs(1), RunE: capture(app.ModeID)},
		&cobra.Command{Use: "deps <file>", Args: cobra.ExactArgs(1), RunE: capture(app.ModeDeps)},
		&cobra.Command{Use: "include <file>", Args: cobra.ExactArgs(1), RunE: capture(app.ModeInclude)},
		locate,
	)

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return req, err
	}
	if !parsed {
		return req, ErrHelpRequested
	}
	return req, nil
}

func buildRequest(cmd *cobra.Command, mode app.Mode, args []string, flags globalFlags, origin string) (app.Request, error) {
	req := app.DefaultRequest()
	req.Mode = mode
	req.RepoPath = strings.TrimSpace(flags.repo)
	req.ConfigPath = strings.TrimSpace(flags.config)
	req.Verbose = flags.verbose
	req.OriginPath = strings.TrimSpace(origin)
	if len(args) == 1 {
		req.File = strings.TrimSpace(args[0])
		if req.File == "" {
			return req, fmt.Errorf("%s requires a non-empty path", mode)
		}
	}

	format, err := report.ParseFormat(flags.format)
	if err != nil {
		return req, err
	}
	req.Format = format

	changed := cmd.Flags().Changed
	if changed("include") {
		include, err := transport.ParseInclude(flags.include)
		if err != nil {
			return req, err
		}
		value := string(include)
		req.Overrides.Include = &value
	}
	if changed("ignore") {
		req.Overrides.Ignore = config.SplitList(flags.ignore)
	}
	if changed("idleading") {
		value := flags.idleading
		req.Overrides.Idleading = &value
	}
	if changed("style-box") {
		value := flags.styleBox
		req.Overrides.StyleBox = &value
	}
	if changed("workers") {
		if flags.workers < 1 {
			return req, fmt.Errorf("--workers must be >= 1")
		}
		value := flags.workers
		req.Overrides.Workers = &value
	}
	return req, nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}
