package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirrank/internal/config"
	"github.com/idelchi/dirrank/internal/dirrank"
	"github.com/idelchi/dirrank/internal/logging"
	"github.com/idelchi/dirrank/internal/report"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// flags holds the raw command-line values before they are merged with the config file.
type flags struct {
	configFile string
	output     string
	format     string
	top        int
	jobs       int
	noExport   bool
	debug      bool
	logFile    string
}

// Execute runs the CLI with os.Args, cancelling the scan on interrupt.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "dirrank [flags] [root]",
		Short:   "Rank the folders of a drive or mount point by size",
		Version: c.version,
		Long: heredoc.Doc(`
			dirrank measures every folder directly below a root directory,
			ranks them by size and exports the ranking as CSV or JSON.

			The root may be a drive letter (C, D:) on Windows, a mount name
			(home becomes /home) or a path elsewhere. Without a root argument
			dirrank asks for one when run interactively.

			Symbolic links are never followed. Entries that cannot be read are
			skipped and counted; only an unreadable or missing root is fatal.

			Defaults are read from $XDG_CONFIG_HOME/dirrank/config.yaml.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args, f)
		},
	}

	fs := cmd.Flags()
	fs.SortFlags = false

	fs.StringVarP(&f.output, "output", "o", "", "Output file (default disk_usage_<timestamp>.<format> in output_dir)")
	fs.StringVarP(&f.format, "format", "f", "csv", "Output format: csv or json")
	fs.IntVarP(&f.top, "top", "t", 10, "Number of top folders to display")
	fs.IntVarP(&f.jobs, "jobs", "j", 1, "Number of folders measured concurrently")
	fs.BoolVar(&f.noExport, "no-export", false, "Print the summary only, write no output file")
	fs.StringVar(&f.configFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/dirrank/config.yaml)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug output")
	fs.StringVar(&f.logFile, "log-file", "", "Also write debug logs as JSON to this file")

	return cmd
}

// loadConfig reads the config file and overrides it with explicitly set flags.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}

	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = f.format
	}

	if changed("top") {
		cfg.TopN = f.top
	}

	if changed("jobs") {
		cfg.Jobs = f.jobs
	}

	if changed("debug") {
		cfg.Debug = f.debug
	}

	if changed("log-file") {
		cfg.LogFile = f.logFile
	}

	if err := cfg.Validate(report.Formats); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c CLI) run(cmd *cobra.Command, args []string, f flags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, closeLog := logging.New(logging.Options{
		Debug:      cfg.Debug,
		Console:    cmd.ErrOrStderr(),
		File:       cfg.LogFile,
		MaxSizeMB:  10,
		MaxBackups: 3,
	})
	defer closeLog()

	var spec string

	switch {
	case len(args) == 1:
		spec = args[0]
	case isTerminal(cmd.InOrStdin()):
		spec, err = promptRoot(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	default:
		return errors.New("missing root: pass a drive letter or path as argument")
	}

	root, err := dirrank.ResolveRoot(spec, runtime.GOOS)
	if err != nil {
		return fmt.Errorf("resolving root %q: %w", spec, err)
	}

	return logic(cmd.Context(), options{
		Root:     root,
		Output:   f.output,
		NoExport: f.noExport,
		Config:   cfg,
		Logger:   logger,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
}
