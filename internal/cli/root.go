// Package cli implements the sabun command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sprite-ai/sabun/internal/config"
	"github.com/sprite-ai/sabun/internal/diff"
	"github.com/sprite-ai/sabun/internal/log"
	"github.com/sprite-ai/sabun/internal/pager"
)

// defaultDebugLog is used when --debug is given without a path.
const defaultDebugLog = "sabun-debug.log"

var errUsage = errors.New("expected two files, or a unified diff on stdin")

type options struct {
	configPath string
	debugPath  string
	noPager    bool
	stat       bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "sabun [file1 file2]",
		Short: "Colorized diffs in the terminal",
		Long: `Show the differences between two files, or color a unified diff read from
stdin. Long output opens in a scrolling pager when writing to a terminal.

Examples:
  sabun old.rs new.rs        # diff two files
  git diff | sabun           # color an existing diff
  sabun -U 1 --stat a b      # count changes with one line of context`,
		Args:         cobra.MaximumNArgs(2),
		Version:      versionString(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	defaults := config.Defaults()
	f := cmd.Flags()
	f.IntP("context", "U", defaults.Context, "lines of context around changes")
	f.String("color", defaults.Color, "when to use color: auto, always or never")
	f.BoolP("line-numbers", "n", defaults.LineNumbers, "show line numbers in direct output")
	f.BoolVar(&opts.noPager, "no-pager", false, "never open the interactive pager")
	f.BoolVar(&opts.stat, "stat", false, "print insertion and deletion counts and exit")
	f.StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/sabun/config.yaml)")
	f.StringVar(&opts.debugPath, "debug", "", "write a debug log to this file")
	f.Lookup("debug").NoOptDefVal = defaultDebugLog

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	closeLog, err := initLogging(opts.debugPath)
	if err != nil {
		return err
	}
	defer closeLog()

	v := viper.New()
	_ = v.BindPFlag("context", cmd.Flags().Lookup("context"))
	_ = v.BindPFlag("color", cmd.Flags().Lookup("color"))
	_ = v.BindPFlag("line_numbers", cmd.Flags().Lookup("line-numbers"))

	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		log.Error(log.CatConfig, "invalid configuration", "error", err.Error())
		return err
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetMinLevel(level)
	}
	if opts.noPager {
		cfg.Pager = false
	}
	log.Debug(log.CatCLI, "configuration", "context", cfg.Context, "color", cfg.Color, "pager", cfg.Pager)

	records, err := readRecords(cmd, args, cfg)
	if errors.Is(err, errUsage) {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return err
	}
	if err != nil {
		log.ErrorErr(log.CatCLI, "reading input failed", err)
		return err
	}

	if opts.stat {
		added, removed := diff.Stats(records)
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d insertions(+), %d deletions(-)\n", added, removed)
		return err
	}

	return pager.New(cmd.OutOrStdout(), pager.OptionsFromConfig(cfg)).Display(records)
}

// readRecords diffs two files, or parses a diff piped to stdin.
func readRecords(cmd *cobra.Command, args []string, cfg config.Config) ([]diff.Record, error) {
	f := diff.New(diff.WithContext(cfg.Context))

	switch len(args) {
	case 2:
		oldText, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading old file: %w", err)
		}
		newText, err := os.ReadFile(args[1])
		if err != nil {
			return nil, fmt.Errorf("reading new file: %w", err)
		}
		log.Info(log.CatCLI, "diffing files", "old", args[0], "new", args[1])
		return f.Format(string(oldText), string(newText), args[0], args[1]), nil

	case 0:
		in := cmd.InOrStdin()
		if isTerminal(in) {
			return nil, errUsage
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		log.Info(log.CatCLI, "parsing diff from stdin", "bytes", len(data))
		return f.Parse(string(data)), nil

	default:
		return nil, errUsage
	}
}

func initLogging(path string) (func(), error) {
	if path == "" {
		path = log.PathFromEnv()
	}
	if path == "" {
		return func() {}, nil
	}
	return log.Init(path)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
