package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-peak-window/internal/presentation/formatter"
	"github.com/penwyp/go-peak-window/internal/runner"
	"github.com/penwyp/go-peak-window/internal/util"
)

const defaultLogFile = "~/.go-peak-window/logs/app.log"

// options holds the flags shared by every command
type options struct {
	// Logging related
	debug   bool
	logFile string

	// Input
	files []string
	dir   string

	// Output related
	outputFormat string
	symmetry     bool
	watch        bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "go-peak-window [flags] [heights...]",
		Short: "Find the largest single-peak window in a row of boxes",
		Long: `go-peak-window computes, for a row of box heights, the widest contiguous
range two cats can cover when they start on the same box and only ever jump
to a box that is not higher than the one they are on.

Heights can be given as arguments, or as JSONL case files where each line is
{"name": "...", "input": [...], "output": n}, a JSON array, or plain integers.

Examples:
  go-peak-window 9 7 7 10 4 8                    # Scan one sequence
  go-peak-window -- -3 -1 -2 -5 0                # Negative heights follow "--"
  go-peak-window -f cases.jsonl -o json          # Scan every case in a file
  go-peak-window --dir ./cases --symmetry        # Scan a directory, checking reversal
  go-peak-window --dir ./cases --watch           # Re-run whenever case files change
  go-peak-window check                           # Run the built-in regression cases`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args, false)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"Enable debug logging to stderr")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", defaultLogFile,
		"Log file path (empty disables file logging)")

	cmd.PersistentFlags().StringSliceVarP(&opts.files, "file", "f", nil,
		"JSONL case file (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "",
		"Directory searched recursively for *.jsonl case files")

	cmd.PersistentFlags().StringVarP(&opts.outputFormat, "output", "o", formatter.FormatTable,
		"Output format ("+strings.Join(formatter.Formats, ", ")+")")
	cmd.PersistentFlags().StringVar(&opts.outputFormat, "format", formatter.FormatTable,
		"Alias for --output")
	cmd.PersistentFlags().BoolVarP(&opts.watch, "watch", "w", false,
		"Re-run whenever a case file changes")
	cmd.Flags().BoolVar(&opts.symmetry, "symmetry", false,
		"Fail cases without an expected output whose reversed result differs")

	cmd.AddCommand(newCheckCmd(opts))

	return cmd
}

func runScan(cmd *cobra.Command, opts *options, args []string, requireOK bool) error {
	if err := initLogging(opts); err != nil {
		return err
	}

	config := &runner.Config{
		Values:        args,
		Files:         expandPaths(opts.files),
		OutputFormat:  opts.outputFormat,
		CheckSymmetry: opts.symmetry,
		Writer:        cmd.OutOrStdout(),
	}
	if opts.dir != "" {
		config.Dir = expandPath(opts.dir)
	}

	r, err := runner.New(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		util.LogInfo("Watching case files", util.F("files", len(config.Files)), util.F("dir", config.Dir))
		return r.Watch(ctx, nil)
	}

	report, err := r.Run(ctx)
	if err != nil {
		return err
	}
	if requireOK && !report.OK() {
		return fmt.Errorf("%w: %d of %d", runner.ErrCasesFailed, report.Failed+report.Errors, report.Total)
	}
	return nil
}

func initLogging(opts *options) error {
	logLevel := "info"
	if opts.debug {
		logLevel = "debug"
	}

	logFile := ""
	if opts.logFile != "" {
		logFile = expandPath(opts.logFile)
		if err := ensureDir(filepath.Dir(logFile)); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	return util.InitLogger(util.LoggerConfig{
		Level:   logLevel,
		File:    logFile,
		Console: opts.debug,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func expandPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, expandPath(p))
	}
	return out
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
