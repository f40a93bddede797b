package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aryankumar/cmdpool/internal/config"
	"github.com/aryankumar/cmdpool/internal/executor"
	"github.com/aryankumar/cmdpool/internal/output"
	"github.com/aryankumar/cmdpool/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runFlags holds the flag values of the run command
type runFlags struct {
	concurrency int
	totalTasks  int
	quiet       bool
	delayMs     int
}

// newRunCmd creates the run command, the core operation of cmdpool
func newRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARGS...]",
		Short: "Run a command N times under a concurrency ceiling",
		Long: `Run executes the given command a fixed number of times while keeping
at most --concurrency invocations in flight. Initial launches are
staggered by --delay milliseconds; afterwards each completing task is
immediately replaced until the total has been reached.

Per-task failures (nonzero exits, unstartable executables) are counted
and reported, never retried, and do not affect the exit code. The run
exits nonzero only for startup errors and internal faults.`,
		Example: `  # Run a script 20 times, 4 at a time
  cmdpool run -n 20 -c 4 -- ./load-test.sh

  # Quiet mode: task output suppressed, stderr still shown
  cmdpool run -n 10 -c 2 -q -- curl -s https://example.com

  # No stagger between the initial launches, JSON report
  cmdpool run -n 5 -c 5 -d 0 -o json -- sleep 1`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", config.DefaultConcurrency, "number of concurrent tasks")
	cmd.Flags().IntVarP(&flags.totalTasks, "total-tasks", "n", 0, "total number of tasks to execute")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "hide per-task stdout, only show task start/end info")
	cmd.Flags().IntVarP(&flags.delayMs, "delay", "d", config.DefaultDelayMs, "delay between initial task launches in milliseconds")
	cmd.MarkFlagRequired("total-tasks")

	// Everything after the first positional belongs to the command under test
	cmd.Flags().SetInterspersed(false)

	return cmd
}

// runRun validates the invocation, drives the pool and prints the report
func runRun(cmd *cobra.Command, flags *runFlags, args []string) error {
	cfg, err := config.NewManager(cfgFile).Load()
	if err != nil {
		return util.WrapErrorf(err, "loading configuration")
	}

	// Flags win over config file defaults
	if !cmd.Flags().Changed("concurrency") && cfg.Defaults.Concurrency > 0 {
		flags.concurrency = cfg.Defaults.Concurrency
	}
	if !cmd.Flags().Changed("delay") {
		flags.delayMs = cfg.Defaults.DelayMs
	}
	if !cmd.Flags().Changed("quiet") && cfg.Defaults.Quiet {
		flags.quiet = true
	}

	noColor := viper.GetBool("no-color") || cfg.Defaults.NoColor

	formatName := viper.GetString("output")
	if formatName == "" {
		formatName = cfg.Defaults.OutputFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return util.ErrNoCommand
	}
	if flags.delayMs < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %d", util.ErrInvalidConfig, flags.delayMs)
	}

	spec := executor.Spec{
		TotalTasks:  flags.totalTasks,
		Concurrency: flags.concurrency,
		LaunchDelay: time.Duration(flags.delayMs) * time.Millisecond,
		Command:     args[0],
		Args:        args[1:],
	}

	reporter := output.NewReporter(os.Stdout, os.Stderr, flags.quiet, noColor)

	pool, err := executor.New(spec, reporter, slog.Default())
	if err != nil {
		return err
	}

	reporter.ConfigEcho(spec, flags.quiet)

	report, err := pool.Run(cmd.Context())
	if err != nil {
		return err
	}

	reporter.Separator()

	formatter := output.NewFormatter(format, output.WithNoColor(noColor))
	return formatter.Format(os.Stdout, report)
}
