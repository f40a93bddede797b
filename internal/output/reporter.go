package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aryankumar/cmdpool/internal/executor"
)

const separator = "----------------------------------------"

// Reporter emits the live console stream of a run: the configuration echo
// block, one start and one finish line per task, and the captured
// stdout/stderr blocks.
//
// It implements executor.Notifier. A mutex keeps the lines of one event
// together even when many tasks finish at once.
type Reporter struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	colors *ColorScheme
	quiet  bool
}

// NewReporter creates a reporter writing task events to stdout and captured
// subprocess stderr blocks to stderr. In quiet mode the per-task stdout
// blocks are suppressed; stderr blocks are always shown.
func NewReporter(stdout, stderr io.Writer, quiet, noColor bool) *Reporter {
	return &Reporter{
		stdout: stdout,
		stderr: stderr,
		colors: NewColorScheme(stdout, noColor),
		quiet:  quiet,
	}
}

// ConfigEcho prints the configuration block that precedes a run
func (r *Reporter) ConfigEcho(spec executor.Spec, quiet bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	commandLine := spec.Command
	if len(spec.Args) > 0 {
		commandLine += " " + strings.Join(spec.Args, " ")
	}

	fmt.Fprintln(r.stdout, "Starting cmdpool with:")
	fmt.Fprintf(r.stdout, "  Concurrency: %d\n", spec.Concurrency)
	fmt.Fprintf(r.stdout, "  Total tasks: %d\n", spec.TotalTasks)
	fmt.Fprintf(r.stdout, "  Command: %s\n", commandLine)
	fmt.Fprintf(r.stdout, "  Quiet mode: %t\n", quiet)
	fmt.Fprintf(r.stdout, "  Initial launch delay: %s\n", spec.LaunchDelay)
	fmt.Fprintln(r.stdout, separator)
}

// Separator prints the rule that closes the live stream before the summary
func (r *Reporter) Separator() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.stdout, separator)
}

// TaskStarted implements executor.Notifier
func (r *Reporter) TaskStarted(id, running int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.stdout, "%s Starting... (Running: %d)\n", r.colors.TaskID("[Task %d]", id), running)
}

// TaskFinished implements executor.Notifier
// It emits the finish line with the outcome summary and live running count,
// then the captured stdout block (unless quiet) and the captured stderr
// block (always, on the stderr stream).
func (r *Reporter) TaskFinished(id int, rec executor.Record, running int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := rec.Outcome.Summary()
	if !r.colors.Disabled {
		summary = r.colors.StatusColor(rec.Outcome.Failed())("%s", summary)
	}

	fmt.Fprintf(r.stdout, "%s Finished: %s (Running: %d)\n",
		r.colors.TaskID("[Task %d]", id), summary, running)

	if !r.quiet && rec.Stdout != "" {
		fmt.Fprintf(r.stdout, "%s Stdout:\n%s\n", r.colors.TaskID("[Task %d]", id), rec.Stdout)
	}
	if rec.Stderr != "" {
		fmt.Fprintf(r.stderr, "%s Stderr:\n%s\n", r.colors.TaskID("[Task %d]", id), rec.Stderr)
	}
}
