package executor

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// OutcomeKind classifies how a task ended
type OutcomeKind int

const (
	// OutcomeSuccess means the subprocess ran and exited with code 0
	OutcomeSuccess OutcomeKind = iota

	// OutcomeExitFailure means the subprocess ran and exited with a nonzero code
	OutcomeExitFailure

	// OutcomeSpawnError means the subprocess could not be started at all
	// (executable missing, permission denied, ...)
	OutcomeSpawnError
)

// Outcome is the classified result of one task execution
// ExitCode is meaningful for OutcomeSuccess and OutcomeExitFailure;
// Message is set only for OutcomeSpawnError
type Outcome struct {
	Kind     OutcomeKind
	ExitCode int
	Message  string
}

// Failed reports whether the outcome counts as a failure
// Both nonzero exits and spawn errors are failures
func (o Outcome) Failed() bool {
	return o.Kind != OutcomeSuccess
}

// Summary returns the human-readable outcome summary used in finish lines
func (o Outcome) Summary() string {
	switch o.Kind {
	case OutcomeSuccess:
		return fmt.Sprintf("Success (Exit Code: %d)", o.ExitCode)
	case OutcomeExitFailure:
		return fmt.Sprintf("Failed (Exit Code: %d)", o.ExitCode)
	default:
		return fmt.Sprintf("Error: %s", o.Message)
	}
}

// Record is the full result of one task execution
// It is owned by the goroutine that produced it until folded into the Stats
type Record struct {
	// ID is the task id, assigned in launch order starting at 1
	ID int

	// StartTime is when the spawn was initiated
	StartTime time.Time

	// Duration is wall time from StartTime until the outcome was known,
	// covering the full subprocess lifetime
	Duration time.Duration

	// Outcome is the classified result
	Outcome Outcome

	// Stdout and Stderr hold the captured subprocess output
	// Both are empty for spawn errors
	Stdout string
	Stderr string
}

// Runner executes single invocations of one configured command
type Runner struct {
	command string
	args    []string
}

// NewRunner creates a runner for the given command and arguments
func NewRunner(command string, args []string) *Runner {
	return &Runner{
		command: command,
		args:    args,
	}
}

// Execute runs one command invocation to completion and classifies the result
// It always returns a record; every failure mode is encoded in the outcome
// A launched task is never cancelled, it runs until the subprocess exits
func (r *Runner) Execute(id int) Record {
	cmd := exec.Command(r.command, r.args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	rec := Record{
		ID:        id,
		StartTime: start,
		Duration:  duration,
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		rec.Outcome = Outcome{Kind: OutcomeSuccess, ExitCode: 0}
		rec.Stdout = stdout.String()
		rec.Stderr = stderr.String()

	case errors.As(err, &exitErr):
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal, no determinable exit code
			code = 0
		}
		rec.Outcome = Outcome{Kind: OutcomeExitFailure, ExitCode: code}
		rec.Stdout = stdout.String()
		rec.Stderr = stderr.String()

	default:
		// The process never started; captures stay empty
		rec.Outcome = Outcome{Kind: OutcomeSpawnError, Message: err.Error()}
	}

	return rec
}

// Command returns the configured command
func (r *Runner) Command() string {
	return r.command
}

// Args returns the configured arguments
func (r *Runner) Args() []string {
	return r.args
}
