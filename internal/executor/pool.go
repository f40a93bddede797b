package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aryankumar/cmdpool/internal/util"
)

// Notifier receives task lifecycle events as they happen
// TaskStarted is called right after the running count was incremented for
// the task; TaskFinished right after it was decremented. Implementations
// must be safe for concurrent use
type Notifier interface {
	TaskStarted(id, running int)
	TaskFinished(id int, rec Record, running int)
}

// NopNotifier is a Notifier that discards all events
type NopNotifier struct{}

func (NopNotifier) TaskStarted(id, running int)                  {}
func (NopNotifier) TaskFinished(id int, rec Record, running int) {}

// Spec describes one pool run
type Spec struct {
	// TotalTasks is the total number of command invocations to perform
	TotalTasks int

	// Concurrency is the maximum number of invocations in flight at once
	Concurrency int

	// LaunchDelay is the stagger between successive initial launches
	// It is never applied after the last initial launch or to replacements
	LaunchDelay time.Duration

	// Command and Args define the invocation
	Command string
	Args    []string
}

// completion is the event a task goroutine sends back to the run loop
// err is non-nil only for internal faults, never for subprocess failures
type completion struct {
	id  int
	err error
}

// Pool runs TotalTasks command invocations while keeping at most
// Concurrency of them in flight, replacing each task as it completes
//
// The run loop itself is single-threaded: task goroutines report
// completions over a channel and the loop decides whether to launch a
// replacement, so the ceiling holds without extra bookkeeping
type Pool struct {
	spec     Spec
	runner   *Runner
	stats    *Stats
	notifier Notifier
	logger   *slog.Logger

	// launched is the highest task id assigned so far; ids are assigned
	// by the run loop only, so they are strictly increasing
	launched atomic.Int64

	// running is the live in-flight count carried on start/finish lines
	running atomic.Int64
}

// New creates a pool for the given spec
// The spec is validated up front: an empty command or a concurrency below 1
// is a startup error and no tasks will ever launch
func New(spec Spec, notifier Notifier, logger *slog.Logger) (*Pool, error) {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	errs := &util.MultiError{}
	if spec.Command == "" {
		errs.Add(util.ErrNoCommand)
	}
	if spec.Concurrency < 1 {
		errs.Add(fmt.Errorf("%w: concurrency %d", util.ErrNoWorkers, spec.Concurrency))
	}
	if spec.TotalTasks < 0 {
		errs.Add(fmt.Errorf("total tasks must not be negative, got %d", spec.TotalTasks))
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return &Pool{
		spec:     spec,
		runner:   NewRunner(spec.Command, spec.Args),
		stats:    NewStats(),
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Run executes the whole pool and returns the final report
//
// The context gates startup only: once a task is launched it always runs
// to completion. A non-nil error means an internal fault in the machinery,
// never a subprocess failure; those are folded into the report
func (p *Pool) Run(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("run not started: %w", err)
	}

	start := time.Now()

	if p.spec.TotalTasks == 0 {
		p.logger.Debug("no tasks to run")
		return p.stats.Snapshot(0, time.Since(start)), nil
	}

	initial := p.spec.Concurrency
	if initial > p.spec.TotalTasks {
		initial = p.spec.TotalTasks
	}

	p.logger.Info("starting run",
		"total_tasks", p.spec.TotalTasks,
		"concurrency", p.spec.Concurrency,
		"command", p.spec.Command)

	// Buffered so finishing tasks never block on a busy run loop
	done := make(chan completion, p.spec.TotalTasks)

	for i := 0; i < initial; i++ {
		p.launch(done)
		if p.spec.LaunchDelay > 0 && i < initial-1 {
			time.Sleep(p.spec.LaunchDelay)
		}
	}

	// Each launched task sends exactly one completion event, so the run is
	// over once TotalTasks events have been consumed
	for received := 0; received < p.spec.TotalTasks; received++ {
		c := <-done
		if c.err != nil {
			return Report{}, fmt.Errorf("task %d: %w", c.id, c.err)
		}

		if int(p.launched.Load()) < p.spec.TotalTasks {
			p.launch(done)
		}
	}

	elapsed := time.Since(start)
	completed, successful, failed := p.stats.Counts()
	p.logger.Info("run completed",
		"total", completed,
		"successful", successful,
		"failed", failed,
		"duration", elapsed)

	return p.stats.Snapshot(p.spec.TotalTasks, elapsed), nil
}

// launch assigns the next task id and starts its goroutine
// Called only from the run loop, so id assignment is strictly ordered
func (p *Pool) launch(done chan<- completion) {
	id := int(p.launched.Add(1))
	p.logger.Debug("launching task", "id", id)

	go func() {
		var fault error
		defer func() {
			if r := recover(); r != nil {
				fault = fmt.Errorf("%w: task %d panicked: %v", util.ErrInternalFault, id, r)
			}
			done <- completion{id: id, err: fault}
		}()

		running := int(p.running.Add(1))
		p.notifier.TaskStarted(id, running)

		rec := p.runner.Execute(id)
		p.stats.Record(rec.Outcome, rec.Duration)

		running = int(p.running.Add(-1))
		p.notifier.TaskFinished(id, rec, running)

		p.logger.Debug("task finished",
			"id", id,
			"outcome", rec.Outcome.Summary(),
			"duration", rec.Duration)
	}()
}

// Launched returns the highest task id assigned so far
func (p *Pool) Launched() int {
	return int(p.launched.Load())
}

// Running returns the current in-flight task count
func (p *Pool) Running() int {
	return int(p.running.Load())
}

// Stats exposes the accumulator, mainly for inspection after a run
func (p *Pool) Stats() *Stats {
	return p.stats
}
