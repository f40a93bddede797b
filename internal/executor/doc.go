// Package executor implements the command pool: a bounded-concurrency
// scheduler that runs a fixed number of invocations of one external
// command, replacing each invocation as it completes, together with the
// concurrency-safe statistics accumulator that produces the final report.
//
// The three pieces map onto the run lifecycle:
//
//   - Runner executes a single invocation and classifies its outcome
//     (success, nonzero exit, spawn error) without ever returning an error.
//   - Stats folds outcomes and durations from concurrently finishing
//     tasks into counters and append-only duration logs.
//   - Pool drives the replace-on-completion loop, keeping at most
//     Concurrency tasks in flight until TotalTasks have completed.
//
// Basic usage:
//
//	pool, err := executor.New(executor.Spec{
//		TotalTasks:  10,
//		Concurrency: 3,
//		LaunchDelay: 100 * time.Millisecond,
//		Command:     "curl",
//		Args:        []string{"-s", "https://example.com"},
//	}, notifier, slog.Default())
//	if err != nil {
//		// startup error: empty command or bad concurrency
//	}
//	report, err := pool.Run(ctx)
//
// Individual task failures never surface as errors from Run; they are
// counted in the report. A non-nil error from Run means the run could not
// start or an internal fault aborted it.
package executor
