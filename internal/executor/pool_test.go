package executor

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aryankumar/cmdpool/internal/util"
)

// recordingNotifier captures lifecycle events for assertions
type recordingNotifier struct {
	mu         sync.Mutex
	startedIDs []int
	finished   []Record
	maxRunning int
}

func (n *recordingNotifier) TaskStarted(id, running int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.startedIDs = append(n.startedIDs, id)
	if running > n.maxRunning {
		n.maxRunning = running
	}
}

func (n *recordingNotifier) TaskFinished(id int, rec Record, running int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.finished = append(n.finished, rec)
}

func (n *recordingNotifier) snapshot() ([]int, []Record, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := append([]int(nil), n.startedIDs...)
	recs := append([]Record(nil), n.finished...)
	return ids, recs, n.maxRunning
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr error
	}{
		{
			name: "valid spec",
			spec: Spec{TotalTasks: 1, Concurrency: 1, Command: "true"},
		},
		{
			name:    "empty command",
			spec:    Spec{TotalTasks: 1, Concurrency: 1},
			wantErr: util.ErrNoCommand,
		},
		{
			name:    "zero concurrency",
			spec:    Spec{TotalTasks: 1, Concurrency: 0, Command: "true"},
			wantErr: util.ErrNoWorkers,
		},
		{
			name:    "negative concurrency",
			spec:    Spec{TotalTasks: 1, Concurrency: -2, Command: "true"},
			wantErr: util.ErrNoWorkers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := New(tt.spec, nil, nil)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if pool == nil {
					t.Fatal("expected pool, got nil")
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
			if pool != nil {
				t.Error("expected nil pool on validation error")
			}
		})
	}
}

func TestNew_CollectsAllValidationErrors(t *testing.T) {
	_, err := New(Spec{TotalTasks: -1, Concurrency: 0}, nil, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !errors.Is(err, util.ErrNoCommand) {
		t.Errorf("expected error to include %v, got %v", util.ErrNoCommand, err)
	}
	if !errors.Is(err, util.ErrNoWorkers) {
		t.Errorf("expected error to include %v, got %v", util.ErrNoWorkers, err)
	}
}

func TestPool_Run_ZeroTasks(t *testing.T) {
	notifier := &recordingNotifier{}
	pool, err := New(Spec{TotalTasks: 0, Concurrency: 2, Command: "true"}, notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pool.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 0 || report.Successful != 0 || report.Failed != 0 {
		t.Errorf("expected all-zero counts, got %+v", report)
	}
	if report.Success != nil || report.Failure != nil {
		t.Error("expected no duration stats for an empty run")
	}
	if report.SuccessRate != 0.0 {
		t.Errorf("expected 0.0 success rate, got %.2f", report.SuccessRate)
	}

	ids, _, _ := notifier.snapshot()
	if len(ids) != 0 {
		t.Errorf("expected no tasks launched, got %d", len(ids))
	}
	if pool.Launched() != 0 {
		t.Errorf("expected launched count 0, got %d", pool.Launched())
	}
}

func TestPool_Run_AllSuccesses(t *testing.T) {
	notifier := &recordingNotifier{}
	pool, err := New(Spec{
		TotalTasks:  5,
		Concurrency: 2,
		Command:     "sh",
		Args:        []string{"-c", "exit 0"},
	}, notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pool.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 5 || report.Successful != 5 || report.Failed != 0 {
		t.Errorf("expected 5/5/0, got %d/%d/%d", report.Total, report.Successful, report.Failed)
	}
	if report.SuccessRate != 100.0 {
		t.Errorf("expected 100.00%% success rate, got %.2f", report.SuccessRate)
	}
	if report.Success == nil {
		t.Error("expected success duration stats")
	}
	if report.Failure != nil {
		t.Error("expected no failure duration stats")
	}

	ids, finished, maxRunning := notifier.snapshot()
	if maxRunning > 2 {
		t.Errorf("running count exceeded concurrency ceiling: %d > 2", maxRunning)
	}
	if len(finished) != 5 {
		t.Errorf("expected 5 finish events, got %d", len(finished))
	}
	assertIDsExactlyOneToN(t, ids, 5)

	if pool.Stats().Completed() != 5 {
		t.Errorf("expected 5 recorded completions, got %d", pool.Stats().Completed())
	}
	if pool.Running() != 0 {
		t.Errorf("expected 0 running after the run, got %d", pool.Running())
	}
}

func TestPool_Run_AllFailures(t *testing.T) {
	notifier := &recordingNotifier{}
	pool, err := New(Spec{
		TotalTasks:  4,
		Concurrency: 4,
		Command:     "sh",
		Args:        []string{"-c", "exit 1"},
	}, notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pool.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 4 || report.Successful != 0 || report.Failed != 4 {
		t.Errorf("expected 4/0/4, got %d/%d/%d", report.Total, report.Successful, report.Failed)
	}
	if report.SuccessRate != 0.0 {
		t.Errorf("expected 0.00%% success rate, got %.2f", report.SuccessRate)
	}
	if report.Success != nil {
		t.Error("expected no success duration stats")
	}
	if report.Failure == nil {
		t.Error("expected failure duration stats")
	}

	_, finished, _ := notifier.snapshot()
	for _, rec := range finished {
		if rec.Outcome.Kind != OutcomeExitFailure {
			t.Errorf("task %d: expected exit failure, got %v", rec.ID, rec.Outcome.Kind)
		}
		if rec.Outcome.ExitCode != 1 {
			t.Errorf("task %d: expected exit code 1, got %d", rec.ID, rec.Outcome.ExitCode)
		}
	}
}

func TestPool_Run_SpawnErrors(t *testing.T) {
	notifier := &recordingNotifier{}
	pool, err := New(Spec{
		TotalTasks:  3,
		Concurrency: 2,
		Command:     "/nonexistent/cmdpool-no-such-binary",
	}, notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := pool.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Total != 3 || report.Failed != 3 {
		t.Errorf("expected 3 failed, got %d/%d", report.Total, report.Failed)
	}

	_, finished, _ := notifier.snapshot()
	for _, rec := range finished {
		if rec.Outcome.Kind != OutcomeSpawnError {
			t.Errorf("task %d: expected spawn error, got %v", rec.ID, rec.Outcome.Kind)
		}
		if rec.Outcome.Message == "" {
			t.Errorf("task %d: expected spawn error message", rec.ID)
		}
	}
}

func TestPool_Run_LaunchesExactlyTotalTasks(t *testing.T) {
	tests := []struct {
		name        string
		totalTasks  int
		concurrency int
	}{
		{name: "more tasks than workers", totalTasks: 7, concurrency: 3},
		{name: "more workers than tasks", totalTasks: 2, concurrency: 8},
		{name: "single worker", totalTasks: 4, concurrency: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			pool, err := New(Spec{
				TotalTasks:  tt.totalTasks,
				Concurrency: tt.concurrency,
				Command:     "true",
			}, notifier, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			report, err := pool.Run(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if report.Total != tt.totalTasks {
				t.Errorf("expected %d completed, got %d", tt.totalTasks, report.Total)
			}
			if pool.Launched() != tt.totalTasks {
				t.Errorf("expected %d launched, got %d", tt.totalTasks, pool.Launched())
			}

			ids, _, maxRunning := notifier.snapshot()
			assertIDsExactlyOneToN(t, ids, tt.totalTasks)

			ceiling := tt.concurrency
			if tt.totalTasks < ceiling {
				ceiling = tt.totalTasks
			}
			if maxRunning > ceiling {
				t.Errorf("running count %d exceeded ceiling %d", maxRunning, ceiling)
			}
		})
	}
}

func TestPool_Run_StaggersInitialLaunches(t *testing.T) {
	pool, err := New(Spec{
		TotalTasks:  3,
		Concurrency: 3,
		LaunchDelay: 30 * time.Millisecond,
		Command:     "true",
	}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if _, err := pool.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	// Two stagger gaps between three initial launches
	if elapsed < 60*time.Millisecond {
		t.Errorf("expected run to take at least 60ms with stagger, took %v", elapsed)
	}
}

func TestPool_Run_InternalFault(t *testing.T) {
	pool, err := New(Spec{
		TotalTasks:  2,
		Concurrency: 1,
		Command:     "true",
	}, panickingNotifier{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = pool.Run(context.Background())
	if err == nil {
		t.Fatal("expected internal fault error, got nil")
	}
	if !util.IsInternalFault(err) {
		t.Errorf("expected internal fault, got %v", err)
	}
}

func TestPool_Run_CancelledBeforeStart(t *testing.T) {
	notifier := &recordingNotifier{}
	pool, err := New(Spec{TotalTasks: 3, Concurrency: 1, Command: "true"}, notifier, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Run(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}

	ids, _, _ := notifier.snapshot()
	if len(ids) != 0 {
		t.Errorf("expected no tasks launched, got %d", len(ids))
	}
}

// panickingNotifier simulates a defect in the machinery driving a task
type panickingNotifier struct{}

func (panickingNotifier) TaskStarted(id, running int) {
	panic("notifier defect")
}

func (panickingNotifier) TaskFinished(id int, rec Record, running int) {}

// assertIDsExactlyOneToN checks the launched ids are exactly {1..n}
func assertIDsExactlyOneToN(t *testing.T, ids []int, n int) {
	t.Helper()

	if len(ids) != n {
		t.Fatalf("expected %d launched tasks, got %d", n, len(ids))
	}

	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	for i, id := range sorted {
		if id != i+1 {
			t.Fatalf("expected ids to be exactly 1..%d, got %v", n, sorted)
		}
	}
}
