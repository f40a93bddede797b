package executor

import (
	"sync"
	"time"
)

// DurationStats summarizes the duration samples of one outcome class
type DurationStats struct {
	Count   int
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Report is the aggregate result of a whole run
// The duration stats pointers are nil for classes that had no completions,
// so formatters can omit those sections entirely
type Report struct {
	Total       int
	Successful  int
	Failed      int
	SuccessRate float64
	Success     *DurationStats
	Failure     *DurationStats
	Elapsed     time.Duration
}

// Stats accumulates completion counts and duration samples from
// concurrently finishing tasks
//
// A single mutex guards both the counters and the duration logs so that
// counts never disagree with log lengths, even mid-run. The duration logs
// are append-only and read back only by Snapshot after the run loop has
// terminated.
type Stats struct {
	mu sync.Mutex

	completed  int
	successful int
	failed     int

	successDurations []time.Duration
	failureDurations []time.Duration
}

// NewStats creates an empty accumulator
func NewStats() *Stats {
	return &Stats{}
}

// Record folds one task outcome into the accumulator
// Safe to call from any number of goroutines; the count increments and
// the duration append happen as one indivisible step
func (s *Stats) Record(outcome Outcome, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.completed++
	if outcome.Failed() {
		s.failed++
		s.failureDurations = append(s.failureDurations, duration)
	} else {
		s.successful++
		s.successDurations = append(s.successDurations, duration)
	}
}

// Completed returns the number of tasks recorded so far
func (s *Stats) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Counts returns the completed, successful and failed counts as one
// consistent observation
func (s *Stats) Counts() (completed, successful, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed, s.successful, s.failed
}

// Snapshot builds the final report
// Call only after the run loop has terminated; totalTasks is the run's
// configured task count and elapsed the total wall-clock run duration
func (s *Stats) Snapshot(totalTasks int, elapsed time.Duration) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := Report{
		Total:      s.completed,
		Successful: s.successful,
		Failed:     s.failed,
		Success:    summarizeDurations(s.successDurations),
		Failure:    summarizeDurations(s.failureDurations),
		Elapsed:    elapsed,
	}

	if totalTasks > 0 {
		report.SuccessRate = float64(s.successful) / float64(totalTasks) * 100.0
	}

	return report
}

// summarizeDurations computes average, min and max over the samples
// Returns nil for an empty sample set, never an average of zero samples
func summarizeDurations(samples []time.Duration) *DurationStats {
	if len(samples) == 0 {
		return nil
	}

	var total time.Duration
	min := samples[0]
	max := samples[0]

	for _, d := range samples {
		total += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}

	return &DurationStats{
		Count:   len(samples),
		Average: total / time.Duration(len(samples)),
		Min:     min,
		Max:     max,
	}
}
