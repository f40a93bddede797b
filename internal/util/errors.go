package util

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for the cmdpool CLI
var (
	// ErrNoCommand indicates no command was supplied to execute
	ErrNoCommand = errors.New("no command provided to execute")

	// ErrNoWorkers indicates the concurrency ceiling is below 1
	ErrNoWorkers = errors.New("concurrency must be at least 1")

	// ErrInvalidConfig indicates a configuration error
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInternalFault indicates a defect in the scheduling machinery
	// itself, not a subprocess failure; it aborts the whole run
	ErrInternalFault = errors.New("internal fault")
)

// TaskError wraps an error with task context
type TaskError struct {
	TaskID int
	Err    error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d: %v", e.TaskID, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *TaskError) Unwrap() error {
	return e.Err
}

// WrapTaskError wraps an error with task context
func WrapTaskError(taskID int, err error) error {
	if err == nil {
		return nil
	}
	return &TaskError{
		TaskID: taskID,
		Err:    err,
	}
}

// MultiError aggregates multiple errors
type MultiError struct {
	Errors []error
}

// Error implements the error interface
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:", len(m.Errors)))
	for i, err := range m.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %v", i+1, err))
	}
	return sb.String()
}

// Unwrap returns the errors for errors.Is/As compatibility
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Add adds an error to the multi-error
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// ErrorOrNil returns nil if no errors were added, otherwise returns the MultiError
func (m *MultiError) ErrorOrNil() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// CombineErrors combines multiple errors into a single error
// Returns nil if all errors are nil
func CombineErrors(errs ...error) error {
	m := &MultiError{}
	for _, err := range errs {
		m.Add(err)
	}
	return m.ErrorOrNil()
}

// IsStartupError reports whether err is one of the pre-launch validation
// failures that must abort before any task runs
func IsStartupError(err error) bool {
	return errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrNoWorkers) ||
		errors.Is(err, ErrInvalidConfig)
}

// IsInternalFault reports whether err is a fault in the run machinery
func IsInternalFault(err error) bool {
	return errors.Is(err, ErrInternalFault)
}

// WrapErrorf wraps an error with a formatted message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
