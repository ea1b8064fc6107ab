package stations

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tahsin716/stations/partition"
)

// Common errors returned by a station.
var (
	// ErrStationJoined is returned when submitting to a station that has
	// already been joined. A joined station cannot accept new tasks.
	//
	// Example:
	//  st.Join()
	//  err := st.Submit(task)
	//  if errors.Is(err, stations.ErrStationJoined) {
	//      log.Println("cannot submit: station is joined")
	//  }
	ErrStationJoined = &StationError{msg: "station is joined"}

	// ErrNilTask is returned when attempting to submit a nil task function.
	ErrNilTask = &StationError{msg: "task is nil"}

	// ErrInvalidThreadID is returned by SubmitTo for a negative thread id.
	ErrInvalidThreadID = &StationError{msg: "thread id must be >= 0"}

	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = &StationError{msg: "invalid config"}

	// ErrInvalidParts is returned when a split into zero parts is requested.
	ErrInvalidParts = partition.ErrInvalidParts
)

// StationError represents an error that occurred within a station.
type StationError struct {
	msg string // Human-readable error message
	err error  // Underlying error (if any)
}

// Error returns a formatted error message.
// If an underlying error exists, it is included in the output.
func (e *StationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("stations: %s: %v", e.msg, e.err)
	}
	return fmt.Sprintf("stations: %s", e.msg)
}

// Unwrap returns the underlying error, allowing use with errors.Is and errors.As.
func (e *StationError) Unwrap() error {
	return e.err
}

// errInvalidConfig creates an error for invalid station configuration.
// This is returned during station creation when validation fails.
func errInvalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

// PanicError wraps a panic recovered from a task.
type PanicError struct {
	Value interface{}
	Stack string
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes a panic value that is itself an error.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// TaskError records a failed task and the thread that ran it.
// Thread is the 1-based worker index, or 0 for the boss.
type TaskError struct {
	Thread int
	Err    error
}

func (t *TaskError) Error() string {
	if t.Thread == 0 {
		return fmt.Sprintf("boss: %v", t.Err)
	}
	return fmt.Sprintf("thread %d: %v", t.Thread, t.Err)
}

func (t *TaskError) Unwrap() error {
	return t.Err
}

// AggregateError combines the task failures reported by Join
type AggregateError struct {
	Errors []error
}

func (a *AggregateError) Error() string {
	if len(a.Errors) == 0 {
		return "no errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d task(s) failed:", len(a.Errors))
	for i, err := range a.Errors {
		fmt.Fprintf(&b, "\n  [%d] %v", i+1, err)
	}
	return b.String()
}

// Unwrap makes AggregateError compatible with errors.Is/errors.As
func (a *AggregateError) Unwrap() []error {
	return a.Errors
}

// Is implements error matching for wrapped errors
func (a *AggregateError) Is(target error) bool {
	for _, err := range a.Errors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
