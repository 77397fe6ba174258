package app

import (
	"strings"
	"time"
)

// Operation tracks a single CLI invocation for logging.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	Status     string // "success" or "error"
	Started    time.Time
}

// NewOperation creates an operation that is assumed to succeed until Fail is
// called.
func NewOperation(id, name string, started time.Time, params ...string) *Operation {
	return &Operation{
		ID:         id,
		Name:       name,
		Parameters: strings.Join(params, " "),
		Status:     "success",
		Started:    started,
	}
}

// Fail marks the operation as failed. A nil err is ignored.
func (op *Operation) Fail(err error) {
	if err != nil {
		op.Status = "error"
	}
}

// Failed reports whether Fail was called with a non-nil error.
func (op *Operation) Failed() bool {
	return op.Status == "error"
}

// Elapsed returns the time since the operation started, as seen by now.
func (op *Operation) Elapsed(now time.Time) time.Duration {
	return now.Sub(op.Started)
}
