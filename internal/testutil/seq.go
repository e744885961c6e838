// Package testutil provides deterministic helpers for tests and the
// scenario harness: a monotonic step clock for reproducible trace
// sequence numbers, and a slog handler that captures records for
// assertion.
package testutil

import "sync"

// StepClock is a thread-safe monotonic logical clock.
//
// The harness stamps every trace event with a sequence number from a
// StepClock so that repeated runs of the same scenario produce
// byte-identical traces for golden comparison.
type StepClock struct {
	mu  sync.Mutex
	seq int64
}

// NewStepClock creates a clock starting at 0. The first call to Next
// returns 1.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Next increments and returns the next sequence number.
func (c *StepClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}
