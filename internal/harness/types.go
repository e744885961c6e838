package harness

import "github.com/binview/binview/resample"

// TraceEvent is one entry in the run trace: either a view or a cache
// reset. Field order in the golden output is fixed by canonical JSON.
type TraceEvent struct {
	Type    string    `json:"type"` // "view" or "reset"
	Seq     int64     `json:"seq"`
	Outcome string    `json:"outcome,omitempty"`
	Dims    []string  `json:"dims,omitempty"`
	Shape   []int     `json:"shape,omitempty"`
	Unit    string    `json:"unit,omitempty"`
	Total   *float64  `json:"total,omitempty"`
}

// Result is the outcome of one scenario run.
type Result struct {
	// Pass is true when every step expect and run assertion held.
	Pass bool `json:"pass"`

	// Trace lists view and reset events in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds every expectation failure. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Stats is the policy's cache counter snapshot after the last step.
	Stats resample.Stats `json:"stats"`
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []TraceEvent{}}
}

// AddError records an expectation failure and fails the result.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// ViewCount returns the number of view events in the trace.
func (r *Result) ViewCount() int {
	n := 0
	for _, ev := range r.Trace {
		if ev.Type == "view" {
			n++
		}
	}
	return n
}
