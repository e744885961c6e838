// Package harness runs YAML-defined resampling scenarios against a real
// policy and captures the sequence of cache decisions as a trace.
//
// A scenario declares a source array (dense values or an event table),
// a list of steps, and optional whole-run assertions. Each step mutates
// the per-dimension request (bounds, resolutions, resets) and then takes
// a view; the harness records one trace event per view with its cache
// outcome, dimensions, shape, and value total. Traces are deterministic:
// events are stamped with a monotonic step clock, so the same scenario
// always produces byte-identical output, which makes the trace suitable
// for golden-file comparison with goldie.
//
// Scenario files are validated twice before execution: structurally
// against a CUE schema, catching wrong kinds and malformed bounds with
// a clear error before anything runs, and then semantically by the
// loader, which checks what the schema cannot see (required fields per
// bound kind, dense versus event payload consistency).
package harness
