// Package array implements the labeled-array data model and the numeric
// kernels the resampling engine is built on.
//
// An Array has an ordered list of named dimensions, a physical unit, and
// one of two payloads:
//
//   - dense: a regular row-major float64 block, optionally with a parallel
//     block of variances;
//   - binned: a per-cell collection of variable-length Event records, each
//     carrying its own per-event coordinate values. A binned payload is
//     logically an event table that has been partitioned along the array's
//     dimensions.
//
// Coordinates are themselves (usually one-dimensional) Arrays attached
// under a name. A coordinate may be bin-edge shaped: its extent along its
// own dimension is the data extent plus one. Masks are boolean arrays over
// a subset of the data dimensions.
//
// The kernels Rebin, Bin, Histogram and Locate follow a fixed contract:
// Rebin sum-aggregates a dense payload from one edge set to another along
// a single dimension, Bin partitions an event table into nested bins
// outer to inner, Histogram aggregates a binned payload's events into
// dense bins along a new innermost dimension, and Locate translates a
// physical value into an index on a monotonic coordinate. Any mean-like
// or density-preserving semantics are layered on top of these by the
// resample package; the kernels themselves only sum.
package array
