// Package resample derives bounded-resolution views of labeled arrays for
// interactive browsing.
//
// The central type is Policy. A consumer sets, per dimension, a target
// resolution (bin count) and a bound (exact index, index window, physical
// value range, or nil for the full coordinate range), then reads Data().
// The policy resolves the per-dimension requests into a concrete plan,
// computes a structural signature for the plan, and only recomputes when
// the signature differs from the cached ones. The default cache retains
// two views: the first ever computed ("home", the view a user returns to)
// and the most recent one. A small LRU variant is available behind the
// same Cache interface and preserves the home guarantee.
//
// Actual value transformation is delegated to a Strategy, chosen when the
// source array is attached: Dense rebins a regular payload one dimension
// at a time, Binned aggregates event payloads into dense bins. Both lean
// on the array package's Rebin, Bin and Histogram kernels, which only
// sum; density-preserving (mean-like) semantics for non-count data are
// obtained by scaling with bin widths before and after the sum-rebin.
// That duality is exact only when the quantity is piecewise-constant
// within source bins, a known numerical assumption of this scheme.
//
// Everything here is synchronous and single-threaded. A Data() call may
// block for the duration of the underlying kernels; callers needing
// responsiveness should throttle how often they mutate and read the
// policy rather than expect cancellation.
package resample
