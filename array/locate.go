package array

import (
	"sort"

	"github.com/binview/binview/unit"
)

// Locate translates a physical value into an index on a one-dimensional
// monotonic coordinate: it returns the number of coordinate elements that
// precede v in the coordinate's own ordering (the insertion index), in
// [0, len]. Works for ascending and descending coordinates.
//
// Returns *unit.Error on unit mismatch, *EmptyRangeError for an empty
// coordinate, and *ShapeError for a coordinate that is not
// one-dimensional.
func Locate(coord *Array, v unit.Scalar) (int, error) {
	if coord.NDim() != 1 {
		return 0, &ShapeError{
			Dim:     coord.dims[0],
			Message: "locate requires a one-dimensional coordinate",
		}
	}
	if !coord.unit.Equal(v.Unit) {
		return 0, &unit.Error{Op: "locate", Left: coord.unit, Right: v.Unit}
	}
	vals := coord.values
	if len(vals) == 0 {
		return 0, &EmptyRangeError{Dim: coord.dims[0], Message: "coordinate has no elements"}
	}
	if ascending(vals) {
		return sort.SearchFloat64s(vals, v.Value), nil
	}
	// Descending: count elements greater than v.
	return sort.Search(len(vals), func(i int) bool { return vals[i] <= v.Value }), nil
}

// ascending reports whether a monotonic sequence runs low to high. A
// single-element sequence counts as ascending.
func ascending(vals []float64) bool {
	if len(vals) < 2 {
		return true
	}
	return vals[0] < vals[len(vals)-1]
}
