package resample

import (
	"fmt"

	"github.com/binview/binview/array"
	"github.com/binview/binview/unit"
)

// CentersToEdges converts a coordinate from bin-center to bin-edge
// representation along dim: extent n becomes n+1, interior edges are
// midpoints of adjacent centers, and the outermost edges are placed by
// linear extrapolation from the two nearest centers. A single center c
// yields the edges c-1 and c+1. Fails with *array.ShapeError when dim is
// not among the coordinate's dimensions.
//
// BinCenters inverts this construction exactly only for uniformly
// spaced centers; on an irregular grid the midpoint edges do not
// recenter to the original values.
func CentersToEdges(coord *array.Array, dim string) (*array.Array, error) {
	k := dimPos(coord.Dims(), dim)
	if k < 0 {
		return nil, &array.ShapeError{
			Dim:     dim,
			Message: fmt.Sprintf("not among coordinate dims %v", coord.Dims()),
		}
	}
	shape := coord.Shape()
	n := shape[k]
	if n == 0 {
		return nil, &array.EmptyRangeError{Dim: dim, Message: "coordinate has no elements"}
	}
	outer, inner := outerInner(shape, k)

	newShape := append([]int(nil), shape...)
	newShape[k] = n + 1
	out := make([]float64, outer*(n+1)*inner)
	values := coord.Values()

	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			at := func(i int) float64 { return values[(o*n+i)*inner+j] }
			set := func(i int, v float64) { out[(o*(n+1)+i)*inner+j] = v }
			if n == 1 {
				c := at(0)
				set(0, c-1)
				set(1, c+1)
				continue
			}
			set(0, at(0)-(at(1)-at(0))/2)
			for i := 1; i < n; i++ {
				set(i, (at(i-1)+at(i))/2)
			}
			set(n, at(n-1)+(at(n-1)-at(n-2))/2)
		}
	}
	return array.New(coord.Dims(), newShape, coord.Unit(), out)
}

// BinCenters converts a bin-edge coordinate back to centers along dim:
// each center is the arithmetic mean of its two edges.
func BinCenters(edges *array.Array, dim string) (*array.Array, error) {
	k := dimPos(edges.Dims(), dim)
	if k < 0 {
		return nil, &array.ShapeError{
			Dim:     dim,
			Message: fmt.Sprintf("not among coordinate dims %v", edges.Dims()),
		}
	}
	shape := edges.Shape()
	n := shape[k]
	if n < 2 {
		return nil, &array.ShapeError{Dim: dim, Message: "need at least two edges"}
	}
	outer, inner := outerInner(shape, k)

	newShape := append([]int(nil), shape...)
	newShape[k] = n - 1
	out := make([]float64, outer*(n-1)*inner)
	values := edges.Values()

	for o := 0; o < outer; o++ {
		for j := 0; j < inner; j++ {
			for i := 0; i < n-1; i++ {
				lo := values[(o*n+i)*inner+j]
				hi := values[(o*n+i+1)*inner+j]
				out[(o*(n-1)+i)*inner+j] = (lo + hi) / 2
			}
		}
	}
	return array.New(edges.Dims(), newShape, edges.Unit(), out)
}

// FakeCoord synthesizes a dimensionless integer edge coordinate 0..length
// for a dimension that has no natural coordinate, so that downstream code
// can treat every dimension uniformly.
func FakeCoord(dim string, length int) *array.Array {
	values := make([]float64, length+1)
	for i := range values {
		values[i] = float64(i)
	}
	coord, err := array.New([]string{dim}, []int{length + 1}, unit.Dimensionless, values)
	if err != nil {
		panic(err) // shape is correct by construction
	}
	return coord
}

func dimPos(dims []string, dim string) int {
	for i, d := range dims {
		if d == dim {
			return i
		}
	}
	return -1
}

func outerInner(shape []int, k int) (outer, inner int) {
	outer, inner = 1, 1
	for _, s := range shape[:k] {
		outer *= s
	}
	for _, s := range shape[k+1:] {
		inner *= s
	}
	return outer, inner
}
