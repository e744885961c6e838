package array

import (
	"fmt"

	"github.com/google/uuid"
)

// ScaleAlong multiplies the payload elementwise by one factor per index
// along dim, returning a new array. Variances are scaled by the same
// factors. Used to convert between density and count semantics around a
// sum-rebin.
func ScaleAlong(a *Array, dim string, factors []float64) (*Array, error) {
	if a.IsBinned() {
		return nil, fmt.Errorf("scale requires a dense payload")
	}
	k := a.dimIndex(dim)
	if k < 0 {
		return nil, &DimensionError{Dim: dim, Dims: a.dims}
	}
	n := a.shape[k]
	if len(factors) != n {
		return nil, &ShapeError{
			Dim:  dim,
			Want: fmt.Sprintf("%d factors", n),
			Got:  fmt.Sprintf("%d factors", len(factors)),
		}
	}
	outer, _, inner := a.splitAt(k)

	out := &Array{
		id:     uuid.NewString(),
		dims:   append([]string(nil), a.dims...),
		shape:  append([]int(nil), a.shape...),
		unit:   a.unit,
		values: scaleBlock(a.values, outer, n, inner, factors),
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}
	for name, coord := range a.coords {
		out.coords[name] = coord
	}
	for name, m := range a.masks {
		out.masks[name] = m
	}
	if a.variances != nil {
		out.variances = scaleBlock(a.variances, outer, n, inner, factors)
	}
	return out, nil
}

func scaleBlock(values []float64, outer, n, inner int, factors []float64) []float64 {
	out := make([]float64, len(values))
	for o := 0; o < outer; o++ {
		for i := 0; i < n; i++ {
			f := factors[i]
			base := (o*n + i) * inner
			for j := 0; j < inner; j++ {
				out[base+j] = values[base+j] * f
			}
		}
	}
	return out
}

// Transpose reorders a dense array's dimensions to the given order,
// which must be a permutation of Dims. Coordinates and masks are carried
// unchanged; their own dimension order is independent of the data's.
// Returns the receiver when the order already matches.
func Transpose(a *Array, order []string) (*Array, error) {
	if a.IsBinned() {
		return nil, fmt.Errorf("transpose requires a dense payload")
	}
	if len(order) != len(a.dims) {
		return nil, fmt.Errorf("want %d dims, got %d", len(a.dims), len(order))
	}
	perm := make([]int, len(order))
	same := true
	for i, d := range order {
		k := a.dimIndex(d)
		if k < 0 {
			return nil, &DimensionError{Dim: d, Dims: a.dims}
		}
		perm[i] = k
		if k != i {
			same = false
		}
	}
	if same {
		return a, nil
	}

	shape := make([]int, len(perm))
	for i, k := range perm {
		shape[i] = a.shape[k]
	}
	srcStrides := rowMajorStrides(a.shape)

	out := &Array{
		id:     uuid.NewString(),
		dims:   append([]string(nil), order...),
		shape:  shape,
		unit:   a.unit,
		values: transposeBlock(a.values, shape, perm, srcStrides),
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}
	if a.variances != nil {
		out.variances = transposeBlock(a.variances, shape, perm, srcStrides)
	}
	for name, coord := range a.coords {
		out.coords[name] = coord
	}
	for name, m := range a.masks {
		out.masks[name] = m
	}
	return out, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

func transposeBlock(values []float64, shape, perm, srcStrides []int) []float64 {
	out := make([]float64, len(values))
	idx := make([]int, len(shape))
	for flat := range out {
		src := 0
		for i, k := range perm {
			src += idx[i] * srcStrides[k]
		}
		out[flat] = values[src]
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out
}

// Densify collapses a binned payload in place of its cells: each cell
// becomes the sum of its event weights, with variances summed alongside.
// Dimensions, coordinates and masks are preserved.
func Densify(a *Array) (*Array, error) {
	if !a.IsBinned() {
		return nil, fmt.Errorf("densify requires a binned payload")
	}
	values := make([]float64, len(a.bins))
	variances := make([]float64, len(a.bins))
	for i, cell := range a.bins {
		for _, ev := range cell {
			values[i] += ev.Weight
			variances[i] += ev.Variance
		}
	}
	out := &Array{
		id:        uuid.NewString(),
		dims:      append([]string(nil), a.dims...),
		shape:     append([]int(nil), a.shape...),
		unit:      a.unit,
		values:    values,
		variances: variances,
		coords:    map[string]*Array{},
		masks:     map[string]*Mask{},
	}
	for name, coord := range a.coords {
		out.coords[name] = coord
	}
	for name, m := range a.masks {
		out.masks[name] = m
	}
	return out, nil
}
