package array

import (
	"fmt"

	"github.com/google/uuid"
)

// Slice selects the single index i along dim and drops the dimension.
// Coordinates named after the dropped dimension are dropped with it;
// multi-dimensional coordinates that merely span dim are sliced.
func (a *Array) Slice(dim string, i int) (*Array, error) {
	k := a.dimIndex(dim)
	if k < 0 {
		return nil, &DimensionError{Dim: dim, Dims: a.dims}
	}
	n := a.shape[k]
	if i < 0 || i >= n {
		return nil, &ShapeError{
			Dim:  dim,
			Want: fmt.Sprintf("index in [0, %d)", n),
			Got:  fmt.Sprintf("%d", i),
		}
	}

	dims := append(append([]string(nil), a.dims[:k]...), a.dims[k+1:]...)
	shape := append(append([]int(nil), a.shape[:k]...), a.shape[k+1:]...)
	outer, _, inner := a.splitAt(k)

	out := &Array{
		id:     uuid.NewString(),
		dims:   dims,
		shape:  shape,
		unit:   a.unit,
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}

	if a.IsBinned() {
		bins := make([][]Event, outer*inner)
		for o := 0; o < outer; o++ {
			copy(bins[o*inner:(o+1)*inner], a.bins[(o*n+i)*inner:(o*n+i+1)*inner])
		}
		out.bins = bins
		out.eventUnits = a.eventUnits
	} else {
		out.values = sliceBlock(a.values, outer, n, inner, i)
		if a.variances != nil {
			out.variances = sliceBlock(a.variances, outer, n, inner, i)
		}
	}

	for name, coord := range a.coords {
		switch {
		case name == dim:
			// The dropped dimension loses its coordinate.
		case coord.HasDim(dim):
			c, err := coord.Slice(dim, i)
			if err != nil {
				return nil, err
			}
			out.coords[name] = c
		default:
			out.coords[name] = coord
		}
	}
	for name, m := range a.masks {
		if m.HasDim(dim) {
			out.masks[name] = m.slice(dim, i)
		} else {
			out.masks[name] = m
		}
	}
	return out, nil
}

// SliceRange selects the half-open index window [lo, hi) along dim,
// keeping the dimension. Bin-edge coordinates along dim are sliced to
// [lo, hi+1) so they stay edge-shaped.
func (a *Array) SliceRange(dim string, lo, hi int) (*Array, error) {
	k := a.dimIndex(dim)
	if k < 0 {
		return nil, &DimensionError{Dim: dim, Dims: a.dims}
	}
	n := a.shape[k]
	if lo < 0 || hi > n || lo > hi {
		return nil, &ShapeError{
			Dim:  dim,
			Want: fmt.Sprintf("range within [0, %d]", n),
			Got:  fmt.Sprintf("[%d, %d)", lo, hi),
		}
	}
	if lo == hi {
		return nil, &EmptyRangeError{Dim: dim, Message: fmt.Sprintf("index window [%d, %d) is empty", lo, hi)}
	}

	outer, _, inner := a.splitAt(k)
	w := hi - lo
	dims := append([]string(nil), a.dims...)
	shape := append([]int(nil), a.shape...)
	shape[k] = w

	out := &Array{
		id:     uuid.NewString(),
		dims:   dims,
		shape:  shape,
		unit:   a.unit,
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}

	if a.IsBinned() {
		bins := make([][]Event, outer*w*inner)
		for o := 0; o < outer; o++ {
			copy(bins[o*w*inner:(o+1)*w*inner], a.bins[(o*n+lo)*inner:(o*n+hi)*inner])
		}
		out.bins = bins
		out.eventUnits = a.eventUnits
	} else {
		out.values = sliceRangeBlock(a.values, outer, n, inner, lo, hi)
		if a.variances != nil {
			out.variances = sliceRangeBlock(a.variances, outer, n, inner, lo, hi)
		}
	}

	for name, coord := range a.coords {
		if !coord.HasDim(dim) {
			out.coords[name] = coord
			continue
		}
		chi := hi
		if name == dim && a.IsEdges(name) {
			chi = hi + 1
		}
		c, err := coord.SliceRange(dim, lo, chi)
		if err != nil {
			return nil, err
		}
		out.coords[name] = c
	}
	for name, m := range a.masks {
		if m.HasDim(dim) {
			out.masks[name] = m.sliceRange(dim, lo, hi)
		} else {
			out.masks[name] = m
		}
	}
	return out, nil
}

func sliceBlock(values []float64, outer, n, inner, i int) []float64 {
	out := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		copy(out[o*inner:(o+1)*inner], values[(o*n+i)*inner:(o*n+i+1)*inner])
	}
	return out
}

func sliceRangeBlock(values []float64, outer, n, inner, lo, hi int) []float64 {
	w := hi - lo
	out := make([]float64, outer*w*inner)
	for o := 0; o < outer; o++ {
		copy(out[o*w*inner:(o+1)*w*inner], values[(o*n+lo)*inner:(o*n+hi)*inner])
	}
	return out
}
