package array

import (
	"fmt"

	"github.com/google/uuid"
)

// contrib is one target bin's share of a source bin.
type contrib struct {
	idx  int
	frac float64
}

// Rebin sum-aggregates a dense array from oldEdges to newEdges along dim.
// oldEdges must be bin-edge shaped for the array (extent along dim plus
// one) and strictly monotonic; newEdges must be strictly monotonic in the
// same direction. Source bins partially covered by a target bin
// contribute the covered fraction of their value.
//
// Variances, when present, are aggregated by the same procedure applied
// independently to the variance payload. Masks spanning dim are rebinned
// with the same edges: a target bin is masked if any contributing source
// bin is masked. The coordinate named after dim is dropped; the caller
// attaches the new edge coordinate.
func Rebin(a *Array, dim string, oldEdges, newEdges []float64) (*Array, error) {
	if a.IsBinned() {
		return nil, fmt.Errorf("rebin requires a dense payload")
	}
	k := a.dimIndex(dim)
	if k < 0 {
		return nil, &DimensionError{Dim: dim, Dims: a.dims}
	}
	n := a.shape[k]
	if len(oldEdges) != n+1 {
		return nil, &ShapeError{
			Dim:  dim,
			Want: fmt.Sprintf("%d edges", n+1),
			Got:  fmt.Sprintf("%d edges", len(oldEdges)),
		}
	}
	if err := checkMonotonic(dim, oldEdges); err != nil {
		return nil, err
	}
	if err := checkMonotonic(dim, newEdges); err != nil {
		return nil, err
	}
	if ascending(oldEdges) != ascending(newEdges) {
		return nil, &ShapeError{Dim: dim, Message: "old and new edges run in opposite directions"}
	}

	nNew := len(newEdges) - 1
	contribs := overlapTable(oldEdges, newEdges)

	outer, _, inner := a.splitAt(k)
	dims := append([]string(nil), a.dims...)
	shape := append([]int(nil), a.shape...)
	shape[k] = nNew

	out := &Array{
		id:     uuid.NewString(),
		dims:   dims,
		shape:  shape,
		unit:   a.unit,
		values: rebinBlock(a.values, outer, n, inner, nNew, contribs),
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}
	if a.variances != nil {
		out.variances = rebinBlock(a.variances, outer, n, inner, nNew, contribs)
	}

	for name, coord := range a.coords {
		if name == dim || coord.HasDim(dim) {
			continue
		}
		out.coords[name] = coord
	}
	for name, m := range a.masks {
		if !m.HasDim(dim) {
			out.masks[name] = m
			continue
		}
		rm, err := rebinMask(m, dim, contribs, nNew)
		if err != nil {
			return nil, err
		}
		out.masks[name] = rm
	}
	return out, nil
}

// overlapTable maps each source bin (in data index order) to the target
// bins it overlaps and the covered fraction of the source bin. Both edge
// sets must be strictly monotonic in the same direction.
func overlapTable(oldEdges, newEdges []float64) [][]contrib {
	nOld := len(oldEdges) - 1
	nNew := len(newEdges) - 1
	asc := ascending(oldEdges)

	// Geometric position p runs low to high; dataIdx maps back to the
	// bin's index in the payload.
	oldIdx := func(p int) int {
		if asc {
			return p
		}
		return nOld - 1 - p
	}
	newIdx := func(p int) int {
		if asc {
			return p
		}
		return nNew - 1 - p
	}
	edgePair := func(edges []float64, idx int) (lo, hi float64) {
		lo, hi = edges[idx], edges[idx+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi
	}

	contribs := make([][]contrib, nOld)
	j := 0
	for p := 0; p < nOld; p++ {
		src := oldIdx(p)
		lo, hi := edgePair(oldEdges, src)
		width := hi - lo
		for j < nNew {
			_, tHi := edgePair(newEdges, newIdx(j))
			if tHi > lo {
				break
			}
			j++
		}
		for q := j; q < nNew; q++ {
			dst := newIdx(q)
			tLo, tHi := edgePair(newEdges, dst)
			if tLo >= hi {
				break
			}
			ov := min(hi, tHi) - max(lo, tLo)
			if ov > 0 {
				contribs[src] = append(contribs[src], contrib{idx: dst, frac: ov / width})
			}
		}
	}
	return contribs
}

func rebinBlock(values []float64, outer, n, inner, nNew int, contribs [][]contrib) []float64 {
	out := make([]float64, outer*nNew*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < n; i++ {
			src := values[(o*n+i)*inner : (o*n+i+1)*inner]
			for _, c := range contribs[i] {
				dst := out[(o*nNew+c.idx)*inner : (o*nNew+c.idx+1)*inner]
				for j, v := range src {
					dst[j] += c.frac * v
				}
			}
		}
	}
	return out
}

// rebinMask grows a mask onto the target bins: any overlap with a masked
// source bin masks the target bin.
func rebinMask(m *Mask, dim string, contribs [][]contrib, nNew int) (*Mask, error) {
	k := m.dimIndex(dim)
	outer, n, inner := m.splitAt(k)
	out := make([]bool, outer*nNew*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < n; i++ {
			src := m.values[(o*n+i)*inner : (o*n+i+1)*inner]
			for _, c := range contribs[i] {
				dst := out[(o*nNew+c.idx)*inner : (o*nNew+c.idx+1)*inner]
				for j, v := range src {
					dst[j] = dst[j] || v
				}
			}
		}
	}
	dims := append([]string(nil), m.dims...)
	shape := append([]int(nil), m.shape...)
	shape[k] = nNew
	return &Mask{dims: dims, shape: shape, values: out}, nil
}

func checkMonotonic(dim string, edges []float64) error {
	if len(edges) < 2 {
		return &ShapeError{Dim: dim, Message: "need at least two edges"}
	}
	asc := edges[0] < edges[1]
	for i := 1; i < len(edges); i++ {
		if asc && edges[i] <= edges[i-1] || !asc && edges[i] >= edges[i-1] {
			return &ShapeError{Dim: dim, Message: "edges must be strictly monotonic"}
		}
	}
	return nil
}
