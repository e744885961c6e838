package resample

import (
	"math"

	"github.com/binview/binview/array"
)

// denseStrategy resamples regular numeric payloads by rebinning one
// dimension at a time against that dimension's target edges.
//
// Count-like arrays are rebinned sum-preserving. Anything else is
// density-preserving: the payload is multiplied by the old bin widths
// (making it count-like), sum-rebinned, then divided by the new widths.
// The underlying kernel only sums, so this scale/rebin/unscale sequence
// is how mean semantics are expressed; it is exact only for quantities
// piecewise-constant within source bins.
type denseStrategy struct{}

func (denseStrategy) Name() string { return "dense" }

func (denseStrategy) Resample(source *array.Array, plans []dimPlan) (*array.Array, error) {
	a := source
	var err error
	resampled := false

	// Shrink first: selects, windows, and value-range pre-slices only
	// reduce the data the rebins below have to touch.
	for i := range plans {
		p := &plans[i]
		switch {
		case p.kind == planSelect:
			a, err = a.Slice(p.dim, p.index)
		case p.kind == planWindow:
			a, err = a.SliceRange(p.dim, p.lo, p.hi)
		case p.kind == planResample && p.preslice:
			a, err = a.SliceRange(p.dim, p.lo, p.hi)
		}
		if err != nil {
			return nil, err
		}
	}

	// plans arrive squeeze-first, so single-bin reductions run before
	// higher-resolution rebins.
	for i := range plans {
		p := &plans[i]
		if p.kind != planResample {
			continue
		}
		a, err = rebinDim(a, p)
		if err != nil {
			return nil, err
		}
		resampled = true
	}

	// After a rebin, a is a derived array owned by this strategy, so its
	// mask map can be replaced in place with the broadcast union.
	if resampled {
		if union := CombineMasks(a.Masks(), a.Dims(), a.Shape()); union != nil {
			for name := range a.Masks() {
				delete(a.Masks(), name)
			}
			_ = a.SetMask("union", union)
		}
	}
	return a, nil
}

func rebinDim(a *array.Array, p *dimPlan) (*array.Array, error) {
	oldEdges, _, oneDim, err := resolveEdges(a, p.dim)
	if err != nil {
		return nil, err
	}
	if !oneDim {
		return nil, &array.ShapeError{
			Dim:     p.dim,
			Message: "dense resampling requires a one-dimensional coordinate",
		}
	}

	density := !a.Unit().IsCounts()
	if density {
		a, err = array.ScaleAlong(a, p.dim, binWidths(oldEdges))
		if err != nil {
			return nil, err
		}
	}
	out, err := array.Rebin(a, p.dim, oldEdges, p.edges)
	if err != nil {
		return nil, err
	}
	if density {
		inv := binWidths(p.edges)
		for i, w := range inv {
			inv[i] = 1 / w
		}
		out, err = array.ScaleAlong(out, p.dim, inv)
		if err != nil {
			return nil, err
		}
	}

	edges := append([]float64(nil), p.edges...)
	coord, err := array.New([]string{p.dim}, []int{len(edges)}, p.edgeUnit, edges)
	if err != nil {
		return nil, err
	}
	if err := out.SetCoord(p.dim, coord); err != nil {
		return nil, err
	}
	return out, nil
}

func binWidths(edges []float64) []float64 {
	widths := make([]float64, len(edges)-1)
	for i := range widths {
		widths[i] = math.Abs(edges[i+1] - edges[i])
	}
	return widths
}
