package resample

import (
	"fmt"
	"sort"

	"github.com/binview/binview/array"
	"github.com/binview/binview/unit"
)

type planKind int

const (
	planSelect planKind = iota
	planWindow
	planResample
)

// dimPlan is one dimension's resolved request: what to do to the source
// along that dimension, plus the signature component describing it.
type dimPlan struct {
	dim  string
	kind planKind

	// planSelect
	index int

	// planWindow, or the pre-slice index bracket of a planResample when
	// preslice is set.
	lo, hi   int
	preslice bool

	// planResample: concrete target edges, in the coordinate's direction.
	edges    []float64
	edgeUnit unit.Unit

	res         int
	explicitRes bool
}

// squeeze reports whether the dimension must be dropped from the result:
// it collapsed to one bin without an explicitly requested resolution,
// making the request equivalent to an exact index select.
func (p *dimPlan) squeeze() bool {
	return p.kind == planResample && p.res == 1 && !p.explicitRes
}

// resolvePlans turns the per-dimension bounds and resolutions into
// concrete plans and their signature components. Resampling plans are
// ordered squeeze-first: a dimension collapsing to a single bin is
// resampled before higher-resolution ones, so later rebins operate on
// already-reduced data.
func resolvePlans(source *array.Array, bounds map[string]Bound, resolution map[string]int, defaultRes int) ([]dimPlan, map[string]sigComponent, error) {
	dims := make([]string, 0, len(bounds))
	for dim := range bounds {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	var plans []dimPlan
	components := map[string]sigComponent{}
	for _, dim := range dims {
		if !source.HasDim(dim) {
			return nil, nil, &array.DimensionError{Dim: dim, Dims: source.Dims()}
		}
		p, c, err := resolveDim(source, dim, bounds[dim], resolution, defaultRes)
		if err != nil {
			return nil, nil, err
		}
		plans = append(plans, p)
		components[dim] = c
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return planOrder(&plans[i]) < planOrder(&plans[j])
	})
	return plans, components, nil
}

// planOrder sorts selects and windows before resampling (they only shrink
// data) and single-bin resamples before higher-resolution ones.
func planOrder(p *dimPlan) int {
	switch {
	case p.kind != planResample:
		return 0
	case p.res == 1:
		return 1
	}
	return 2
}

func resolveDim(source *array.Array, dim string, b Bound, resolution map[string]int, defaultRes int) (dimPlan, sigComponent, error) {
	res, explicit := resolution[dim]
	if !explicit {
		res = defaultRes
	}
	if res < 1 {
		return dimPlan{}, nil, fmt.Errorf("resolution for %q must be positive, got %d", dim, res)
	}

	switch b.Kind() {
	case BoundIndex:
		return dimPlan{dim: dim, kind: planSelect, index: b.Index()},
			sigComponent{"kind": "index", "index": b.Index()}, nil

	case BoundWindow:
		lo, hi := b.Window()
		return dimPlan{dim: dim, kind: planWindow, lo: lo, hi: hi},
			sigComponent{"kind": "window", "lo": lo, "hi": hi}, nil

	case BoundFull:
		edges, u, oneDim, err := resolveEdges(source, dim)
		if err != nil {
			return dimPlan{}, nil, err
		}
		// The full range runs between the coordinate extremes, in the
		// coordinate's direction. A multi-dimensional coordinate has no
		// single direction; its envelope is taken ascending.
		first, last := edges[0], edges[len(edges)-1]
		if !oneDim {
			first, last = minMax(edges)
		}
		lo, hi := first, last
		if lo > hi {
			lo, hi = hi, lo
		}
		return dimPlan{
				dim:         dim,
				kind:        planResample,
				edges:       linspace(first, last, res),
				edgeUnit:    u,
				res:         res,
				explicitRes: explicit,
			}, sigComponent{
				"kind":    "full",
				"min":     lo,
				"max":     hi,
				"unit":    u.String(),
				"res":     res,
				"default": !explicit,
			}, nil

	case BoundValues:
		return resolveValueRange(source, dim, b, res, explicit)
	}
	return dimPlan{}, nil, fmt.Errorf("unknown bound kind %v for %q", b.Kind(), dim)
}

func resolveValueRange(source *array.Array, dim string, b Bound, res int, explicit bool) (dimPlan, sigComponent, error) {
	edges, u, oneDim, err := resolveEdges(source, dim)
	if err != nil {
		return dimPlan{}, nil, err
	}
	low, high := b.Values()
	if !low.Unit.Compatible(high.Unit) {
		return dimPlan{}, nil, &unit.Error{Op: "bounds", Left: low.Unit, Right: high.Unit}
	}
	if !low.Unit.Compatible(u) {
		return dimPlan{}, nil, &unit.Error{Op: "bounds", Left: low.Unit, Right: u}
	}

	// Normalize the pair to the coordinate's ordering; an inverted request
	// is accepted, never resolved to an empty result. A multi-dimensional
	// coordinate is treated as ascending.
	asc := !oneDim || edges[0] < edges[len(edges)-1]
	lo, hi := low.Value, high.Value
	if (asc && lo > hi) || (!asc && lo < hi) {
		lo, hi = hi, lo
	}
	if lo == hi {
		return dimPlan{}, nil, &array.EmptyRangeError{
			Dim:     dim,
			Message: fmt.Sprintf("value range [%g, %g] spans no width", lo, hi),
		}
	}

	p := dimPlan{
		dim:         dim,
		kind:        planResample,
		edges:       linspace(lo, hi, res),
		edgeUnit:    u,
		res:         res,
		explicitRes: explicit,
	}
	if oneDim {
		// A one-dimensional coordinate admits a pre-slice: shrink by index
		// bracket before resampling instead of rebinning everything.
		iLo, iHi, err := indexBracket(dim, edges, lo, hi)
		if err != nil {
			return dimPlan{}, nil, err
		}
		p.preslice = true
		p.lo, p.hi = iLo, iHi
	}
	return p, sigComponent{
		"kind":    "values",
		"low":     lo,
		"high":    hi,
		"unit":    u.String(),
		"res":     res,
		"default": !explicit,
	}, nil
}

// resolveEdges produces the dimension's bin-edge coordinate values. A
// center-shaped coordinate is converted to edges; a missing coordinate is
// synthesized as dimensionless integer edges. oneDim reports whether the
// edges describe a one-dimensional coordinate usable for pre-slicing and
// dense rebinning; for a multi-dimensional coordinate the returned slice
// holds all its values and only min/max are meaningful.
func resolveEdges(source *array.Array, dim string) ([]float64, unit.Unit, bool, error) {
	extent, err := source.Len(dim)
	if err != nil {
		return nil, unit.Unit{}, false, err
	}
	coord := source.Coord(dim)
	if coord == nil {
		if extent == 0 {
			return nil, unit.Unit{}, false, &array.EmptyRangeError{Dim: dim, Message: "no elements and no coordinate"}
		}
		return FakeCoord(dim, extent).Values(), unit.Dimensionless, true, nil
	}
	if len(coord.Values()) == 0 {
		return nil, unit.Unit{}, false, &array.EmptyRangeError{Dim: dim, Message: "coordinate has no elements"}
	}
	if coord.NDim() > 1 {
		return coord.Values(), coord.Unit(), false, nil
	}
	if !source.IsEdges(dim) {
		c, err := CentersToEdges(coord, dim)
		if err != nil {
			return nil, unit.Unit{}, false, err
		}
		return c.Values(), c.Unit(), true, nil
	}
	return coord.Values(), coord.Unit(), true, nil
}

// indexBracket maps a physical range, already normalized to the edge
// ordering, onto the half-open index window of source bins it touches.
func indexBracket(dim string, edges []float64, lo, hi float64) (int, int, error) {
	n := len(edges) - 1
	asc := edges[0] < edges[n]

	work := edges
	if !asc {
		work = make([]float64, len(edges))
		for i, e := range edges {
			work[len(edges)-1-i] = e
		}
		lo, hi = hi, lo
	}
	if hi <= work[0] || lo >= work[n] {
		return 0, 0, &array.EmptyRangeError{
			Dim:     dim,
			Message: fmt.Sprintf("[%g, %g] does not intersect coordinate range [%g, %g]", lo, hi, work[0], work[n]),
		}
	}

	iLo := sort.Search(n+1, func(i int) bool { return work[i] > lo }) - 1
	if iLo < 0 {
		iLo = 0
	}
	iHi := sort.Search(n+1, func(i int) bool { return work[i] >= hi })
	if iHi > n {
		iHi = n
	}
	if iHi <= iLo {
		iHi = iLo + 1
	}
	if !asc {
		iLo, iHi = n-iHi, n-iLo
	}
	return iLo, iHi, nil
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// linspace builds res+1 evenly spaced edges from first to last, in that
// direction.
func linspace(first, last float64, res int) []float64 {
	edges := make([]float64, res+1)
	step := (last - first) / float64(res)
	for i := 0; i <= res; i++ {
		edges[i] = first + float64(i)*step
	}
	edges[res] = last
	return edges
}
