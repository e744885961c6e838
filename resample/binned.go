package resample

import (
	"github.com/binview/binview/array"
	"github.com/binview/binview/unit"
)

// binnedStrategy resamples event payloads. The events are irreversibly
// aggregated: the result is always dense.
//
// The strategy re-partitions the flattened event table against the
// target edges: all dimensions except the innermost resampled one are
// bound with array.Bin, then the innermost is histogrammed directly from
// the per-event coordinate, avoiding a fully-binned intermediate at high
// resolution. A dimension without a per-event coordinate is resampled
// against its existing, coarser bin index: each event inherits the
// center of the cell it sits in as a synthetic coordinate before
// re-partitioning. The source event table is never mutated.
type binnedStrategy struct{}

func (binnedStrategy) Name() string { return "binned" }

func (binnedStrategy) Resample(source *array.Array, plans []dimPlan) (*array.Array, error) {
	a := source
	var err error

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

	byDim := map[string]*dimPlan{}
	for i := range plans {
		if plans[i].kind == planResample {
			byDim[plans[i].dim] = &plans[i]
		}
	}
	if len(byDim) == 0 {
		return array.Densify(a)
	}

	// Innermost resampled dimension: the last one in the source's
	// dimension order, so the output keeps the source ordering with no
	// transposition.
	var inner *dimPlan
	for _, dim := range a.Dims() {
		if p, ok := byDim[dim]; ok {
			inner = p
		}
	}

	table, err := stampedTable(a)
	if err != nil {
		return nil, err
	}

	var binnings []array.Binning
	for _, dim := range a.Dims() {
		p, ok := byDim[dim]
		switch {
		case ok && p == inner:
			continue
		case ok:
			binnings = append(binnings, array.Binning{Dim: dim, Edges: p.edges, Unit: p.edgeUnit})
		default:
			// Kept dimension: re-bin by its existing edges so the cell
			// structure survives the flattening.
			edges, u, oneDim, err := resolveEdges(a, dim)
			if err != nil {
				return nil, err
			}
			if !oneDim {
				return nil, &array.ShapeError{
					Dim:     dim,
					Message: "binned resampling requires a one-dimensional coordinate",
				}
			}
			binnings = append(binnings, array.Binning{Dim: dim, Edges: edges, Unit: u})
		}
	}

	var binned *array.Array
	if len(binnings) == 0 {
		// Single resampled dimension: the whole table is one outer cell.
		binned, err = array.NewBinned(nil, nil, table.Unit, [][]array.Event{table.Events}, table.Units)
	} else {
		binned, err = array.Bin(table, binnings...)
	}
	if err != nil {
		return nil, err
	}
	out, err := array.Histogram(binned, inner.dim, inner.edges)
	if err != nil {
		return nil, err
	}
	// Histogram appends the innermost dimension; restore the source's
	// dimension order when the innermost was not last.
	out, err = array.Transpose(out, a.Dims())
	if err != nil {
		return nil, err
	}

	// Bin and Histogram build fresh arrays without masks. Re-attach the
	// source masks that still fit: a mask along a resampled dimension has
	// the wrong length for the new bin structure and cannot be carried.
	kept := map[string]*array.Mask{}
	for name, m := range a.Masks() {
		if touchesResampled(m, byDim) {
			continue
		}
		kept[name] = m
	}
	if union := CombineMasks(kept, out.Dims(), out.Shape()); union != nil {
		_ = out.SetMask("union", union)
	}
	return out, nil
}

func touchesResampled(m *array.Mask, byDim map[string]*dimPlan) bool {
	for _, d := range m.Dims() {
		if _, ok := byDim[d]; ok {
			return true
		}
	}
	return false
}

// stampedTable flattens the binned payload into one event table. Any
// dimension that must be re-partitioned but has no per-event coordinate
// gets one stamped on: the center of the cell the event currently
// occupies. Stamping copies events; the source cells are left untouched.
func stampedTable(a *array.Array) (*array.Table, error) {
	table, err := a.Events()
	if err != nil {
		return nil, err
	}

	var stamp []string
	for _, dim := range a.Dims() {
		if _, ok := table.Units[dim]; ok {
			continue
		}
		stamp = append(stamp, dim)
	}
	if len(stamp) == 0 {
		return table, nil
	}

	centers := map[string][]float64{}
	units := map[string]unit.Unit{}
	for name, u := range table.Units {
		units[name] = u
	}
	for _, dim := range stamp {
		edges, u, oneDim, err := resolveEdges(a, dim)
		if err != nil {
			return nil, err
		}
		if !oneDim {
			return nil, &array.ShapeError{
				Dim:     dim,
				Message: "binned resampling requires a one-dimensional coordinate",
			}
		}
		c := make([]float64, len(edges)-1)
		for i := range c {
			c[i] = (edges[i] + edges[i+1]) / 2
		}
		centers[dim] = c
		units[dim] = u
	}

	// Re-walk the cells so each event knows which cell indices it came
	// from; Events() alone discards that.
	dims := a.Dims()
	shape := a.Shape()
	events := make([]array.Event, 0, len(table.Events))
	idx := make([]int, len(dims))
	total := 1
	for _, s := range shape {
		total *= s
	}
	for flat := 0; flat < total; flat++ {
		cell, err := a.Cell(idx...)
		if err != nil {
			return nil, err
		}
		for _, ev := range cell {
			coords := make(map[string]float64, len(ev.Coords)+len(stamp))
			for name, v := range ev.Coords {
				coords[name] = v
			}
			for i, dim := range dims {
				if c, ok := centers[dim]; ok {
					coords[dim] = c[idx[i]]
				}
			}
			events = append(events, array.Event{Coords: coords, Weight: ev.Weight, Variance: ev.Variance})
		}
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
	return &array.Table{Events: events, Units: units, Unit: table.Unit}, nil
}
