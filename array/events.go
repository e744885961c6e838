package array

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/binview/binview/unit"
)

// Event is one raw record of a binned payload: a weight, its variance,
// and the event's own coordinate values.
type Event struct {
	Coords   map[string]float64
	Weight   float64
	Variance float64
}

// Table is a flat, unpartitioned event table: the logical source of a
// binned array.
type Table struct {
	Events []Event

	// Units maps per-event coordinate names to their units.
	Units map[string]unit.Unit

	// Unit is the weight unit, typically Counts.
	Unit unit.Unit
}

// Binning pairs a dimension with the edge set to partition along.
type Binning struct {
	Dim   string
	Edges []float64
	Unit  unit.Unit
}

// Cell returns the events of the cell at the given per-dimension
// indices, one per dimension in Dims order. The returned slice is the
// cell's backing storage and must not be modified.
func (a *Array) Cell(indices ...int) ([]Event, error) {
	if !a.IsBinned() {
		return nil, fmt.Errorf("dense arrays have no event cells")
	}
	if len(indices) != len(a.dims) {
		return nil, fmt.Errorf("want %d indices, got %d", len(a.dims), len(indices))
	}
	flat := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			return nil, &ShapeError{
				Dim:  a.dims[i],
				Want: fmt.Sprintf("index in [0, %d)", a.shape[i]),
				Got:  fmt.Sprintf("%d", idx),
			}
		}
		flat = flat*a.shape[i] + idx
	}
	return a.bins[flat], nil
}

// Events flattens a binned array back into a table. Cell membership is
// discarded; per-event coordinates are preserved. The source array is not
// mutated and the returned table shares its Event values.
func (a *Array) Events() (*Table, error) {
	if !a.IsBinned() {
		return nil, fmt.Errorf("dense arrays have no event table")
	}
	total := 0
	for _, cell := range a.bins {
		total += len(cell)
	}
	events := make([]Event, 0, total)
	for _, cell := range a.bins {
		events = append(events, cell...)
	}
	return &Table{Events: events, Units: a.eventUnits, Unit: a.unit}, nil
}

// Bin partitions an event table into nested bins per the given edge
// lists, in list order, outer to inner. Every binning dimension must be a
// per-event coordinate of the table; events falling outside any edge
// range are dropped. Edges become bin-edge coordinates of the result.
func Bin(t *Table, binnings ...Binning) (*Array, error) {
	if len(binnings) == 0 {
		return nil, fmt.Errorf("bin requires at least one edge list")
	}
	dims := make([]string, len(binnings))
	shape := make([]int, len(binnings))
	for i, b := range binnings {
		if _, ok := t.Units[b.Dim]; !ok {
			return nil, &DimensionError{Dim: b.Dim, Dims: coordNames(t.Units)}
		}
		if err := checkMonotonic(b.Dim, b.Edges); err != nil {
			return nil, err
		}
		dims[i] = b.Dim
		shape[i] = len(b.Edges) - 1
	}

	bins := make([][]Event, product(shape))
	for _, ev := range t.Events {
		flat := 0
		ok := true
		for i, b := range binnings {
			idx, in := edgeIndex(b.Edges, ev.Coords[b.Dim])
			if !in {
				ok = false
				break
			}
			flat = flat*shape[i] + idx
		}
		if ok {
			bins[flat] = append(bins[flat], ev)
		}
	}

	out, err := NewBinned(dims, shape, t.Unit, bins, t.Units)
	if err != nil {
		return nil, err
	}
	for _, b := range binnings {
		edges := append([]float64(nil), b.Edges...)
		coord, err := New([]string{b.Dim}, []int{len(edges)}, b.Unit, edges)
		if err != nil {
			return nil, err
		}
		if err := out.SetCoord(b.Dim, coord); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Histogram aggregates a binned array's events into dense bins along a
// new innermost dimension, using the named per-event coordinate. Weights
// and variances are summed per target bin. The result is dense with
// dimension order a.Dims() + [dim].
func Histogram(a *Array, dim string, edges []float64) (*Array, error) {
	if !a.IsBinned() {
		return nil, fmt.Errorf("histogram requires a binned payload")
	}
	cu, ok := a.eventUnits[dim]
	if !ok {
		return nil, &DimensionError{Dim: dim, Dims: coordNames(a.eventUnits)}
	}
	if err := checkMonotonic(dim, edges); err != nil {
		return nil, err
	}

	nNew := len(edges) - 1
	dims := append(a.Dims(), dim)
	shape := append(a.Shape(), nNew)
	values := make([]float64, len(a.bins)*nNew)
	variances := make([]float64, len(a.bins)*nNew)
	for cell, events := range a.bins {
		for _, ev := range events {
			idx, in := edgeIndex(edges, ev.Coords[dim])
			if !in {
				continue
			}
			values[cell*nNew+idx] += ev.Weight
			variances[cell*nNew+idx] += ev.Variance
		}
	}

	out := &Array{
		id:        uuid.NewString(),
		dims:      dims,
		shape:     shape,
		unit:      a.unit,
		values:    values,
		variances: variances,
		coords:    map[string]*Array{},
		masks:     map[string]*Mask{},
	}
	for name, coord := range a.coords {
		out.coords[name] = coord
	}
	edgeCopy := append([]float64(nil), edges...)
	coord, err := New([]string{dim}, []int{len(edgeCopy)}, cu, edgeCopy)
	if err != nil {
		return nil, err
	}
	if err := out.SetCoord(dim, coord); err != nil {
		return nil, err
	}
	for name, m := range a.masks {
		out.masks[name] = m
	}
	return out, nil
}

// edgeIndex places v into the half-open bins described by edges, closing
// the last bin on both sides. Supports ascending and descending edges.
func edgeIndex(edges []float64, v float64) (int, bool) {
	n := len(edges) - 1
	if ascending(edges) {
		if v < edges[0] || v > edges[n] {
			return 0, false
		}
		if v == edges[n] {
			return n - 1, true
		}
		return sort.Search(n+1, func(i int) bool { return edges[i] > v }) - 1, true
	}
	if v > edges[0] || v < edges[n] {
		return 0, false
	}
	if v == edges[n] {
		return n - 1, true
	}
	return sort.Search(n+1, func(i int) bool { return edges[i] < v }) - 1, true
}

func coordNames(units map[string]unit.Unit) []string {
	names := make([]string, 0, len(units))
	for name := range units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
