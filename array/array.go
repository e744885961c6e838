package array

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/binview/binview/unit"
)

// Array is a labeled multi-dimensional array: named dimensions, a unit,
// coordinates, masks, and either a dense or a binned payload.
//
// Arrays handed to the resampling policy are treated as immutable: all
// operations in this package return fresh arrays and never write through
// to their inputs' payloads.
type Array struct {
	id    string
	dims  []string
	shape []int
	unit  unit.Unit

	// dense payload; nil when binned
	values    []float64
	variances []float64

	// binned payload; nil when dense. bins is indexed by the row-major
	// flat index over dims.
	bins       [][]Event
	eventUnits map[string]unit.Unit

	coords map[string]*Array
	masks  map[string]*Mask
}

// New creates a dense array. len(values) must equal the product of shape.
func New(dims []string, shape []int, u unit.Unit, values []float64) (*Array, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("dims/shape length mismatch: %d vs %d", len(dims), len(shape))
	}
	if len(values) != product(shape) {
		return nil, &ShapeError{
			Dim:  fmt.Sprintf("%v", dims),
			Want: fmt.Sprintf("%d values", product(shape)),
			Got:  fmt.Sprintf("%d values", len(values)),
		}
	}
	return &Array{
		id:     uuid.NewString(),
		dims:   append([]string(nil), dims...),
		shape:  append([]int(nil), shape...),
		unit:   u,
		values: values,
		coords: map[string]*Array{},
		masks:  map[string]*Mask{},
	}, nil
}

// NewBinned creates a binned array from pre-partitioned event cells.
// len(bins) must equal the product of shape; eventUnits maps per-event
// coordinate names to their units.
func NewBinned(dims []string, shape []int, u unit.Unit, bins [][]Event, eventUnits map[string]unit.Unit) (*Array, error) {
	if len(dims) != len(shape) {
		return nil, fmt.Errorf("dims/shape length mismatch: %d vs %d", len(dims), len(shape))
	}
	if len(bins) != product(shape) {
		return nil, &ShapeError{
			Dim:  fmt.Sprintf("%v", dims),
			Want: fmt.Sprintf("%d cells", product(shape)),
			Got:  fmt.Sprintf("%d cells", len(bins)),
		}
	}
	units := map[string]unit.Unit{}
	for name, cu := range eventUnits {
		units[name] = cu
	}
	return &Array{
		id:         uuid.NewString(),
		dims:       append([]string(nil), dims...),
		shape:      append([]int(nil), shape...),
		unit:       u,
		bins:       bins,
		eventUnits: units,
		coords:     map[string]*Array{},
		masks:      map[string]*Mask{},
	}, nil
}

// ID returns the array's identity token, assigned at construction. Derived
// arrays get fresh identities; the token ties cache entries and log lines
// back to a specific source instance.
func (a *Array) ID() string { return a.id }

// Dims returns the ordered dimension names.
func (a *Array) Dims() []string { return append([]string(nil), a.dims...) }

// Shape returns the per-dimension extents, in Dims order.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.dims) }

// Unit returns the payload unit.
func (a *Array) Unit() unit.Unit { return a.unit }

// IsBinned reports whether the payload is binned (event) data.
func (a *Array) IsBinned() bool { return a.bins != nil }

// HasDim reports whether dim is one of the array's dimensions.
func (a *Array) HasDim(dim string) bool {
	return a.dimIndex(dim) >= 0
}

// Len returns the extent along dim.
func (a *Array) Len(dim string) (int, error) {
	k := a.dimIndex(dim)
	if k < 0 {
		return 0, &DimensionError{Dim: dim, Dims: a.dims}
	}
	return a.shape[k], nil
}

// Values returns the dense payload. The caller must not modify it.
func (a *Array) Values() []float64 { return a.values }

// Variances returns the variance payload, or nil.
func (a *Array) Variances() []float64 { return a.variances }

// HasVariances reports whether a variance payload is attached.
func (a *Array) HasVariances() bool { return a.variances != nil }

// SetVariances attaches a variance payload of the same length as Values.
func (a *Array) SetVariances(variances []float64) error {
	if a.IsBinned() {
		return fmt.Errorf("binned arrays carry per-event variances")
	}
	if len(variances) != len(a.values) {
		return &ShapeError{
			Dim:  fmt.Sprintf("%v", a.dims),
			Want: fmt.Sprintf("%d variances", len(a.values)),
			Got:  fmt.Sprintf("%d variances", len(variances)),
		}
	}
	a.variances = variances
	return nil
}

// Coord returns the named coordinate, or nil.
func (a *Array) Coord(name string) *Array { return a.coords[name] }

// Coords returns the coordinate map. The caller must not modify it.
func (a *Array) Coords() map[string]*Array { return a.coords }

// SetCoord attaches a coordinate. Every dimension of the coordinate must
// be a dimension of the data; along its own dimension (the one matching
// its name) the coordinate may be bin-edge shaped, extent one larger than
// the data extent.
func (a *Array) SetCoord(name string, coord *Array) error {
	for i, d := range coord.dims {
		k := a.dimIndex(d)
		if k < 0 {
			return &DimensionError{Dim: d, Dims: a.dims}
		}
		want := a.shape[k]
		got := coord.shape[i]
		if got == want {
			continue
		}
		if d == name && got == want+1 {
			continue // bin edges
		}
		return &ShapeError{
			Dim:  d,
			Want: fmt.Sprintf("%d or %d (edges)", want, want+1),
			Got:  fmt.Sprintf("%d", got),
		}
	}
	a.coords[name] = coord
	return nil
}

// IsEdges reports whether the named coordinate is bin-edge shaped along
// its own dimension.
func (a *Array) IsEdges(name string) bool {
	coord := a.coords[name]
	if coord == nil {
		return false
	}
	k := a.dimIndex(name)
	ck := coord.dimIndex(name)
	if k < 0 || ck < 0 {
		return false
	}
	return coord.shape[ck] == a.shape[k]+1
}

// Mask returns the named mask, or nil.
func (a *Array) Mask(name string) *Mask { return a.masks[name] }

// Masks returns the mask map. The caller must not modify it.
func (a *Array) Masks() map[string]*Mask { return a.masks }

// SetMask attaches a mask. Mask dimensions must be a subset of the data
// dimensions with matching extents.
func (a *Array) SetMask(name string, m *Mask) error {
	for i, d := range m.dims {
		k := a.dimIndex(d)
		if k < 0 {
			return &DimensionError{Dim: d, Dims: a.dims}
		}
		if m.shape[i] != a.shape[k] {
			return &ShapeError{
				Dim:  d,
				Want: fmt.Sprintf("%d", a.shape[k]),
				Got:  fmt.Sprintf("%d", m.shape[i]),
			}
		}
	}
	a.masks[name] = m
	return nil
}

// EventUnits returns the per-event coordinate units of a binned array.
func (a *Array) EventUnits() map[string]unit.Unit { return a.eventUnits }

func (a *Array) dimIndex(dim string) int {
	for i, d := range a.dims {
		if d == dim {
			return i
		}
	}
	return -1
}

// splitAt returns the element counts outside, at, and inside dimension
// index k, for row-major strided iteration.
func (a *Array) splitAt(k int) (outer, n, inner int) {
	return product(a.shape[:k]), a.shape[k], product(a.shape[k+1:])
}

func product(xs []int) int {
	p := 1
	for _, x := range xs {
		p *= x
	}
	return p
}
