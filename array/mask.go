package array

import "fmt"

// Mask is a boolean array over a subset of a data array's dimensions.
// True marks invalid data.
type Mask struct {
	dims   []string
	shape  []int
	values []bool
}

// NewMask creates a mask. len(values) must equal the product of shape.
// A zero-dimensional mask (no dims, one value) is legal and means
// "discard the entire array"; it is never folded into per-cell masks.
func NewMask(dims []string, shape []int, values []bool) (*Mask, error) {
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
	return &Mask{
		dims:   append([]string(nil), dims...),
		shape:  append([]int(nil), shape...),
		values: values,
	}, nil
}

// Dims returns the mask's dimension names.
func (m *Mask) Dims() []string { return append([]string(nil), m.dims...) }

// Shape returns the mask's extents.
func (m *Mask) Shape() []int { return append([]int(nil), m.shape...) }

// Values returns the boolean payload. The caller must not modify it.
func (m *Mask) Values() []bool { return m.values }

// IsScalar reports whether the mask is zero-dimensional.
func (m *Mask) IsScalar() bool { return len(m.dims) == 0 }

// HasDim reports whether dim is one of the mask's dimensions.
func (m *Mask) HasDim(dim string) bool {
	return m.dimIndex(dim) >= 0
}

func (m *Mask) dimIndex(dim string) int {
	for i, d := range m.dims {
		if d == dim {
			return i
		}
	}
	return -1
}

func (m *Mask) splitAt(k int) (outer, n, inner int) {
	return product(m.shape[:k]), m.shape[k], product(m.shape[k+1:])
}

// slice selects index i along dim, dropping the dimension.
func (m *Mask) slice(dim string, i int) *Mask {
	k := m.dimIndex(dim)
	if k < 0 {
		return m
	}
	outer, n, inner := m.splitAt(k)
	out := make([]bool, outer*inner)
	for o := 0; o < outer; o++ {
		copy(out[o*inner:(o+1)*inner], m.values[(o*n+i)*inner:(o*n+i+1)*inner])
	}
	dims := append(append([]string(nil), m.dims[:k]...), m.dims[k+1:]...)
	shape := append(append([]int(nil), m.shape[:k]...), m.shape[k+1:]...)
	return &Mask{dims: dims, shape: shape, values: out}
}

// sliceRange selects the half-open index window [lo, hi) along dim,
// keeping the dimension.
func (m *Mask) sliceRange(dim string, lo, hi int) *Mask {
	k := m.dimIndex(dim)
	if k < 0 {
		return m
	}
	outer, n, inner := m.splitAt(k)
	w := hi - lo
	out := make([]bool, outer*w*inner)
	for o := 0; o < outer; o++ {
		copy(out[o*w*inner:(o+1)*w*inner], m.values[(o*n+lo)*inner:(o*n+hi)*inner])
	}
	dims := append([]string(nil), m.dims...)
	shape := append([]int(nil), m.shape...)
	shape[k] = w
	return &Mask{dims: dims, shape: shape, values: out}
}
