package resample

import "github.com/binview/binview/array"

// CombineMasks computes the union of all masks applicable to the target
// dimension set: every mask whose dimensions are a subset of dims is
// broadcast to the target shape, replicating along the dimensions it
// lacks, and the results are reduced with logical OR. Dimension ordering
// follows the data (dims/shape), not the masks.
//
// Scalar (zero-dimensional) masks are excluded: they mean "discard the
// entire array" and are the caller's concern. Returns nil when no mask
// qualifies.
func CombineMasks(masks map[string]*array.Mask, dims []string, shape []int) *array.Mask {
	total := 1
	for _, s := range shape {
		total *= s
	}

	var out []bool
	for _, m := range masks {
		if m.IsScalar() || !subsetOf(m.Dims(), dims) {
			continue
		}
		if out == nil {
			out = make([]bool, total)
		}
		orBroadcast(out, m, dims, shape)
	}
	if out == nil {
		return nil
	}
	combined, err := array.NewMask(dims, shape, out)
	if err != nil {
		panic(err) // shape is consistent by construction
	}
	return combined
}

func subsetOf(sub, super []string) bool {
	for _, d := range sub {
		if dimPos(super, d) < 0 {
			return false
		}
	}
	return true
}

// orBroadcast ORs mask m, broadcast to the target dims/shape, into dst.
func orBroadcast(dst []bool, m *array.Mask, dims []string, shape []int) {
	mdims := m.Dims()
	mshape := m.Shape()

	// Row-major strides of the mask.
	mstrides := make([]int, len(mshape))
	stride := 1
	for i := len(mshape) - 1; i >= 0; i-- {
		mstrides[i] = stride
		stride *= mshape[i]
	}

	// Per-target-dim contribution to the mask's flat index; zero for
	// dimensions the mask lacks (replication).
	contrib := make([]int, len(dims))
	for i, d := range dims {
		if j := dimPos(mdims, d); j >= 0 {
			contrib[i] = mstrides[j]
		}
	}

	values := m.Values()
	idx := make([]int, len(dims))
	for flat := range dst {
		mflat := 0
		for i := range dims {
			mflat += idx[i] * contrib[i]
		}
		dst[flat] = dst[flat] || values[mflat]

		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < shape[i] {
				break
			}
			idx[i] = 0
		}
	}
}
