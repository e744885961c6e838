package resample

import (
	"fmt"

	"github.com/binview/binview/unit"
)

// BoundKind discriminates the per-dimension request variants.
type BoundKind int

const (
	// BoundFull requests the full coordinate range at the configured
	// resolution.
	BoundFull BoundKind = iota

	// BoundIndex selects a single index and drops the dimension.
	BoundIndex

	// BoundWindow selects a half-open index range, keeping the dimension
	// without resampling.
	BoundWindow

	// BoundValues requests resampling over an explicit physical value
	// range at the configured resolution.
	BoundValues
)

func (k BoundKind) String() string {
	switch k {
	case BoundFull:
		return "full"
	case BoundIndex:
		return "index"
	case BoundWindow:
		return "window"
	case BoundValues:
		return "values"
	}
	return fmt.Sprintf("BoundKind(%d)", int(k))
}

// Bound is one dimension's request. Use the constructors; the zero value
// is FullRange.
type Bound struct {
	kind  BoundKind
	index int
	lo    int
	hi    int
	low   unit.Scalar
	high  unit.Scalar
}

// FullRange requests the full coordinate range.
func FullRange() Bound {
	return Bound{kind: BoundFull}
}

// AtIndex selects index i, dropping the dimension from the result.
func AtIndex(i int) Bound {
	return Bound{kind: BoundIndex, index: i}
}

// IndexWindow selects the half-open index range [lo, hi), keeping the
// dimension without resampling.
func IndexWindow(lo, hi int) Bound {
	return Bound{kind: BoundWindow, lo: lo, hi: hi}
}

// ValueRange requests resampling over the physical range between low and
// high. Order is normalized to the coordinate's ordering when the plan is
// resolved; an inverted pair is not an error.
func ValueRange(low, high unit.Scalar) Bound {
	return Bound{kind: BoundValues, low: low, high: high}
}

// Kind returns the request variant.
func (b Bound) Kind() BoundKind { return b.kind }

// Index returns the selected index of a BoundIndex request.
func (b Bound) Index() int { return b.index }

// Window returns the index range of a BoundWindow request.
func (b Bound) Window() (lo, hi int) { return b.lo, b.hi }

// Values returns the physical range of a BoundValues request.
func (b Bound) Values() (low, high unit.Scalar) { return b.low, b.high }

func (b Bound) String() string {
	switch b.kind {
	case BoundFull:
		return "full"
	case BoundIndex:
		return fmt.Sprintf("index %d", b.index)
	case BoundWindow:
		return fmt.Sprintf("window [%d, %d)", b.lo, b.hi)
	case BoundValues:
		return fmt.Sprintf("values [%s, %s]", b.low, b.high)
	}
	return "invalid"
}
