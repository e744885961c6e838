package array

import "math"

// Identical reports whether two dense arrays agree in dims, shape, unit,
// values, variances, coordinates and masks, with values compared within
// tol. Identity tokens are ignored.
func Identical(a, b *Array, tol float64) bool {
	if a.IsBinned() || b.IsBinned() {
		return false
	}
	if !sameStrings(a.dims, b.dims) || !sameInts(a.shape, b.shape) || !a.unit.Equal(b.unit) {
		return false
	}
	if !sameFloats(a.values, b.values, tol) {
		return false
	}
	if (a.variances == nil) != (b.variances == nil) {
		return false
	}
	if a.variances != nil && !sameFloats(a.variances, b.variances, tol) {
		return false
	}
	if len(a.coords) != len(b.coords) {
		return false
	}
	for name, ca := range a.coords {
		cb := b.coords[name]
		if cb == nil || !Identical(ca, cb, tol) {
			return false
		}
	}
	if len(a.masks) != len(b.masks) {
		return false
	}
	for name, ma := range a.masks {
		mb := b.masks[name]
		if mb == nil || !sameStrings(ma.dims, mb.dims) || !sameBools(ma.values, mb.values) {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameFloats(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func sameBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
