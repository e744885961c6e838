package unit

import "fmt"

// Scalar is a unit-bearing numeric value.
type Scalar struct {
	Value float64
	Unit  Unit
}

// NewScalar builds a scalar from a value and unit.
func NewScalar(v float64, u Unit) Scalar {
	return Scalar{Value: v, Unit: u}
}

// String renders "3.5 m" or just the value for dimensionless scalars.
func (s Scalar) String() string {
	if s.Unit.IsDimensionless() {
		return fmt.Sprintf("%g", s.Value)
	}
	return fmt.Sprintf("%g %s", s.Value, s.Unit)
}

// Add returns s + t, requiring identical units.
func (s Scalar) Add(t Scalar) (Scalar, error) {
	if !s.Unit.Compatible(t.Unit) {
		return Scalar{}, mismatch("add", s.Unit, t.Unit)
	}
	return Scalar{Value: s.Value + t.Value, Unit: s.Unit}, nil
}

// Sub returns s - t, requiring identical units.
func (s Scalar) Sub(t Scalar) (Scalar, error) {
	if !s.Unit.Compatible(t.Unit) {
		return Scalar{}, mismatch("sub", s.Unit, t.Unit)
	}
	return Scalar{Value: s.Value - t.Value, Unit: s.Unit}, nil
}

// Mul returns s * t with the product unit.
func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar{Value: s.Value * t.Value, Unit: s.Unit.Mul(t.Unit)}
}

// Div returns s / t with the quotient unit.
func (s Scalar) Div(t Scalar) Scalar {
	return Scalar{Value: s.Value / t.Value, Unit: s.Unit.Div(t.Unit)}
}

// Less reports s < t, requiring identical units.
func (s Scalar) Less(t Scalar) (bool, error) {
	if !s.Unit.Compatible(t.Unit) {
		return false, mismatch("compare", s.Unit, t.Unit)
	}
	return s.Value < t.Value, nil
}

// Compare returns -1, 0 or +1 ordering s against t, requiring identical
// units.
func (s Scalar) Compare(t Scalar) (int, error) {
	if !s.Unit.Compatible(t.Unit) {
		return 0, mismatch("compare", s.Unit, t.Unit)
	}
	switch {
	case s.Value < t.Value:
		return -1, nil
	case s.Value > t.Value:
		return 1, nil
	}
	return 0, nil
}
