// Package unit provides physical units and unit-bearing scalar values.
//
// Units are symbolic: a Unit is a set of base symbols with integer
// exponents ("m", "m/s", "us^2"). No unit system conversion is performed;
// two units are compatible only when their normalized forms are equal.
//
// The distinguished unit Counts marks count-like data. Resampling treats
// count-like arrays as sum-preserving and everything else as
// density-preserving, so IsCounts is part of this package's contract, not
// a display concern.
//
// All arithmetic on Scalar values is checked: adding or comparing values
// of incompatible units returns a *Error rather than silently mixing
// magnitudes.
package unit
