package array

import (
	"errors"
	"fmt"
)

// ShapeError reports a dimension-size mismatch between related entities,
// such as an edge array whose extent does not equal data extent plus one.
type ShapeError struct {
	// Dim is the dimension at which the mismatch was detected.
	Dim string

	// Want and Got describe the expected and actual extents or shapes.
	Want string
	Got  string

	// Message adds context when extents alone do not explain the failure.
	Message string
}

func (e *ShapeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("shape mismatch along %q: %s", e.Dim, e.Message)
	}
	return fmt.Sprintf("shape mismatch along %q: want %s, got %s", e.Dim, e.Want, e.Got)
}

// DimensionError reports a dimension that is absent from an array or its
// coordinates.
type DimensionError struct {
	Dim  string
	Dims []string
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension %q not found in %v", e.Dim, e.Dims)
}

// EmptyRangeError reports a requested bound that resolves to zero source
// elements.
type EmptyRangeError struct {
	Dim     string
	Message string
}

func (e *EmptyRangeError) Error() string {
	return fmt.Sprintf("empty range along %q: %s", e.Dim, e.Message)
}

// IsShapeError reports whether err is (or wraps) a *ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// IsDimensionError reports whether err is (or wraps) a *DimensionError.
func IsDimensionError(err error) bool {
	var de *DimensionError
	return errors.As(err, &de)
}

// IsEmptyRangeError reports whether err is (or wraps) a *EmptyRangeError.
func IsEmptyRangeError(err error) bool {
	var ee *EmptyRangeError
	return errors.As(err, &ee)
}
