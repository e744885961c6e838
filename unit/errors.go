package unit

import (
	"errors"
	"fmt"
)

// Error reports an invalid unit operation, such as adding meters to
// seconds or parsing a malformed unit expression.
type Error struct {
	// Op names the failing operation ("add", "compare", "parse", ...).
	Op string

	// Left and Right are the operand units, when the failure involves two.
	Left  Unit
	Right Unit

	// Message overrides the default rendering for parse failures.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unit %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("unit %s: incompatible units %s and %s", e.Op, e.Left, e.Right)
}

// IsUnitError reports whether err is (or wraps) a *Error.
func IsUnitError(err error) bool {
	var ue *Error
	return errors.As(err, &ue)
}

func mismatch(op string, left, right Unit) *Error {
	return &Error{Op: op, Left: left, Right: right}
}
