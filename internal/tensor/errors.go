package tensor

import "github.com/pkg/errors"

// Sentinel errors. Callers match them with errors.Is; the returned errors
// wrap them with the offending operation and shapes.
var (
	// ErrShape reports operand shapes that are incompatible with an operation.
	ErrShape = errors.New("shape error")

	// ErrType reports an element type that does not match the buffer's type.
	ErrType = errors.New("type error")
)
