package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// ReshapeBackward computes the input gradient for output = reshape(x).
// Reshape only reinterprets the layout, so the gradient is reshaped back.
func ReshapeBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	out, err := grad.Reshape(x.Shape())
	if err != nil {
		return nil, errors.Wrap(err, "reshape backward")
	}
	return out, nil
}
