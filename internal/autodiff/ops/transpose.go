package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// TransposeBackward computes the input gradient for output = x^T.
// The transpose of a transpose is the identity, so the gradient is
// transposed back.
func TransposeBackward[T tensor.Float](grad, _ *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	out, err := grad.Transpose()
	if err != nil {
		return nil, errors.Wrap(err, "transpose backward")
	}
	return out, nil
}
