package ops

import "github.com/born-ml/borngrad/internal/tensor"

// NegBackward computes the input gradient for output = -x.
func NegBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	return reduceTo(grad.Neg(), x.Shape(), "neg")
}
