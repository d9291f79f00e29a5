package ops

import "github.com/born-ml/borngrad/internal/tensor"

// SumForward reduces x to a rank-0 buffer holding the sum of its elements.
func SumForward[T tensor.Float](x *tensor.Buffer[T]) *tensor.Buffer[T] {
	return tensor.Scalar(x.Sum())
}

// SumBackward computes the input gradient for output = sum(x).
// d(sum)/dx_i = 1, so the upstream gradient is copied to every element.
func SumBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	return spread(grad, x.Shape(), 1, "sum")
}
