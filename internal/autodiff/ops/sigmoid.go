package ops

import (
	"math"

	"github.com/born-ml/borngrad/internal/tensor"
)

// SigmoidForward applies σ(x) = 1 / (1 + exp(-x)) element-wise.
func SigmoidForward[T tensor.Float](x *tensor.Buffer[T]) *tensor.Buffer[T] {
	return x.Map(sigmoid[T])
}

// SigmoidBackward computes the input gradient for output = σ(x).
//
// Backward pass:
//   - d(σ(x))/dx = σ(x) * (1 - σ(x))
//
// σ(x) is recomputed from the saved input.
func SigmoidBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	local := x.Map(func(v T) T {
		s := sigmoid(v)
		return s * (1 - s)
	})
	return mulReduce(grad, local, x.Shape(), "sigmoid")
}

func sigmoid[T tensor.Float](v T) T {
	return T(1 / (1 + math.Exp(-float64(v))))
}
