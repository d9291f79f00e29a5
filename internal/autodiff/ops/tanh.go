package ops

import (
	"math"

	"github.com/born-ml/borngrad/internal/tensor"
)

// TanhForward applies the hyperbolic tangent element-wise.
func TanhForward[T tensor.Float](x *tensor.Buffer[T]) *tensor.Buffer[T] {
	return x.Map(func(v T) T { return T(math.Tanh(float64(v))) })
}

// TanhBackward computes the input gradient for output = tanh(x).
//
// Backward pass:
//   - d(tanh(x))/dx = 1 - tanh²(x)
func TanhBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	local := x.Map(func(v T) T {
		t := math.Tanh(float64(v))
		return T(1 - t*t)
	})
	return mulReduce(grad, local, x.Shape(), "tanh")
}
