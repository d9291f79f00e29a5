package ops

import (
	"math"

	"github.com/born-ml/borngrad/internal/tensor"
)

// PowForward raises every element of x to the constant power e.
func PowForward[T tensor.Float](x *tensor.Buffer[T], e T) *tensor.Buffer[T] {
	return x.Pow(e)
}

// PowBackward computes the input gradient for output = x^e.
//
// Backward pass (power rule):
//   - d(x^e)/dx = e * x^(e-1)
//
// The exponent is a constant and receives no gradient.
func PowBackward[T tensor.Float](grad, x *tensor.Buffer[T], e T) (*tensor.Buffer[T], error) {
	local := x.Map(func(v T) T {
		return e * T(math.Pow(float64(v), float64(e-1)))
	})
	return mulReduce(grad, local, x.Shape(), "pow")
}
