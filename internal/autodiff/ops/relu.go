package ops

import "github.com/born-ml/borngrad/internal/tensor"

// ReLUForward applies max(0, x) element-wise.
//
// Negative inputs become zero; zero and positive inputs pass through, so
// ReLUForward(0) is 0.
func ReLUForward[T tensor.Float](x *tensor.Buffer[T]) *tensor.Buffer[T] {
	return x.Map(func(v T) T {
		if v < 0 {
			return 0
		}
		return v
	})
}

// ReLUBackward computes the input gradient for output = ReLU(x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
//
// The derivative at exactly zero is taken as 0.
func ReLUBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	mask := x.Map(func(v T) T {
		if v > 0 {
			return 1
		}
		return 0
	})
	return mulReduce(grad, mask, x.Shape(), "relu")
}
