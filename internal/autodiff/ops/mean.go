package ops

import "github.com/born-ml/borngrad/internal/tensor"

// MeanForward reduces x to a rank-0 buffer holding its arithmetic mean.
func MeanForward[T tensor.Float](x *tensor.Buffer[T]) *tensor.Buffer[T] {
	return tensor.Scalar(x.Mean())
}

// MeanBackward computes the input gradient for output = mean(x).
//
// Every element contributed 1/n of the output, so each receives
// outputGrad / n.
func MeanBackward[T tensor.Float](grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	return spread(grad, x.Shape(), 1/T(x.Len()), "mean")
}
