package ops

import "github.com/born-ml/borngrad/internal/tensor"

// MulBackward computes operand gradients for output = a * b (element-wise).
//
// Backward pass (product rule):
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
//
// When a and b are the same tensor the two contributions are routed to the
// same leaf and summed there, giving 2*a*outputGrad.
func MulBackward[T tensor.Float](grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	if ga, err = mulReduce(grad, b, a.Shape(), "mul"); err != nil {
		return nil, nil, err
	}
	if gb, err = mulReduce(grad, a, b.Shape(), "mul"); err != nil {
		return nil, nil, err
	}
	return ga, gb, nil
}
