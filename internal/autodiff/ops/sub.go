package ops

import "github.com/born-ml/borngrad/internal/tensor"

// SubBackward computes operand gradients for output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
func SubBackward[T tensor.Float](grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	if ga, err = reduceTo(grad, a.Shape(), "sub"); err != nil {
		return nil, nil, err
	}
	if gb, err = reduceTo(grad.Neg(), b.Shape(), "sub"); err != nil {
		return nil, nil, err
	}
	return ga, gb, nil
}
