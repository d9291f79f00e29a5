package ops

import "github.com/born-ml/borngrad/internal/tensor"

// AddBackward computes operand gradients for output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If a or b was broadcast in the forward pass, its gradient is summed along
// the broadcast dimensions to match its shape.
func AddBackward[T tensor.Float](grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	if ga, err = reduceTo(grad, a.Shape(), "add"); err != nil {
		return nil, nil, err
	}
	if gb, err = reduceTo(grad, b.Shape(), "add"); err != nil {
		return nil, nil, err
	}
	return ga, gb, nil
}
