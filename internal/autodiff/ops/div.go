package ops

import "github.com/born-ml/borngrad/internal/tensor"

// DivBackward computes operand gradients for output = a / b (element-wise).
//
// Backward pass (quotient rule):
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / b²
//
// Division by zero follows IEEE 754 and yields Inf or NaN gradients.
func DivBackward[T tensor.Float](grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	q, err := grad.Div(b)
	if err != nil {
		return nil, nil, err
	}
	if ga, err = reduceTo(q, a.Shape(), "div"); err != nil {
		return nil, nil, err
	}

	// -grad * a / b² computed as -(grad / b) * (a / b) to keep magnitudes sane.
	ab, err := a.Div(b)
	if err != nil {
		return nil, nil, err
	}
	if gb, err = mulReduce(q.Neg(), ab, b.Shape(), "div"); err != nil {
		return nil, nil, err
	}
	return ga, gb, nil
}
