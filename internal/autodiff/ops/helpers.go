package ops

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// reduceTo sums grad over the dimensions that were broadcast when operand
// of shape target took part in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceTo[T tensor.Float](grad *tensor.Buffer[T], target tensor.Shape, op string) (*tensor.Buffer[T], error) {
	out, err := grad.SumTo(target)
	if err != nil {
		return nil, errors.Wrapf(err, "%s backward", op)
	}
	return out, nil
}

// mulReduce computes grad * factor and reduces the result to target.
func mulReduce[T tensor.Float](grad, factor *tensor.Buffer[T], target tensor.Shape, op string) (*tensor.Buffer[T], error) {
	prod, err := grad.Mul(factor)
	if err != nil {
		return nil, errors.Wrapf(err, "%s backward", op)
	}
	return reduceTo(prod, target, op)
}

// spread broadcasts a scalar gradient over shape, scaled by factor.
func spread[T tensor.Float](grad *tensor.Buffer[T], shape tensor.Shape, factor T, op string) (*tensor.Buffer[T], error) {
	g, err := grad.Item()
	if err != nil {
		return nil, errors.Wrapf(err, "%s backward", op)
	}
	out, err := tensor.Full(shape, g*factor)
	if err != nil {
		return nil, errors.Wrapf(err, "%s backward", op)
	}
	return out, nil
}
