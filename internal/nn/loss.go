package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// The result is a zero-dimensional tensor, ready for Backward.
type MSELoss[T tensor.Float] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[T tensor.Float]() *MSELoss[T] {
	return &MSELoss[T]{}
}

// Forward computes the MSE loss. predictions and targets must have the same
// shape.
func (m *MSELoss[T]) Forward(predictions, targets *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	if !predictions.Shape().Equal(targets.Shape()) {
		return nil, errors.Wrapf(tensor.ErrShape, "mse: predictions %v and targets %v differ", predictions.Shape(), targets.Shape())
	}

	diff, err := predictions.Sub(targets)
	if err != nil {
		return nil, errors.Wrap(err, "mse")
	}
	defer diff.Release()
	// diff*diff reaches diff twice; the backward pass sums both paths.
	squared, err := diff.Mul(diff)
	if err != nil {
		return nil, errors.Wrap(err, "mse")
	}
	defer squared.Release()
	return squared.Mean()
}
