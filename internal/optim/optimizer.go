// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers read the gradients that Backward stored on each parameter,
// rewrite the parameter values and clear the gradients on ZeroGrad.
//
// Example usage:
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01})
//
//	for epoch := range epochs {
//	    output, _ := model.Forward(input)
//	    loss, _ := mse.Forward(output, targets)
//
//	    _ = optimizer.ZeroGrad()
//	    _ = loss.Backward()
//	    _ = optimizer.Step()
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/nn"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter that has a gradient.
	// Parameters without a gradient are left unchanged.
	Step() error

	// ZeroGrad clears all parameter gradients. Gradients accumulate across
	// backward passes, so call it before each one.
	ZeroGrad() error

	// GetLR returns the current learning rate.
	GetLR() float64

	// SetLR updates the learning rate, e.g. for scheduling.
	SetLR(lr float64)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// update reads param's gradient and, if there is one, lets apply rewrite the
// parameter values in place before storing them back.
func update[T tensor.Float](param *nn.Parameter[T], apply func(data, grad []T)) error {
	grad, err := param.Grad()
	if err != nil {
		return errors.Wrapf(err, "optim: %s", param.Name())
	}
	if grad == nil {
		return nil
	}
	data, err := param.Data()
	if err != nil {
		return errors.Wrapf(err, "optim: %s", param.Name())
	}
	apply(data.Data(), grad.Data())
	return param.SetData(data)
}

func zeroGrad[T tensor.Float](params []*nn.Parameter[T]) error {
	for _, p := range params {
		if err := p.ZeroGrad(); err != nil {
			return err
		}
	}
	return nil
}
