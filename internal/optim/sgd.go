package optim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/nn"
	"github.com/born-ml/borngrad/internal/tensor"
)

// SGD implements Stochastic Gradient Descent optimizer with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[T tensor.Float] struct {
	params     []*nn.Parameter[T]
	lr         float64
	momentum   float64
	velocities map[*nn.Parameter[T]]*tensor.Buffer[T]
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[T tensor.Float](params []*nn.Parameter[T], config SGDConfig) *SGD[T] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[T]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[T]]*tensor.Buffer[T]),
	}
}

// Step performs a single optimization step.
func (s *SGD[T]) Step() error {
	lr, momentum := T(s.lr), T(s.momentum)

	for _, param := range s.params {
		var velocity []T
		if s.momentum != 0 {
			v, ok := s.velocities[param]
			if !ok {
				var err error
				if v, err = tensor.Zeros[T](param.Shape()); err != nil {
					return err
				}
				s.velocities[param] = v
			}
			velocity = v.Data()
		}

		err := update(param, func(data, grad []T) {
			for i := range data {
				g := grad[i]
				if velocity != nil {
					velocity[i] = momentum*velocity[i] + g
					g = velocity[i]
				}
				data[i] -= lr * g
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[T]) ZeroGrad() error {
	return zeroGrad(s.params)
}

// GetLR returns the current learning rate.
func (s *SGD[T]) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[T]) SetLR(lr float64) {
	s.lr = lr
}

// StateDict returns copies of the velocity buffers keyed "velocity.{i}",
// where i is the parameter index. Without momentum the map is empty.
func (s *SGD[T]) StateDict() map[string]*tensor.Buffer[T] {
	state := make(map[string]*tensor.Buffer[T])
	if s.momentum == 0 {
		return state
	}
	for i, param := range s.params {
		if v, ok := s.velocities[param]; ok {
			state[fmt.Sprintf("velocity.%d", i)] = v.Clone()
		}
	}
	return state
}

// LoadStateDict restores velocity buffers saved by StateDict.
// Parameters with no entry start from zero velocity.
func (s *SGD[T]) LoadStateDict(state map[string]*tensor.Buffer[T]) error {
	if s.momentum == 0 {
		return nil
	}

	velocities := make(map[*nn.Parameter[T]]*tensor.Buffer[T])
	for i, param := range s.params {
		v, ok := state[fmt.Sprintf("velocity.%d", i)]
		if !ok {
			continue
		}
		if !v.Shape().Equal(param.Shape()) {
			return errors.Wrapf(tensor.ErrShape, "velocity shape mismatch for parameter %d: expected %v, got %v",
				i, param.Shape(), v.Shape())
		}
		velocities[param] = v.Clone()
	}
	s.velocities = velocities
	return nil
}
