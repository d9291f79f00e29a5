// Package nn implements neural network modules on top of the autodiff engine.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSE
//   - Sequential: Container for stacking layers
//
// Modules only use the public operators of the autodiff package, so every
// forward pass records the graph that Backward later walks.
package nn

import (
	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	l1, _ := nn.NewLinear[float32](2, 8, rng)
//	l2, _ := nn.NewLinear[float32](8, 1, rng)
//	model := nn.NewSequential[float32](l1, nn.NewTanh[float32](), l2)
type Module[T tensor.Float] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error)

	// Parameters returns all trainable parameters of this module, including
	// those of nested modules. Modules without parameters return nil.
	Parameters() []*Parameter[T]
}
