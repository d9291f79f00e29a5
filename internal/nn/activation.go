package nn

import (
	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU[T tensor.Float] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[T tensor.Float]() *ReLU[T] {
	return &ReLU[T]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[T]) Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	return autodiff.Relu(input)
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[T]) Parameters() []*Parameter[T] {
	return nil
}

func (r *ReLU[T]) String() string { return "ReLU()" }

// Sigmoid is a sigmoid activation module.
//
// Applies the element-wise function: σ(x) = 1 / (1 + exp(-x))
// Output range: (0, 1).
type Sigmoid[T tensor.Float] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] {
	return &Sigmoid[T]{}
}

// Forward applies sigmoid activation.
func (s *Sigmoid[T]) Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	return autodiff.Sigmoid(input)
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid[T]) Parameters() []*Parameter[T] {
	return nil
}

func (s *Sigmoid[T]) String() string { return "Sigmoid()" }

// Tanh is a hyperbolic tangent activation module.
//
// Output range: (-1, 1).
type Tanh[T tensor.Float] struct{}

// NewTanh creates a new Tanh activation module.
func NewTanh[T tensor.Float]() *Tanh[T] {
	return &Tanh[T]{}
}

// Forward applies tanh activation.
func (t *Tanh[T]) Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	return autodiff.Tanh(input)
}

// Parameters returns nil (Tanh has no trainable parameters).
func (t *Tanh[T]) Parameters() []*Parameter[T] {
	return nil
}

func (t *Tanh[T]) String() string { return "Tanh()" }
