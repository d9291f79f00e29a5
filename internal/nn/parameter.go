package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Parameter is a named, grad-requiring leaf tensor.
//
// Example:
//
//	weight, _ := nn.NewParameter("weight", buf)
//	w := weight.Handle()      // use in forward passes
//	g, _ := weight.Grad()     // read after Backward
type Parameter[T tensor.Float] struct {
	name   string
	handle *autodiff.Handle[T]
}

// NewParameter creates a trainable parameter over data.
func NewParameter[T tensor.Float](name string, data *tensor.Buffer[T]) (*Parameter[T], error) {
	t, err := autodiff.FromBuffer(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parameter %q", name)
	}
	return &Parameter[T]{name: name, handle: t.WithGrad().Shared()}, nil
}

// Name returns the parameter name.
func (p *Parameter[T]) Name() string {
	return p.name
}

// Handle returns the shared handle to the parameter tensor.
func (p *Parameter[T]) Handle() *autodiff.Handle[T] {
	return p.handle
}

// Shape returns the parameter's shape.
func (p *Parameter[T]) Shape() tensor.Shape {
	return p.handle.Shape()
}

// Data returns a copy of the parameter values.
func (p *Parameter[T]) Data() (*tensor.Buffer[T], error) {
	return p.handle.Data()
}

// SetData replaces the parameter values.
func (p *Parameter[T]) SetData(data *tensor.Buffer[T]) error {
	return errors.Wrapf(p.handle.SetData(data), "parameter %q", p.name)
}

// Grad returns a copy of the accumulated gradient, or nil before the first
// backward pass.
func (p *Parameter[T]) Grad() (*tensor.Buffer[T], error) {
	return p.handle.Grad()
}

// ZeroGrad clears the gradient.
//
// Gradients accumulate across backward passes, so this should be called
// before each training iteration.
func (p *Parameter[T]) ZeroGrad() error {
	return errors.Wrapf(p.handle.ZeroGrad(), "parameter %q", p.name)
}
