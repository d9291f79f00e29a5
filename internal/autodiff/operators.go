package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

type binaryForward[T tensor.Float] func(a, b *tensor.Buffer[T]) (*tensor.Buffer[T], error)

type unaryForward[T tensor.Float] func(a *tensor.Buffer[T]) (*tensor.Buffer[T], error)

// binary runs forward on the operands' data and records provenance when
// either operand requires grad.
func binary[T tensor.Float](a, b *Handle[T], kind ops.BinaryKind, forward binaryForward[T]) (*Handle[T], error) {
	ra, err := a.Borrow()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: lhs", kind)
	}
	defer ra.Release()
	rb, err := b.Borrow()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: rhs", kind)
	}
	defer rb.Release()

	out, err := forward(ra.Tensor().data, rb.Tensor().data)
	if err != nil {
		return nil, err
	}

	result := New(out)
	if ra.Tensor().requiresGrad || rb.Tensor().requiresGrad {
		result.requiresGrad = true
		result.node = &BinaryNode[T]{Lhs: a.Clone(), Rhs: b.Clone(), Rule: kind}
	}
	return result.Shared(), nil
}

func unary[T tensor.Float](a *Handle[T], rule UnaryRule[T], forward unaryForward[T]) (*Handle[T], error) {
	ra, err := a.Borrow()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", rule)
	}
	defer ra.Release()

	out, err := forward(ra.Tensor().data)
	if err != nil {
		return nil, err
	}

	result := New(out)
	if ra.Tensor().requiresGrad {
		result.requiresGrad = true
		result.node = &UnaryNode[T]{Operand: a.Clone(), Rule: rule}
	}
	return result.Shared(), nil
}

func infallible[T tensor.Float](f func(*tensor.Buffer[T]) *tensor.Buffer[T]) unaryForward[T] {
	return func(a *tensor.Buffer[T]) (*tensor.Buffer[T], error) { return f(a), nil }
}

// Add returns h + other element-wise, broadcasting as needed.
func (h *Handle[T]) Add(other *Handle[T]) (*Handle[T], error) {
	return binary(h, other, ops.Add, (*tensor.Buffer[T]).Add)
}

// Sub returns h - other element-wise, broadcasting as needed.
func (h *Handle[T]) Sub(other *Handle[T]) (*Handle[T], error) {
	return binary(h, other, ops.Sub, (*tensor.Buffer[T]).Sub)
}

// Mul returns h * other element-wise, broadcasting as needed.
func (h *Handle[T]) Mul(other *Handle[T]) (*Handle[T], error) {
	return binary(h, other, ops.Mul, (*tensor.Buffer[T]).Mul)
}

// Div returns h / other element-wise, broadcasting as needed.
func (h *Handle[T]) Div(other *Handle[T]) (*Handle[T], error) {
	return binary(h, other, ops.Div, (*tensor.Buffer[T]).Div)
}

// Dot returns the matrix product of two 2-D tensors.
func (h *Handle[T]) Dot(other *Handle[T]) (*Handle[T], error) {
	return binary(h, other, ops.MatMul, (*tensor.Buffer[T]).MatMul)
}

// Pow raises every element to the constant power e.
func (h *Handle[T]) Pow(e T) (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Pow, Exponent: e}, func(a *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
		return ops.PowForward(a, e), nil
	})
}

// Mean returns the arithmetic mean of all elements as a zero-dimensional
// tensor.
func (h *Handle[T]) Mean() (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Mean}, infallible(ops.MeanForward[T]))
}

// Sum returns the sum of all elements as a zero-dimensional tensor.
func (h *Handle[T]) Sum() (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Sum}, infallible(ops.SumForward[T]))
}

// Neg returns -h.
func (h *Handle[T]) Neg() (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Neg}, infallible((*tensor.Buffer[T]).Neg))
}

// Reshape returns a tensor with the same elements laid out in dims.
func (h *Handle[T]) Reshape(dims ...int) (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Reshape}, func(a *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
		return a.Reshape(tensor.Shape(dims))
	})
}

// Transpose swaps the two dimensions of a 2-D tensor.
func (h *Handle[T]) Transpose() (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Transpose}, (*tensor.Buffer[T]).Transpose)
}

// Relu applies max(0, x) element-wise.
func Relu[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.ReLU}, infallible(ops.ReLUForward[T]))
}

// Sigmoid applies 1 / (1 + exp(-x)) element-wise.
func Sigmoid[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Sigmoid}, infallible(ops.SigmoidForward[T]))
}

// Tanh applies the hyperbolic tangent element-wise.
func Tanh[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return unary(h, UnaryRule[T]{Kind: ops.Tanh}, infallible(ops.TanhForward[T]))
}

// Detach returns a new leaf holding a copy of the tensor's values with no
// gradient tracking.
func (h *Handle[T]) Detach() (*Handle[T], error) {
	data, err := h.Data()
	if err != nil {
		return nil, err
	}
	return New(data).Shared(), nil
}
