// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Operators on a Handle record which operator and operands produced their
// result. Backward on a scalar result walks those records in reverse and
// stores gradients on every leaf that requires them.
//
// Example:
//
//	import "github.com/born-ml/borngrad/autodiff"
//
//	func main() {
//	    a := autodiff.FromScalar[float64](2).WithGrad().Shared()
//	    b := autodiff.FromScalar[float64](3).WithGrad().Shared()
//
//	    c, _ := a.Mul(b)
//	    _ = c.Backward()
//
//	    ga, _ := a.Grad() // 3
//	    gb, _ := b.Grad() // 2
//	}
package autodiff

import (
	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Tensor is a numeric buffer plus gradient bookkeeping.
type Tensor[T tensor.Float] = autodiff.Tensor[T]

// Handle is a shared, borrow-checked reference to a Tensor.
type Handle[T tensor.Float] = autodiff.Handle[T]

// Ref is a shared borrow of a tensor.
type Ref[T tensor.Float] = autodiff.Ref[T]

// RefMut is an exclusive borrow of a tensor.
type RefMut[T tensor.Float] = autodiff.RefMut[T]

// Node is the provenance of an operator result.
type Node[T tensor.Float] = autodiff.Node[T]

// UnaryNode is the provenance of a single-operand operator.
type UnaryNode[T tensor.Float] = autodiff.UnaryNode[T]

// BinaryNode is the provenance of a two-operand operator.
type BinaryNode[T tensor.Float] = autodiff.BinaryNode[T]

// UnaryRule names a single-operand operator and its exponent, if any.
type UnaryRule[T tensor.Float] = autodiff.UnaryRule[T]

// UnaryKind identifies a single-operand operator.
type UnaryKind = ops.UnaryKind

// BinaryKind identifies a two-operand operator.
type BinaryKind = ops.BinaryKind

// Operator kinds.
const (
	OpPow       = ops.Pow
	OpMean      = ops.Mean
	OpSum       = ops.Sum
	OpNeg       = ops.Neg
	OpReLU      = ops.ReLU
	OpSigmoid   = ops.Sigmoid
	OpTanh      = ops.Tanh
	OpReshape   = ops.Reshape
	OpTranspose = ops.Transpose

	OpAdd    = ops.Add
	OpSub    = ops.Sub
	OpMul    = ops.Mul
	OpDiv    = ops.Div
	OpMatMul = ops.MatMul
)

// GradPolicy decides how a backward pass combines gradients with existing
// ones.
type GradPolicy = autodiff.GradPolicy

// Gradient policies.
const (
	Accumulate = autodiff.Accumulate
	Overwrite  = autodiff.Overwrite
)

// BackwardConfig configures a backward pass.
type BackwardConfig = autodiff.BackwardConfig

// Sentinel errors, matched with errors.Is.
var (
	ErrShape  = autodiff.ErrShape
	ErrType   = autodiff.ErrType
	ErrBorrow = autodiff.ErrBorrow
)

// DefaultBackwardConfig returns the configuration used by Handle.Backward.
func DefaultBackwardConfig() BackwardConfig {
	return autodiff.DefaultBackwardConfig()
}

// New creates a leaf tensor over data.
func New[T tensor.Float](data *tensor.Buffer[T]) *Tensor[T] {
	return autodiff.New(data)
}

// FromBuffer creates a leaf tensor over data, rejecting nil.
func FromBuffer[T tensor.Float](data *tensor.Buffer[T]) (*Tensor[T], error) {
	return autodiff.FromBuffer(data)
}

// FromScalar creates a zero-dimensional leaf tensor.
func FromScalar[T tensor.Float](v T) *Tensor[T] {
	return autodiff.FromScalar(v)
}

// FromSlice creates a one-dimensional leaf tensor.
func FromSlice[T tensor.Float](values []T) (*Tensor[T], error) {
	return autodiff.FromSlice(values)
}

// FromNested creates a two-dimensional leaf tensor.
func FromNested[T tensor.Float](rows [][]T) (*Tensor[T], error) {
	return autodiff.FromNested(rows)
}

// FromValue creates a leaf tensor from T, []T, [][]T or [][][]T.
func FromValue[T tensor.Float](value any) (*Tensor[T], error) {
	return autodiff.FromValue[T](value)
}

// Relu applies max(0, x) element-wise.
func Relu[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return autodiff.Relu(h)
}

// Sigmoid applies the logistic function element-wise.
func Sigmoid[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return autodiff.Sigmoid(h)
}

// Tanh applies the hyperbolic tangent element-wise.
func Tanh[T tensor.Float](h *Handle[T]) (*Handle[T], error) {
	return autodiff.Tanh(h)
}
