// Package autodiff implements reverse-mode automatic differentiation over a
// dynamic computation graph.
//
// Every operator result records its provenance: a Node naming the operator
// and holding shared handles to its operands. The graph therefore exists only
// as links between tensors and is rebuilt on every forward pass.
//
// Architecture:
//   - Tensor: a numeric buffer plus gradient bookkeeping
//   - Handle: reference-counted, borrow-checked shared access to a Tensor
//   - Node: UnaryNode or BinaryNode provenance, a closed set
//   - Backward: topological walk from a scalar output, summing gradient
//     contributions per tensor and committing them to grad-requiring leaves
//
// Usage:
//
//	x := autodiff.FromScalar[float32](2).WithGrad().Shared()
//	y, _ := x.Mul(x) // y = x²
//
//	_ = y.Backward()
//	g, _ := x.Grad() // dy/dx = 2x = 4
//
// Handles are not safe for concurrent use. Borrow conflicts are detected at
// run time and reported as ErrBorrow.
package autodiff

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

var (
	// ErrShape reports incompatible shapes or a non-scalar backward output.
	ErrShape = tensor.ErrShape

	// ErrType reports a value whose element type does not match the tensor.
	ErrType = tensor.ErrType

	// ErrBorrow reports a borrow request that conflicts with an outstanding
	// borrow of the same tensor.
	ErrBorrow = errors.New("borrow error")
)
