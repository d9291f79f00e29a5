package autodiff

import (
	"fmt"

	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Node records how an operator result was produced.
//
// The set of nodes is closed: every Node is either a *UnaryNode or a
// *BinaryNode.
type Node[T tensor.Float] interface {
	// Operands returns the handles the node captured, in operand order.
	Operands() []*Handle[T]
	String() string
	sealed()
}

// UnaryRule names a single-operand operator. Exponent is only meaningful
// for ops.Pow.
type UnaryRule[T tensor.Float] struct {
	Kind     ops.UnaryKind
	Exponent T
}

func (r UnaryRule[T]) String() string {
	if r.Kind == ops.Pow {
		return fmt.Sprintf("pow(%v)", r.Exponent)
	}
	return r.Kind.String()
}

// UnaryNode is the provenance of a single-operand operator result.
type UnaryNode[T tensor.Float] struct {
	Operand *Handle[T]
	Rule    UnaryRule[T]
}

// Operands returns the single operand.
func (n *UnaryNode[T]) Operands() []*Handle[T] { return []*Handle[T]{n.Operand} }

func (n *UnaryNode[T]) String() string { return n.Rule.String() }

func (*UnaryNode[T]) sealed() {}

// BinaryNode is the provenance of a two-operand operator result.
type BinaryNode[T tensor.Float] struct {
	Lhs  *Handle[T]
	Rhs  *Handle[T]
	Rule ops.BinaryKind
}

// Operands returns the left and right operands.
func (n *BinaryNode[T]) Operands() []*Handle[T] { return []*Handle[T]{n.Lhs, n.Rhs} }

func (n *BinaryNode[T]) String() string { return n.Rule.String() }

func (*BinaryNode[T]) sealed() {}
