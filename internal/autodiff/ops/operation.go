// Package ops defines the differentiable operators of the autodiff engine and
// their backward rules.
//
// Operators form two closed sets, UnaryKind and BinaryKind. Every operator
// has a backward function that takes the upstream gradient (shaped like the
// operator's output) and the saved operand data, and returns the gradient
// for each operand, already reduced to that operand's shape.
//
// Supported operations:
//   - Add: d(a+b)/da = 1, d(a+b)/db = 1
//   - Sub: d(a-b)/da = 1, d(a-b)/db = -1
//   - Mul: d(a*b)/da = b, d(a*b)/db = a
//   - Div: d(a/b)/da = 1/b, d(a/b)/db = -a/b²
//   - MatMul: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - Pow: d(a^e)/da = e*a^(e-1)
//   - Mean, Sum: gradient spread over every element
//   - Neg, Reshape, Transpose
//   - ReLU, Sigmoid, Tanh activations
//
// The functions here operate on plain buffers. Routing gradients through the
// graph is the autodiff package's job.
package ops

import "fmt"

// UnaryKind identifies a single-operand operator.
type UnaryKind int

// Single-operand operators.
const (
	Pow UnaryKind = iota
	Mean
	Sum
	Neg
	ReLU
	Sigmoid
	Tanh
	Reshape
	Transpose
)

// String returns the operator name.
func (k UnaryKind) String() string {
	switch k {
	case Pow:
		return "pow"
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	case Neg:
		return "neg"
	case ReLU:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case Reshape:
		return "reshape"
	case Transpose:
		return "transpose"
	default:
		return fmt.Sprintf("unary(%d)", int(k))
	}
}

// BinaryKind identifies a two-operand operator.
type BinaryKind int

// Two-operand operators.
const (
	Add BinaryKind = iota
	Sub
	Mul
	Div
	MatMul
)

// String returns the operator name.
func (k BinaryKind) String() string {
	switch k {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case MatMul:
		return "matmul"
	default:
		return fmt.Sprintf("binary(%d)", int(k))
	}
}
