package autodiff

import (
	"context"
	"log/slog"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

// GradPolicy decides how a backward pass combines new gradients with the
// gradient a leaf already holds.
type GradPolicy int

const (
	// Accumulate adds new gradients to existing ones.
	Accumulate GradPolicy = iota
	// Overwrite replaces existing gradients.
	Overwrite
)

// String returns the policy name.
func (p GradPolicy) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "accumulate"
}

// BackwardConfig configures a backward pass.
type BackwardConfig struct {
	Policy GradPolicy
	Logger *slog.Logger // optional; receives one debug record per node
}

// DefaultBackwardConfig returns the configuration used by Backward.
func DefaultBackwardConfig() BackwardConfig {
	return BackwardConfig{Policy: Accumulate}
}

// Backward computes the gradient of h with respect to every leaf that
// requires grad and stores it on those leaves.
//
// h must be zero-dimensional; otherwise ErrShape is returned and nothing is
// modified. If h does not require grad, Backward does nothing.
func (h *Handle[T]) Backward() error {
	return h.BackwardWithConfig(DefaultBackwardConfig())
}

// BackwardWithConfig is Backward with an explicit configuration.
//
// The algorithm:
//  1. Depth-first walk from h over operands that require grad, giving a
//     topological order where every tensor appears after its operands
//  2. Seed h's gradient with ones and visit the order in reverse, applying
//     each node's backward rule and summing contributions per tensor
//  3. Exclusively borrow every grad-requiring leaf, then write the results
//
// If a leaf cannot be borrowed, no gradient is written and ErrBorrow is
// returned.
func (h *Handle[T]) BackwardWithConfig(cfg BackwardConfig) error {
	if !h.Shape().IsScalar() {
		return errors.Wrapf(ErrShape, "backward: gradient computation only supports scalar outputs, got shape %v", h.Shape())
	}
	if !h.RequiresGrad() {
		return nil
	}

	seed, err := h.Data()
	if err != nil {
		return errors.Wrap(err, "backward: output")
	}
	seed.Fill(1)

	order := topoSort(h)
	grads, err := propagate(order, seed, cfg.Logger)
	if err != nil {
		return err
	}
	return commit(order, grads, cfg.Policy)
}

// topoSort returns the tensors reachable from root through grad-requiring
// operands, each exactly once, operands before results.
func topoSort[T tensor.Float](root *Handle[T]) []*Handle[T] {
	visited := make(map[*cell[T]]bool)
	var order []*Handle[T]

	var visit func(h *Handle[T])
	visit = func(h *Handle[T]) {
		if visited[h.c] {
			return
		}
		visited[h.c] = true
		if node := h.c.tensor.node; node != nil {
			for _, operand := range node.Operands() {
				if operand.RequiresGrad() {
					visit(operand)
				}
			}
		}
		order = append(order, h)
	}
	visit(root)

	return order
}

// propagate walks order from the output back to the leaves and returns the
// summed gradient of every visited tensor.
func propagate[T tensor.Float](order []*Handle[T], seed *tensor.Buffer[T], logger *slog.Logger) (map[*cell[T]]*tensor.Buffer[T], error) {
	grads := make(map[*cell[T]]*tensor.Buffer[T], len(order))
	grads[order[len(order)-1].c] = seed

	for i := len(order) - 1; i >= 0; i-- {
		h := order[i]
		node := h.c.tensor.node
		grad := grads[h.c]
		if node == nil || grad == nil {
			continue
		}
		if logger != nil {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "backward",
				slog.String("op", node.String()),
				slog.Any("shape", h.Shape()))
		}

		local, err := applyRule(node, grad)
		if err != nil {
			return nil, err
		}
		for j, operand := range node.Operands() {
			if !operand.RequiresGrad() {
				continue
			}
			if err := accumulate(grads, operand.c, local[j]); err != nil {
				return nil, errors.Wrapf(err, "backward: %s", node)
			}
		}
	}
	return grads, nil
}

func accumulate[T tensor.Float](grads map[*cell[T]]*tensor.Buffer[T], c *cell[T], g *tensor.Buffer[T]) error {
	existing, ok := grads[c]
	if !ok {
		grads[c] = g
		return nil
	}
	return existing.AddInPlace(g)
}

// applyRule evaluates node's backward rule for the upstream gradient grad.
// Panics raised inside the numeric kernels are returned as errors.
func applyRule[T tensor.Float](node Node[T], grad *tensor.Buffer[T]) (local []*tensor.Buffer[T], err error) {
	var refs []*Ref[T]
	defer func() {
		for _, r := range refs {
			r.Release()
		}
	}()

	operands := node.Operands()
	data := make([]*tensor.Buffer[T], len(operands))
	for i, operand := range operands {
		r, err := operand.Borrow()
		if err != nil {
			return nil, errors.Wrapf(err, "backward: %s operand %d", node, i)
		}
		refs = append(refs, r)
		data[i] = r.Tensor().data
	}

	if caught := exceptions.TryCatch[error](func() {
		local, err = dispatch(node, grad, data)
	}); caught != nil {
		return nil, errors.Wrapf(caught, "backward: %s", node)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "backward: %s", node)
	}
	return local, nil
}

func dispatch[T tensor.Float](node Node[T], grad *tensor.Buffer[T], data []*tensor.Buffer[T]) ([]*tensor.Buffer[T], error) {
	switch n := node.(type) {
	case *UnaryNode[T]:
		g, err := unaryBackward(n.Rule, grad, data[0])
		if err != nil {
			return nil, err
		}
		return []*tensor.Buffer[T]{g}, nil

	case *BinaryNode[T]:
		ga, gb, err := binaryBackward(n.Rule, grad, data[0], data[1])
		if err != nil {
			return nil, err
		}
		return []*tensor.Buffer[T]{ga, gb}, nil

	default:
		exceptions.Panicf("backward: unknown node type %T", node)
		return nil, nil
	}
}

func unaryBackward[T tensor.Float](rule UnaryRule[T], grad, x *tensor.Buffer[T]) (*tensor.Buffer[T], error) {
	switch rule.Kind {
	case ops.Pow:
		return ops.PowBackward(grad, x, rule.Exponent)
	case ops.Mean:
		return ops.MeanBackward(grad, x)
	case ops.Sum:
		return ops.SumBackward(grad, x)
	case ops.Neg:
		return ops.NegBackward(grad, x)
	case ops.ReLU:
		return ops.ReLUBackward(grad, x)
	case ops.Sigmoid:
		return ops.SigmoidBackward(grad, x)
	case ops.Tanh:
		return ops.TanhBackward(grad, x)
	case ops.Reshape:
		return ops.ReshapeBackward(grad, x)
	case ops.Transpose:
		return ops.TransposeBackward(grad, x)
	default:
		exceptions.Panicf("backward: unknown unary operator %s", rule.Kind)
		return nil, nil
	}
}

func binaryBackward[T tensor.Float](kind ops.BinaryKind, grad, a, b *tensor.Buffer[T]) (ga, gb *tensor.Buffer[T], err error) {
	switch kind {
	case ops.Add:
		return ops.AddBackward(grad, a, b)
	case ops.Sub:
		return ops.SubBackward(grad, a, b)
	case ops.Mul:
		return ops.MulBackward(grad, a, b)
	case ops.Div:
		return ops.DivBackward(grad, a, b)
	case ops.MatMul:
		return ops.MatMulBackward(grad, a, b)
	default:
		exceptions.Panicf("backward: unknown binary operator %s", kind)
		return nil, nil, nil
	}
}

// commit stores gradients on the grad-requiring leaves of order. Every leaf
// is borrowed before any is written.
func commit[T tensor.Float](order []*Handle[T], grads map[*cell[T]]*tensor.Buffer[T], policy GradPolicy) error {
	var guards []*RefMut[T]
	defer func() {
		for _, g := range guards {
			g.Release()
		}
	}()

	for _, h := range order {
		if !h.IsLeaf() || !h.RequiresGrad() || grads[h.c] == nil {
			continue
		}
		w, err := h.BorrowMut()
		if err != nil {
			return errors.Wrap(err, "backward: leaf")
		}
		guards = append(guards, w)
	}

	for _, w := range guards {
		t := w.Tensor()
		g := grads[w.c]
		if policy == Accumulate && t.grad != nil {
			if err := t.grad.AddInPlace(g); err != nil {
				return errors.Wrap(err, "backward: accumulate")
			}
			continue
		}
		t.grad = g
	}
	return nil
}
