package autodiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

func TestTopoSort_VisitsSharedOperandOnce(t *testing.T) {
	x := FromScalar[float64](2).WithGrad().Shared()
	c := FromScalar[float64](5).Shared()

	a, err := x.Mul(x)
	require.NoError(t, err)
	b, err := a.Add(x)
	require.NoError(t, err)
	out, err := b.Mul(c)
	require.NoError(t, err)

	order := topoSort(out)
	require.Len(t, order, 4, "x, a, b, out; c does not require grad")
	assert.Same(t, x.c, order[0].c)
	assert.Same(t, out.c, order[len(order)-1].c)

	pos := make(map[*cell[float64]]int)
	for i, h := range order {
		pos[h.c] = i
	}
	assert.Less(t, pos[x.c], pos[a.c])
	assert.Less(t, pos[a.c], pos[b.c])
}

func TestBackward_UnknownRuleBecomesError(t *testing.T) {
	x := FromScalar[float64](1).WithGrad().Shared()
	bad := &Tensor[float64]{
		data:         tensor.Scalar[float64](1),
		requiresGrad: true,
		node:         &BinaryNode[float64]{Lhs: x.Clone(), Rhs: x.Clone(), Rule: ops.BinaryKind(99)},
	}

	err := bad.Shared().Backward()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary(99)")

	// The failed pass released every borrow and wrote nothing.
	assert.Zero(t, x.c.borrows)
	assert.Nil(t, x.c.tensor.grad)
}

func TestBackward_UnknownUnaryRule(t *testing.T) {
	x := FromScalar[float64](1).WithGrad().Shared()
	bad := &Tensor[float64]{
		data:         tensor.Scalar[float64](1),
		requiresGrad: true,
		node:         &UnaryNode[float64]{Operand: x.Clone(), Rule: UnaryRule[float64]{Kind: ops.UnaryKind(42)}},
	}

	err := bad.Shared().Backward()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unary(42)")
}
