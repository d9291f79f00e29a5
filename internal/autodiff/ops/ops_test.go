package ops_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/borngrad/internal/autodiff/ops"
	"github.com/born-ml/borngrad/internal/tensor"
)

func buf(t *testing.T, data []float64, shape ...int) *tensor.Buffer[float64] {
	t.Helper()
	b, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return b
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "pow", ops.Pow.String())
	assert.Equal(t, "relu", ops.ReLU.String())
	assert.Equal(t, "matmul", ops.MatMul.String())
	assert.Equal(t, "unary(42)", ops.UnaryKind(42).String())
	assert.Equal(t, "binary(-1)", ops.BinaryKind(-1).String())
}

func TestAddBackward(t *testing.T) {
	a := buf(t, []float64{1, 2, 3}, 3)
	b := buf(t, []float64{4, 5, 6}, 3)
	grad := buf(t, []float64{1, 1, 1}, 3)

	ga, gb, err := ops.AddBackward(grad, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, ga.Data())
	assert.Equal(t, []float64{1, 1, 1}, gb.Data())
}

func TestAddBackward_Broadcast(t *testing.T) {
	// [2,3] + [3]: the bias gradient is summed over rows.
	a := buf(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := buf(t, []float64{10, 20, 30}, 3)
	grad := buf(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	ga, gb, err := ops.AddBackward(grad, a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, ga.Shape())
	assert.Equal(t, tensor.Shape{3}, gb.Shape())
	assert.Equal(t, []float64{5, 7, 9}, gb.Data())
}

func TestSubBackward(t *testing.T) {
	a := buf(t, []float64{5, 7}, 2)
	b := tensor.Scalar[float64](1)
	grad := buf(t, []float64{1, 2}, 2)

	ga, gb, err := ops.SubBackward(grad, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, ga.Data())
	assert.True(t, gb.Shape().IsScalar())
	assert.Equal(t, []float64{-3}, gb.Data())
}

func TestMulBackward(t *testing.T) {
	a := buf(t, []float64{2, 3}, 2)
	b := buf(t, []float64{4, 5}, 2)
	grad := buf(t, []float64{1, 1}, 2)

	ga, gb, err := ops.MulBackward(grad, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, ga.Data())
	assert.Equal(t, []float64{2, 3}, gb.Data())
}

func TestDivBackward(t *testing.T) {
	a := buf(t, []float64{6}, 1)
	b := buf(t, []float64{2}, 1)
	grad := buf(t, []float64{1}, 1)

	ga, gb, err := ops.DivBackward(grad, a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, ga.Data()[0], 1e-12)
	assert.InDelta(t, -1.5, gb.Data()[0], 1e-12)
}

func TestDivBackward_ByZero(t *testing.T) {
	a := buf(t, []float64{1}, 1)
	b := buf(t, []float64{0}, 1)
	grad := buf(t, []float64{1}, 1)

	ga, _, err := ops.DivBackward(grad, a, b)
	require.NoError(t, err)
	assert.True(t, math.IsInf(ga.Data()[0], 1))
}

func TestMatMulBackward(t *testing.T) {
	a := buf(t, []float64{1, 2, 3, 4}, 2, 2)
	b := buf(t, []float64{5, 6, 7, 8}, 2, 2)
	grad := buf(t, []float64{1, 1, 1, 1}, 2, 2)

	ga, gb, err := ops.MatMulBackward(grad, a, b)
	require.NoError(t, err)
	// grad @ b^T: row sums of b.
	assert.Equal(t, []float64{11, 15, 11, 15}, ga.Data())
	// a^T @ grad: column sums of a.
	assert.Equal(t, []float64{4, 4, 6, 6}, gb.Data())
}

func TestMatMulBackward_NonSquare(t *testing.T) {
	a := buf(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)
	b := buf(t, []float64{1, 0, 0, 1, 1, 1}, 3, 2)
	grad := buf(t, []float64{1, 0, 0, 1}, 2, 2)

	ga, gb, err := ops.MatMulBackward(grad, a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, ga.Shape())
	assert.Equal(t, tensor.Shape{3, 2}, gb.Shape())
	assert.Equal(t, []float64{1, 0, 1, 0, 1, 1}, ga.Data())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, gb.Data())
}

func TestPow(t *testing.T) {
	x := buf(t, []float64{2, 3}, 2)

	assert.Equal(t, []float64{8, 27}, ops.PowForward(x, 3).Data())

	g, err := ops.PowBackward(buf(t, []float64{1, 1}, 2), x, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{12, 27}, g.Data(), 1e-12)
}

func TestMeanAndSum(t *testing.T) {
	x := buf(t, []float64{1, 2, 3, 4}, 2, 2)

	assert.Equal(t, []float64{2.5}, ops.MeanForward(x).Data())
	assert.Equal(t, []float64{10}, ops.SumForward(x).Data())

	g, err := ops.MeanBackward(tensor.Scalar[float64](1), x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, g.Shape())
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, g.Data())

	g, err = ops.SumBackward(tensor.Scalar[float64](2), x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, g.Data())

	_, err = ops.MeanBackward(x, x)
	assert.ErrorIs(t, err, tensor.ErrShape)
}

func TestNegBackward(t *testing.T) {
	g, err := ops.NegBackward(buf(t, []float64{1, -2}, 2), buf(t, []float64{0, 0}, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2}, g.Data())
}

func TestReLU(t *testing.T) {
	x := buf(t, []float64{-2, 0, 3}, 3)

	assert.Equal(t, []float64{0, 0, 3}, ops.ReLUForward(x).Data())

	g, err := ops.ReLUBackward(buf(t, []float64{5, 5, 5}, 3), x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 5}, g.Data())
}

func TestSigmoid(t *testing.T) {
	x := buf(t, []float64{0}, 1)

	assert.InDelta(t, 0.5, ops.SigmoidForward(x).Data()[0], 1e-12)

	g, err := ops.SigmoidBackward(buf(t, []float64{1}, 1), x)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, g.Data()[0], 1e-12)
}

func TestTanh(t *testing.T) {
	x := buf(t, []float64{0, 1}, 2)

	y := ops.TanhForward(x)
	assert.InDelta(t, math.Tanh(1), y.Data()[1], 1e-12)

	g, err := ops.TanhBackward(buf(t, []float64{1, 1}, 2), x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g.Data()[0], 1e-12)
	assert.InDelta(t, 1-math.Tanh(1)*math.Tanh(1), g.Data()[1], 1e-12)
}

func TestReshapeAndTransposeBackward(t *testing.T) {
	x := buf(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3)

	g, err := ops.ReshapeBackward(buf(t, []float64{1, 2, 3, 4, 5, 6}, 6), x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, g.Shape())

	g, err = ops.TransposeBackward(buf(t, []float64{1, 4, 2, 5, 3, 6}, 3, 2), x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, g.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, g.Data())
}
