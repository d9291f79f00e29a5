package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

func TestHandleClone(t *testing.T) {
	h := autodiff.FromScalar[float64](1).Shared()
	assert.Equal(t, 1, h.RefCount())

	c := h.Clone()
	assert.Equal(t, 2, h.RefCount())
	assert.True(t, h.Same(c))
	assert.False(t, h.Same(autodiff.FromScalar[float64](1).Shared()))

	// Writes through one holder are visible through the other.
	require.NoError(t, c.SetData(tensor.Scalar[float64](5)))
	v, err := h.Item()
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	c.Release()
	assert.Equal(t, 1, h.RefCount())
}

func TestHandleBorrowRules(t *testing.T) {
	h := autodiff.FromScalar[float32](1).Shared()

	r1, err := h.Borrow()
	require.NoError(t, err)
	r2, err := h.Borrow()
	require.NoError(t, err)

	_, err = h.BorrowMut()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)

	r1.Release()
	r2.Release()
	r2.Release()

	w, err := h.BorrowMut()
	require.NoError(t, err)

	_, err = h.Borrow()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	_, err = h.BorrowMut()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	_, err = h.Grad()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)

	w.Release()
	_, err = h.Borrow()
	assert.NoError(t, err)
}

func TestHandleSetData(t *testing.T) {
	x, err := autodiff.FromSlice([]float64{1, 2})
	require.NoError(t, err)
	h := x.Shared()

	err = h.SetData(tensor.Scalar[float64](1))
	assert.ErrorIs(t, err, autodiff.ErrShape)

	src, err := tensor.FromSlice([]float64{3, 4}, tensor.Shape{2})
	require.NoError(t, err)
	require.NoError(t, h.SetData(src))

	// The handle owns a copy.
	src.Data()[0] = 9
	data, err := h.Data()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, data.Data())
}

func TestOperatorBorrowConflict(t *testing.T) {
	a := autodiff.FromScalar[float64](2).WithGrad().Shared()
	b := autodiff.FromScalar[float64](3).Shared()

	w, err := a.BorrowMut()
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	_, err = b.Mul(a)
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	_, err = autodiff.Relu(a)
	assert.ErrorIs(t, err, autodiff.ErrBorrow)

	w.Release()
	_, err = a.Add(b)
	assert.NoError(t, err)
}

func TestDetach(t *testing.T) {
	x := autodiff.FromScalar[float64](2).WithGrad().Shared()
	y, err := x.Mul(x)
	require.NoError(t, err)

	d, err := y.Detach()
	require.NoError(t, err)
	assert.True(t, d.IsLeaf())
	assert.False(t, d.RequiresGrad())
	v, err := d.Item()
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}

func TestHandleRelease_DropsGraphHolders(t *testing.T) {
	x := autodiff.FromScalar[float64](3).WithGrad().Shared()

	for range 3 {
		y, err := x.Mul(x)
		require.NoError(t, err)
		require.NoError(t, y.Backward())
		assert.Equal(t, 3, x.RefCount(), "the live node holds two clones of x")
		y.Release()
		assert.Equal(t, 1, x.RefCount())
	}

	g, err := x.Grad()
	require.NoError(t, err)
	assert.Equal(t, []float64{18}, g.Data(), "three passes of 2x at x=3")
}

func TestHandleRelease_InvalidatesHolder(t *testing.T) {
	h := autodiff.FromScalar[float64](2).WithGrad().Shared()
	other := h.Clone()

	h.Release()
	h.Release()
	assert.Equal(t, 1, other.RefCount())

	_, err := h.Grad()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	_, err = h.Item()
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	assert.ErrorIs(t, h.ZeroGrad(), autodiff.ErrBorrow)
	_, err = h.Mul(other)
	assert.ErrorIs(t, err, autodiff.ErrBorrow)
	assert.Panics(t, func() { h.Clone() })

	v, err := other.Item()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}
