package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFromSlice[T Float](t *testing.T, data []T, shape Shape) *Buffer[T] {
	t.Helper()
	b, err := FromSlice(data, shape)
	require.NoError(t, err)
	return b
}

func TestBufferElementwise(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2, 3, 4}, Shape{2, 2})
	b := mustFromSlice(t, []float32{5, 6, 7, 8}, Shape{2, 2})

	tests := []struct {
		name string
		op   func(x, y *Buffer[float32]) (*Buffer[float32], error)
		want []float32
	}{
		{"add", (*Buffer[float32]).Add, []float32{6, 8, 10, 12}},
		{"sub", (*Buffer[float32]).Sub, []float32{-4, -4, -4, -4}},
		{"mul", (*Buffer[float32]).Mul, []float32{5, 12, 21, 32}},
		{"div", (*Buffer[float32]).Div, []float32{0.2, 2.0 / 6, 3.0 / 7, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(a, b)
			require.NoError(t, err)
			assert.Equal(t, Shape{2, 2}, got.Shape())
			assert.InDeltaSlice(t, tt.want, got.Data(), 1e-6)
		})
	}

	// Operands are untouched.
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data())
	assert.Equal(t, []float32{5, 6, 7, 8}, b.Data())
}

func TestBufferBroadcast(t *testing.T) {
	col := mustFromSlice(t, []float64{1, 2, 3}, Shape{3, 1})
	row := mustFromSlice(t, []float64{10, 20}, Shape{2})

	got, err := col.Add(row)
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, got.Shape())
	assert.Equal(t, []float64{11, 21, 12, 22, 13, 23}, got.Data())

	scalar := Scalar(2.0)
	scaled, err := row.Mul(scalar)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 40}, scaled.Data())
}

func TestBufferShapeMismatch(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2, 3}, Shape{3})
	b := mustFromSlice(t, []float32{1, 2}, Shape{2})

	_, err := a.Add(b)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShape)
	assert.Contains(t, err.Error(), "add")
}

func TestBufferMapAndPow(t *testing.T) {
	a := mustFromSlice(t, []float64{-1, 2, 3}, Shape{3})

	assert.Equal(t, []float64{1, -2, -3}, a.Neg().Data())
	assert.Equal(t, []float64{-2, 4, 6}, a.Scale(2).Data())
	assert.InDeltaSlice(t, []float64{1, 4, 9}, a.Pow(2).Data(), 1e-12)

	sqrt := mustFromSlice(t, []float64{4, 9}, Shape{2}).Pow(0.5)
	assert.InDeltaSlice(t, []float64{2, 3}, sqrt.Data(), 1e-12)
}

func TestBufferAddInPlace(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2}, Shape{2})
	b := mustFromSlice(t, []float32{3, 4}, Shape{2})

	require.NoError(t, a.AddInPlace(b))
	assert.Equal(t, []float32{4, 6}, a.Data())

	err := a.AddInPlace(Scalar[float32](1))
	assert.ErrorIs(t, err, ErrShape)
}

func TestBufferAllClose(t *testing.T) {
	a := mustFromSlice(t, []float64{1, 2}, Shape{2})
	b := mustFromSlice(t, []float64{1, 2 + 1e-9}, Shape{2})

	assert.True(t, a.AllClose(b, 1e-6))
	assert.False(t, a.Equal(b))
	assert.False(t, a.AllClose(mustFromSlice(t, []float64{1, 2}, Shape{2, 1}), 1))
}

func TestBufferDivByZero(t *testing.T) {
	a := mustFromSlice(t, []float64{1, -1, 0}, Shape{3})
	z, err := Zeros[float64](Shape{3})
	require.NoError(t, err)

	got, err := a.Div(z)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Data()[0], 1))
	assert.True(t, math.IsInf(got.Data()[1], -1))
	assert.True(t, math.IsNaN(got.Data()[2]))
}
