package tensor

import (
	"math"

	"github.com/pkg/errors"
)

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a, _ := tensor.Ones[float32](tensor.Shape{3, 1})
//	b, _ := tensor.Ones[float32](tensor.Shape{3, 5})
//	c, err := a.Add(b) // Shape: [3, 5]
func (b *Buffer[T]) Add(other *Buffer[T]) (*Buffer[T], error) {
	return zipWith(b, other, "add", func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (b *Buffer[T]) Sub(other *Buffer[T]) (*Buffer[T], error) {
	return zipWith(b, other, "sub", func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (b *Buffer[T]) Mul(other *Buffer[T]) (*Buffer[T], error) {
	return zipWith(b, other, "mul", func(x, y T) T { return x * y })
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754 (±Inf or NaN).
func (b *Buffer[T]) Div(other *Buffer[T]) (*Buffer[T], error) {
	return zipWith(b, other, "div", func(x, y T) T { return x / y })
}

// zipWith applies f pairwise. Equal shapes take a flat fast path; otherwise
// both operands are broadcast to their common shape.
func zipWith[T Float](a, b *Buffer[T], name string, f func(x, y T) T) (*Buffer[T], error) {
	if a.shape.Equal(b.shape) {
		out := newBuffer[T](a.shape)
		for i := range out.data {
			out.data[i] = f(a.data[i], b.data[i])
		}
		return out, nil
	}

	outShape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	out := newBuffer[T](outShape)
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)
	for i := range out.data {
		out.data[i] = f(
			a.data[flatIndex(i, out.stride, aStrides)],
			b.data[flatIndex(i, out.stride, bStrides)],
		)
	}
	return out, nil
}

// Map returns a new buffer with f applied to every element.
func (b *Buffer[T]) Map(f func(T) T) *Buffer[T] {
	out := newBuffer[T](b.shape)
	for i, v := range b.data {
		out.data[i] = f(v)
	}
	return out
}

// Neg returns -b.
func (b *Buffer[T]) Neg() *Buffer[T] {
	return b.Map(func(v T) T { return -v })
}

// Scale returns b * s.
func (b *Buffer[T]) Scale(s T) *Buffer[T] {
	return b.Map(func(v T) T { return v * s })
}

// Pow raises every element to the power e.
func (b *Buffer[T]) Pow(e T) *Buffer[T] {
	exp := float64(e)
	return b.Map(func(v T) T { return T(math.Pow(float64(v), exp)) })
}

// AddInPlace adds other into b. Shapes must be equal.
func (b *Buffer[T]) AddInPlace(other *Buffer[T]) error {
	if !b.shape.Equal(other.shape) {
		return errors.Wrapf(ErrShape, "add in place: shape mismatch %v vs %v", b.shape, other.shape)
	}
	for i, v := range other.data {
		b.data[i] += v
	}
	return nil
}

// Equal reports whether both buffers have the same shape and elements.
func (b *Buffer[T]) Equal(other *Buffer[T]) bool {
	return b.AllClose(other, 0)
}

// AllClose reports whether both buffers have the same shape and every pair
// of elements differs by at most tol.
func (b *Buffer[T]) AllClose(other *Buffer[T], tol float64) bool {
	if !b.shape.Equal(other.shape) {
		return false
	}
	for i, v := range b.data {
		if math.Abs(float64(v)-float64(other.data[i])) > tol {
			return false
		}
	}
	return true
}
