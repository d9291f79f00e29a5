package tensor

import (
	"github.com/pkg/errors"
)

// Sum returns the sum of all elements.
func (b *Buffer[T]) Sum() T {
	var sum T
	for _, v := range b.data {
		sum += v
	}
	return sum
}

// Mean returns the arithmetic mean of all elements.
func (b *Buffer[T]) Mean() T {
	return b.Sum() / T(len(b.data))
}

// SumAxis sums along dimension dim. With keepDim the reduced dimension
// stays in the shape with size 1, otherwise it is removed.
func (b *Buffer[T]) SumAxis(dim int, keepDim bool) (*Buffer[T], error) {
	if dim < 0 || dim >= len(b.shape) {
		return nil, errors.Wrapf(ErrShape, "sum axis: invalid dimension %d for shape %v", dim, b.shape)
	}
	return b.sumAxis(dim, keepDim), nil
}

func (b *Buffer[T]) sumAxis(dim int, keepDim bool) *Buffer[T] {
	outer := Shape(b.shape[:dim]).NumElements()
	n := b.shape[dim]
	inner := Shape(b.shape[dim+1:]).NumElements()

	var outShape Shape
	if keepDim {
		outShape = b.shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = append(b.shape[:dim:dim], b.shape[dim+1:]...)
	}

	out := newBuffer[T](outShape)
	for o := 0; o < outer; o++ {
		dst := out.data[o*inner : (o+1)*inner]
		for k := 0; k < n; k++ {
			src := b.data[(o*n+k)*inner : (o*n+k+1)*inner]
			for i, v := range src {
				dst[i] += v
			}
		}
	}
	return out
}

// SumTo reduces b to target by summing over broadcast dimensions. It is the
// adjoint of broadcasting target up to b's shape.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4].SumTo([3,1]) -> grad_a[3,1]
func (b *Buffer[T]) SumTo(target Shape) (*Buffer[T], error) {
	if b.shape.Equal(target) {
		return b.Clone(), nil
	}
	if len(target) == 0 {
		return Scalar(b.Sum()), nil
	}
	if len(target) > len(b.shape) {
		return nil, errors.Wrapf(ErrShape, "sum to: cannot reduce %v to larger rank %v", b.shape, target)
	}

	// Broadcasting aligns shapes from the right: leading dims are summed away.
	result := b
	for len(result.shape) > len(target) {
		result = result.sumAxis(0, false)
	}

	for i, dim := range target {
		switch {
		case dim == result.shape[i]:
		case dim == 1:
			result = result.sumAxis(i, true)
		default:
			return nil, errors.Wrapf(ErrShape, "sum to: %v is not broadcastable to %v", target, b.shape)
		}
	}

	if result == b {
		return b.Clone(), nil
	}
	return result, nil
}

// BroadcastTo expands b to shape following broadcasting rules.
func (b *Buffer[T]) BroadcastTo(shape Shape) (*Buffer[T], error) {
	outShape, _, err := BroadcastShapes(b.shape, shape)
	if err != nil {
		return nil, errors.Wrap(err, "broadcast to")
	}
	if !outShape.Equal(shape) {
		return nil, errors.Wrapf(ErrShape, "broadcast to: %v cannot expand to %v", b.shape, shape)
	}

	out := newBuffer[T](shape)
	strides := broadcastStrides(b.shape, shape)
	for i := range out.data {
		out.data[i] = b.data[flatIndex(i, out.stride, strides)]
	}
	return out, nil
}
