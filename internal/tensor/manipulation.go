package tensor

import (
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/parallel"
)

// Reshape returns a copy of b with a different shape.
// The new shape must have the same number of elements.
func (b *Buffer[T]) Reshape(shape Shape) (*Buffer[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(b.data) {
		return nil, errors.Wrapf(ErrShape, "reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			b.shape, len(b.data), shape, shape.NumElements())
	}
	out := newBuffer[T](shape)
	copy(out.data, b.data)
	return out, nil
}

// Transpose swaps the two dimensions of a 2-D buffer.
func (b *Buffer[T]) Transpose() (*Buffer[T], error) {
	if len(b.shape) != 2 {
		return nil, errors.Wrapf(ErrShape, "transpose: expected 2D buffer, got shape %v", b.shape)
	}
	rows, cols := b.shape[0], b.shape[1]
	out := newBuffer[T](Shape{cols, rows})
	parallel.For(rows, kernelConfig, func(i int) {
		for j := 0; j < cols; j++ {
			out.data[j*rows+i] = b.data[i*cols+j]
		}
	})
	return out, nil
}
