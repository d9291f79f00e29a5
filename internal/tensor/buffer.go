package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Buffer is a dense, row-major N-dimensional array of floating point values.
//
// A Buffer owns its memory. Operations never modify their receiver or
// arguments unless the method name ends in InPlace; they allocate a new
// Buffer for the result.
type Buffer[T Float] struct {
	shape  Shape // Buffer dimensions
	stride []int // Row-major strides
	data   []T   // len(data) == shape.NumElements()
}

// NewBuffer allocates a zero-filled buffer with the given shape.
func NewBuffer[T Float](shape Shape) (*Buffer[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return newBuffer[T](shape), nil
}

// newBuffer allocates without validation. The shape must already be valid.
func newBuffer[T Float](shape Shape) *Buffer[T] {
	return &Buffer[T]{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]T, shape.NumElements()),
	}
}

// Shape returns a copy of the buffer's shape.
func (b *Buffer[T]) Shape() Shape {
	return b.shape.Clone()
}

// NDim returns the number of dimensions (0 for scalars).
func (b *Buffer[T]) NDim() int {
	return len(b.shape)
}

// Len returns the total number of elements.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Strides returns the buffer's row-major strides.
func (b *Buffer[T]) Strides() []int {
	return append([]int(nil), b.stride...)
}

// DType returns the runtime data type of the elements.
func (b *Buffer[T]) DType() DataType {
	return DTypeOf[T]()
}

// Device returns the device holding the buffer.
func (b *Buffer[T]) Device() Device {
	return CPU
}

// Data returns the underlying element slice in row-major order.
//
// WARNING: the slice aliases the buffer's memory. Writes are visible to
// every holder of the buffer.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Item returns the single value of a zero-dimensional buffer.
func (b *Buffer[T]) Item() (T, error) {
	if len(b.shape) != 0 {
		return 0, errors.Wrapf(ErrShape, "item: expected scalar buffer, got shape %v", b.shape)
	}
	return b.data[0], nil
}

// At returns the element at the given indices.
func (b *Buffer[T]) At(indices ...int) (T, error) {
	offset, err := b.offset(indices)
	if err != nil {
		return 0, err
	}
	return b.data[offset], nil
}

// Set stores value at the given indices.
func (b *Buffer[T]) Set(value T, indices ...int) error {
	offset, err := b.offset(indices)
	if err != nil {
		return err
	}
	b.data[offset] = value
	return nil
}

func (b *Buffer[T]) offset(indices []int) (int, error) {
	if len(indices) != len(b.shape) {
		return 0, errors.Wrapf(ErrShape, "expected %d indices, got %d", len(b.shape), len(indices))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= b.shape[i] {
			return 0, errors.Wrapf(ErrShape, "index %d out of bounds for dimension %d (size %d)", idx, i, b.shape[i])
		}
		offset += idx * b.stride[i]
	}
	return offset, nil
}

// Clone returns a deep copy of the buffer.
func (b *Buffer[T]) Clone() *Buffer[T] {
	out := newBuffer[T](b.shape)
	copy(out.data, b.data)
	return out
}

// CopyFrom overwrites the buffer's elements with src. Shapes must match.
func (b *Buffer[T]) CopyFrom(src *Buffer[T]) error {
	if !b.shape.Equal(src.shape) {
		return errors.Wrapf(ErrShape, "copy: shape mismatch %v vs %v", b.shape, src.shape)
	}
	copy(b.data, src.data)
	return nil
}

// String returns a short human-readable description with the values.
func (b *Buffer[T]) String() string {
	if len(b.shape) == 0 {
		return fmt.Sprintf("Buffer[%s]() %v", b.DType(), b.data[0])
	}
	return fmt.Sprintf("Buffer[%s]%v %v", b.DType(), []int(b.shape), b.data)
}
