package tensor

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// FromSlice creates a buffer from a Go slice.
// The slice is copied into the buffer's memory.
func FromSlice[T Float](data []T, shape Shape) (*Buffer[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShape, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	b := newBuffer[T](shape)
	copy(b.data, data)
	return b, nil
}

// Scalar creates a zero-dimensional buffer holding v.
func Scalar[T Float](v T) *Buffer[T] {
	b := newBuffer[T](Shape{})
	b.data[0] = v
	return b
}

// Zeros creates a buffer filled with zeros.
func Zeros[T Float](shape Shape) (*Buffer[T], error) {
	return NewBuffer[T](shape)
}

// Ones creates a buffer filled with ones.
func Ones[T Float](shape Shape) (*Buffer[T], error) {
	return Full[T](shape, 1)
}

// Full creates a buffer filled with value.
func Full[T Float](shape Shape, value T) (*Buffer[T], error) {
	b, err := NewBuffer[T](shape)
	if err != nil {
		return nil, err
	}
	b.Fill(value)
	return b, nil
}

// OnesLike creates a buffer of ones with the same shape as b.
func OnesLike[T Float](b *Buffer[T]) *Buffer[T] {
	out := newBuffer[T](b.shape)
	out.Fill(1)
	return out
}

// ZerosLike creates a buffer of zeros with the same shape as b.
func ZerosLike[T Float](b *Buffer[T]) *Buffer[T] {
	return newBuffer[T](b.shape)
}

// Fill sets every element to value.
func (b *Buffer[T]) Fill(value T) {
	for i := range b.data {
		b.data[i] = value
	}
}

// Randn creates a buffer with values from the standard normal distribution.
// Uses the Box-Muller transform on r.
func Randn[T Float](shape Shape, r *rand.Rand) (*Buffer[T], error) {
	b, err := NewBuffer[T](shape)
	if err != nil {
		return nil, err
	}
	data := b.data
	for i := 0; i < len(data); i += 2 {
		u1 := 1 - r.Float64() // (0, 1] keeps the log finite
		u2 := r.Float64()
		radius := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = T(radius * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(radius * math.Sin(2.0*math.Pi*u2))
		}
	}
	return b, nil
}

// Uniform creates a buffer with values drawn uniformly from [low, high).
func Uniform[T Float](shape Shape, low, high T, r *rand.Rand) (*Buffer[T], error) {
	b, err := NewBuffer[T](shape)
	if err != nil {
		return nil, err
	}
	span := float64(high - low)
	for i := range b.data {
		b.data[i] = low + T(r.Float64()*span)
	}
	return b, nil
}
