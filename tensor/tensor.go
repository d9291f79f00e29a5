// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public numeric buffer API.
//
// A Buffer is a dense, row-major N-dimensional array of float32 or float64
// values with NumPy-style broadcasting for element-wise arithmetic.
//
// Example:
//
//	x, _ := tensor.Zeros[float32](tensor.Shape{2, 3})
//	y, _ := tensor.Ones[float32](tensor.Shape{3})
//	z, _ := x.Add(y) // y is broadcast over the rows
package tensor

import (
	"math/rand"

	"github.com/born-ml/borngrad/internal/tensor"
)

// Float is the constraint for buffer element types: float32 or float64.
type Float = tensor.Float

// Buffer is an N-dimensional array of T.
type Buffer[T Float] = tensor.Buffer[T]

// Shape represents the dimensions of a buffer.
// Example: Shape{2, 3, 4} represents a 3D buffer with dimensions 2×3×4.
type Shape = tensor.Shape

// DataType represents the element type of a buffer.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device represents where buffer data resides.
type Device = tensor.Device

// CPU is the only supported device.
const CPU Device = tensor.CPU

// Sentinel errors, matched with errors.Is.
var (
	ErrShape = tensor.ErrShape
	ErrType  = tensor.ErrType
)

// BroadcastShapes returns the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// FromSlice creates a buffer over data with the given shape.
func FromSlice[T Float](data []T, shape Shape) (*Buffer[T], error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a zero-dimensional buffer holding v.
func Scalar[T Float](v T) *Buffer[T] {
	return tensor.Scalar(v)
}

// Zeros creates a zero-filled buffer.
func Zeros[T Float](shape Shape) (*Buffer[T], error) {
	return tensor.Zeros[T](shape)
}

// Ones creates a buffer filled with ones.
func Ones[T Float](shape Shape) (*Buffer[T], error) {
	return tensor.Ones[T](shape)
}

// Full creates a buffer filled with value.
func Full[T Float](shape Shape, value T) (*Buffer[T], error) {
	return tensor.Full(shape, value)
}

// Randn creates a buffer of standard normal samples drawn from r.
func Randn[T Float](shape Shape, r *rand.Rand) (*Buffer[T], error) {
	return tensor.Randn[T](shape, r)
}

// Uniform creates a buffer of samples from U[low, high) drawn from r.
func Uniform[T Float](shape Shape, low, high T, r *rand.Rand) (*Buffer[T], error) {
	return tensor.Uniform(shape, low, high, r)
}
