// Package tensor provides the dense N-dimensional numeric buffer that backs
// every autodiff tensor: shapes, broadcasting, element-wise arithmetic,
// reductions and the matrix product.
//
// Buffers are plain CPU memory. They know nothing about gradients; the
// autodiff package layers provenance and gradient bookkeeping on top.
package tensor

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Float is the element type constraint for buffers.
// Only floating point element types are supported.
type Float interface {
	constraints.Float
}

// DataType represents runtime type information for buffers.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		exceptions.Panicf("unknown data type %d", int(dt))
		return 0
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DTypeOf returns the DataType for the element type T.
func DTypeOf[T Float]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return Float32
	default:
		return Float64
	}
}

// Device represents the compute device a buffer lives on.
type Device int

// CPU is the only device. The type exists so that call sites and printed
// tensors already name their device.
const CPU Device = 0

// String returns a human-readable device name.
func (d Device) String() string {
	if d == CPU {
		return "CPU"
	}
	return "Unknown"
}
