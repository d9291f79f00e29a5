package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/borngrad/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier[T tensor.Float](fanIn, fanOut int, shape tensor.Shape, r *rand.Rand) (*tensor.Buffer[T], error) {
	bound := T(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	return tensor.Uniform(shape, -bound, bound, r)
}

// Zeros creates a buffer filled with zeros, the usual bias initialization.
func Zeros[T tensor.Float](shape tensor.Shape) (*tensor.Buffer[T], error) {
	return tensor.Zeros[T](shape)
}
