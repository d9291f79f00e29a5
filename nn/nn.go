// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks: parameters, linear
// layers, activations, a sequential container and MSE loss.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	l1, _ := nn.NewLinear[float32](2, 8, rng)
//	l2, _ := nn.NewLinear[float32](8, 1, rng)
//	model := nn.NewSequential[float32](l1, nn.NewTanh[float32](), l2, nn.NewSigmoid[float32]())
//
//	out, _ := model.Forward(x)
//	loss, _ := nn.NewMSELoss[float32]().Forward(out, y)
//	_ = loss.Backward()
package nn

import (
	"math/rand"

	"github.com/born-ml/borngrad/internal/nn"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Module is the base interface for all neural network components.
type Module[T tensor.Float] = nn.Module[T]

// Parameter is a named, trainable leaf tensor.
type Parameter[T tensor.Float] = nn.Parameter[T]

// Linear is a fully connected layer y = x @ W + b.
type Linear[T tensor.Float] = nn.Linear[T]

// ReLU is the max(0, x) activation module.
type ReLU[T tensor.Float] = nn.ReLU[T]

// Sigmoid is the logistic activation module.
type Sigmoid[T tensor.Float] = nn.Sigmoid[T]

// Tanh is the hyperbolic tangent activation module.
type Tanh[T tensor.Float] = nn.Tanh[T]

// Sequential chains modules.
type Sequential[T tensor.Float] = nn.Sequential[T]

// MSELoss is the mean squared error loss.
type MSELoss[T tensor.Float] = nn.MSELoss[T]

// NewParameter creates a trainable parameter over data.
func NewParameter[T tensor.Float](name string, data *tensor.Buffer[T]) (*Parameter[T], error) {
	return nn.NewParameter(name, data)
}

// NewLinear creates a Linear layer with Xavier weights drawn from r and
// zero bias.
func NewLinear[T tensor.Float](inFeatures, outFeatures int, r *rand.Rand) (*Linear[T], error) {
	return nn.NewLinear[T](inFeatures, outFeatures, r)
}

// NewLinearFromParameters builds a Linear layer around existing parameters.
func NewLinearFromParameters[T tensor.Float](weight, bias *Parameter[T]) (*Linear[T], error) {
	return nn.NewLinearFromParameters(weight, bias)
}

// NewReLU creates a ReLU activation module.
func NewReLU[T tensor.Float]() *ReLU[T] { return nn.NewReLU[T]() }

// NewSigmoid creates a Sigmoid activation module.
func NewSigmoid[T tensor.Float]() *Sigmoid[T] { return nn.NewSigmoid[T]() }

// NewTanh creates a Tanh activation module.
func NewTanh[T tensor.Float]() *Tanh[T] { return nn.NewTanh[T]() }

// NewSequential creates a Sequential container.
func NewSequential[T tensor.Float](modules ...Module[T]) *Sequential[T] {
	return nn.NewSequential(modules...)
}

// NewMSELoss creates an MSE loss function.
func NewMSELoss[T tensor.Float]() *MSELoss[T] { return nn.NewMSELoss[T]() }

// Xavier draws a Glorot-uniform initialized buffer from r.
func Xavier[T tensor.Float](fanIn, fanOut int, shape tensor.Shape, r *rand.Rand) (*tensor.Buffer[T], error) {
	return nn.Xavier[T](fanIn, fanOut, shape, r)
}
