package nn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features], broadcast over the batch
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
type Linear[T tensor.Float] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[T] // [in_features, out_features]
	bias        *Parameter[T] // [out_features]
}

// NewLinear creates a new Linear layer drawing its initial weights from r.
func NewLinear[T tensor.Float](inFeatures, outFeatures int, r *rand.Rand) (*Linear[T], error) {
	if inFeatures <= 0 || outFeatures <= 0 {
		return nil, errors.Wrapf(tensor.ErrShape, "linear: invalid features in=%d out=%d", inFeatures, outFeatures)
	}

	w, err := Xavier[T](inFeatures, outFeatures, tensor.Shape{inFeatures, outFeatures}, r)
	if err != nil {
		return nil, err
	}
	weight, err := NewParameter("weight", w)
	if err != nil {
		return nil, err
	}

	b, err := Zeros[T](tensor.Shape{outFeatures})
	if err != nil {
		return nil, err
	}
	bias, err := NewParameter("bias", b)
	if err != nil {
		return nil, err
	}

	return NewLinearFromParameters(weight, bias)
}

// NewLinearFromParameters builds a Linear layer around existing parameters.
// weight must be [in, out] and bias [out].
func NewLinearFromParameters[T tensor.Float](weight, bias *Parameter[T]) (*Linear[T], error) {
	ws, bs := weight.Shape(), bias.Shape()
	if len(ws) != 2 || len(bs) != 1 || bs[0] != ws[1] {
		return nil, errors.Wrapf(tensor.ErrShape, "linear: weight %v and bias %v are incompatible", ws, bs)
	}
	return &Linear[T]{
		inFeatures:  ws[0],
		outFeatures: ws[1],
		weight:      weight,
		bias:        bias,
	}, nil
}

// Forward computes x @ W + b for input of shape [batch_size, in_features].
func (l *Linear[T]) Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != l.inFeatures {
		return nil, errors.Wrapf(tensor.ErrShape, "linear: expected input [batch, %d], got %v", l.inFeatures, shape)
	}

	xw, err := input.Dot(l.weight.Handle())
	if err != nil {
		return nil, errors.Wrap(err, "linear")
	}
	defer xw.Release()
	out, err := xw.Add(l.bias.Handle())
	if err != nil {
		return nil, errors.Wrap(err, "linear")
	}
	return out, nil
}

// Parameters returns [weight, bias].
func (l *Linear[T]) Parameters() []*Parameter[T] {
	return []*Parameter[T]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[T]) Weight() *Parameter[T] { return l.weight }

// Bias returns the bias parameter.
func (l *Linear[T]) Bias() *Parameter[T] { return l.bias }

// InFeatures returns the number of input features.
func (l *Linear[T]) InFeatures() int { return l.inFeatures }

// OutFeatures returns the number of output features.
func (l *Linear[T]) OutFeatures() int { return l.outFeatures }

func (l *Linear[T]) String() string {
	return fmt.Sprintf("Linear(in_features=%d, out_features=%d)", l.inFeatures, l.outFeatures)
}
