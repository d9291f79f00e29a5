package autodiff

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// Tensor is a numeric buffer together with the state reverse-mode
// differentiation needs.
//
// A tensor is a leaf when it has no provenance node. Only leaves that
// require grad ever receive a gradient.
type Tensor[T tensor.Float] struct {
	data         *tensor.Buffer[T]
	requiresGrad bool
	grad         *tensor.Buffer[T]
	node         Node[T]
}

// New creates a leaf tensor over data. The buffer is not copied.
func New[T tensor.Float](data *tensor.Buffer[T]) *Tensor[T] {
	return &Tensor[T]{data: data}
}

// FromBuffer creates a leaf tensor over data, rejecting a nil buffer.
func FromBuffer[T tensor.Float](data *tensor.Buffer[T]) (*Tensor[T], error) {
	if data == nil {
		return nil, errors.Wrap(ErrShape, "from buffer: nil buffer")
	}
	return New(data), nil
}

// FromScalar creates a zero-dimensional leaf tensor holding v.
func FromScalar[T tensor.Float](v T) *Tensor[T] {
	return New(tensor.Scalar(v))
}

// FromSlice creates a one-dimensional leaf tensor. The slice is copied.
func FromSlice[T tensor.Float](values []T) (*Tensor[T], error) {
	if len(values) == 0 {
		return nil, errors.Wrap(ErrShape, "from slice: empty slice")
	}
	data, err := tensor.FromSlice(append([]T(nil), values...), tensor.Shape{len(values)})
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// FromNested creates a two-dimensional leaf tensor from rows of equal length.
func FromNested[T tensor.Float](rows [][]T) (*Tensor[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Wrap(ErrShape, "from nested: empty rows")
	}
	cols := len(rows[0])
	flat := make([]T, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrShape, "from nested: row %d has %d elements, expected %d", i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	data, err := tensor.FromSlice(flat, tensor.Shape{len(rows), cols})
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

// FromValue creates a leaf tensor from a Go value of type T, []T, [][]T or
// [][][]T. Fixed-size arrays such as [2][3]T are accepted at any level.
// Values of any other element type yield ErrType; irregular sub-slices
// yield ErrShape.
func FromValue[T tensor.Float](value any) (*Tensor[T], error) {
	if value == nil {
		return nil, errors.Wrap(ErrType, "from value: nil value")
	}
	if v, ok := value.(T); ok {
		return FromScalar(v), nil
	}

	v := reflect.ValueOf(value)
	elem := reflect.TypeOf((*T)(nil)).Elem()
	if base := baseType(v.Type()); base != elem {
		return nil, errors.Wrapf(ErrType, "from value: %T has element type %s, expected %s", value, base, elem)
	}

	var shape tensor.Shape
	if err := shapeForValue(&shape, v); err != nil {
		return nil, err
	}
	if len(shape) > 3 {
		return nil, errors.Wrapf(ErrShape, "from value: rank %d not supported", len(shape))
	}
	flat := make([]T, 0, shape.NumElements())
	flat = flattenValue(flat, v)

	data, err := tensor.FromSlice(flat, shape)
	if err != nil {
		return nil, err
	}
	return New(data), nil
}

func isSequence(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}

func baseType(t reflect.Type) reflect.Type {
	for isSequence(t.Kind()) {
		t = t.Elem()
	}
	return t
}

func shapeForValue(shape *tensor.Shape, v reflect.Value) error {
	if !isSequence(v.Kind()) {
		return nil
	}
	if v.Len() == 0 {
		return errors.Wrapf(ErrShape, "from value: empty slice %s", v.Type())
	}
	*shape = append(*shape, v.Len())
	prefix := shape.Clone()
	if err := shapeForValue(shape, v.Index(0)); err != nil {
		return err
	}

	// Every sub-slice must match the first one.
	for i := 1; i < v.Len(); i++ {
		sub := prefix.Clone()
		if err := shapeForValue(&sub, v.Index(i)); err != nil {
			return err
		}
		if !sub.Equal(*shape) {
			return errors.Wrapf(ErrShape, "from value: irregular sub-slices %v and %v", *shape, sub)
		}
	}
	return nil
}

func flattenValue[T tensor.Float](dst []T, v reflect.Value) []T {
	if !isSequence(v.Kind()) {
		return append(dst, T(v.Float()))
	}
	if v.Kind() == reflect.Slice {
		if s, ok := v.Interface().([]T); ok {
			return append(dst, s...)
		}
	}
	for i := 0; i < v.Len(); i++ {
		dst = flattenValue(dst, v.Index(i))
	}
	return dst
}

// WithGrad returns a copy of the tensor that requires grad. The copy shares
// the data buffer.
func (t *Tensor[T]) WithGrad() *Tensor[T] {
	out := *t
	out.requiresGrad = true
	return &out
}

// Shared wraps the tensor in a new Handle with a holder count of one.
func (t *Tensor[T]) Shared() *Handle[T] {
	return newHandle(t)
}

// Data returns the tensor's buffer. The buffer is shared, not copied.
func (t *Tensor[T]) Data() *tensor.Buffer[T] { return t.data }

// Grad returns the accumulated gradient, or nil if none has been computed.
func (t *Tensor[T]) Grad() *tensor.Buffer[T] { return t.grad }

// Node returns the provenance node, or nil for a leaf.
func (t *Tensor[T]) Node() Node[T] { return t.node }

// RequiresGrad reports whether gradients flow to or through this tensor.
func (t *Tensor[T]) RequiresGrad() bool { return t.requiresGrad }

// IsLeaf reports whether the tensor was created directly rather than as an
// operator result.
func (t *Tensor[T]) IsLeaf() bool { return t.node == nil }

// Shape returns the shape of the tensor's data.
func (t *Tensor[T]) Shape() tensor.Shape { return t.data.Shape() }

// String returns a short description of the tensor.
func (t *Tensor[T]) String() string {
	if t.node != nil {
		return fmt.Sprintf("Tensor(%v, node=%s)", t.data, t.node)
	}
	return fmt.Sprintf("Tensor(%v, requires_grad=%t)", t.data, t.requiresGrad)
}
