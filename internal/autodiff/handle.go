package autodiff

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/tensor"
)

// exclusive marks a cell that is mutably borrowed.
const exclusive = -1

// cell is the shared state behind every Handle cloned from the same tensor.
type cell[T tensor.Float] struct {
	tensor  Tensor[T]
	borrows int // > 0: shared borrows, exclusive: one mutable borrow
	refs    int
}

// Handle is a shared, borrow-checked reference to a Tensor.
//
// Clone creates another holder of the same tensor; it never copies data.
// Reads go through Borrow, writes through BorrowMut. A request that
// conflicts with an outstanding borrow fails with ErrBorrow instead of
// blocking.
//
// The shape, RequiresGrad and IsLeaf are fixed when the tensor is created
// and can be read without borrowing.
type Handle[T tensor.Float] struct {
	c        *cell[T]
	released bool
}

func newHandle[T tensor.Float](t *Tensor[T]) *Handle[T] {
	return &Handle[T]{c: &cell[T]{tensor: *t, refs: 1}}
}

// Clone returns a new holder of the same tensor. Cloning a released handle
// panics.
func (h *Handle[T]) Clone() *Handle[T] {
	if h.released {
		exceptions.Panicf("clone of released handle to %s", h.c.tensor.String())
	}
	h.c.refs++
	return &Handle[T]{c: h.c}
}

// Release drops this holder. Afterwards every borrow through h fails with
// ErrBorrow; other holders are unaffected. When the last holder goes, the
// operand handles captured by the tensor's provenance node are released
// too. Releasing twice is a no-op.
func (h *Handle[T]) Release() {
	if h.released {
		return
	}
	h.released = true
	h.c.refs--
	if h.c.refs > 0 {
		return
	}
	if node := h.c.tensor.node; node != nil {
		for _, operand := range node.Operands() {
			operand.Release()
		}
	}
}

// RefCount returns the number of live holders of the tensor, counting the
// provenance nodes that captured it.
func (h *Handle[T]) RefCount() int { return h.c.refs }

// Same reports whether h and other refer to the same tensor.
func (h *Handle[T]) Same(other *Handle[T]) bool { return other != nil && h.c == other.c }

// Ref is a shared borrow of a tensor.
type Ref[T tensor.Float] struct {
	c *cell[T]
}

// Tensor returns the borrowed tensor. It must not be modified.
func (r *Ref[T]) Tensor() *Tensor[T] { return &r.c.tensor }

// Release ends the borrow. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.c != nil {
		r.c.borrows--
		r.c = nil
	}
}

// RefMut is an exclusive borrow of a tensor.
type RefMut[T tensor.Float] struct {
	c *cell[T]
}

// Tensor returns the borrowed tensor.
func (r *RefMut[T]) Tensor() *Tensor[T] { return &r.c.tensor }

// Release ends the borrow. Releasing twice is a no-op.
func (r *RefMut[T]) Release() {
	if r.c != nil {
		r.c.borrows = 0
		r.c = nil
	}
}

// Borrow acquires shared read access. Any number of shared borrows may be
// held at once; none may coexist with a mutable borrow.
func (h *Handle[T]) Borrow() (*Ref[T], error) {
	if h.released {
		return nil, errors.Wrap(ErrBorrow, "handle released")
	}
	if h.c.borrows == exclusive {
		return nil, errors.Wrap(ErrBorrow, "already mutably borrowed")
	}
	h.c.borrows++
	return &Ref[T]{c: h.c}, nil
}

// BorrowMut acquires exclusive access.
func (h *Handle[T]) BorrowMut() (*RefMut[T], error) {
	switch {
	case h.released:
		return nil, errors.Wrap(ErrBorrow, "handle released")
	case h.c.borrows == exclusive:
		return nil, errors.Wrap(ErrBorrow, "already mutably borrowed")
	case h.c.borrows > 0:
		return nil, errors.Wrapf(ErrBorrow, "already borrowed %d times", h.c.borrows)
	}
	h.c.borrows = exclusive
	return &RefMut[T]{c: h.c}, nil
}

// Shape returns the tensor's shape.
func (h *Handle[T]) Shape() tensor.Shape { return h.c.tensor.Shape() }

// RequiresGrad reports whether the tensor takes part in differentiation.
func (h *Handle[T]) RequiresGrad() bool { return h.c.tensor.requiresGrad }

// IsLeaf reports whether the tensor has no provenance.
func (h *Handle[T]) IsLeaf() bool { return h.c.tensor.node == nil }

// Node returns the tensor's provenance, or nil for a leaf.
func (h *Handle[T]) Node() Node[T] { return h.c.tensor.node }

// Data returns a copy of the tensor's values.
func (h *Handle[T]) Data() (*tensor.Buffer[T], error) {
	r, err := h.Borrow()
	if err != nil {
		return nil, err
	}
	defer r.Release()
	return r.Tensor().data.Clone(), nil
}

// Item returns the value of a zero-dimensional tensor.
func (h *Handle[T]) Item() (T, error) {
	r, err := h.Borrow()
	if err != nil {
		return 0, err
	}
	defer r.Release()
	return r.Tensor().data.Item()
}

// Grad returns a copy of the tensor's gradient, or nil if it has none.
func (h *Handle[T]) Grad() (*tensor.Buffer[T], error) {
	r, err := h.Borrow()
	if err != nil {
		return nil, err
	}
	defer r.Release()
	if r.Tensor().grad == nil {
		return nil, nil
	}
	return r.Tensor().grad.Clone(), nil
}

// ZeroGrad clears the tensor's gradient.
func (h *Handle[T]) ZeroGrad() error {
	w, err := h.BorrowMut()
	if err != nil {
		return err
	}
	defer w.Release()
	w.Tensor().grad = nil
	return nil
}

// SetData replaces the tensor's values. The new buffer must have the same
// shape and is copied.
func (h *Handle[T]) SetData(data *tensor.Buffer[T]) error {
	if !data.Shape().Equal(h.Shape()) {
		return errors.Wrapf(ErrShape, "set data: shape %v, expected %v", data.Shape(), h.Shape())
	}
	w, err := h.BorrowMut()
	if err != nil {
		return err
	}
	defer w.Release()
	w.Tensor().data = data.Clone()
	return nil
}

// String describes the tensor without borrowing it.
func (h *Handle[T]) String() string { return h.c.tensor.String() }
