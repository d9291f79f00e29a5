package nn

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/born-ml/borngrad/internal/autodiff"
	"github.com/born-ml/borngrad/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential[float32](linear1, nn.NewReLU[float32](), linear2)
//	output, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := linear1.Forward(input)
//	h2, _ := relu.Forward(h1)
//	output, _ := linear2.Forward(h2)
type Sequential[T tensor.Float] struct {
	modules []Module[T]
}

// NewSequential creates a new Sequential container.
func NewSequential[T tensor.Float](modules ...Module[T]) *Sequential[T] {
	return &Sequential[T]{modules: modules}
}

// Forward applies all modules in sequence. Intermediate outputs are
// released once the next module has consumed them.
func (s *Sequential[T]) Forward(input *autodiff.Handle[T]) (*autodiff.Handle[T], error) {
	output := input
	for i, module := range s.modules {
		next, err := module.Forward(output)
		if output != input {
			output.Release()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "sequential: module %d", i)
		}
		output = next
	}
	return output, nil
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[T]) Parameters() []*Parameter[T] {
	var params []*Parameter[T]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential[T]) Add(module Module[T]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[T]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[T]) Module(index int) Module[T] {
	if index < 0 || index >= len(s.modules) {
		exceptions.Panicf("Sequential.Module: index %d out of bounds [0, %d)", index, len(s.modules))
	}
	return s.modules[index]
}

// StateDict returns copies of all parameter values keyed by module index
// and parameter name (e.g., "0.weight", "0.bias", "2.weight").
func (s *Sequential[T]) StateDict() (map[string]*tensor.Buffer[T], error) {
	state := make(map[string]*tensor.Buffer[T])
	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			data, err := p.Data()
			if err != nil {
				return nil, err
			}
			state[fmt.Sprintf("%d.%s", i, p.Name())] = data
		}
	}
	return state, nil
}

// LoadStateDict copies values from state into the matching parameters.
// Every parameter must be present with its exact shape.
func (s *Sequential[T]) LoadStateDict(state map[string]*tensor.Buffer[T]) error {
	for i, module := range s.modules {
		for _, p := range module.Parameters() {
			key := fmt.Sprintf("%d.%s", i, p.Name())
			data, ok := state[key]
			if !ok {
				return errors.Errorf("load state: missing %q", key)
			}
			if err := p.SetData(data); err != nil {
				return errors.Wrapf(err, "load state: %q", key)
			}
		}
	}
	return nil
}

func (s *Sequential[T]) String() string {
	var b strings.Builder
	b.WriteString("Sequential(\n")
	for i, module := range s.modules {
		fmt.Fprintf(&b, "  (%d): %v\n", i, module)
	}
	b.WriteString(")")
	return b.String()
}
