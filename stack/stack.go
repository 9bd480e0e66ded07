package stack

import (
	"fmt"

	"github.com/hupe1980/neighborhood/codec"
	"github.com/hupe1980/neighborhood/manager"
	"github.com/hupe1980/neighborhood/structure"
)

// Layer specifies one adaptor of a stack.
type Layer struct {
	Name string         `json:"name"`
	Args manager.Hypers `json:"initialization_arguments,omitempty"`
}

// ParseLayers decodes a JSON array of layer specifications. A nil codec
// uses codec.Default.
func ParseLayers(data []byte, c codec.Codec) ([]Layer, error) {
	layers, err := codec.Decode[[]Layer](c, data)
	if err != nil {
		return nil, fmt.Errorf("%w: layer specification: %w", manager.ErrConfiguration, err)
	}
	return layers, nil
}

// Stack is a base manager with the adaptors stacked on it.
type Stack struct {
	base   manager.Manager
	layers []manager.Adaptor
}

// Build stacks layers on a new manager.Centers. Options are passed to every
// manager of the stack.
func Build(layers []Layer, optFns ...manager.Option) (*Stack, error) {
	return BuildOn(manager.NewCenters(optFns...), layers, optFns...)
}

// BuildOn stacks layers on an existing manager, for example a
// manager.Frozen restored from a snapshot.
func BuildOn(base manager.Manager, layers []Layer, optFns ...manager.Option) (*Stack, error) {
	st := &Stack{base: base}
	lower := base
	for _, l := range layers {
		f, ok := lookup(l.Name)
		if !ok {
			st.detach()
			return nil, &manager.ConfigError{Adaptor: l.Name, Reason: "unknown adaptor"}
		}
		a, err := f(lower, l.Args, optFns...)
		if err != nil {
			st.detach()
			return nil, err
		}
		st.layers = append(st.layers, a)
		lower = a
	}
	return st, nil
}

// detach unregisters the adaptors of a partially built stack, top first,
// so the base no longer updates them.
func (s *Stack) detach() {
	for i := len(s.layers) - 1; i >= 0; i-- {
		s.layers[i].Lower().Unregister(s.layers[i])
	}
	s.layers = nil
}

// Base returns the bottom manager.
func (s *Stack) Base() manager.Manager { return s.base }

// Top returns the last adaptor, or the base for an empty stack.
func (s *Stack) Top() manager.Manager {
	if len(s.layers) == 0 {
		return s.base
	}
	return s.layers[len(s.layers)-1]
}

// Layers returns the adaptors, bottom to top.
func (s *Stack) Layers() []manager.Adaptor { return s.layers }

// Find returns the topmost adaptor with the given name.
func (s *Stack) Find(name string) (manager.Adaptor, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if s.layers[i].Name() == name {
			return s.layers[i], true
		}
	}
	return nil, false
}

// Update hands s to the base and rebuilds the stack as needed.
func (s *Stack) Update(st *structure.AtomicStructure) error {
	return s.Top().Update(st)
}
