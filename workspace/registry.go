package workspace

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
)

var (
	// ErrUnknownPaneType is returned when a pane type key was never
	// registered.
	ErrUnknownPaneType = errors.New("workspace: unknown pane type")
	// ErrRegistrySealed is returned by Register once a tree uses the registry.
	ErrRegistrySealed = errors.New("workspace: pane registry is sealed")
	// ErrModelNotFound is returned by Model for a missing key.
	ErrModelNotFound = errors.New("workspace: model not found")
)

// Pane is the content of one leaf.
type Pane interface {
	// Draw paints the pane into bounds, its current content rectangle.
	Draw(ctx *widget.Context, bounds geom.Rect)
	// Close releases the pane's registry slots.
	Close()
}

// Models is the shared named-model map handed to every pane.
type Models map[string]any

// Model fetches key from m as a T.
func Model[T any](m Models, key string) (T, error) {
	var zero T
	v, ok := m[key]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrModelNotFound, key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("workspace: model %q is %T, not %T", key, v, zero)
	}
	return t, nil
}

// PaneEnv is what a factory gets to build a pane.
type PaneEnv struct {
	// Rect returns the leaf's current content rectangle. It changes as the
	// layout changes; call it rather than caching the result.
	Rect     func() geom.Rect
	Models   Models
	Registry *interact.Registry
	Log      zerolog.Logger
}

// Factory builds pane content.
type Factory func(env PaneEnv) (Pane, error)

// PaneType is one registration.
type PaneType struct {
	Key     string
	Name    string
	Factory Factory
	// Prototype is how the type is shown in a leaf's selector.
	Prototype widget.ButtonSpec
}

// PaneRegistry is the append-only table of pane types. Register every type
// during setup; the first tree built on the registry seals it.
type PaneRegistry struct {
	types  []PaneType
	index  map[string]int
	sealed bool
}

// NewPaneRegistry returns an empty registry.
func NewPaneRegistry() *PaneRegistry {
	return &PaneRegistry{index: make(map[string]int)}
}

// Register adds a pane type under key, shown as name.
func (r *PaneRegistry) Register(key, name string, factory Factory) error {
	if r.sealed {
		return fmt.Errorf("register %q: %w", key, ErrRegistrySealed)
	}
	if key == "" {
		return errors.New("workspace: register: empty pane type key")
	}
	if factory == nil {
		return fmt.Errorf("workspace: register %q: nil factory", key)
	}
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("workspace: register %q: already registered", key)
	}
	if name == "" {
		name = key
	}

	r.index[key] = len(r.types)
	r.types = append(r.types, PaneType{
		Key:       key,
		Name:      name,
		Factory:   factory,
		Prototype: widget.ButtonSpec{Label: name, Align: render.AlignLeft, Width: 140, Height: 20, Radius: 5},
	})
	return nil
}

// Lookup returns the registration for key.
func (r *PaneRegistry) Lookup(key string) (PaneType, error) {
	i, ok := r.index[key]
	if !ok {
		return PaneType{}, fmt.Errorf("%w: %q", ErrUnknownPaneType, key)
	}
	return r.types[i], nil
}

// Types lists registrations in registration order.
func (r *PaneRegistry) Types() []PaneType {
	return append([]PaneType(nil), r.types...)
}

func (r *PaneRegistry) Len() int { return len(r.types) }

// Seal stops further registration.
func (r *PaneRegistry) Seal() { r.sealed = true }

func (r *PaneRegistry) Sealed() bool { return r.sealed }
