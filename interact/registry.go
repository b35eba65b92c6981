// Package interact decides, once per frame, which widget owns which pointer
// event.
//
// Widgets register an Element with a Registry when they are built and close
// the returned Slot when they are torn down. Every frame the widget marks its
// slot as drawn together with the bounds it occupied; the Dispatcher then
// hit-tests only slots drawn during the last draw pass, so hidden or removed
// widgets never see input.
package interact

import (
	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
)

// Common layers. Higher layers win hit tests regardless of draw order.
const (
	LayerNormal  = 0
	LayerOverlay = 1 // scrollbars, popups
)

// Element receives pointer events from the Dispatcher.
type Element interface {
	OnPointer(ev Event)
}

// ElementFunc adapts a function to Element.
type ElementFunc func(ev Event)

// OnPointer calls f(ev).
func (f ElementFunc) OnPointer(ev Event) { f(ev) }

// Registry is the live set of registered elements. It holds no ownership:
// the widget that registered an element closes its slot.
//
// A Registry belongs to the frame thread and is not safe for concurrent use.
type Registry struct {
	slots  []*Slot
	pass   uint64
	seq    uint64
	nextID uint64
	log    zerolog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		pass: 1,
		log:  log.With().Str("component", "registry").Logger(),
	}
}

// Register adds el and returns the slot the caller owns. The slot starts on
// LayerNormal and is not hit-testable until it is marked drawn.
func (r *Registry) Register(el Element) *Slot {
	r.nextID++
	s := &Slot{
		reg:   r,
		elem:  el,
		index: len(r.slots),
		id:    r.nextID,
	}
	r.slots = append(r.slots, s)
	return s
}

// Len returns the number of open slots.
func (r *Registry) Len() int { return len(r.slots) }

// Pass returns the current draw pass number. Slots marked drawn now are
// stamped with it.
func (r *Registry) Pass() uint64 { return r.pass }

// Candidates returns the slots drawn in the current pass, ordered the way the
// dispatcher tests them: layer descending, then most recently drawn first.
func (r *Registry) Candidates() []*Slot {
	return r.appendCandidates(nil)
}

func (r *Registry) appendCandidates(dst []*Slot) []*Slot {
	for _, s := range r.slots {
		if s.drawnPass == r.pass {
			dst = append(dst, s)
		}
	}
	sortCandidates(dst)
	return dst
}

// advance ends the current draw pass. Slots must be marked drawn again to
// stay hit-testable.
func (r *Registry) advance() { r.pass++ }

func (r *Registry) remove(s *Slot) {
	last := len(r.slots) - 1
	moved := r.slots[last]
	r.slots[s.index] = moved
	moved.index = s.index
	r.slots[last] = nil
	r.slots = r.slots[:last]
	s.index = -1
}

// Slot is a widget's entry in the registry: the bounds it was last drawn at,
// its depth and layer, and whether it was drawn in the current pass.
type Slot struct {
	reg   *Registry
	elem  Element
	index int
	id    uint64

	bounds geom.Rect
	depth  float32
	layer  int
	scroll bool

	drawnPass uint64
	drawSeq   uint64
}

// ID is unique within the registry for its lifetime.
func (s *Slot) ID() uint64 { return s.id }

// Bounds returns the rectangle recorded by the last MarkDrawn.
func (s *Slot) Bounds() geom.Rect { return s.bounds }

// Depth is the draw depth, larger draws on top.
func (s *Slot) Depth() float32 { return s.depth }

// Layer is the hit-test priority band.
func (s *Slot) Layer() int { return s.layer }

// SetLayer moves the slot to another priority band.
func (s *Slot) SetLayer(layer int) *Slot {
	s.layer = layer
	return s
}

// SetDepth sets the draw depth.
func (s *Slot) SetDepth(depth float32) *Slot {
	s.depth = depth
	return s
}

// AcceptScroll makes the slot eligible for wheel events. Wheel events go to
// the first eligible slot under the pointer, so a scroll region drawn beneath
// its content still scrolls while the content keeps pointer edges.
func (s *Slot) AcceptScroll(accept bool) *Slot {
	s.scroll = accept
	return s
}

// MarkDrawn records the bounds the widget was drawn at and makes it
// hit-testable for the next dispatch.
func (s *Slot) MarkDrawn(bounds geom.Rect) {
	if s.Closed() {
		return
	}
	s.bounds = bounds
	s.drawnPass = s.reg.pass
	s.reg.seq++
	s.drawSeq = s.reg.seq
}

// Drawn reports whether the slot was drawn during the current pass.
func (s *Slot) Drawn() bool {
	return !s.Closed() && s.drawnPass == s.reg.pass
}

// Closed reports whether Close has run.
func (s *Slot) Closed() bool { return s.index < 0 }

// Close removes the slot from its registry. It is safe to call more than
// once and safe to call from inside an event callback.
func (s *Slot) Close() {
	if s.Closed() {
		return
	}
	s.reg.remove(s)
	s.elem = nil
}
