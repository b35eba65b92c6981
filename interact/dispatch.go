package interact

import (
	"cmp"
	"slices"

	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
)

// EventKind says why an element is being called.
type EventKind int

const (
	EventHover EventKind = iota
	EventPress
	EventRelease
	EventDrag
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventHover:
		return "hover"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventDrag:
		return "drag"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event is one delivery to an element.
type Event struct {
	Kind   EventKind
	Button input.Button
	// Pointer is the live pointer position, Anchor the drag anchor.
	Pointer geom.Point
	Anchor  geom.Point
	// Topmost is set on the hover delivered to the element that would win an
	// edge this frame.
	Topmost bool
	Input   *input.FrameState
}

// Result records who received what during one Dispatch.
type Result struct {
	Hovered int
	Press   [input.NumButtons]*Slot
	Release [input.NumButtons]*Slot
	Drag    [input.NumButtons]*Slot
	Scroll  *Slot
}

// Dispatcher resolves pointer ownership once per frame.
type Dispatcher struct {
	reg         *Registry
	log         zerolog.Logger
	snapshot    []*Slot
	dispatching bool
}

// NewDispatcher returns a dispatcher over reg.
func NewDispatcher(reg *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		reg: reg,
		log: log.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch delivers this frame's pointer events and then closes the draw
// pass, so the coming draw pass decides what is hit-testable next frame.
//
// Bounds come from the previous frame's draw: dispatch runs before drawing in
// the frame loop, so layout changes made while drawing take effect one frame
// later.
//
// Candidates are ordered by layer (descending) and then by draw recency. For
// each button at most one element gets the press or release edge. The drag
// anchor, not the live pointer, selects the element receiving drag events, so
// a drag keeps its owner after the pointer leaves it. Wheel movement goes to
// the first scroll-accepting candidate under the pointer. Every candidate
// under the pointer gets a hover.
func (d *Dispatcher) Dispatch(state *input.FrameState) Result {
	var res Result
	if d.dispatching {
		d.log.Warn().Msg("nested dispatch ignored")
		return res
	}
	d.dispatching = true
	defer func() {
		d.dispatching = false
		d.reg.advance()
	}()

	// Callbacks may close or register slots; iterate a frame-local copy.
	d.snapshot = d.reg.appendCandidates(d.snapshot[:0])
	defer clear(d.snapshot)

	ptr := state.Pointer
	base := Event{Pointer: ptr, Anchor: state.DragAnchor, Input: state}

	topmost := d.hit(ptr)
	for _, s := range d.snapshot {
		if s.Closed() || !s.bounds.Contains(ptr, 0) {
			continue
		}
		ev := base
		ev.Kind = EventHover
		ev.Topmost = s == topmost
		s.elem.OnPointer(ev)
		res.Hovered++
	}

	for b := input.Button(0); b < input.NumButtons; b++ {
		switch state.Buttons[b] {
		case input.Press:
			res.Press[b] = d.deliver(d.hit(ptr), base, EventPress, b)
		case input.Release:
			res.Release[b] = d.deliver(d.hit(ptr), base, EventRelease, b)
		default:
			if state.Held(b) && state.Dragging[b] && b != input.ButtonRight {
				res.Drag[b] = d.deliver(d.hit(state.DragAnchor), base, EventDrag, b)
			}
		}
	}

	if state.Scrolled {
		res.Scroll = d.deliver(d.hitScroll(ptr), base, EventScroll, input.ButtonLeft)
	}

	if e := d.log.Trace(); e.Enabled() {
		e.Uint64("tick", state.Tick).Int("candidates", len(d.snapshot)).Int("hovered", res.Hovered).Msg("dispatch")
	}
	return res
}

// hit returns the first open candidate containing p.
func (d *Dispatcher) hit(p geom.Point) *Slot {
	for _, s := range d.snapshot {
		if !s.Closed() && s.bounds.Contains(p, 0) {
			return s
		}
	}
	return nil
}

func (d *Dispatcher) hitScroll(p geom.Point) *Slot {
	for _, s := range d.snapshot {
		if !s.Closed() && s.scroll && s.bounds.Contains(p, 0) {
			return s
		}
	}
	return nil
}

func (d *Dispatcher) deliver(s *Slot, base Event, kind EventKind, b input.Button) *Slot {
	if s == nil || s.Closed() {
		return nil
	}
	ev := base
	ev.Kind = kind
	ev.Button = b
	s.elem.OnPointer(ev)
	return s
}

func sortCandidates(slots []*Slot) {
	slices.SortStableFunc(slots, func(a, b *Slot) int {
		if c := cmp.Compare(b.layer, a.layer); c != 0 {
			return c
		}
		return cmp.Compare(b.drawSeq, a.drawSeq)
	})
}
