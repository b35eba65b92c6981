// Package input describes what the host saw during one frame: pointer,
// buttons, keys, text and window size.
//
// The host fills a FrameState from its event source, calls Begin, lets the
// dispatcher and draw pass read it, then calls ResetEdges. Edge fields
// (button transitions, key edges, text, scroll, resize) are valid for exactly
// that one frame. Continuous fields (pointer position, held buttons and
// modifiers) survive until the host overwrites them.
package input

import (
	"time"

	"github.com/waozixyz/workbench/geom"
)

// DefaultDoubleClick is the press-to-press interval treated as a double click.
const DefaultDoubleClick = 200 * time.Millisecond

// Transition is the per-frame state change of a pointer button.
type Transition int8

const (
	None Transition = iota
	Press
	Release
)

func (t Transition) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "none"
	}
}

// Button names a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	NumButtons
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// Cursor is the pointer shape requested for the frame.
type Cursor int

const (
	CursorNormal Cursor = iota
	CursorHResize
	CursorVResize
	CursorCustom // drag-and-drop image
	CursorNotAllowed
)

// Keys is a set of navigation and editing key edges seen this frame.
type Keys uint32

const (
	KeyEnter Keys = 1 << iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyShiftPress
	KeyShiftRelease
	KeyCut
	KeyCopy
	KeyPaste
)

// Has reports whether every key in k is set.
func (k Keys) Has(keys Keys) bool { return k&keys == keys }

// Modifiers are held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
)

// FrameState is the per-frame input snapshot.
type FrameState struct {
	// Tick counts completed Begin calls.
	Tick uint64

	Pointer      geom.Point
	PointerDelta geom.Point

	// Buttons holds this frame's transition for each button.
	Buttons [NumButtons]Transition
	// Dragging is set while a button is held and the pointer has moved since
	// the press.
	Dragging [NumButtons]bool
	// DragAnchor is the pointer position at the last left or middle press.
	DragAnchor geom.Point
	// DragEnd is the pointer position at the last left or middle release, or
	// at the last press when no release has happened since.
	DragEnd     geom.Point
	DoubleClick bool

	ScrollX, ScrollY float64
	Scrolled         bool

	Mods Modifiers
	Keys Keys
	Text []rune

	// Viewport is the drawable window area, origin at 0,0.
	Viewport geom.Rect
	Resized  bool

	// Cursor is written by widgets during the frame and applied by the host.
	Cursor Cursor

	// DoubleClickWindow overrides DefaultDoubleClick when non-zero.
	DoubleClickWindow time.Duration

	held        [NumButtons]bool
	prevPointer geom.Point
	lastClick   time.Duration
	clicked     bool
}

// NewFrameState returns a state for a window of the given size.
func NewFrameState(width, height int) *FrameState {
	return &FrameState{Viewport: geom.R(0, 0, width, height)}
}

// --- Host side ---

// MoveTo records the pointer position.
func (s *FrameState) MoveTo(p geom.Point) { s.Pointer = p }

// SetButton records a transition for b and updates its held state.
func (s *FrameState) SetButton(b Button, t Transition) {
	if b < 0 || b >= NumButtons {
		return
	}
	s.Buttons[b] = t
	switch t {
	case Press:
		s.held[b] = true
	case Release:
		s.held[b] = false
	}
}

// AddScroll accumulates wheel movement for the frame.
func (s *FrameState) AddScroll(dx, dy float64) {
	s.ScrollX += dx
	s.ScrollY += dy
	s.Scrolled = true
}

// TypeRune appends typed text.
func (s *FrameState) TypeRune(r rune) { s.Text = append(s.Text, r) }

// PressKey records key edges.
func (s *FrameState) PressKey(k Keys) { s.Keys |= k }

// SetModifiers replaces the held modifier set.
func (s *FrameState) SetModifiers(m Modifiers) { s.Mods = m }

// Resize records the window size, raising Resized when it changed.
func (s *FrameState) Resize(width, height int) {
	if s.Viewport.Width == width && s.Viewport.Height == height {
		return
	}
	s.Viewport = geom.R(0, 0, width, height)
	s.Resized = true
}

// Begin derives pointer delta, drag state, drag anchor and double click from
// what the host recorded. now is a monotonic timestamp.
func (s *FrameState) Begin(now time.Duration) {
	s.Tick++
	s.PointerDelta = s.Pointer.Sub(s.prevPointer)
	s.prevPointer = s.Pointer

	moved := s.PointerDelta != (geom.Point{})
	for b := Button(0); b < NumButtons; b++ {
		if s.held[b] && moved && s.Buttons[b] != Press {
			s.Dragging[b] = true
		}
	}

	if s.Buttons[ButtonLeft] == Press {
		window := s.DoubleClickWindow
		if window == 0 {
			window = DefaultDoubleClick
		}
		s.DoubleClick = s.clicked && now-s.lastClick <= window
		s.lastClick = now
		s.clicked = true
	}

	if s.Buttons[ButtonLeft] == Press || s.Buttons[ButtonMiddle] == Press {
		s.DragAnchor = s.Pointer
		s.DragEnd = s.Pointer
	}
	if s.Buttons[ButtonLeft] == Release || s.Buttons[ButtonMiddle] == Release {
		s.DragEnd = s.Pointer
	}
}

// ResetEdges clears every field that is only valid for one frame. It must run
// after dispatch and drawing, before the next poll.
func (s *FrameState) ResetEdges() {
	for b := Button(0); b < NumButtons; b++ {
		if s.Buttons[b] == Release {
			s.Dragging[b] = false
		}
		s.Buttons[b] = None
	}
	s.DoubleClick = false
	s.ScrollX, s.ScrollY = 0, 0
	s.Scrolled = false
	s.Keys = 0
	s.Text = s.Text[:0]
	s.Resized = false
	s.Cursor = CursorNormal
}

// --- Reader side ---

// Held reports whether b is down.
func (s *FrameState) Held(b Button) bool { return b >= 0 && b < NumButtons && s.held[b] }

// Pressed reports a press edge on b this frame.
func (s *FrameState) Pressed(b Button) bool { return b >= 0 && b < NumButtons && s.Buttons[b] == Press }

// Released reports a release edge on b this frame.
func (s *FrameState) Released(b Button) bool {
	return b >= 0 && b < NumButtons && s.Buttons[b] == Release
}

// AnyRelease reports a release edge on any button this frame.
func (s *FrameState) AnyRelease() bool {
	for _, t := range s.Buttons {
		if t == Release {
			return true
		}
	}
	return false
}

// RequestCursor asks the host to show c for this frame. The last request of
// the frame wins.
func (s *FrameState) RequestCursor(c Cursor) { s.Cursor = c }
