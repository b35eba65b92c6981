// Package term is the terminal backend. Every cell stands for a fixed block
// of pixels so the pane layout, hit testing and split clamps run unchanged on
// a character grid.
package term

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

// Default pixel size of one terminal cell.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

var wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

// TermRenderer implements render.Renderer on a terminal screen.
type TermRenderer struct {
	screen tcell.Screen
	events chan tcell.Event
	cell   geom.Point

	prevButtons tcell.ButtonMask
	cursor      input.Cursor
	background  color.RGBA

	// done stops the event pump; stopped closes when it has returned.
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	closed bool
	log    zerolog.Logger
}

var _ render.Renderer = (*TermRenderer)(nil)

// NewTermRenderer wraps screen. A nil screen opens the controlling terminal
// during Init.
func NewTermRenderer(screen tcell.Screen, log zerolog.Logger) *TermRenderer {
	return &TermRenderer{
		screen: screen,
		events: make(chan tcell.Event, 100),
		cell:   geom.Pt(DefaultCellWidth, DefaultCellHeight),
		log:    log.With().Str("component", "tcell").Logger(),
	}
}

// SetCellSize changes how many pixels one cell covers.
func (r *TermRenderer) SetCellSize(w, h int) {
	r.cell = geom.Pt(max(w, 1), max(h, 1))
}

// Init sets up the screen and starts pumping its events.
func (r *TermRenderer) Init(config render.WindowConfig) error {
	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("tcell: new screen: %w", err)
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("tcell: init screen: %w", err)
	}
	r.screen.EnableMouse()
	r.screen.SetStyle(tcell.StyleDefault.Background(toColor(config.Background)))
	r.background = config.Background
	r.screen.Clear()

	w, h := r.screen.Size()
	r.log.Info().Int("cols", w).Int("rows", h).Str("title", config.Title).Msg("terminal ready")

	r.done = make(chan struct{})
	r.stopped = make(chan struct{})
	go r.pump(r.done, r.stopped)
	return nil
}

// pump forwards screen events until the screen is finalized or done closes,
// whichever comes first, so a full buffer cannot strand it.
func (r *TermRenderer) pump(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case r.events <- ev:
		case <-done:
			return
		}
	}
}

// ShouldClose reports whether Escape or Ctrl+Q was pressed.
func (r *TermRenderer) ShouldClose() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// PollEvents drains every queued terminal event into state without blocking.
func (r *TermRenderer) PollEvents(state *input.FrameState) {
	for {
		select {
		case ev := <-r.events:
			r.apply(ev, state)
		default:
			w, h := r.screen.Size()
			state.Resize(w*r.cell.X, h*r.cell.Y)
			return
		}
	}
}

func (r *TermRenderer) apply(ev tcell.Event, state *input.FrameState) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		r.applyMouse(ev, state)
	case *tcell.EventKey:
		r.applyKey(ev, state)
	case *tcell.EventResize:
		r.screen.Sync()
	}
}

func (r *TermRenderer) applyMouse(ev *tcell.EventMouse, state *input.FrameState) {
	x, y := ev.Position()
	state.MoveTo(r.toPixels(x, y))
	state.SetModifiers(modifiers(ev.Modifiers()))

	buttons := ev.Buttons()
	if wheel := buttons & wheelMask; wheel != 0 {
		dx, dy := wheelDelta(wheel)
		state.AddScroll(dx, dy)
	}

	buttons &^= wheelMask
	for b, mask := range buttonMasks {
		now, before := buttons&mask != 0, r.prevButtons&mask != 0
		switch {
		case now && !before:
			state.SetButton(input.Button(b), input.Press)
		case !now && before:
			state.SetButton(input.Button(b), input.Release)
		}
	}
	r.prevButtons = buttons
}

func (r *TermRenderer) applyKey(ev *tcell.EventKey, state *input.FrameState) {
	state.SetModifiers(modifiers(ev.Modifiers()))

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
	case tcell.KeyRune:
		state.TypeRune(ev.Rune())
	case tcell.KeyEnter:
		state.PressKey(input.KeyEnter)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		state.PressKey(input.KeyBackspace)
	case tcell.KeyDelete:
		state.PressKey(input.KeyDelete)
	case tcell.KeyLeft:
		state.PressKey(input.KeyLeft)
	case tcell.KeyRight:
		state.PressKey(input.KeyRight)
	case tcell.KeyHome:
		state.PressKey(input.KeyHome)
	case tcell.KeyEnd:
		state.PressKey(input.KeyEnd)
	case tcell.KeyCtrlX:
		state.PressKey(input.KeyCut)
	case tcell.KeyCtrlC:
		state.PressKey(input.KeyCopy)
	case tcell.KeyCtrlV:
		state.PressKey(input.KeyPaste)
	}
}

// Present repaints the screen from list.
func (r *TermRenderer) Present(list *render.DisplayList) {
	r.screen.Clear()
	base := tcell.StyleDefault.Background(toColor(r.background))
	for _, cmd := range list.Commands() {
		area := r.toCells(cmd.Rect)
		if cmd.Clipped {
			area = area.Intersect(r.toCells(cmd.Clip))
		}
		if area.Empty() {
			continue
		}
		switch cmd.Kind {
		case render.CmdFill:
			r.fill(area, base.Background(toColor(cmd.Color)))
		case render.CmdStroke:
			r.stroke(r.toCells(cmd.Rect), area, toColor(cmd.Color))
		case render.CmdText:
			r.text(cmd, area)
		}
	}
	r.screen.Show()
}

// SetCursor records the requested shape. Terminals expose no pointer shapes.
func (r *TermRenderer) SetCursor(c input.Cursor) {
	r.cursor = c
}

// Cursor returns the last shape passed to SetCursor.
func (r *TermRenderer) Cursor() input.Cursor { return r.cursor }

// Cleanup restores the terminal.
func (r *TermRenderer) Cleanup() {
	if r.screen == nil {
		return
	}
	r.stopOnce.Do(func() {
		if r.done != nil {
			close(r.done)
		}
	})
	r.log.Info().Msg("restoring terminal")
	r.screen.Fini()
}
