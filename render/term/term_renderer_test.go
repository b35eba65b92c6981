package term

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

func newSimRenderer(t *testing.T) (*TermRenderer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(40, 10)
	r := NewTermRenderer(s, zerolog.Nop())
	t.Cleanup(s.Fini)
	return r, s
}

func TestMouse_ButtonMaskDiffing(t *testing.T) {
	r, _ := newSimRenderer(t)
	st := input.NewFrameState(320, 160)

	r.apply(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone), st)
	assert.Equal(t, geom.Pt(3*8+4, 2*16+8), st.Pointer)
	assert.True(t, st.Pressed(input.ButtonLeft))
	assert.True(t, st.Held(input.ButtonLeft))

	st.ResetEdges()
	r.apply(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone), st)
	assert.False(t, st.Pressed(input.ButtonLeft), "held button is not a new press")

	r.apply(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone), st)
	assert.True(t, st.Released(input.ButtonLeft))
	assert.False(t, st.Held(input.ButtonLeft))
}

func TestMouse_RightAndMiddle(t *testing.T) {
	r, _ := newSimRenderer(t)
	st := input.NewFrameState(320, 160)

	r.apply(tcell.NewEventMouse(0, 0, tcell.Button2|tcell.Button3, tcell.ModCtrl), st)
	assert.True(t, st.Pressed(input.ButtonRight))
	assert.True(t, st.Pressed(input.ButtonMiddle))
	assert.False(t, st.Pressed(input.ButtonLeft))
	assert.Equal(t, input.ModCtrl, st.Mods)
}

func TestMouse_WheelIsNotAButton(t *testing.T) {
	r, _ := newSimRenderer(t)
	st := input.NewFrameState(320, 160)

	r.apply(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone), st)
	assert.True(t, st.Scrolled)
	assert.Equal(t, -1.0, st.ScrollY)
	for b := input.Button(0); b < input.NumButtons; b++ {
		assert.Equal(t, input.None, st.Buttons[b])
	}
}

func TestPollEvents_DrainsPumpedEvents(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	r := NewTermRenderer(s, zerolog.Nop())
	require.NoError(t, r.Init(render.DefaultWindowConfig()))
	defer r.Cleanup()
	s.SetSize(40, 10)

	st := input.NewFrameState(0, 0)
	require.NoError(t, s.PostEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone)))
	require.Eventually(t, func() bool {
		r.PollEvents(st)
		return st.Held(input.ButtonLeft)
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, geom.R(0, 0, 40*DefaultCellWidth, 10*DefaultCellHeight), st.Viewport)
	assert.False(t, r.ShouldClose())
}

func TestCleanup_StopsPumpWithFullBuffer(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	r := NewTermRenderer(s, zerolog.Nop())
	require.NoError(t, r.Init(render.DefaultWindowConfig()))

	// Nothing drains: the pump ends up blocked on a full channel.
	require.Eventually(t, func() bool {
		_ = s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
		return len(r.events) == cap(r.events)
	}, time.Second, time.Millisecond)
	for range 3 {
		_ = s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	}

	r.Cleanup()
	require.Eventually(t, func() bool {
		select {
		case <-r.stopped:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestPresent_FillAndText(t *testing.T) {
	r, s := newSimRenderer(t)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	var l render.DisplayList
	l.FillRect(geom.R(0, 0, 80, 32), 0, color.RGBA{R: 60, A: 255}, 0)
	l.Text("hi", geom.R(0, 0, 80, 16), 12, render.AlignLeft, white, 0.5)
	l.PushClip(geom.R(0, 16, 8, 16))
	l.Text("xyz", geom.R(0, 16, 80, 16), 12, render.AlignLeft, white, 0.5)
	l.PopClip()
	r.Present(&l)

	ch, _, _, _ := s.GetContent(0, 0)
	assert.Equal(t, 'h', ch)
	ch, _, _, _ = s.GetContent(1, 0)
	assert.Equal(t, 'i', ch)

	ch, _, _, _ = s.GetContent(0, 1)
	assert.Equal(t, 'x', ch)
	ch, _, _, _ = s.GetContent(1, 1)
	assert.Equal(t, ' ', ch, "clipped to a single cell")
}

func TestToCells(t *testing.T) {
	r := NewTermRenderer(nil, zerolog.Nop())
	assert.Equal(t, geom.R(0, 0, 100, 10), r.toCells(geom.R(0, 0, 800, 160)))
	assert.Equal(t, geom.R(2, 1, 2, 1), r.toCells(geom.R(16, 16, 16, 16)))
}

func TestSetCursor_Recorded(t *testing.T) {
	r := NewTermRenderer(nil, zerolog.Nop())
	r.SetCursor(input.CursorHResize)
	assert.Equal(t, input.CursorHResize, r.Cursor())
}
