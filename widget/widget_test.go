package widget_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
)

type harness struct {
	reg   *interact.Registry
	disp  *interact.Dispatcher
	state *input.FrameState
	list  *render.DisplayList
	ctx   *widget.Context
}

func newHarness() *harness {
	reg := interact.NewRegistry(zerolog.Nop())
	st := input.NewFrameState(800, 600)
	list := &render.DisplayList{}
	return &harness{
		reg:   reg,
		disp:  interact.NewDispatcher(reg, zerolog.Nop()),
		state: st,
		list:  list,
		ctx:   &widget.Context{Painter: list, Input: st, Theme: widget.DefaultTheme()},
	}
}

func (h *harness) frame(setup func(s *input.FrameState), draw func(ctx *widget.Context)) interact.Result {
	if setup != nil {
		setup(h.state)
	}
	h.state.Begin(0)
	res := h.disp.Dispatch(h.state)
	h.list.Reset()
	if draw != nil {
		draw(h.ctx)
	}
	h.state.ResetEdges()
	return res
}

func moveTo(p geom.Point) func(*input.FrameState) {
	return func(s *input.FrameState) { s.MoveTo(p) }
}

func press(p geom.Point) func(*input.FrameState) {
	return func(s *input.FrameState) {
		s.MoveTo(p)
		s.SetButton(input.ButtonLeft, input.Press)
	}
}

func release(p geom.Point) func(*input.FrameState) {
	return func(s *input.FrameState) {
		s.MoveTo(p)
		s.SetButton(input.ButtonLeft, input.Release)
	}
}

// --- Button ---

func TestButton_ClickOnPress(t *testing.T) {
	h := newHarness()
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("ok")).
		SetBounds(geom.R(10, 10, 50, 20)).
		OnClick(func() { clicks++ })

	h.frame(nil, b.Draw)
	h.frame(press(geom.Pt(20, 15)), b.Draw)

	assert.Equal(t, 1, clicks)
	assert.Equal(t, widget.ButtonClicked, b.State())

	h.frame(nil, b.Draw)
	assert.Equal(t, widget.ButtonHover, b.State(), "clicked lasts one frame")
	assert.Equal(t, 1, clicks)
}

func TestButton_ReleaseTrigger(t *testing.T) {
	h := newHarness()
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("ok")).
		SetBounds(geom.R(10, 10, 50, 20)).
		SetTrigger(input.Release).
		OnClick(func() { clicks++ })

	h.frame(nil, b.Draw)
	h.frame(press(geom.Pt(20, 15)), b.Draw)
	assert.Zero(t, clicks)
	assert.Equal(t, widget.ButtonHover, b.State())

	h.frame(release(geom.Pt(20, 15)), b.Draw)
	assert.Equal(t, 1, clicks)
}

func TestButton_DisabledNeverClicks(t *testing.T) {
	h := newHarness()
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("no")).
		SetBounds(geom.R(10, 10, 50, 20)).
		SetEnabled(false).
		OnClick(func() { clicks++ })

	h.frame(nil, b.Draw)
	h.frame(press(geom.Pt(20, 15)), b.Draw)

	assert.Zero(t, clicks)
	assert.Equal(t, widget.ButtonDisabledHover, b.State())
}

func TestButton_RightButtonIgnored(t *testing.T) {
	h := newHarness()
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("ok")).
		SetBounds(geom.R(10, 10, 50, 20)).
		OnClick(func() { clicks++ })

	h.frame(nil, b.Draw)
	h.frame(func(s *input.FrameState) {
		s.MoveTo(geom.Pt(20, 15))
		s.SetButton(input.ButtonRight, input.Press)
	}, b.Draw)

	assert.Zero(t, clicks)
}

func TestButton_Proximity(t *testing.T) {
	h := newHarness()
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("ok")).SetBounds(geom.R(10, 10, 50, 20))

	h.frame(moveTo(geom.Pt(150, 20)), b.Draw)
	assert.Equal(t, widget.ButtonNear, b.State())

	h.frame(moveTo(geom.Pt(400, 400)), b.Draw)
	assert.Equal(t, widget.ButtonIdle, b.State())
}

func TestButton_OnlyTopmostReacts(t *testing.T) {
	h := newHarness()
	var got []string
	under := widget.NewButton(h.reg, widget.DefaultButtonSpec("under")).
		SetBounds(geom.R(0, 0, 100, 100)).
		OnClick(func() { got = append(got, "under") })
	over := widget.NewButton(h.reg, widget.DefaultButtonSpec("over")).
		SetBounds(geom.R(20, 20, 40, 40)).
		OnClick(func() { got = append(got, "over") })
	draw := func(ctx *widget.Context) {
		under.Draw(ctx)
		over.Draw(ctx)
	}

	h.frame(nil, draw)
	h.frame(press(geom.Pt(30, 30)), draw)

	assert.Equal(t, []string{"over"}, got)
	assert.Equal(t, widget.ButtonNear, under.State(), "covered button is not hovered")
}

func TestButton_ClosedIsInert(t *testing.T) {
	h := newHarness()
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("ok")).
		SetBounds(geom.R(10, 10, 50, 20)).
		OnClick(func() { clicks++ })

	h.frame(nil, b.Draw)
	b.Close()
	h.frame(press(geom.Pt(20, 15)), b.Draw)

	assert.Zero(t, clicks)
	assert.Zero(t, h.list.Len())
	assert.Zero(t, h.reg.Len())
}

// --- Dropdown ---

func newDropdown(h *harness, labels ...string) *widget.Dropdown {
	d := widget.NewDropdown(h.reg, widget.DefaultButtonSpec("pick")).SetBounds(geom.R(10, 10, 60, 20))
	specs := make([]widget.ButtonSpec, len(labels))
	for i, l := range labels {
		specs[i] = widget.ButtonSpec{Label: l, Align: render.AlignLeft}
	}
	d.SetItems(specs)
	return d
}

func TestDropdown_OpenAndSelect(t *testing.T) {
	h := newHarness()
	d := newDropdown(h, "a", "b", "c").ReflectSelection(true)
	selected := -1
	d.OnSelect(func(i int) { selected = i })

	h.frame(nil, d.Draw)
	h.frame(press(geom.Pt(20, 15)), d.Draw)
	require.True(t, d.IsOpen())
	assert.Equal(t, geom.R(10, 30, 110, 74), d.Box())
	assert.Equal(t, geom.R(15, 34, 100, 22), d.Items()[0].Bounds())

	item := geom.Pt(20, 34+widget.ItemHeight+5)
	h.frame(release(geom.Pt(20, 15)), d.Draw)
	h.frame(press(item), d.Draw)
	assert.True(t, d.IsOpen(), "items click on release")
	assert.Equal(t, -1, selected)

	h.frame(release(item), d.Draw)
	assert.False(t, d.IsOpen())
	assert.Equal(t, 1, selected)
	assert.Equal(t, "b", d.Button().Label())
}

func TestDropdown_PopupBeatsUnderlyingButton(t *testing.T) {
	h := newHarness()
	clicks := 0
	beneath := widget.NewButton(h.reg, widget.DefaultButtonSpec("beneath")).
		SetBounds(geom.R(0, 30, 300, 200)).
		OnClick(func() { clicks++ })
	d := newDropdown(h, "a", "b")
	draw := func(ctx *widget.Context) {
		beneath.Draw(ctx)
		d.Draw(ctx)
	}

	h.frame(nil, draw)
	h.frame(press(geom.Pt(20, 15)), draw)
	h.frame(release(geom.Pt(20, 15)), draw)
	require.True(t, d.IsOpen())

	// Popup padding, not on an item.
	h.frame(press(geom.Pt(12, 32)), draw)
	assert.Zero(t, clicks)
	assert.True(t, d.IsOpen())
}

func TestDropdown_Placement(t *testing.T) {
	h := newHarness()
	d := widget.NewDropdown(h.reg, widget.DefaultButtonSpec("x")).SetBounds(geom.R(750, 570, 40, 20))

	h.frame(nil, d.Draw)
	h.frame(press(geom.Pt(760, 575)), d.Draw)

	require.True(t, d.IsOpen())
	assert.Equal(t, geom.R(680, 540, 110, 30), d.Box(), "flipped left and up")
}

func TestDropdown_ClosesOnOutsidePress(t *testing.T) {
	h := newHarness()
	d := newDropdown(h, "a")

	h.frame(nil, d.Draw)
	h.frame(press(geom.Pt(20, 15)), d.Draw)
	h.frame(release(geom.Pt(20, 15)), d.Draw)
	require.True(t, d.IsOpen())

	h.frame(press(geom.Pt(150, 40)), d.Draw)
	assert.False(t, d.IsOpen())
}

func TestDropdown_ClosesWhenPointerWandersOff(t *testing.T) {
	h := newHarness()
	d := newDropdown(h, "a")

	h.frame(nil, d.Draw)
	h.frame(press(geom.Pt(20, 15)), d.Draw)
	require.True(t, d.IsOpen())

	h.frame(moveTo(geom.Pt(700, 500)), d.Draw)
	assert.False(t, d.IsOpen())
}

func TestDropdown_ToggleClosesFromButton(t *testing.T) {
	h := newHarness()
	d := newDropdown(h, "a")

	h.frame(nil, d.Draw)
	h.frame(press(geom.Pt(20, 15)), d.Draw)
	h.frame(release(geom.Pt(20, 15)), d.Draw)
	h.frame(press(geom.Pt(20, 15)), d.Draw)

	assert.False(t, d.IsOpen())
}

func TestDropdown_Close(t *testing.T) {
	h := newHarness()
	d := newDropdown(h, "a", "b")
	require.Equal(t, 5, h.reg.Len())

	d.Close()
	assert.Zero(t, h.reg.Len())
}

// --- Scrollbar ---

func TestScrollbar_Wheel(t *testing.T) {
	h := newHarness()
	s := widget.NewScrollbar(h.reg)
	draw := func(ctx *widget.Context) {
		s.Begin(ctx, geom.R(0, 0, 100, 100), 300)
		s.Draw(ctx)
	}

	h.frame(nil, draw)
	h.frame(func(st *input.FrameState) {
		st.MoveTo(geom.Pt(50, 50))
		st.AddScroll(0, -1)
	}, draw)
	assert.Equal(t, widget.ScrollStep, s.Offset())

	for range 10 {
		h.frame(func(st *input.FrameState) { st.AddScroll(0, -1) }, draw)
	}
	assert.Equal(t, 200, s.Offset(), "clamped to the overflow")
}

func TestScrollbar_FitsWithoutThumb(t *testing.T) {
	h := newHarness()
	s := widget.NewScrollbar(h.reg)
	draw := func(ctx *widget.Context) {
		s.Begin(ctx, geom.R(0, 0, 100, 100), 80)
		s.Draw(ctx)
	}

	h.frame(nil, draw)
	h.frame(func(st *input.FrameState) {
		st.MoveTo(geom.Pt(50, 50))
		st.AddScroll(0, -3)
	}, draw)

	assert.Zero(t, s.Offset())
	assert.True(t, s.Thumb().Empty())
}

func TestScrollbar_ThumbDrag(t *testing.T) {
	h := newHarness()
	s := widget.NewScrollbar(h.reg)
	draw := func(ctx *widget.Context) {
		s.Begin(ctx, geom.R(0, 0, 100, 100), 200)
		s.Draw(ctx)
	}

	h.frame(nil, draw)
	require.Equal(t, geom.R(93, 3, 6, 45), s.Thumb())

	h.frame(press(geom.Pt(95, 10)), draw)
	assert.True(t, s.Dragging())

	h.frame(moveTo(geom.Pt(95, 30)), draw)
	assert.Equal(t, 40, s.Offset())

	h.frame(moveTo(geom.Pt(95, 60)), draw)
	assert.Equal(t, 100, s.Offset(), "clamped at the end")

	h.frame(release(geom.Pt(95, 60)), draw)
	assert.False(t, s.Dragging())
}

func TestScrollbar_ContentKeepsPresses(t *testing.T) {
	h := newHarness()
	s := widget.NewScrollbar(h.reg)
	clicks := 0
	b := widget.NewButton(h.reg, widget.DefaultButtonSpec("row")).
		SetBounds(geom.R(10, 10, 50, 20)).
		OnClick(func() { clicks++ })
	draw := func(ctx *widget.Context) {
		s.Begin(ctx, geom.R(0, 0, 100, 100), 300)
		b.SetPos(geom.Pt(10, 10-s.Offset()))
		b.Draw(ctx)
		s.Draw(ctx)
	}

	h.frame(nil, draw)
	h.frame(press(geom.Pt(20, 15)), draw)
	assert.Equal(t, 1, clicks)
}
