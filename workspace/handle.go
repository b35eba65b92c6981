package workspace

import (
	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/widget"
)

// handle is the draggable divider of a split node.
type handle struct {
	t        *Tree
	id       NodeID
	slot     *interact.Slot
	hovered  bool
	dragging bool
}

func newHandle(t *Tree, id NodeID) *handle {
	h := &handle{t: t, id: id}
	h.slot = t.reg.Register(h)
	return h
}

// OnPointer implements interact.Element.
func (h *handle) OnPointer(ev interact.Event) {
	switch ev.Kind {
	case interact.EventHover:
		if ev.Topmost {
			h.hovered = true
		}
	case interact.EventPress:
		if ev.Button == input.ButtonLeft {
			h.dragging = true
		}
	}
}

func (h *handle) cursor() input.Cursor {
	if h.t.nodes[h.id].orient == SplitHorizontal {
		return input.CursorHResize
	}
	return input.CursorVResize
}

// track follows the pointer while dragging and reports whether the divider
// moved this frame. Any button release ends the drag, wherever it happens.
func (h *handle) track(ctx *widget.Context) bool {
	in := ctx.Input
	if in.AnyRelease() {
		h.dragging = false
	}
	if h.hovered || h.dragging {
		in.RequestCursor(h.cursor())
	}
	if !h.dragging {
		return false
	}

	n := &h.t.nodes[h.id]
	fx, fy := geom.Normalize(in.Pointer, h.t.viewport)
	if n.orient == SplitHorizontal {
		n.split = fx
	} else {
		n.split = fy
	}
	return true
}

// bounds is the grab area: the split line widened by the drag margin and
// kept the same margin away from the ends of the span.
func (h *handle) bounds() geom.Rect {
	n := &h.t.nodes[h.id]
	m := h.t.opts.DragMargin
	vp := h.t.viewport
	r := n.rect
	if n.orient == SplitHorizontal {
		x := vp.X + geom.Scale(n.split, vp.Width)
		return geom.R(x-m, r.Y+m, 2*m, max(r.Height-2*m, 0))
	}
	y := vp.Y + geom.Scale(n.split, vp.Height)
	return geom.R(r.X+m, y-m, max(r.Width-2*m, 0), 2*m)
}

func (h *handle) draw(ctx *widget.Context) {
	b := h.bounds()
	if h.hovered || h.dragging {
		var line geom.Rect
		if h.t.nodes[h.id].orient == SplitHorizontal {
			line = geom.R(b.X+b.Width/2-1, b.Y, 2, b.Height)
		} else {
			line = geom.R(b.X, b.Y+b.Height/2-1, b.Width, 2)
		}
		ctx.Painter.FillRect(line, 0, widget.Lighten(ctx.Theme.ButtonHover, 1.3), 0.5)
	}
	h.slot.MarkDrawn(b)
	h.hovered = false
}

func (h *handle) close() {
	h.slot.Close()
	h.dragging = false
}
