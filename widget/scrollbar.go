package widget

import (
	"image/color"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
)

// ScrollStep is the content distance scrolled per wheel notch, in pixels.
const ScrollStep = 50

const (
	thumbWidth  = 6
	thumbMargin = 3
)

// Scrollbar scrolls content taller than its container. The container is a
// scroll region beneath the content; the thumb sits on the overlay layer and
// can be dragged.
type Scrollbar struct {
	region *interact.Slot
	thumb  *interact.Slot

	container geom.Rect
	full      int
	maxScroll int
	offset    float64 // 0..1 of maxScroll
	thumbRect geom.Rect
	depth     float32
	color     color.RGBA

	dragging  bool
	dragStart float64
}

// NewScrollbar registers the scroll region and thumb with reg.
func NewScrollbar(reg *interact.Registry) *Scrollbar {
	s := &Scrollbar{}
	s.region = reg.Register(interact.ElementFunc(s.onRegion)).AcceptScroll(true)
	s.thumb = reg.Register(interact.ElementFunc(s.onThumb)).SetLayer(interact.LayerOverlay)
	return s
}

func (s *Scrollbar) onRegion(ev interact.Event) {
	switch ev.Kind {
	case interact.EventScroll:
		if s.maxScroll > 0 {
			s.offset -= ev.Input.ScrollY * ScrollStep / float64(s.maxScroll)
		}
	case interact.EventDrag:
		// The thumb has moved away from the anchor; the drag stays ours.
		s.onThumb(ev)
	}
}

func (s *Scrollbar) onThumb(ev interact.Event) {
	if ev.Button != input.ButtonLeft {
		return
	}
	switch ev.Kind {
	case interact.EventPress:
		s.dragging = true
		s.dragStart = s.offset
	case interact.EventDrag:
		if !s.dragging {
			return
		}
		// The thumb moves Height/full pixels per content pixel.
		if span := s.container.Height * s.maxScroll; span > 0 {
			dy := float64(ev.Pointer.Y - ev.Anchor.Y)
			s.offset = s.dragStart + dy*float64(s.full)/float64(span)
		}
	}
}

// Begin sets the container and the full content height, and makes the
// container a scroll target. Call it before drawing the content so the
// content keeps its presses.
func (s *Scrollbar) Begin(ctx *Context, container geom.Rect, fullHeight int) {
	if !ctx.Input.Held(input.ButtonLeft) {
		s.dragging = false
	}
	s.container = container
	s.full = fullHeight
	s.maxScroll = max(fullHeight-container.Height, 0)
	s.offset = min(max(s.offset, 0), 1)
	s.region.SetDepth(s.depth).MarkDrawn(container)
}

// Offset is the current scroll distance in pixels.
func (s *Scrollbar) Offset() int {
	return int(s.offset * float64(s.maxScroll))
}

// SetOffset scrolls to px pixels.
func (s *Scrollbar) SetOffset(px int) {
	if s.maxScroll <= 0 {
		s.offset = 0
		return
	}
	s.offset = min(max(float64(px)/float64(s.maxScroll), 0), 1)
}

func (s *Scrollbar) SetDepth(depth float32) *Scrollbar {
	s.depth = depth
	return s
}

func (s *Scrollbar) SetColor(c color.RGBA) *Scrollbar {
	s.color = c
	return s
}

func (s *Scrollbar) Dragging() bool { return s.dragging }

// Thumb is the thumb rectangle from the last Draw; empty when the content
// fits.
func (s *Scrollbar) Thumb() geom.Rect { return s.thumbRect }

// Draw paints the thumb when the content overflows.
func (s *Scrollbar) Draw(ctx *Context) {
	s.thumbRect = geom.Rect{}
	c := s.container
	if c.Height >= s.full || s.full <= 0 {
		return
	}
	s.thumbRect = geom.R(
		c.Right()-thumbWidth-1,
		c.Y+c.Height*s.Offset()/s.full+thumbMargin,
		thumbWidth,
		c.Height*c.Height/s.full-2*thumbMargin+1,
	)

	col := s.color
	if col == (color.RGBA{}) {
		col = ctx.Theme.Scrollbar
	}
	if s.dragging || s.thumbRect.Contains(ctx.Input.Pointer, 0) {
		col = Lighten(col, 1.2)
	}
	ctx.Painter.FillRect(s.thumbRect, thumbWidth/2, col, s.depth+0.5)
	s.thumb.SetDepth(s.depth + 0.5).MarkDrawn(s.thumbRect)
}

// Close unregisters the scrollbar.
func (s *Scrollbar) Close() {
	s.region.Close()
	s.thumb.Close()
}
