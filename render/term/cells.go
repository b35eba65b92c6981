package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

var buttonMasks = [input.NumButtons]tcell.ButtonMask{
	input.ButtonLeft:   tcell.Button1,
	input.ButtonMiddle: tcell.Button3,
	input.ButtonRight:  tcell.Button2,
}

func modifiers(m tcell.ModMask) input.Modifiers {
	var out input.Modifiers
	if m&tcell.ModShift != 0 {
		out |= input.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= input.ModCtrl
	}
	return out
}

// wheelDelta follows raylib's sign: positive y scrolls up.
func wheelDelta(mask tcell.ButtonMask) (float64, float64) {
	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy++
	}
	if mask&tcell.WheelDown != 0 {
		dy--
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// toPixels maps a cell to the pixel at its centre.
func (r *TermRenderer) toPixels(x, y int) geom.Point {
	return geom.Pt(x*r.cell.X+r.cell.X/2, y*r.cell.Y+r.cell.Y/2)
}

// toCells returns the cells whose centres fall inside rect.
func (r *TermRenderer) toCells(rect geom.Rect) geom.Rect {
	x0 := ceilDiv(rect.X-r.cell.X/2, r.cell.X)
	y0 := ceilDiv(rect.Y-r.cell.Y/2, r.cell.Y)
	x1 := ceilDiv(rect.Right()-r.cell.X/2, r.cell.X)
	y1 := ceilDiv(rect.Bottom()-r.cell.Y/2, r.cell.Y)
	return geom.R(x0, y0, x1-x0, y1-y0)
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

func (r *TermRenderer) fill(area geom.Rect, style tcell.Style) {
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *TermRenderer) stroke(box, clip geom.Rect, fg tcell.Color) {
	if box.Width < 2 || box.Height < 2 {
		return
	}
	put := func(x, y int, ch rune) {
		if !clip.Contains(geom.Pt(x, y), 0) || x == clip.Right() || y == clip.Bottom() {
			return
		}
		_, _, style, _ := r.screen.GetContent(x, y)
		r.screen.SetContent(x, y, ch, nil, style.Foreground(fg))
	}
	right, bottom := box.Right()-1, box.Bottom()-1
	for x := box.X + 1; x < right; x++ {
		put(x, box.Y, tcell.RuneHLine)
		put(x, bottom, tcell.RuneHLine)
	}
	for y := box.Y + 1; y < bottom; y++ {
		put(box.X, y, tcell.RuneVLine)
		put(right, y, tcell.RuneVLine)
	}
	put(box.X, box.Y, tcell.RuneULCorner)
	put(right, box.Y, tcell.RuneURCorner)
	put(box.X, bottom, tcell.RuneLLCorner)
	put(right, bottom, tcell.RuneLRCorner)
}

func (r *TermRenderer) text(cmd render.Command, area geom.Rect) {
	runes := []rune(cmd.Text)
	box := r.toCells(cmd.Rect)
	y := box.Y + box.Height/2
	if y < area.Y || y >= area.Bottom() {
		return
	}
	x := box.X
	switch cmd.Align {
	case render.AlignCenter:
		x += (box.Width - len(runes)) / 2
	case render.AlignRight:
		x = box.Right() - len(runes)
	}
	fg := toColor(cmd.Color)
	for i, ch := range runes {
		cx := x + i
		if cx < area.X || cx >= area.Right() {
			continue
		}
		_, _, style, _ := r.screen.GetContent(cx, y)
		r.screen.SetContent(cx, y, ch, nil, style.Foreground(fg))
	}
}
