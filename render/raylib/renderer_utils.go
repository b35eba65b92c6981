package raylib

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

var mouseButtons = [input.NumButtons]rl.MouseButton{
	input.ButtonLeft:   rl.MouseButtonLeft,
	input.ButtonMiddle: rl.MouseButtonMiddle,
	input.ButtonRight:  rl.MouseButtonRight,
}

var editKeys = []struct {
	key  int32
	edge input.Keys
}{
	{rl.KeyEnter, input.KeyEnter},
	{rl.KeyKpEnter, input.KeyEnter},
	{rl.KeyBackspace, input.KeyBackspace},
	{rl.KeyDelete, input.KeyDelete},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyHome, input.KeyHome},
	{rl.KeyEnd, input.KeyEnd},
}

func pressedKeys(ctrl bool) input.Keys {
	var k input.Keys
	for _, e := range editKeys {
		if rl.IsKeyPressed(e.key) || rl.IsKeyPressedRepeat(e.key) {
			k |= e.edge
		}
	}
	if rl.IsKeyPressed(rl.KeyLeftShift) || rl.IsKeyPressed(rl.KeyRightShift) {
		k |= input.KeyShiftPress
	}
	if rl.IsKeyReleased(rl.KeyLeftShift) || rl.IsKeyReleased(rl.KeyRightShift) {
		k |= input.KeyShiftRelease
	}
	if ctrl {
		if rl.IsKeyPressed(rl.KeyX) {
			k |= input.KeyCut
		}
		if rl.IsKeyPressed(rl.KeyC) {
			k |= input.KeyCopy
		}
		if rl.IsKeyPressed(rl.KeyV) {
			k |= input.KeyPaste
		}
	}
	return k
}

func configFlags(c render.WindowConfig) uint32 {
	var flags uint32
	if c.Resizable {
		flags |= rl.FlagWindowResizable
	}
	if c.Maximize {
		flags |= rl.FlagWindowMaximized
	}
	if c.VSync {
		flags |= rl.FlagVsyncHint
	}
	if c.Samples > 0 {
		flags |= rl.FlagMsaa4xHint
	}
	return flags
}

func cursorShape(c input.Cursor) int32 {
	switch c {
	case input.CursorHResize:
		return rl.MouseCursorResizeEW
	case input.CursorVResize:
		return rl.MouseCursorResizeNS
	case input.CursorNotAllowed:
		return rl.MouseCursorNotAllowed
	case input.CursorCustom:
		return rl.MouseCursorPointingHand
	default:
		return rl.MouseCursorDefault
	}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// roundness converts a corner radius in pixels to raylib's 0..1 ratio of the
// shorter side.
func roundness(r geom.Rect, radius int) float32 {
	short := min(r.Width, r.Height)
	if short <= 0 {
		return 0
	}
	return min(float32(2*radius)/float32(short), 1)
}

func textOrigin(r geom.Rect, width, size int32, align render.Align) (int32, int32) {
	y := int32(r.Y) + (int32(r.Height)-size)/2
	switch align {
	case render.AlignCenter:
		return int32(r.X) + (int32(r.Width)-width)/2, y
	case render.AlignRight:
		return int32(r.Right()) - width, y
	default:
		return int32(r.X), y
	}
}

func (r *RaylibRenderer) scaled(v int) int {
	return int(float32(v) * r.scaleFactor)
}

func (r *RaylibRenderer) scaleRect(rect geom.Rect) geom.Rect {
	return geom.R(r.scaled(rect.X), r.scaled(rect.Y), r.scaled(rect.Width), r.scaled(rect.Height))
}

func (r *RaylibRenderer) toPixels(x, y float32) geom.Point {
	return geom.Pt(int(x/r.scaleFactor), int(y/r.scaleFactor))
}
