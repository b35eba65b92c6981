package panes

import (
	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
	"github.com/waozixyz/workbench/workspace"
)

// Viewport draws the scene. A left press selects the item under the pointer
// and dragging it moves the item; a middle drag pans the view.
type Viewport struct {
	scene *Scene
	slot  *interact.Slot
	log   zerolog.Logger

	origin geom.Point // scene origin in pane coordinates
	pan    geom.Point
	// panStart and grabbed are captured on the press that starts a drag.
	panStart geom.Point
	grabbed  int
	last     geom.Point
}

// NewViewport builds a viewport pane.
func NewViewport(env workspace.PaneEnv) (workspace.Pane, error) {
	scene, err := sceneFrom(env)
	if err != nil {
		return nil, err
	}
	v := &Viewport{
		scene:   scene,
		grabbed: -1,
		log:     env.Log.With().Str("pane", KeyViewport).Logger(),
	}
	v.slot = env.Registry.Register(interact.ElementFunc(v.onPointer))
	return v, nil
}

// Pan returns the current view offset.
func (v *Viewport) Pan() geom.Point { return v.pan }

func (v *Viewport) toScene(p geom.Point) geom.Point {
	return p.Sub(v.origin).Sub(v.pan)
}

func (v *Viewport) onPointer(ev interact.Event) {
	switch ev.Kind {
	case interact.EventPress:
		switch ev.Button {
		case input.ButtonLeft:
			i, _ := v.scene.HitTest(v.toScene(ev.Pointer))
			v.scene.Select(i)
			v.grabbed = i
			v.last = ev.Pointer
		case input.ButtonMiddle:
			v.panStart = v.pan
		}
	case interact.EventDrag:
		switch ev.Button {
		case input.ButtonLeft:
			if v.grabbed < 0 {
				return
			}
			v.scene.Move(v.grabbed, ev.Pointer.Sub(v.last))
			v.last = ev.Pointer
		case input.ButtonMiddle:
			v.pan = v.panStart.Add(ev.Pointer.Sub(ev.Anchor))
		}
	case interact.EventRelease:
		if ev.Button == input.ButtonLeft && v.grabbed >= 0 {
			it, _ := v.scene.Item(v.grabbed)
			v.log.Debug().Str("item", it.Name).Stringer("rect", it.Rect).Msg("moved")
			v.grabbed = -1
		}
	}
}

func (v *Viewport) Draw(ctx *widget.Context, bounds geom.Rect) {
	if !ctx.Input.Held(input.ButtonLeft) {
		v.grabbed = -1
	}
	v.origin = geom.Pt(bounds.X, bounds.Y+listTop)
	sel, _ := v.scene.Selected()
	for i := 0; i < v.scene.Len(); i++ {
		it, _ := v.scene.Item(i)
		r := it.Rect
		r.X += v.origin.X + v.pan.X
		r.Y += v.origin.Y + v.pan.Y
		depth := 0.1 + float32(i)*0.001
		ctx.Painter.FillRect(r, 0, it.Color, depth)
		if i == sel {
			ctx.Painter.StrokeRect(r.Inflate(1), 2, ctx.Theme.Text, depth+0.0005)
		}
	}
	ctx.Painter.Text(v.pan.String(), geom.R(bounds.X, bounds.Bottom()-propLine, bounds.Width-4, propLine),
		render.BaseFontSize, render.AlignRight, ctx.Theme.TextDisabled, 0.3)
	v.slot.MarkDrawn(bounds)
}

func (v *Viewport) Close() { v.slot.Close() }
