package panes

import (
	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
	"github.com/waozixyz/workbench/workspace"
)

const (
	rowHeight = 22
	rowGap    = 2
	// listTop leaves room for the pane-type selector.
	listTop  = 28
	listSide = 4
)

// Outliner lists the scene's items; clicking one selects it.
type Outliner struct {
	scene  *Scene
	reg    *interact.Registry
	scroll *widget.Scrollbar
	rows   []*widget.Button
	log    zerolog.Logger
}

// NewOutliner builds an outliner pane.
func NewOutliner(env workspace.PaneEnv) (workspace.Pane, error) {
	scene, err := sceneFrom(env)
	if err != nil {
		return nil, err
	}
	return &Outliner{
		scene:  scene,
		reg:    env.Registry,
		scroll: widget.NewScrollbar(env.Registry),
		log:    env.Log.With().Str("pane", KeyOutliner).Logger(),
	}, nil
}

// Rows returns the row buttons, one per scene item.
func (o *Outliner) Rows() []*widget.Button { return o.rows }

// Scrollbar returns the list's scrollbar.
func (o *Outliner) Scrollbar() *widget.Scrollbar { return o.scroll }

func (o *Outliner) sync() {
	for len(o.rows) < o.scene.Len() {
		i := len(o.rows)
		spec := widget.DefaultButtonSpec("")
		spec.Align = render.AlignLeft
		spec.Height = rowHeight
		b := widget.NewButton(o.reg, spec).OnClick(func() {
			o.scene.Select(i)
			o.log.Debug().Int("item", i).Msg("selected")
		})
		o.rows = append(o.rows, b)
	}
}

func (o *Outliner) Draw(ctx *widget.Context, bounds geom.Rect) {
	o.sync()
	list := geom.R(bounds.X, bounds.Y+listTop, bounds.Width, bounds.Height-listTop)
	full := len(o.rows)*(rowHeight+rowGap) + rowGap

	// Before the rows, so the rows keep their presses.
	o.scroll.Begin(ctx, list, full)

	ctx.Painter.PushClip(list)
	sel, _ := o.scene.Selected()
	y := list.Y + rowGap - o.scroll.Offset()
	for i, b := range o.rows {
		r := geom.R(list.X+listSide, y, list.Width-2*listSide-8, rowHeight)
		y += rowHeight + rowGap
		b.SetBounds(r)
		// Rows scrolled out of view are not drawn and so not hit-testable.
		if r.Intersect(list).Empty() {
			continue
		}
		it, _ := o.scene.Item(i)
		colors := widget.ButtonColors{}
		if i == sel {
			colors.Main = widget.Lighten(ctx.Theme.Button, 1.6)
			colors.Hover = widget.Lighten(ctx.Theme.ButtonHover, 1.4)
		}
		b.SetLabel(it.Name).SetColors(colors).Draw(ctx)
	}
	ctx.Painter.PopClip()

	o.scroll.Draw(ctx)
}

func (o *Outliner) Close() {
	o.scroll.Close()
	for _, b := range o.rows {
		b.Close()
	}
}
