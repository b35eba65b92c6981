package panes

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
	"github.com/waozixyz/workbench/workspace"
)

const (
	propLine   = 18
	propIndent = 8
)

// Properties shows the selected item's fields and offers buttons to add an
// item and to clear the selection.
type Properties struct {
	scene *Scene
	add   *widget.Button
	clear *widget.Button
}

// NewProperties builds a properties pane.
func NewProperties(env workspace.PaneEnv) (workspace.Pane, error) {
	scene, err := sceneFrom(env)
	if err != nil {
		return nil, err
	}
	p := &Properties{scene: scene}

	p.add = widget.NewButton(env.Registry, widget.DefaultButtonSpec("Add")).OnClick(func() {
		n := scene.Len()
		hue := float64(n*47%360)
		r, g, b := colorful.Hsv(hue, 0.6, 0.8).RGB255()
		i := scene.Add(Item{
			Rect:  geom.R(10*n, 10*n, 60, 40),
			Color: color.RGBA{R: r, G: g, B: b, A: 255},
		})
		scene.Select(i)
	})
	p.clear = widget.NewButton(env.Registry, widget.DefaultButtonSpec("Clear")).
		SetTrigger(input.Release).
		OnClick(func() { scene.Select(-1) })
	return p, nil
}

// Lines returns the text rows the pane shows for the current selection.
func (p *Properties) Lines() []string {
	i, ok := p.scene.Selected()
	if !ok {
		return []string{"Nothing selected"}
	}
	it, _ := p.scene.Item(i)
	c := colorful.Color{R: float64(it.Color.R) / 255, G: float64(it.Color.G) / 255, B: float64(it.Color.B) / 255}
	return []string{
		"Name: " + it.Name,
		fmt.Sprintf("Position: %d, %d", it.Rect.X, it.Rect.Y),
		fmt.Sprintf("Size: %d x %d", it.Rect.Width, it.Rect.Height),
		"Color: " + c.Hex(),
	}
}

func (p *Properties) Draw(ctx *widget.Context, bounds geom.Rect) {
	y := bounds.Y + listTop
	for _, line := range p.Lines() {
		r := geom.R(bounds.X+propIndent, y, bounds.Width-2*propIndent, propLine)
		ctx.Painter.Text(line, r, render.BaseFontSize, render.AlignLeft, ctx.Theme.Text, 0.1)
		y += propLine
	}

	y += propLine / 2
	p.add.SetPos(geom.Pt(bounds.X+propIndent, y)).Draw(ctx)
	_, selected := p.scene.Selected()
	p.clear.SetEnabled(selected).SetPos(geom.Pt(bounds.X+propIndent+60, y)).Draw(ctx)
}

func (p *Properties) Close() {
	p.add.Close()
	p.clear.Close()
}
