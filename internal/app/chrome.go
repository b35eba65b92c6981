package app

import (
	"fmt"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
	"github.com/waozixyz/workbench/workspace"
)

const (
	chromeButtonW = 60
	chromeButtonH = 20
	chromePad     = 8
	chromeGap     = 4
)

// chrome is the header band with the split buttons and the footer status
// line. The split buttons act on the active leaf: the last one the pointer
// was over.
type chrome struct {
	app    *App
	splitH *widget.Button
	splitV *widget.Button
	active workspace.NodeID
}

func newChrome(a *App) *chrome {
	c := &chrome{app: a, active: workspace.NoNode}
	spec := widget.DefaultButtonSpec("")
	spec.Width, spec.Height = chromeButtonW, chromeButtonH

	spec.Label = "Split H"
	c.splitH = widget.NewButton(a.reg, spec).OnClick(func() { c.split(workspace.SplitHorizontal) })
	spec.Label = "Split V"
	c.splitV = widget.NewButton(a.reg, spec).OnClick(func() { c.split(workspace.SplitVertical) })
	return c
}

// split runs on the next frame, outside dispatch, so the panes it closes are
// not mid-delivery.
func (c *chrome) split(o workspace.Orientation) {
	id := c.active
	if id == workspace.NoNode {
		id = c.app.tree.Root()
	}
	c.app.queue.Post(func() {
		a, b, err := c.app.tree.Split(id, o, 0.5)
		if err != nil {
			c.app.log.Warn().Err(err).Int("node", int(id)).Msg("split failed")
			return
		}
		c.active = b
		c.app.log.Debug().Int("node", int(id)).Stringer("orientation", o).
			Int("a", int(a)).Int("b", int(b)).Msg("split")
	})
}

// Active returns the leaf the split buttons act on.
func (a *App) Active() workspace.NodeID { return a.chrome.active }

// track follows the pointer to the active leaf. It runs after the tree is
// drawn so leaf rectangles are current.
func (c *chrome) track(p geom.Point) {
	a := c.app
	if a.TreeViewport().Contains(p, 0) {
		if id, ok := a.tree.LeafAt(p); ok {
			c.active = id
		}
	}
	if !a.tree.IsLeaf(c.active) {
		c.active = workspace.NoNode
	}
}

func (c *chrome) draw(ctx *widget.Context) {
	a := c.app
	vp := a.state.Viewport
	tv := a.TreeViewport()

	p := ctx.Painter
	header := geom.R(vp.X, vp.Y, vp.Width, tv.Y-vp.Y)
	if !header.Empty() {
		p.FillRect(header, 0, ctx.Theme.Header, 0)
		p.Text(a.cfg.Window.Title, geom.R(header.X+chromePad, header.Y, header.Width/2, header.Height),
			render.BaseFontSize, render.AlignLeft, ctx.Theme.Text, 0.01)

		y := header.Y + (header.Height-chromeButtonH)/2
		x := header.Right() - chromePad - chromeButtonW
		c.splitV.SetPos(geom.Pt(x, y)).Draw(ctx)
		c.splitH.SetPos(geom.Pt(x-chromeGap-chromeButtonW, y)).Draw(ctx)
	}

	footer := geom.R(vp.X, tv.Bottom(), vp.Width, vp.Bottom()-tv.Bottom())
	if !footer.Empty() {
		p.FillRect(footer, 0, ctx.Theme.Header, 0)
		p.Text(c.status(), footer.Inset(chromeGap), render.BaseFontSize, render.AlignLeft, ctx.Theme.TextDisabled, 0.01)
	}
}

func (c *chrome) status() string {
	t := c.app.tree
	s := fmt.Sprintf("%d panes  %s", len(t.Leaves()), c.app.state.Pointer)
	if c.active != workspace.NoNode {
		s += "  " + t.PaneType(c.active)
	}
	return s
}

func (c *chrome) close() {
	c.splitH.Close()
	c.splitV.Close()
}
