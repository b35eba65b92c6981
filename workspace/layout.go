package workspace

import (
	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/widget"
)

// Recompute lays the tree out over viewport without drawing or reacting to
// input.
func (t *Tree) Recompute(viewport geom.Rect) {
	if t.closed {
		return
	}
	t.viewport = viewport
	t.place(t.root, geom.Full())
}

// place propagates b into id and its subtree, parents first.
func (t *Tree) place(id NodeID, b geom.Bounds) {
	n := &t.nodes[id]
	n.bounds = b
	n.rect = b.ToRect(t.viewport)
	if n.leaf() {
		n.content = n.rect.Inset(t.opts.Inset)
		return
	}
	ab, bb := t.childBounds(n)
	t.place(n.children[0], ab)
	t.place(n.children[1], bb)
}

func (t *Tree) childBounds(n *node) (a, b geom.Bounds) {
	a, b = n.bounds, n.bounds
	if n.orient == SplitHorizontal {
		a.E, b.W = n.split, n.split
	} else {
		a.S, b.N = n.split, n.split
	}
	return a, b
}

// Draw lays the tree out over viewport and draws it: split handles react to
// this frame's input, panes and their selectors paint, and every slot is
// marked drawn for the next dispatch. Split positions are clamped on every
// drag step and when the viewport size changed.
func (t *Tree) Draw(ctx *widget.Context, viewport geom.Rect) {
	if t.closed {
		return
	}
	resized := ctx.Input.Resized || viewport != t.viewport || t.reclamp
	t.viewport = viewport
	t.reclamp = false
	t.drawNode(ctx, t.root, geom.Full(), resized)
}

func (t *Tree) drawNode(ctx *widget.Context, id NodeID, b geom.Bounds, resized bool) {
	n := &t.nodes[id]
	n.bounds = b
	n.rect = b.ToRect(t.viewport)

	if n.leaf() {
		n.content = n.rect.Inset(t.opts.Inset)
		t.drawLeaf(ctx, id)
		return
	}

	h := n.handle
	if h.track(ctx) || resized {
		// Reduce over this frame's bounds, not last frame's.
		t.place(id, b)
		t.clamp(id)
	}
	ab, bb := t.childBounds(n)
	a, c := n.children[0], n.children[1]
	t.drawNode(ctx, a, ab, resized)
	t.drawNode(ctx, c, bb, resized)

	// After the subtree, so the handle wins over pane content it overlaps.
	h.draw(ctx)
}

func (t *Tree) drawLeaf(ctx *widget.Context, id NodeID) {
	p := ctx.Painter
	content := t.nodes[id].content
	p.PushClip(content)
	defer p.PopClip()

	p.FillRect(content, 0, ctx.Theme.Pane, 0)
	// Re-read the node on every access: a selection made by the selector
	// replaces the pane.
	if pane := t.nodes[id].pane; pane != nil {
		pane.Draw(ctx, content)
	}
	if s := t.nodes[id].selector; s != nil {
		s.draw(ctx, content)
	}
}

// clamp keeps split node id's divider far enough from the nearest leaf edges
// on both sides that every leaf keeps MinPaneExtent pixels. When both
// constraints cannot hold, the divider goes to the midpoint of the inverted
// interval. It never leaves the node's own bounds.
func (t *Tree) clamp(id NodeID) {
	n := &t.nodes[id]
	a := t.tightest(n.children[0])
	b := t.tightest(n.children[1])

	var lo, hi float64
	if n.orient == SplitHorizontal {
		m := geom.PixelsToFraction(t.opts.MinPaneExtent, t.viewport.Width)
		lo, hi = a.W+m, b.E-m
	} else {
		m := geom.PixelsToFraction(t.opts.MinPaneExtent, t.viewport.Height)
		lo, hi = a.N+m, b.S-m
	}
	n.split = t.withinNode(n, geom.Clamp(n.split, lo, hi))
}

func (t *Tree) withinNode(n *node, pos float64) float64 {
	if n.orient == SplitHorizontal {
		return min(max(pos, n.bounds.W), n.bounds.E)
	}
	return min(max(pos, n.bounds.N), n.bounds.S)
}

// tightest reduces the leaf bounds under id to the innermost edges: the
// largest W and N and the smallest E and S of any leaf.
func (t *Tree) tightest(id NodeID) geom.Bounds {
	n := &t.nodes[id]
	if n.leaf() {
		return n.bounds
	}
	a := t.tightest(n.children[0])
	b := t.tightest(n.children[1])
	return geom.Bounds{
		W: max(a.W, b.W),
		E: min(a.E, b.E),
		N: max(a.N, b.N),
		S: min(a.S, b.S),
	}
}
