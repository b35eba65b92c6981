// Package workspace lays panes out in a binary spatial-partition tree.
//
// Every node covers a rectangle of the viewport expressed in normalized W/E/N/S
// bounds. A split node divides its bounds at a split position stored in the
// same normalized viewport units; its children's bounds are recomputed from it
// every frame, top-down, before anything is drawn. Leaves host one Pane each,
// built through the PaneRegistry.
//
// Split positions are draggable through handles registered with the element
// registry, and are clamped so no leaf is squeezed below MinPaneExtent pixels.
package workspace

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/interact"
)

var (
	ErrInvalidNode = errors.New("workspace: invalid node")
	ErrNotLeaf     = errors.New("workspace: node is not a leaf")
	ErrFraction    = errors.New("workspace: split fraction must be in (0,1)")
	ErrTreeClosed  = errors.New("workspace: tree is closed")
)

// NodeID addresses a node in a Tree.
type NodeID int

// NoNode is the parent of the root and the child of a leaf.
const NoNode NodeID = -1

// Orientation is the direction a split divides its node in.
type Orientation uint8

const (
	// SplitHorizontal puts the children side by side, divided by a vertical
	// line.
	SplitHorizontal Orientation = iota
	// SplitVertical stacks the children, divided by a horizontal line.
	SplitVertical
)

func (o Orientation) String() string {
	if o == SplitVertical {
		return "vertical"
	}
	return "horizontal"
}

// Options tune layout and chrome.
type Options struct {
	// MinPaneExtent is the smallest width or height, in pixels, a drag or a
	// window resize may leave a pane with.
	MinPaneExtent int
	// DragMargin is the distance from a split line that still grabs it.
	DragMargin int
	// Inset separates a leaf's content from its neighbours.
	Inset int
	// DefaultPane is the pane type given to the root leaf; empty leaves it
	// blank.
	DefaultPane string
	// HideSelector drops the pane-type selector from leaves.
	HideSelector bool
}

// DefaultOptions returns the stock layout settings.
func DefaultOptions() Options {
	return Options{MinPaneExtent: 30, DragMargin: 4, Inset: 2}
}

type node struct {
	parent   NodeID
	children [2]NodeID
	bounds   geom.Bounds
	rect     geom.Rect

	// Split nodes.
	orient Orientation
	split  float64
	handle *handle

	// Leaves.
	content  geom.Rect
	paneType string
	pane     Pane
	selector *selector
}

func (n *node) leaf() bool { return n.children[0] == NoNode }

// Tree is the pane layout. It belongs to the frame thread.
type Tree struct {
	nodes    []node
	root     NodeID
	panes    *PaneRegistry
	models   Models
	reg      *interact.Registry
	opts     Options
	viewport geom.Rect
	reclamp  bool
	closed   bool
	log      zerolog.Logger
}

// NewTree builds a tree holding one leaf over the whole viewport. It seals
// panes: every pane type must be registered before the first tree exists.
func NewTree(panes *PaneRegistry, reg *interact.Registry, models Models, opts Options, log zerolog.Logger) (*Tree, error) {
	panes.Seal()
	if models == nil {
		models = Models{}
	}
	t := &Tree{
		panes:  panes,
		models: models,
		reg:    reg,
		opts:   opts,
		log:    log.With().Str("component", "workspace").Logger(),
	}
	t.root = t.newLeaf(NoNode, geom.Full())

	if opts.DefaultPane != "" {
		if err := t.SetPaneType(t.root, opts.DefaultPane); err != nil {
			t.Close()
			return nil, err
		}
	}
	return t, nil
}

func (t *Tree) newLeaf(parent NodeID, b geom.Bounds) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent:   parent,
		children: [2]NodeID{NoNode, NoNode},
		bounds:   b,
		rect:     b.ToRect(t.viewport),
	})
	n := &t.nodes[id]
	n.content = n.rect.Inset(t.opts.Inset)
	if !t.opts.HideSelector {
		n.selector = newSelector(t, id)
	}
	return id
}

func (t *Tree) node(id NodeID) (*node, error) {
	if t.closed {
		return nil, ErrTreeClosed
	}
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNode, id)
	}
	return &t.nodes[id], nil
}

// Split turns leaf id into a split node with two fresh leaves, dividing it at
// fraction of its extent along o. The leaf's pane is closed; when it had a
// pane type both children get new panes of that type. The children's panes
// are built first, so on error the tree is unchanged.
func (t *Tree) Split(id NodeID, o Orientation, fraction float64) (a, b NodeID, err error) {
	n, err := t.node(id)
	if err != nil {
		return NoNode, NoNode, err
	}
	if !n.leaf() {
		return NoNode, NoNode, fmt.Errorf("split %d: %w", id, ErrNotLeaf)
	}
	if fraction <= 0 || fraction >= 1 {
		return NoNode, NoNode, fmt.Errorf("split %d at %v: %w", id, fraction, ErrFraction)
	}

	ab, bb := n.bounds, n.bounds
	var pos float64
	if o == SplitHorizontal {
		pos = n.bounds.W + fraction*(n.bounds.E-n.bounds.W)
		ab.E, bb.W = pos, pos
	} else {
		pos = n.bounds.N + fraction*(n.bounds.S-n.bounds.N)
		ab.S, bb.N = pos, pos
	}

	inherited := n.paneType
	var panes [2]Pane
	if inherited != "" {
		// The children take the next two arena slots.
		next := NodeID(len(t.nodes))
		for i := range panes {
			p, err := t.newPane(next+NodeID(i), inherited)
			if err != nil {
				if panes[0] != nil {
					panes[0].Close()
				}
				return NoNode, NoNode, err
			}
			panes[i] = p
		}
	}

	if n.pane != nil {
		n.pane.Close()
		n.pane = nil
	}
	if n.selector != nil {
		n.selector.close()
		n.selector = nil
	}
	n.paneType = ""
	n.orient = o
	n.split = pos
	n.handle = newHandle(t, id)

	// newLeaf appends to t.nodes; n is not valid past this point.
	a = t.newLeaf(id, ab)
	b = t.newLeaf(id, bb)
	t.nodes[id].children = [2]NodeID{a, b}
	for i, child := range [2]NodeID{a, b} {
		if panes[i] != nil {
			t.nodes[child].pane = panes[i]
			t.nodes[child].paneType = inherited
		}
	}

	t.log.Debug().
		Int("node", int(id)).
		Stringer("orientation", o).
		Float64("position", pos).
		Msg("split")
	return a, b, nil
}

// SetPaneType replaces leaf id's pane with a new pane of type key. On error
// the old pane stays.
func (t *Tree) SetPaneType(id NodeID, key string) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if !n.leaf() {
		return fmt.Errorf("set pane type on %d: %w", id, ErrNotLeaf)
	}
	pane, err := t.newPane(id, key)
	if err != nil {
		return err
	}

	n = &t.nodes[id]
	if n.pane != nil {
		n.pane.Close()
	}
	n.pane = pane
	n.paneType = key
	t.log.Debug().Int("node", int(id)).Str("type", key).Msg("pane type set")
	return nil
}

// newPane builds a pane of type key for the leaf at id.
func (t *Tree) newPane(id NodeID, key string) (Pane, error) {
	pt, err := t.panes.Lookup(key)
	if err != nil {
		return nil, err
	}
	pane, err := pt.Factory(PaneEnv{
		Rect: func() geom.Rect {
			// Zero while a split is still building the leaf.
			if int(id) >= len(t.nodes) {
				return geom.Rect{}
			}
			return t.nodes[id].content
		},
		Models:   t.models,
		Registry: t.reg,
		Log:      t.log.With().Str("pane", key).Int("node", int(id)).Logger(),
	})
	if err != nil {
		return nil, fmt.Errorf("workspace: build pane %q: %w", key, err)
	}
	return pane, nil
}

// SetSplit moves split node id's divider to pos, in normalized viewport
// units, clamped the way a drag step is: inside the node's bounds and clear
// of every leaf edge under it by MinPaneExtent. Before the first layout the
// clamp waits for the next Draw.
func (t *Tree) SetSplit(id NodeID, pos float64) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	if n.leaf() {
		return fmt.Errorf("set split on %d: %w", id, ErrInvalidNode)
	}
	n.split = t.withinNode(n, pos)
	t.place(id, n.bounds)
	if t.viewport.Empty() {
		t.reclamp = true
		return nil
	}
	t.clamp(id)
	t.place(id, t.nodes[id].bounds)
	return nil
}

// SetOptions changes the layout extents of a live tree. Every split is
// re-clamped on the next Draw. DefaultPane and HideSelector only apply to
// leaves created afterwards.
func (t *Tree) SetOptions(o Options) {
	if o != t.opts {
		t.opts = o
		t.reclamp = true
	}
}

// Options returns the current layout settings.
func (t *Tree) Options() Options { return t.opts }

// Close closes every pane and releases every registry slot the tree holds.
// A drag in progress ends with it.
func (t *Tree) Close() {
	if t.closed {
		return
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.pane != nil {
			n.pane.Close()
			n.pane = nil
		}
		if n.selector != nil {
			n.selector.close()
			n.selector = nil
		}
		if n.handle != nil {
			n.handle.close()
			n.handle = nil
		}
	}
	t.closed = true
}

// --- Queries ---

func (t *Tree) Root() NodeID { return t.root }

// Len counts nodes, leaves and splits.
func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Viewport() geom.Rect { return t.viewport }

// IsLeaf reports whether id is a valid leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	n, err := t.node(id)
	return err == nil && n.leaf()
}

// Parent returns id's parent, NoNode for the root or an invalid id.
func (t *Tree) Parent(id NodeID) NodeID {
	n, err := t.node(id)
	if err != nil {
		return NoNode
	}
	return n.parent
}

// Children returns the children of split node id.
func (t *Tree) Children(id NodeID) (a, b NodeID, ok bool) {
	n, err := t.node(id)
	if err != nil || n.leaf() {
		return NoNode, NoNode, false
	}
	return n.children[0], n.children[1], true
}

// Bounds returns id's normalized bounds.
func (t *Tree) Bounds(id NodeID) geom.Bounds {
	n, err := t.node(id)
	if err != nil {
		return geom.Bounds{}
	}
	return n.bounds
}

// Rect returns id's pixel rectangle from the last layout.
func (t *Tree) Rect(id NodeID) geom.Rect {
	n, err := t.node(id)
	if err != nil {
		return geom.Rect{}
	}
	return n.rect
}

// ContentRect returns the rectangle leaf id's pane draws into.
func (t *Tree) ContentRect(id NodeID) geom.Rect {
	n, err := t.node(id)
	if err != nil {
		return geom.Rect{}
	}
	return n.content
}

// SplitPosition returns split node id's divider and orientation.
func (t *Tree) SplitPosition(id NodeID) (float64, Orientation, bool) {
	n, err := t.node(id)
	if err != nil || n.leaf() {
		return 0, 0, false
	}
	return n.split, n.orient, true
}

// PaneType returns the pane type key of leaf id.
func (t *Tree) PaneType(id NodeID) string {
	n, err := t.node(id)
	if err != nil {
		return ""
	}
	return n.paneType
}

// Pane returns leaf id's pane, nil when it has none.
func (t *Tree) Pane(id NodeID) Pane {
	n, err := t.node(id)
	if err != nil {
		return nil
	}
	return n.pane
}

// Dragging reports whether split node id is being dragged.
func (t *Tree) Dragging(id NodeID) bool {
	n, err := t.node(id)
	return err == nil && n.handle != nil && n.handle.dragging
}

// Walk visits nodes depth first, parents before children, first child
// before second. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	if t.closed {
		return
	}
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		n := &t.nodes[id]
		if n.leaf() {
			return
		}
		walk(n.children[0], depth+1)
		walk(n.children[1], depth+1)
	}
	walk(t.root, 0)
}

// Leaves lists leaf ids in Walk order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID, _ int) bool {
		if t.nodes[id].leaf() {
			out = append(out, id)
		}
		return true
	})
	return out
}

// LeafAt returns the leaf whose rectangle from the last layout contains p.
// Shared edges belong to the first leaf in Walk order.
func (t *Tree) LeafAt(p geom.Point) (NodeID, bool) {
	for _, id := range t.Leaves() {
		if t.nodes[id].rect.Contains(p, 0) {
			return id, true
		}
	}
	return NoNode, false
}
