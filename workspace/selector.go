package workspace

import (
	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
)

// Selector chrome geometry, relative to the leaf's content rectangle.
const (
	selectorOffset = 3
	selectorWidth  = 30
	selectorHeight = 20
	selectorDepth  = 0.7
	selectorItemW  = 140
)

// selector is the dropdown in a leaf's corner listing every pane type.
type selector struct {
	dd    *widget.Dropdown
	types []PaneType
}

func newSelector(t *Tree, id NodeID) *selector {
	s := &selector{types: t.panes.Types()}
	s.dd = widget.NewDropdown(t.reg, widget.ButtonSpec{
		Label:  "+",
		Align:  render.AlignCenter,
		Width:  selectorWidth,
		Height: selectorHeight,
		Radius: 5,
	}).SetChildWidth(selectorItemW).SetDepth(selectorDepth)

	specs := make([]widget.ButtonSpec, len(s.types))
	for i, pt := range s.types {
		specs[i] = pt.Prototype
	}
	s.dd.SetItems(specs)
	s.dd.OnSelect(func(i int) {
		key := s.types[i].Key
		if err := t.SetPaneType(id, key); err != nil {
			t.log.Error().Err(err).Int("node", int(id)).Str("type", key).Msg("failed to set pane type")
		}
	})
	return s
}

func (s *selector) draw(ctx *widget.Context, content geom.Rect) {
	s.dd.SetBounds(geom.R(content.X+selectorOffset, content.Y+selectorOffset, selectorWidth, selectorHeight))
	s.dd.Draw(ctx)
}

func (s *selector) close() { s.dd.Close() }
