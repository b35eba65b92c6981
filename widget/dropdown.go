package widget

import (
	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
)

// Popup geometry.
const (
	ItemHeight   = 22
	popupPadX    = 5
	popupPadY    = 4
	popupRadius  = 5
	popupDepth   = 0.9
	itemDepth    = 0.901
	defaultChild = 100
)

// Dropdown is a button that opens a popup of item buttons on the overlay
// layer. The popup sits below the button, or above it when it would cross
// the bottom of the viewport, and is right-aligned with the button when it
// would cross the right edge.
//
// The popup closes when an item is chosen, when the left button is pressed
// outside it, or when the pointer wanders beyond ProximityMargin of every
// item.
type Dropdown struct {
	reg     *interact.Registry
	main    *Button
	none    *Button
	items   []*Button
	popup   *interact.Slot
	box     geom.Rect
	depth   float32
	open    bool
	toggled bool
	reflect bool
	pending int
	child   int

	onSelect func(i int)
}

// NewDropdown registers the dropdown's button and popup with reg.
func NewDropdown(reg *interact.Registry, spec ButtonSpec) *Dropdown {
	d := &Dropdown{
		reg:     reg,
		pending: -1,
		child:   defaultChild,
	}
	d.main = NewButton(reg, spec).OnClick(d.Toggle)

	d.none = NewButton(reg, ButtonSpec{Label: "None", Align: render.AlignLeft, Height: ItemHeight}).
		SetEnabled(false).
		SetLayer(interact.LayerOverlay)

	// The popup background swallows presses that miss every item.
	d.popup = reg.Register(interact.ElementFunc(func(interact.Event) {})).
		SetLayer(interact.LayerOverlay)
	return d
}

// SetItems replaces the popup entries. Item buttons inherit the dropdown's
// colours and click on release.
func (d *Dropdown) SetItems(specs []ButtonSpec) {
	for _, it := range d.items {
		it.Close()
	}
	d.items = d.items[:0]
	for i, spec := range specs {
		if spec.Colors == (ButtonColors{}) {
			spec.Colors = d.main.spec.Colors
		}
		spec.Height = ItemHeight
		d.items = append(d.items, NewButton(d.reg, spec).
			SetLayer(interact.LayerOverlay).
			SetTrigger(input.Release).
			OnClick(func() { d.pending = i }))
	}
	d.none.SetColors(ButtonColors{Disabled: d.main.spec.Colors.Main, DisabledHover: d.main.spec.Colors.Main})
}

// OnSelect sets the function run with the chosen item index.
func (d *Dropdown) OnSelect(fn func(i int)) *Dropdown {
	d.onSelect = fn
	return d
}

// ReflectSelection makes the button show the chosen item's label.
func (d *Dropdown) ReflectSelection(reflect bool) *Dropdown {
	d.reflect = reflect
	return d
}

// SetActive shows item i's label on the button. i is clamped to the item
// range.
func (d *Dropdown) SetActive(i int) {
	if len(d.items) == 0 {
		return
	}
	i = geom.ClampInt(i, 0, len(d.items)-1)
	d.main.SetLabel(d.items[i].Label())
}

// SetChildWidth sets the minimum popup item width.
func (d *Dropdown) SetChildWidth(w int) *Dropdown {
	d.child = w
	return d
}

func (d *Dropdown) SetBounds(r geom.Rect) *Dropdown {
	d.main.SetBounds(r)
	return d
}

func (d *Dropdown) SetDepth(depth float32) *Dropdown {
	d.depth = depth
	d.main.SetDepth(depth)
	return d
}

// Toggle opens or closes the popup.
func (d *Dropdown) Toggle() {
	d.open = !d.open
	d.toggled = true
}

func (d *Dropdown) IsOpen() bool { return d.open }

// Box is the popup rectangle computed by the last Draw.
func (d *Dropdown) Box() geom.Rect { return d.box }

func (d *Dropdown) Button() *Button { return d.main }

func (d *Dropdown) Items() []*Button { return d.items }

// Draw paints the button and, when open, the popup.
func (d *Dropdown) Draw(ctx *Context) {
	if d.pending >= 0 {
		d.choose(d.pending)
	}
	d.layout(ctx.Input.Viewport)
	d.main.Draw(ctx)
	if d.open {
		d.drawPopup(ctx)
	}
	d.toggled = false
}

func (d *Dropdown) choose(i int) {
	d.pending = -1
	if d.open {
		d.Toggle()
	}
	if d.reflect {
		d.SetActive(i)
	}
	if d.onSelect != nil {
		d.onSelect(i)
	}
}

func (d *Dropdown) layout(viewport geom.Rect) {
	c := d.main.Bounds()
	height := max(len(d.items), 1)*ItemHeight + 2*popupPadY
	width := max(d.child, c.Width) + 2*popupPadX

	d.box = geom.R(c.X, c.Bottom(), width, height)
	if c.X+width >= viewport.Right() {
		d.box.X = c.Right() - width
	}
	if c.Y+height >= viewport.Bottom() {
		d.box.Y = c.Y - height
	}

	row := geom.R(d.box.X+popupPadX, d.box.Y+popupPadY, d.box.Width-2*popupPadX, ItemHeight)
	d.none.SetBounds(row).SetDepth(d.depth + popupDepth)
	for i, it := range d.items {
		it.SetBounds(geom.R(row.X, row.Y+i*ItemHeight, row.Width, ItemHeight)).SetDepth(d.depth + itemDepth)
	}
}

func (d *Dropdown) drawPopup(ctx *Context) {
	ctx.Painter.PushNoClip()
	defer ctx.Painter.PopClip()

	colors := d.main.colors(ctx.Theme)
	ctx.Painter.FillRect(d.box, popupRadius, colors.Main, d.depth+popupDepth)
	d.popup.SetDepth(d.depth + popupDepth).MarkDrawn(d.box)

	overall := ButtonIdle
	if len(d.items) == 0 {
		d.none.Draw(ctx)
		overall = d.none.State()
	}
	for _, it := range d.items {
		it.Draw(ctx)
		overall = max(overall, it.State())
	}

	in := ctx.Input
	pressedOutside := !d.toggled && in.Pressed(input.ButtonLeft) && !d.box.Contains(in.Pointer, 0)
	if overall < ButtonNear || pressedOutside {
		d.Toggle()
	}
}

// Close unregisters the dropdown and its items.
func (d *Dropdown) Close() {
	d.main.Close()
	d.none.Close()
	d.popup.Close()
	for _, it := range d.items {
		it.Close()
	}
	d.items = nil
	d.open = false
}
