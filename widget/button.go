package widget

import (
	"image/color"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/render"
)

// ProximityMargin is how far outside its bounds the pointer still counts as
// near a button.
const ProximityMargin = 100

const textMargin = 2

// ButtonState is the visual state a button settled on for the frame.
type ButtonState int

const (
	ButtonIdle          ButtonState = iota // pointer far away
	ButtonNear                             // within ProximityMargin
	ButtonDisabledHover                    // over a disabled button
	ButtonHover
	ButtonClicked // trigger edge seen this frame
)

func (s ButtonState) String() string {
	switch s {
	case ButtonIdle:
		return "idle"
	case ButtonNear:
		return "near"
	case ButtonDisabledHover:
		return "disabled-hover"
	case ButtonHover:
		return "hover"
	case ButtonClicked:
		return "clicked"
	default:
		return "unknown"
	}
}

// ButtonColors overrides the theme for one button. Zero colours fall back to
// the theme.
type ButtonColors struct {
	Main, Hover, Disabled, DisabledHover color.RGBA
}

// ButtonSpec describes how a button looks. Pane types carry one as their
// display prototype.
type ButtonSpec struct {
	Label    string
	Align    render.Align
	Width    int
	Height   int
	Radius   int
	TextSize int
	Colors   ButtonColors
}

// DefaultButtonSpec returns a 50x20 centred button.
func DefaultButtonSpec(label string) ButtonSpec {
	return ButtonSpec{Label: label, Align: render.AlignCenter, Width: 50, Height: 20, Radius: 5}
}

// Button is a clickable label.
type Button struct {
	spec     ButtonSpec
	bounds   geom.Rect
	depth    float32
	slot     *interact.Slot
	state    ButtonState
	hovered  bool
	disabled bool
	trigger  input.Transition
	onClick  func()
}

// NewButton registers a button with reg. It clicks on the left press edge
// until SetTrigger says otherwise.
func NewButton(reg *interact.Registry, spec ButtonSpec) *Button {
	b := &Button{
		spec:    spec,
		bounds:  geom.R(0, 0, spec.Width, spec.Height),
		trigger: input.Press,
	}
	b.slot = reg.Register(b)
	return b
}

// OnPointer implements interact.Element.
func (b *Button) OnPointer(ev interact.Event) {
	switch ev.Kind {
	case interact.EventHover:
		if !ev.Topmost {
			return
		}
		b.hovered = true
		// Hover is delivered before edges, so a click this frame overrides it.
		b.state = ButtonHover
		if b.disabled {
			b.state = ButtonDisabledHover
		}
	case interact.EventPress, interact.EventRelease:
		if b.disabled || ev.Button != input.ButtonLeft {
			return
		}
		if (ev.Kind == interact.EventPress) != (b.trigger == input.Press) {
			return
		}
		b.hovered = true
		b.state = ButtonClicked
		if b.onClick != nil {
			b.onClick()
		}
	}
}

// Draw paints the button at its bounds and makes it hit-testable for the
// next dispatch.
func (b *Button) Draw(ctx *Context) {
	if b.slot.Closed() {
		return
	}
	if !b.hovered {
		b.state = ButtonIdle
		if b.bounds.Contains(ctx.Input.Pointer, ProximityMargin) {
			b.state = ButtonNear
		}
	}

	bold := b.state >= ButtonDisabledHover
	colors := b.colors(ctx.Theme)
	fill, text := colors.Main, ctx.Theme.Text
	switch {
	case b.disabled && bold:
		fill, text = colors.DisabledHover, ctx.Theme.TextDisabled
	case b.disabled:
		fill, text = colors.Disabled, ctx.Theme.TextDisabled
	case bold:
		fill = colors.Hover
	}

	ctx.Painter.FillRect(b.bounds, b.spec.Radius, fill, b.depth)
	label := b.bounds
	label.X += textMargin
	label.Width = max(label.Width-2*textMargin, 0)
	ctx.Painter.Text(b.spec.Label, label, b.spec.TextSize, b.spec.Align, text, b.depth+0.002)

	b.slot.MarkDrawn(b.bounds)
	b.hovered = false
}

func (b *Button) colors(t Theme) ButtonColors {
	c := b.spec.Colors
	if c.Main == (color.RGBA{}) {
		c.Main = t.Button
	}
	if c.Hover == (color.RGBA{}) {
		c.Hover = t.ButtonHover
	}
	if c.Disabled == (color.RGBA{}) {
		c.Disabled = t.ButtonDisabled
	}
	if c.DisabledHover == (color.RGBA{}) {
		c.DisabledHover = t.ButtonDisabledHover
	}
	return c
}

// --- Setters ---

// SetBounds moves and resizes the button.
func (b *Button) SetBounds(r geom.Rect) *Button {
	b.bounds = r
	return b
}

// SetPos moves the button, keeping its size.
func (b *Button) SetPos(p geom.Point) *Button {
	b.bounds.X, b.bounds.Y = p.X, p.Y
	return b
}

func (b *Button) SetDepth(depth float32) *Button {
	b.depth = depth
	b.slot.SetDepth(depth)
	return b
}

func (b *Button) SetLayer(layer int) *Button {
	b.slot.SetLayer(layer)
	return b
}

func (b *Button) SetEnabled(enabled bool) *Button {
	b.disabled = !enabled
	return b
}

// SetTrigger selects the left-button edge that clicks: input.Press or
// input.Release.
func (b *Button) SetTrigger(t input.Transition) *Button {
	b.trigger = t
	return b
}

func (b *Button) SetLabel(label string) *Button {
	b.spec.Label = label
	return b
}

func (b *Button) SetColors(c ButtonColors) *Button {
	b.spec.Colors = c
	return b
}

// OnClick sets the function run on the trigger edge.
func (b *Button) OnClick(fn func()) *Button {
	b.onClick = fn
	return b
}

// --- Accessors ---

func (b *Button) Label() string { return b.spec.Label }

func (b *Button) Bounds() geom.Rect { return b.bounds }

func (b *Button) Enabled() bool { return !b.disabled }

func (b *Button) Slot() *interact.Slot { return b.slot }

// State is valid after Draw.
func (b *Button) State() ButtonState { return b.state }

// Close unregisters the button.
func (b *Button) Close() { b.slot.Close() }
