// Package widget holds the interactive elements built on the dispatcher:
// buttons, the dropdown used as the pane-type selector, and scrollbars.
//
// Widgets register with an interact.Registry when they are built. Pointer
// events arrive during dispatch; the widget's Draw paints it and marks its
// slot drawn with the bounds it just occupied.
package widget

import (
	"image/color"

	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

// Context is what a widget needs during the draw pass.
type Context struct {
	Painter render.Painter
	Input   *input.FrameState
	Theme   Theme
}

// Theme is the shared palette.
type Theme struct {
	Button              color.RGBA
	ButtonHover         color.RGBA
	ButtonDisabled      color.RGBA
	ButtonDisabledHover color.RGBA
	Text                color.RGBA
	TextDisabled        color.RGBA
	Scrollbar           color.RGBA
	Divider             color.RGBA
	Pane                color.RGBA
	Header              color.RGBA
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// DefaultTheme returns the dark palette.
func DefaultTheme() Theme {
	return Theme{
		Button:              rgb(56, 56, 56),
		ButtonHover:         rgb(77, 77, 77),
		ButtonDisabled:      rgb(46, 46, 46),
		ButtonDisabledHover: rgb(51, 51, 51),
		Text:                rgb(222, 222, 222),
		TextDisabled:        rgb(130, 130, 130),
		Scrollbar:           rgb(90, 90, 90),
		Divider:             rgb(20, 20, 20),
		Pane:                rgb(40, 40, 40),
		Header:              rgb(33, 33, 33),
	}
}

// Lighten scales the colour channels by f, saturating at 255.
func Lighten(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(min(float64(v)*f, 255)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
