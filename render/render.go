// Package render is the narrow drawing contract between widgets and the host
// backend. Widgets paint into a DisplayList during the draw pass; the backend
// replays it once per frame in depth order.
package render

import (
	"image/color"
	"slices"

	"github.com/waozixyz/workbench/geom"
)

const BaseFontSize = 12

// Align is the horizontal text alignment inside a rectangle. Text is always
// centred vertically.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Painter is what widgets draw with.
type Painter interface {
	FillRect(r geom.Rect, radius int, c color.RGBA, depth float32)
	StrokeRect(r geom.Rect, width int, c color.RGBA, depth float32)
	Text(s string, r geom.Rect, size int, align Align, c color.RGBA, depth float32)

	// PushClip limits following commands to r until the matching PopClip.
	PushClip(r geom.Rect)
	// PushNoClip lifts clipping, for popups escaping their pane.
	PushNoClip()
	PopClip()
}

// CommandKind identifies a display list entry.
type CommandKind uint8

const (
	CmdFill CommandKind = iota
	CmdStroke
	CmdText
)

// Command is one recorded draw call.
type Command struct {
	Kind   CommandKind
	Rect   geom.Rect
	Radius int
	Width  int
	Color  color.RGBA
	Text   string
	Size   int
	Align  Align
	Depth  float32

	// Clip is valid when Clipped is set.
	Clip    geom.Rect
	Clipped bool
}

type clipState struct {
	rect geom.Rect
	on   bool
}

// DisplayList records draw calls for one frame.
type DisplayList struct {
	cmds  []Command
	clips []clipState
}

// Reset empties the list, keeping its storage.
func (l *DisplayList) Reset() {
	l.cmds = l.cmds[:0]
	l.clips = l.clips[:0]
}

// Len returns the number of recorded commands.
func (l *DisplayList) Len() int { return len(l.cmds) }

// Commands returns the recorded commands sorted by depth, lowest first.
// Commands at equal depth keep their recording order.
func (l *DisplayList) Commands() []Command {
	slices.SortStableFunc(l.cmds, func(a, b Command) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		}
		return 0
	})
	return l.cmds
}

func (l *DisplayList) FillRect(r geom.Rect, radius int, c color.RGBA, depth float32) {
	l.add(Command{Kind: CmdFill, Rect: r, Radius: radius, Color: c, Depth: depth})
}

func (l *DisplayList) StrokeRect(r geom.Rect, width int, c color.RGBA, depth float32) {
	l.add(Command{Kind: CmdStroke, Rect: r, Width: width, Color: c, Depth: depth})
}

func (l *DisplayList) Text(s string, r geom.Rect, size int, align Align, c color.RGBA, depth float32) {
	if s == "" {
		return
	}
	l.add(Command{Kind: CmdText, Rect: r, Text: s, Size: size, Align: align, Color: c, Depth: depth})
}

func (l *DisplayList) PushClip(r geom.Rect) { l.clips = append(l.clips, clipState{rect: r, on: true}) }

func (l *DisplayList) PushNoClip() { l.clips = append(l.clips, clipState{}) }

func (l *DisplayList) PopClip() {
	if len(l.clips) > 0 {
		l.clips = l.clips[:len(l.clips)-1]
	}
}

func (l *DisplayList) add(c Command) {
	if c.Color.A == 0 {
		return
	}
	if n := len(l.clips); n > 0 && l.clips[n-1].on {
		c.Clip, c.Clipped = l.clips[n-1].rect, true
		if c.Rect.Intersect(c.Clip).Empty() {
			return
		}
	}
	l.cmds = append(l.cmds, c)
}
