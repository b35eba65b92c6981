package render

import (
	"image/color"

	"github.com/waozixyz/workbench/input"
)

// WindowConfig holds application-level window settings.
type WindowConfig struct {
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	Title     string
	Resizable bool
	Maximize  bool
	VSync     bool
	// Samples is the MSAA sample count; 0 disables multisampling.
	Samples     int
	ScaleFactor float32
	Background  color.RGBA
}

// Renderer is the host backend: it owns the window, turns platform input into
// a FrameState and presents the frame's display list.
type Renderer interface {
	// Init creates the window.
	Init(config WindowConfig) error

	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool

	// PollEvents records this frame's platform input into state. It may block
	// while the window is minimized.
	PollEvents(state *input.FrameState)

	// Present draws list to the screen.
	Present(list *DisplayList)

	// SetCursor applies the cursor shape requested during the frame.
	SetCursor(c input.Cursor)

	// Cleanup releases the window and any backend resources.
	Cleanup()
}

// DefaultWindowConfig returns the window used when no configuration is given.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:       800,
		Height:      600,
		MinWidth:    300,
		MinHeight:   200,
		Title:       "Workbench",
		Resizable:   true,
		Maximize:    false,
		VSync:       true,
		Samples:     4,
		ScaleFactor: 1.0,
		Background:  color.RGBA{R: 30, G: 30, B: 30, A: 255},
	}
}
