// Package raylib is the desktop backend: it opens a raylib window, feeds mouse
// and keyboard state into the frame and replays display lists with raylib's
// immediate-mode primitives.
package raylib

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/render"
)

// RaylibRenderer implements render.Renderer on top of raylib.
type RaylibRenderer struct {
	config      render.WindowConfig
	scaleFactor float32
	cursor      input.Cursor
	log         zerolog.Logger
}

var _ render.Renderer = (*RaylibRenderer)(nil)

// NewRaylibRenderer creates a renderer; the window is opened by Init.
func NewRaylibRenderer(log zerolog.Logger) *RaylibRenderer {
	return &RaylibRenderer{
		scaleFactor: 1.0,
		cursor:      input.CursorNormal,
		log:         log.With().Str("component", "raylib").Logger(),
	}
}

// Init opens the window according to config.
func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.scaleFactor = float32(math.Max(1.0, float64(config.ScaleFactor)))

	r.log.Info().
		Int("width", config.Width).
		Int("height", config.Height).
		Str("title", config.Title).
		Float32("scale", r.scaleFactor).
		Msg("initializing window")

	rl.SetConfigFlags(configFlags(config))
	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib: InitWindow failed or window is not ready")
	}

	if config.Resizable {
		rl.SetWindowMinSize(config.MinWidth, config.MinHeight)
	}
	rl.SetTargetFPS(60)
	r.log.Debug().Msg("window ready")
	return nil
}

// ShouldClose reports whether the window has been asked to close.
func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

// PollEvents copies raylib's input state for this frame into state.
func (r *RaylibRenderer) PollEvents(state *input.FrameState) {
	if !rl.IsWindowReady() {
		return
	}

	// Nothing is drawn while minimized; avoid spinning.
	for rl.IsWindowMinimized() && !rl.WindowShouldClose() {
		rl.WaitTime(0.05)
		rl.PollInputEvents()
	}

	mouse := rl.GetMousePosition()
	state.MoveTo(r.toPixels(mouse.X, mouse.Y))

	for b, mb := range mouseButtons {
		switch {
		case rl.IsMouseButtonPressed(mb):
			state.SetButton(b, input.Press)
		case rl.IsMouseButtonReleased(mb):
			state.SetButton(b, input.Release)
		}
	}

	if wheel := rl.GetMouseWheelMoveV(); wheel.X != 0 || wheel.Y != 0 {
		state.AddScroll(float64(wheel.X), float64(wheel.Y))
	}

	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		state.TypeRune(rune(ch))
	}

	var mods input.Modifiers
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		mods |= input.ModShift
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrl {
		mods |= input.ModCtrl
	}
	state.SetModifiers(mods)
	state.PressKey(pressedKeys(ctrl))

	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	state.Resize(int(float32(w)/r.scaleFactor), int(float32(h)/r.scaleFactor))
}

// Present clears the window and replays list.
func (r *RaylibRenderer) Present(list *render.DisplayList) {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(r.config.Background))

	clipped := false
	var clip geom.Rect
	for _, cmd := range list.Commands() {
		if cmd.Clipped != clipped || (cmd.Clipped && cmd.Clip != clip) {
			if clipped {
				rl.EndScissorMode()
			}
			if cmd.Clipped {
				c := r.scaleRect(cmd.Clip)
				rl.BeginScissorMode(int32(c.X), int32(c.Y), int32(c.Width), int32(c.Height))
			}
			clipped, clip = cmd.Clipped, cmd.Clip
		}
		r.draw(cmd)
	}
	if clipped {
		rl.EndScissorMode()
	}

	rl.EndDrawing()
}

// SetCursor switches the OS cursor when the requested shape changes.
func (r *RaylibRenderer) SetCursor(c input.Cursor) {
	if c == r.cursor {
		return
	}
	r.cursor = c
	rl.SetMouseCursor(cursorShape(c))
}

// Cleanup closes the window.
func (r *RaylibRenderer) Cleanup() {
	if rl.IsWindowReady() {
		r.log.Info().Msg("closing window")
		rl.CloseWindow()
		return
	}
	r.log.Debug().Msg("window was already closed or not initialized")
}

func (r *RaylibRenderer) draw(cmd render.Command) {
	rect := r.scaleRect(cmd.Rect)
	rec := rl.NewRectangle(float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height))
	col := toColor(cmd.Color)

	switch cmd.Kind {
	case render.CmdFill:
		if cmd.Radius > 0 {
			rl.DrawRectangleRounded(rec, roundness(rect, r.scaled(cmd.Radius)), 6, col)
			return
		}
		rl.DrawRectangle(int32(rect.X), int32(rect.Y), int32(rect.Width), int32(rect.Height), col)
	case render.CmdStroke:
		rl.DrawRectangleLinesEx(rec, float32(max(r.scaled(cmd.Width), 1)), col)
	case render.CmdText:
		size := int32(r.scaled(max(cmd.Size, render.BaseFontSize)))
		x, y := textOrigin(rect, rl.MeasureText(cmd.Text, size), size, cmd.Align)
		rl.DrawText(cmd.Text, x, y, size, col)
	}
}
