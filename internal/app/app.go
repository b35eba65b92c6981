// Package app wires the frame loop: the host renderer feeds input, the
// dispatcher resolves pointer ownership, and the pane tree draws into a
// display list the renderer presents.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/internal/config"
	"github.com/waozixyz/workbench/internal/logging"
	"github.com/waozixyz/workbench/internal/panes"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/widget"
	"github.com/waozixyz/workbench/workspace"
)

// ErrNoRenderer is returned by New without a renderer.
var ErrNoRenderer = errors.New("app: no renderer")

// Options configure New.
type Options struct {
	Renderer render.Renderer
	// Config defaults to config.DefaultConfig.
	Config *config.Config
	// Panes must hold every pane type the layout preset and the default pane
	// name. Nil registers the stock panes.
	Panes *workspace.PaneRegistry
	// Models defaults to a demo scene.
	Models workspace.Models
	Log    zerolog.Logger
	// Now is a monotonic clock; it defaults to the time since New.
	Now func() time.Duration
}

// App is the application context. It belongs to the frame thread; other
// goroutines reach it through Queue.
type App struct {
	cfg      *config.Config
	renderer render.Renderer
	reg      *interact.Registry
	disp     *interact.Dispatcher
	tree     *workspace.Tree
	state    *input.FrameState
	list     *render.DisplayList
	queue    *Queue
	theme    widget.Theme
	chrome   *chrome
	now      func() time.Duration
	log      zerolog.Logger
}

// New builds the application and its pane tree. The renderer is not
// initialized until Run.
func New(opts Options) (*App, error) {
	if opts.Renderer == nil {
		return nil, ErrNoRenderer
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	types := opts.Panes
	if types == nil {
		types = workspace.NewPaneRegistry()
		if err := panes.Register(types); err != nil {
			return nil, err
		}
	}
	models := opts.Models
	if models == nil {
		models = panes.Models(panes.DemoScene())
	}
	now := opts.Now
	if now == nil {
		start := time.Now()
		now = func() time.Duration { return time.Since(start) }
	}

	a := &App{
		cfg:      cfg,
		renderer: opts.Renderer,
		reg:      interact.NewRegistry(opts.Log),
		state:    input.NewFrameState(cfg.Window.Width, cfg.Window.Height),
		list:     &render.DisplayList{},
		queue:    &Queue{},
		theme:    widget.DefaultTheme(),
		now:      now,
		log:      logging.Component(opts.Log, "app"),
	}
	a.disp = interact.NewDispatcher(a.reg, opts.Log)
	a.state.DoubleClickWindow = cfg.DoubleClick()

	tree, err := workspace.NewTree(types, a.reg, models, cfg.TreeOptions(), opts.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to build pane tree: %w", err)
	}
	a.tree = tree
	if err := ApplyPreset(tree, cfg.Layout.Preset); err != nil {
		tree.Close()
		return nil, err
	}
	a.chrome = newChrome(a)
	return a, nil
}

// ApplyPreset splits a fresh tree into a named arrangement.
func ApplyPreset(t *workspace.Tree, preset string) error {
	switch preset {
	case config.PresetSingle:
		return nil
	case config.PresetEditor:
		// Outliner on the left, viewport over properties on the right.
		left, right, err := t.Split(t.Root(), workspace.SplitHorizontal, 0.25)
		if err != nil {
			return err
		}
		top, bottom, err := t.Split(right, workspace.SplitVertical, 0.7)
		if err != nil {
			return err
		}
		for id, key := range map[workspace.NodeID]string{
			left:   panes.KeyOutliner,
			top:    panes.KeyViewport,
			bottom: panes.KeyProperties,
		} {
			if err := t.SetPaneType(id, key); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown layout preset %q", config.ErrInvalid, preset)
	}
}

// Tree returns the pane tree.
func (a *App) Tree() *workspace.Tree { return a.tree }

// Input returns the frame input state.
func (a *App) Input() *input.FrameState { return a.state }

// Queue returns the frame-thread work queue.
func (a *App) Queue() *Queue { return a.queue }

// Config returns the configuration in effect.
func (a *App) Config() *config.Config { return a.cfg }

// TreeViewport is the window area between the header and footer bands.
func (a *App) TreeViewport() geom.Rect { return TreeViewport(a.cfg, a.state.Viewport) }

// TreeViewport returns the part of window left to the pane tree once cfg's
// header and footer bands are taken off.
func TreeViewport(cfg *config.Config, window geom.Rect) geom.Rect {
	top := min(cfg.Layout.HeaderHeight, window.Height)
	h := max(window.Height-top-cfg.Layout.FooterHeight, 0)
	return geom.R(window.X, window.Y+top, window.Width, h)
}

// Frame runs one iteration of the loop: poll input, run queued work,
// dispatch pointer events against last frame's bounds, draw, present.
func (a *App) Frame() {
	a.renderer.PollEvents(a.state)
	a.state.Begin(a.now())
	if n := a.queue.Drain(); n > 0 {
		a.log.Trace().Int("tasks", n).Msg("drained queue")
	}
	res := a.disp.Dispatch(a.state)
	if res.Hovered > 0 {
		a.log.Trace().Int("hovered", res.Hovered).Stringer("pointer", a.state.Pointer).Msg("dispatch")
	}

	a.list.Reset()
	ctx := &widget.Context{Painter: a.list, Input: a.state, Theme: a.theme}
	a.chrome.draw(ctx)
	a.tree.Draw(ctx, a.TreeViewport())
	a.chrome.track(a.state.Pointer)

	a.renderer.Present(a.list)
	a.renderer.SetCursor(a.state.Cursor)
	a.state.ResetEdges()
}

// ApplyConfig switches to cfg. Call it on the frame thread; Run posts it
// through the queue on every reload.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.cfg = cfg
	a.tree.SetOptions(cfg.TreeOptions())
	a.state.DoubleClickWindow = cfg.DoubleClick()
	a.log = a.log.Level(cfg.LoggerConfig().Level)
	a.log.Info().
		Int("min_pane_extent", cfg.Layout.MinPaneExtent).
		Int("drag_margin", cfg.Layout.DragMargin).
		Msg("config applied")
}

// Close releases the pane tree and every chrome slot.
func (a *App) Close() {
	a.chrome.close()
	a.tree.Close()
}
