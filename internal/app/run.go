package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/waozixyz/workbench/internal/config"
)

// Watcher delivers configuration changes from its own goroutine.
type Watcher interface {
	OnConfigChange(callback func(*config.Config))
	Watch(ctx context.Context) error
}

// Run initializes the renderer and runs frames until the window closes or
// ctx is done. The app is closed when Run returns, whether or not Init
// succeeded. The loop stays on the calling goroutine, which window
// backends require to be the main thread. A non-nil w is watched alongside;
// its changes reach the frame thread through the queue.
func (a *App) Run(ctx context.Context, w Watcher) error {
	defer a.Close()
	if err := a.renderer.Init(a.cfg.RenderWindow()); err != nil {
		a.renderer.Cleanup()
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	defer a.renderer.Cleanup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if w != nil {
		w.OnConfigChange(func(cfg *config.Config) {
			a.queue.Post(func() { a.ApplyConfig(cfg) })
		})
		g.Go(func() error { return w.Watch(gctx) })
	}

	a.log.Info().Msg("entering main loop")
	frames := 0
	for !a.renderer.ShouldClose() && gctx.Err() == nil {
		a.Frame()
		frames++
	}
	a.log.Info().Int("frames", frames).Msg("exiting")

	cancel()
	return g.Wait()
}
