package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/waozixyz/workbench/internal/app"
	"github.com/waozixyz/workbench/internal/config"
	"github.com/waozixyz/workbench/internal/logging"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/render/raylib"
	"github.com/waozixyz/workbench/render/term"
)

func newRunCmd(e *env) *cobra.Command {
	var backend string
	var watch bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the workbench window",
		Long:  `Open the workbench with the configured layout preset. The config file is reloaded when it changes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := e.cfg
			if backend != "" {
				cfg.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			log := *logging.FromContext(cmd.Context())
			if cfg.Backend == config.BackendTerm {
				// Log lines would land on the screen the backend draws.
				log = zerolog.Nop()
			}
			r, err := newRenderer(cfg.Backend, log)
			if err != nil {
				return err
			}

			a, err := app.New(app.Options{Renderer: r, Config: cfg, Log: log})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var w app.Watcher
			if watch {
				w = e.manager
			}
			log.Info().Str("backend", cfg.Backend).Str("preset", cfg.Layout.Preset).Msg("starting")
			return a.Run(ctx, w)
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "Renderer backend: raylib or term")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload the config file when it changes")
	return cmd
}

// newRenderer builds the named backend.
func newRenderer(backend string, log zerolog.Logger) (render.Renderer, error) {
	switch backend {
	case config.BackendRaylib:
		return raylib.NewRaylibRenderer(log), nil
	case config.BackendTerm:
		return term.NewTermRenderer(nil, log), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, backend)
	}
}

