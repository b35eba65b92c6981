// Package cli provides the command-line interface for workbench.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/waozixyz/workbench/internal/config"
	"github.com/waozixyz/workbench/internal/logging"
)

// env is what every subcommand gets once the persistent flags are parsed.
type env struct {
	configPath string
	logLevel   string

	manager *config.Manager
	cfg     *config.Config
	log     zerolog.Logger
}

// load reads the configuration and builds the logger. The --log-level flag
// wins over the file.
func (e *env) load(cmd *cobra.Command) error {
	boot := logging.New(logging.DefaultConfig())
	m, err := config.NewManager(e.configPath, boot)
	if err != nil {
		return err
	}
	if err := m.Load(); err != nil {
		return err
	}
	e.manager = m
	e.cfg = m.Get()

	lc := e.cfg.LoggerConfig()
	lc.Out = cmd.ErrOrStderr()
	if e.logLevel != "" {
		lvl, err := logging.ParseLevel(e.logLevel)
		if err != nil {
			return err
		}
		lc.Level = lvl
	}
	e.log = logging.New(lc)
	if f := m.File(); f != "" {
		e.log.Debug().Str("file", f).Msg("config loaded")
	}
	return nil
}

// NewRootCmd creates the root command for workbench.
func NewRootCmd(version string) *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:           "workbench",
		Short:         "A pane-based editor workbench",
		Long:          `An editor-style tool window split into resizable panes, drawn with raylib or in a terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.load(cmd); err != nil {
				return err
			}
			cmd.SetContext(logging.WithContext(cmd.Context(), e.log))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// No config needed to print a version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "workbench %s\n", version)
		},
	}

	rootCmd.AddCommand(
		newRunCmd(e),
		newLayoutCmd(e),
		newSchemaCmd(),
		versionCmd,
	)
	return rootCmd
}
