package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/waozixyz/workbench/geom"
	"github.com/waozixyz/workbench/interact"
	"github.com/waozixyz/workbench/internal/app"
	"github.com/waozixyz/workbench/internal/config"
	"github.com/waozixyz/workbench/internal/panes"
	"github.com/waozixyz/workbench/workspace"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newLayoutCmd(e *env) *cobra.Command {
	var width, height int
	var preset string
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the pane rectangles of a layout preset",
		Long:  `Lay out a preset for a window size without opening a window and print every pane's rectangle.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := e.cfg
			if preset != "" {
				cfg.Layout.Preset = preset
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if width <= 0 {
				width = cfg.Window.Width
			}
			if height <= 0 {
				height = cfg.Window.Height
			}
			out, err := renderLayout(cfg, geom.R(0, 0, width, height))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Window width (default from config)")
	cmd.Flags().IntVar(&height, "height", 0, "Window height (default from config)")
	cmd.Flags().StringVar(&preset, "preset", "", "Layout preset: single or editor")
	return cmd
}

// renderLayout builds the configured tree headless and tabulates its leaves.
func renderLayout(cfg *config.Config, window geom.Rect) (string, error) {
	types := workspace.NewPaneRegistry()
	if err := panes.Register(types); err != nil {
		return "", err
	}
	tree, err := workspace.NewTree(types, interact.NewRegistry(zerolog.Nop()),
		panes.Models(panes.DemoScene()), cfg.TreeOptions(), zerolog.Nop())
	if err != nil {
		return "", err
	}
	defer tree.Close()
	if err := app.ApplyPreset(tree, cfg.Layout.Preset); err != nil {
		return "", err
	}
	vp := app.TreeViewport(cfg, window)
	tree.Recompute(vp)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("NODE", "DEPTH", "PANE", "RECT", "CONTENT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	tree.Walk(func(id workspace.NodeID, depth int) bool {
		if !tree.IsLeaf(id) {
			return true
		}
		t.Row(
			fmt.Sprint(int(id)),
			fmt.Sprint(depth),
			tree.PaneType(id),
			tree.Rect(id).String(),
			tree.ContentRect(id).String(),
		)
		return true
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s layout in %dx%d (tree %s)",
		cfg.Layout.Preset, window.Width, window.Height, vp)))
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String(), nil
}
