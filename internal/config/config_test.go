package config

import (
	"context"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "#1e1e1e", cfg.Window.Background)
	assert.Equal(t, 30, cfg.Layout.MinPaneExtent)
	assert.Equal(t, 4, cfg.Layout.DragMargin)
	assert.Equal(t, 2, cfg.Layout.Inset)
	assert.Equal(t, 30, cfg.Layout.HeaderHeight)
	assert.Equal(t, 19, cfg.Layout.FooterHeight)
	assert.Equal(t, 200*time.Millisecond, cfg.DoubleClick())
	assert.Equal(t, BackendRaylib, cfg.Backend)
	assert.Equal(t, PresetEditor, cfg.Layout.Preset)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workbench.toml")
	writeFile(t, path, `
backend = "tcell"

[window]
title = "Editor"
background = "#102030"

[layout]
min_pane_extent = 50
default_pane = "properties"

[logging]
level = "debug"
format = "json"
`)

	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, BackendTerm, cfg.Backend)
	assert.Equal(t, "Editor", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Layout.MinPaneExtent)
	assert.Equal(t, path, m.File())

	win := cfg.RenderWindow()
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, win.Background)
	assert.Equal(t, "Editor", win.Title)

	opts := cfg.TreeOptions()
	assert.Equal(t, 50, opts.MinPaneExtent)
	assert.Equal(t, "properties", opts.DefaultPane)

	lc := cfg.LoggerConfig()
	assert.Equal(t, zerolog.DebugLevel, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[layout]\ndrag_margin = 6\n")
	t.Setenv("WORKBENCH_LAYOUT_DRAG_MARGIN", "9")
	t.Setenv("WORKBENCH_WINDOW_WIDTH", "1024")

	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 9, cfg.Layout.DragMargin)
	assert.Equal(t, 1024, cfg.Window.Width)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "absent.toml"), zerolog.Nop())
	require.NoError(t, err)
	assert.Error(t, m.Load())
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "backend = \"gtk\"\n")

	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	err = m.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"bad background", func(c *Config) { c.Window.Background = "grey" }},
		{"zero scale", func(c *Config) { c.Window.ScaleFactor = 0 }},
		{"zero min extent", func(c *Config) { c.Layout.MinPaneExtent = 0 }},
		{"negative inset", func(c *Config) { c.Layout.Inset = -1 }},
		{"zero double click", func(c *Config) { c.Input.DoubleClickMS = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad preset", func(c *Config) { c.Layout.Preset = "grid" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "config.toml"), zerolog.Nop())
	require.NoError(t, err)

	cfg := m.Get()
	cfg.Layout.Inset = 99
	assert.Equal(t, 2, m.Get().Layout.Inset)
}

func TestWatch_Reloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[layout]\nmin_pane_extent = 40\n")

	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var got atomic.Int64
	m.OnConfigChange(func(c *Config) { got.Store(int64(c.Layout.MinPaneExtent)) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()

	// The watcher registers asynchronously; keep rewriting until it sees a write.
	require.Eventually(t, func() bool {
		writeFile(t, path, "[layout]\nmin_pane_extent = 60\n")
		return got.Load() == 60
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, 60, m.Get().Layout.MinPaneExtent)

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_BadFileKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[layout]\ninset = 3\n")

	m, err := NewManager(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	writeFile(t, path, "[layout]\ninset = -5\n")
	assert.ErrorIs(t, m.reload(), ErrInvalid)
	assert.Equal(t, 3, m.Get().Layout.Inset)
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Workbench Configuration", doc["title"])
	assert.Contains(t, string(data), "min_pane_extent")
	assert.Contains(t, string(data), "double_click_ms")
}
