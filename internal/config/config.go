// Package config loads workbench settings from a TOML file and WORKBENCH_*
// environment variables, and reloads them when the file changes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/waozixyz/workbench/input"
	"github.com/waozixyz/workbench/internal/logging"
	"github.com/waozixyz/workbench/render"
	"github.com/waozixyz/workbench/workspace"
)

const (
	// EnvPrefix prefixes every environment override, e.g.
	// WORKBENCH_LAYOUT_MIN_PANE_EXTENT.
	EnvPrefix = "WORKBENCH"

	fileName = "config"
	fileType = "toml"
)

// Backend names.
const (
	BackendRaylib = "raylib"
	BackendTerm   = "term"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window" json:"window"`
	Layout  LayoutConfig  `mapstructure:"layout" json:"layout"`
	Input   InputConfig   `mapstructure:"input" json:"input"`
	Backend string        `mapstructure:"backend" json:"backend" jsonschema:"enum=raylib,enum=term,default=raylib"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// WindowConfig sizes and styles the host window.
type WindowConfig struct {
	Width       int     `mapstructure:"width" json:"width" jsonschema:"minimum=1,default=800"`
	Height      int     `mapstructure:"height" json:"height" jsonschema:"minimum=1,default=600"`
	MinWidth    int     `mapstructure:"min_width" json:"min_width" jsonschema:"minimum=0,default=300"`
	MinHeight   int     `mapstructure:"min_height" json:"min_height" jsonschema:"minimum=0,default=200"`
	Title       string  `mapstructure:"title" json:"title"`
	Resizable   bool    `mapstructure:"resizable" json:"resizable"`
	Maximize    bool    `mapstructure:"maximize" json:"maximize"`
	VSync       bool    `mapstructure:"vsync" json:"vsync"`
	Samples     int     `mapstructure:"samples" json:"samples" jsonschema:"enum=0,enum=2,enum=4,enum=8"`
	ScaleFactor float32 `mapstructure:"scale_factor" json:"scale_factor" jsonschema:"exclusiveMinimum=0,default=1"`
	Background  string  `mapstructure:"background" json:"background" jsonschema:"pattern=^#[0-9a-fA-F]{6}$"`
}

// LayoutConfig tunes the pane tree and the window chrome around it.
type LayoutConfig struct {
	MinPaneExtent int    `mapstructure:"min_pane_extent" json:"min_pane_extent" jsonschema:"minimum=1,default=30"`
	DragMargin    int    `mapstructure:"drag_margin" json:"drag_margin" jsonschema:"minimum=0,default=4"`
	Inset         int    `mapstructure:"inset" json:"inset" jsonschema:"minimum=0,default=2"`
	HeaderHeight  int    `mapstructure:"header_height" json:"header_height" jsonschema:"minimum=0,default=30"`
	FooterHeight  int    `mapstructure:"footer_height" json:"footer_height" jsonschema:"minimum=0,default=19"`
	DefaultPane   string `mapstructure:"default_pane" json:"default_pane"`
	HideSelector  bool   `mapstructure:"hide_selector" json:"hide_selector"`
	// Preset is the split arrangement built at startup.
	Preset string `mapstructure:"preset" json:"preset" jsonschema:"enum=single,enum=editor,default=editor"`
}

// Layout presets.
const (
	PresetSingle = "single"
	PresetEditor = "editor"
)

// InputConfig holds pointer settings.
type InputConfig struct {
	DoubleClickMS int `mapstructure:"double_click_ms" json:"double_click_ms" jsonschema:"minimum=1,default=200"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=off"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	w := render.DefaultWindowConfig()
	l := workspace.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Width:       w.Width,
			Height:      w.Height,
			MinWidth:    w.MinWidth,
			MinHeight:   w.MinHeight,
			Title:       w.Title,
			Resizable:   w.Resizable,
			Maximize:    w.Maximize,
			VSync:       w.VSync,
			Samples:     w.Samples,
			ScaleFactor: w.ScaleFactor,
			Background:  colorful.Color{R: float64(w.Background.R) / 255, G: float64(w.Background.G) / 255, B: float64(w.Background.B) / 255}.Hex(),
		},
		Layout: LayoutConfig{
			MinPaneExtent: l.MinPaneExtent,
			DragMargin:    l.DragMargin,
			Inset:         l.Inset,
			HeaderHeight:  30,
			FooterHeight:  19,
			DefaultPane:   "outliner",
			Preset:        PresetEditor,
		},
		Input: InputConfig{
			DoubleClickMS: int(input.DefaultDoubleClick / time.Millisecond),
		},
		Backend: BackendRaylib,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate normalizes enum fields and rejects values the frame loop cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", BackendRaylib:
		c.Backend = BackendRaylib
	case BackendTerm, "tcell":
		c.Backend = BackendTerm
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}

	switch strings.ToLower(c.Layout.Preset) {
	case "", PresetEditor:
		c.Layout.Preset = PresetEditor
	case PresetSingle:
		c.Layout.Preset = PresetSingle
	default:
		return fmt.Errorf("%w: unknown layout preset %q", ErrInvalid, c.Layout.Preset)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.ScaleFactor <= 0 {
		return fmt.Errorf("%w: scale factor %v", ErrInvalid, c.Window.ScaleFactor)
	}
	if _, err := colorful.Hex(c.Window.Background); err != nil {
		return fmt.Errorf("%w: background %q: %v", ErrInvalid, c.Window.Background, err)
	}
	if c.Layout.MinPaneExtent <= 0 {
		return fmt.Errorf("%w: min pane extent %d", ErrInvalid, c.Layout.MinPaneExtent)
	}
	if c.Layout.DragMargin < 0 || c.Layout.Inset < 0 || c.Layout.HeaderHeight < 0 || c.Layout.FooterHeight < 0 {
		return fmt.Errorf("%w: negative layout margin", ErrInvalid)
	}
	if c.Input.DoubleClickMS <= 0 {
		return fmt.Errorf("%w: double click window %dms", ErrInvalid, c.Input.DoubleClickMS)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.Logging.Format = format
	return nil
}

// RenderWindow converts the window section for a renderer's Init.
func (c *Config) RenderWindow() render.WindowConfig {
	w := render.DefaultWindowConfig()
	w.Width, w.Height = c.Window.Width, c.Window.Height
	w.MinWidth, w.MinHeight = c.Window.MinWidth, c.Window.MinHeight
	w.Title = c.Window.Title
	w.Resizable = c.Window.Resizable
	w.Maximize = c.Window.Maximize
	w.VSync = c.Window.VSync
	w.Samples = c.Window.Samples
	w.ScaleFactor = c.Window.ScaleFactor
	if bg, err := colorful.Hex(c.Window.Background); err == nil {
		r, g, b := bg.RGB255()
		w.Background = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return w
}

// TreeOptions converts the layout section for workspace.NewTree.
func (c *Config) TreeOptions() workspace.Options {
	return workspace.Options{
		MinPaneExtent: c.Layout.MinPaneExtent,
		DragMargin:    c.Layout.DragMargin,
		Inset:         c.Layout.Inset,
		DefaultPane:   c.Layout.DefaultPane,
		HideSelector:  c.Layout.HideSelector,
	}
}

// DoubleClick returns the double-click window.
func (c *Config) DoubleClick() time.Duration {
	return time.Duration(c.Input.DoubleClickMS) * time.Millisecond
}

// LoggerConfig converts the logging section. Invalid values fall back to the
// defaults; Validate reports them.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	if lvl, err := logging.ParseLevel(c.Logging.Level); err == nil {
		cfg.Level = lvl
	}
	if f, err := logging.ParseFormat(c.Logging.Format); err == nil {
		cfg.Format = f
	}
	return cfg
}

// Manager handles configuration loading, watching and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	path      string
	log       zerolog.Logger
	mu        sync.RWMutex
	callbacks []func(*Config)
}

// NewManager creates a manager. An empty path searches the user config
// directory and then the working directory for config.toml.
func NewManager(path string, log zerolog.Logger) (*Manager, error) {
	v := viper.New()
	v.SetConfigType(fileType)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		dir, err := Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{
		viper: v,
		path:  path,
		log:   logging.Component(log, "config"),
	}, nil
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "workbench"), nil
}

// Load reads the configuration file, if any, and environment overrides.
// Without a file the defaults apply; an explicit path that does not exist is
// an error.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		m.log.Debug().Msg("no config file, using defaults")
	}

	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	cfg := *m.config
	return &cfg
}

// File returns the config file in use, or "" when running on defaults.
func (m *Manager) File() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.ConfigFileUsed()
}

// OnConfigChange registers a callback run after every successful reload.
// Callbacks run on the watcher goroutine.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload re-reads the file and notifies callbacks. A file that fails to parse
// or validate keeps the previous configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := m.decode()
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = cfg
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	for _, callback := range callbacks {
		c := *cfg
		callback(&c)
	}
	return nil
}

// decode must be called with the lock held.
func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults sets default configuration values in viper.
func (m *Manager) setDefaults() {
	d := DefaultConfig()

	m.viper.SetDefault("window.width", d.Window.Width)
	m.viper.SetDefault("window.height", d.Window.Height)
	m.viper.SetDefault("window.min_width", d.Window.MinWidth)
	m.viper.SetDefault("window.min_height", d.Window.MinHeight)
	m.viper.SetDefault("window.title", d.Window.Title)
	m.viper.SetDefault("window.resizable", d.Window.Resizable)
	m.viper.SetDefault("window.maximize", d.Window.Maximize)
	m.viper.SetDefault("window.vsync", d.Window.VSync)
	m.viper.SetDefault("window.samples", d.Window.Samples)
	m.viper.SetDefault("window.scale_factor", d.Window.ScaleFactor)
	m.viper.SetDefault("window.background", d.Window.Background)

	m.viper.SetDefault("layout.min_pane_extent", d.Layout.MinPaneExtent)
	m.viper.SetDefault("layout.drag_margin", d.Layout.DragMargin)
	m.viper.SetDefault("layout.inset", d.Layout.Inset)
	m.viper.SetDefault("layout.header_height", d.Layout.HeaderHeight)
	m.viper.SetDefault("layout.footer_height", d.Layout.FooterHeight)
	m.viper.SetDefault("layout.default_pane", d.Layout.DefaultPane)
	m.viper.SetDefault("layout.hide_selector", d.Layout.HideSelector)
	m.viper.SetDefault("layout.preset", d.Layout.Preset)

	m.viper.SetDefault("input.double_click_ms", d.Input.DoubleClickMS)

	m.viper.SetDefault("backend", d.Backend)

	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
}
