package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waozixyz/workbench/internal/config"
	"github.com/waozixyz/workbench/render/raylib"
	"github.com/waozixyz/workbench/render/term"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func configFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "workbench test\n", out)
}

func TestLayout_EditorPreset(t *testing.T) {
	path := configFile(t, "[logging]\nlevel = \"off\"\n")
	out, err := execute(t, "--config", path, "layout", "--width", "800", "--height", "600")
	require.NoError(t, err)

	assert.Contains(t, out, "editor layout in 800x600")
	assert.Contains(t, out, "outliner")
	assert.Contains(t, out, "viewport")
	assert.Contains(t, out, "properties")
	assert.Contains(t, out, "{0,30 200x551}")
	assert.Contains(t, out, "{2,32 196x547}")
}

func TestLayout_SinglePresetFromFile(t *testing.T) {
	path := configFile(t, "[layout]\npreset = \"single\"\nheader_height = 0\nfooter_height = 0\n")
	out, err := execute(t, "--config", path, "--log-level", "off", "layout", "--width", "640", "--height", "480")
	require.NoError(t, err)

	assert.Contains(t, out, "single layout")
	assert.Contains(t, out, "{0,0 640x480}")
	assert.NotContains(t, out, "viewport")
}

func TestLayout_BadPreset(t *testing.T) {
	path := configFile(t, "")
	_, err := execute(t, "--config", path, "--log-level", "off", "layout", "--preset", "grid")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestBadLogLevel(t *testing.T) {
	path := configFile(t, "")
	_, err := execute(t, "--config", path, "--log-level", "chatty", "layout")
	assert.Error(t, err)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "layout")
	assert.Error(t, err)
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, `"min_pane_extent"`)
	assert.Contains(t, out, `"backend"`)
}

func TestNewRenderer(t *testing.T) {
	r, err := newRenderer(config.BackendRaylib, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &raylib.RaylibRenderer{}, r)

	r, err = newRenderer(config.BackendTerm, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &term.TermRenderer{}, r)

	_, err = newRenderer("gtk", zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrInvalid)
}
