package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.WarnLevel, Format: "json", Out: &buf})

	log.Info().Msg("dropped")
	log.Warn().Str("pane", "outliner").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "outliner", entry["pane"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.DebugLevel, Format: "console", Out: &buf})

	log.Debug().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "DBG")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, "console", f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestContextComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: zerolog.InfoLevel, Format: "json", Out: &buf})

	ctx := WithContext(context.Background(), Component(log, "tree"))
	FromContext(ctx).Info().Msg("split")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "tree", entry["component"])
}

func TestFromContext_NoLogger(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}
