package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, "inkwell.db", cfg.Store.Path)
	assert.Equal(t, 0, cfg.Editor.HistoryLimit)
	assert.Equal(t, []string{"SUPERSCRIPT", "SUBSCRIPT"}, cfg.Editor.ExclusiveStyles)
	assert.True(t, cfg.Editor.ShowStatus)
	assert.Equal(t, "md", cfg.Export.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "inkwell.yaml", `
log:
  level: debug
  file: /tmp/inkwell.log
store:
  path: /var/lib/inkwell/docs.db
editor:
  history_limit: 50
  exclusive_styles: [BOLD, ITALIC]
  show_status: false
export:
  format: html
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/inkwell.log", cfg.Log.File)
	assert.Equal(t, "/var/lib/inkwell/docs.db", cfg.Store.Path)
	assert.Equal(t, 50, cfg.Editor.HistoryLimit)
	assert.Equal(t, []string{"BOLD", "ITALIC"}, cfg.Editor.ExclusiveStyles)
	assert.False(t, cfg.Editor.ShowStatus)
	assert.Equal(t, "html", cfg.Export.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "inkwell.json", `{"export": {"format": "html"}}`)
	t.Setenv("INKWELL_EXPORT_FORMAT", "raw")
	t.Setenv("INKWELL_STORE_PATH", "env.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "raw", cfg.Export.Format)
	assert.Equal(t, "env.db", cfg.Store.Path)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"format", `{"export": {"format": "pdf"}}`},
		{"level", `{"log": {"level": "loud"}}`},
		{"history", `{"editor": {"history_limit": -5}}`},
		{"empty store", `{"store": {"path": ""}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "inkwell.json", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
