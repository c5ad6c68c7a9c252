package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pdfchat", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 1_000_000, cfg.LLM.ContextWindow)
	assert.Equal(t, "https://api.ocr.space/parse/image", cfg.OCR.APIURL)
	assert.Equal(t, 10, cfg.Upload.MaxPDFMB)
	assert.Equal(t, int64(100), cfg.Upload.MinFileBytes)
	assert.Equal(t, 30, cfg.Session.TimeoutMinutes)
	assert.Equal(t, 5, cfg.Session.SweepIntervalMinutes)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
port = 9000

[session]
timeout_minutes = 45
`), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, 45, cfg.Session.TimeoutMinutes)
	// Untouched sections keep their defaults.
	assert.Equal(t, "pdfchat", cfg.App.Name)
	assert.Equal(t, 10, cfg.Upload.MaxPDFMB)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[llm]
model = "from-file"
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LLM_MODEL", "from-env")
	t.Setenv("SESSION_TIMEOUT_MINUTES", "7")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.Model)
	assert.Equal(t, 7, cfg.Session.TimeoutMinutes)
	assert.Equal(t, 0.2, cfg.LLM.Temperature)
}

func TestInvalidEnvValueFallsBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestDerivedValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, int64(10<<20), cfg.MaxPDFBytes())
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout())
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval())
	assert.Equal(t, 60*time.Second, cfg.OCRTimeout())
}
