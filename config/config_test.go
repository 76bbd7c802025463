package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sinpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.IncludeFinale)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, "seed: ABC\npreset: chaotic\ninclude_finale: false\nlog_level: debug\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC", cfg.Seed)
	assert.Equal(t, "chaotic", cfg.Preset)
	assert.False(t, cfg.IncludeFinale)
	assert.Equal(t, "saves", cfg.SaveDir, "unset keys keep their default")

	t.Setenv(EnvPrefix+"SEED", "#12")
	t.Setenv(EnvPrefix+"STRICT_VALIDATION", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#12", cfg.Seed)
	assert.True(t, cfg.StrictValidation)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "preset: [nope"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "preset: reckless\n"))
	assert.ErrorContains(t, err, "unknown preset")

	_, err = Load(writeConfig(t, "log_level: loud\n"))
	assert.ErrorContains(t, err, "log_level")

	t.Setenv(EnvPrefix+"INCLUDE_FINALE", "maybe")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvPrefix+"INCLUDE_FINALE")
}
