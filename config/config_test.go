package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_mergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	contents := `
log-level = "warn"

[output]
path = "out.c"
annotate = true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "out.c", cfg.OutputPath)
	assert.True(t, cfg.AnnotateC)
}

func TestLoad_malformedTomlIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("this is not = = toml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
