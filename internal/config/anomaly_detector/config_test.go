package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("CONTAMINATION", "0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "datasets", cfg.InputDir)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 0.1, cfg.Contamination)
	assert.Equal(t, []string{"current", "temperature"}, cfg.Quantities)
	assert.Equal(t, []string{"csv", "xlsx"}, cfg.InputFormats)
}

func TestLoad_InputFormats(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("INPUT_FORMATS", "xlsx")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"xlsx"}, cfg.InputFormats)
}
