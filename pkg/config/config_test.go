package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	os.Unsetenv("SENTILENS_DATA_DIR")
	os.Unsetenv("SENTILENS_OUTPUT_DIR")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.True(t, cfg.ChartsEnabled)
	assert.True(t, cfg.WorkbookEnabled)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SENTILENS_DATA_DIR", "/srv/in")
	t.Setenv("SENTILENS_OUTPUT_DIR", "/srv/out")
	t.Setenv("SENTILENS_CHARTS", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, filepath.Join("/srv/in", SentimentFile), cfg.SentimentPath())
	assert.Equal(t, filepath.Join("/srv/in", TradesFile), cfg.TradesPath())
	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.False(t, cfg.ChartsEnabled)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidBoolFallsBackToDefault(t *testing.T) {
	t.Setenv("SENTILENS_WORKBOOK", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.WorkbookEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "unknown env", mutate: func(c *Config) { c.Env = "qa" }, wantErr: "Env: failed oneof"},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "DataDir: failed required"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LogFormat: failed oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "qa")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
