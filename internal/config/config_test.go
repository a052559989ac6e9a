package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvDataDir, EnvInterval, EnvAutosaveEvery, EnvPowerSupplyRoot, EnvTimezone, EnvDebug} {
		t.Setenv(key, "")
	}
	// Keep Load away from any .env in the package directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5*time.Second, cfg.SampleInterval)
	assert.Equal(t, 60, cfg.AutosaveEvery)
	assert.Equal(t, "/sys/class/power_supply", cfg.PowerSupplyRoot)
	assert.Equal(t, "24h", cfg.TimeFormat)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "bathis"), DefaultDataDir())

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ".local", "share", "bathis"), DefaultDataDir())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataDir, "/var/lib/bathis")
	t.Setenv(EnvInterval, "2s")
	t.Setenv(EnvAutosaveEvery, "10")
	t.Setenv(EnvPowerSupplyRoot, "/tmp/fake_sysfs")
	t.Setenv(EnvTimezone, "UTC")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/bathis", cfg.DataDir)
	assert.Equal(t, 2*time.Second, cfg.SampleInterval)
	assert.Equal(t, 10, cfg.AutosaveEvery)
	assert.Equal(t, "/tmp/fake_sysfs", cfg.PowerSupplyRoot)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidEnv(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad interval", EnvInterval, "soon"},
		{"bad autosave", EnvAutosaveEvery, "often"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_InvalidBoolIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDebug, "maybe")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		expected error
	}{
		{"zero interval", func(c *Config) { c.SampleInterval = 0 }, ErrInvalidInterval},
		{"negative interval", func(c *Config) { c.SampleInterval = -time.Second }, ErrInvalidInterval},
		{"zero autosave", func(c *Config) { c.AutosaveEvery = 0 }, ErrInvalidAutosave},
		{"bad time format", func(c *Config) { c.TimeFormat = "36h" }, ErrInvalidTimeFormat},
		{"refresh too slow", func(c *Config) { c.UIRefreshRate = 0.01 }, ErrInvalidRefreshRate},
		{"refresh too fast", func(c *Config) { c.UIRefreshRate = 60 }, ErrInvalidRefreshRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.expected)
		})
	}
}

func TestValidate_FillsEmptyFields(t *testing.T) {
	cfg := Default()
	cfg.DataDir = ""
	cfg.Timezone = ""

	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "Local", cfg.Timezone)
}

func TestUIRefreshInterval(t *testing.T) {
	cfg := Default()
	cfg.UIRefreshRate = 4
	assert.Equal(t, 250*time.Millisecond, cfg.UIRefreshInterval())
}
