// Package config holds runtime settings for the monitor and recorder.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/core/constants"
)

// Environment variables recognised by Load
const (
	EnvDataDir         = "BATHIS_DATA_DIR"
	EnvInterval        = "BATHIS_INTERVAL"
	EnvAutosaveEvery   = "BATHIS_AUTOSAVE_EVERY"
	EnvPowerSupplyRoot = "BATHIS_POWER_SUPPLY_ROOT"
	EnvTimezone        = "BATHIS_TIMEZONE"
	EnvDebug           = "BATHIS_DEBUG"
)

const dataDirName = "bathis"

var (
	ErrInvalidInterval    = errors.New("sample interval must be positive")
	ErrInvalidAutosave    = errors.New("autosave cadence must be at least 1 sample")
	ErrInvalidTimeFormat  = errors.New("time format must be 12h or 24h")
	ErrInvalidRefreshRate = errors.New("refresh rate out of range")
)

// Config contains the monitor settings
type Config struct {
	// Storage
	DataDir string

	// Sampling
	SampleInterval  time.Duration
	AutosaveEvery   int
	PowerSupplyRoot string

	// Display settings
	Timezone      string
	TimeFormat    string
	UIRefreshRate float64

	// Logging
	LogLevel string
	Debug    bool
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DataDir:         DefaultDataDir(),
		SampleInterval:  constants.DefaultSampleInterval,
		AutosaveEvery:   constants.DefaultAutosaveEvery,
		PowerSupplyRoot: battery.DefaultPowerSupplyRoot,
		Timezone:        "Local",
		TimeFormat:      "24h",
		UIRefreshRate:   constants.DefaultUIRefreshRate,
		LogLevel:        "info",
	}
}

// DefaultDataDir is $XDG_DATA_HOME/bathis, falling back to ~/.local/share/bathis
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, dataDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dataDirName
	}
	return filepath.Join(home, ".local", "share", dataDirName)
}

// Load returns defaults overridden by an optional .env file and BATHIS_* variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	cfg.DataDir = getEnv(EnvDataDir, cfg.DataDir)
	cfg.PowerSupplyRoot = getEnv(EnvPowerSupplyRoot, cfg.PowerSupplyRoot)
	cfg.Timezone = getEnv(EnvTimezone, cfg.Timezone)
	cfg.Debug = getEnvBool(EnvDebug, cfg.Debug)

	if value := os.Getenv(EnvInterval); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvInterval, err)
		}
		cfg.SampleInterval = d
	}

	if value := os.Getenv(EnvAutosaveEvery); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvAutosaveEvery, err)
		}
		cfg.AutosaveEvery = n
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SampleInterval <= 0 {
		return ErrInvalidInterval
	}
	if c.AutosaveEvery < 1 {
		return ErrInvalidAutosave
	}
	if c.TimeFormat != "12h" && c.TimeFormat != "24h" {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, c.TimeFormat)
	}
	if c.UIRefreshRate < constants.MinUIRefreshRate || c.UIRefreshRate > constants.MaxUIRefreshRate {
		return fmt.Errorf("%w: %.2f Hz (allowed %.1f-%.1f)", ErrInvalidRefreshRate,
			c.UIRefreshRate, constants.MinUIRefreshRate, constants.MaxUIRefreshRate)
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	return nil
}

// UIRefreshInterval converts the refresh rate to a ticker period
func (c *Config) UIRefreshInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.UIRefreshRate)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
