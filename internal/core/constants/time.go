package constants

import "time"

const (
	// Sampling cadence
	DefaultSampleInterval = 5 * time.Second

	// Persist every N accepted samples (~5 min at the default interval)
	DefaultAutosaveEvery = 60

	// UI refresh bounds in Hz
	DefaultUIRefreshRate = 10.0
	MinUIRefreshRate     = 0.1
	MaxUIRefreshRate     = 20.0
)
