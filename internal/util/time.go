package util

import (
	"fmt"
	"sync"
	"time"
)

// Layouts used across views and exports
const (
	ClockLayout24h    = "15:04"
	ClockLayout12h    = "3:04PM"
	DateTimeLayout24h = "01/02 15:04"
	DateTimeLayout12h = "01/02 3:04PM"
)

// TimeProvider handles timezone-aware time operations and the user's
// 12h/24h preference
type TimeProvider struct {
	location  *time.Location
	use12Hour bool
	mu        sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	providerMu         sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	providerMu.Lock()
	defer providerMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	// Only replace the global provider if successful
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance.
// If not initialized, it defaults to Local timezone.
func GetTimeProvider() *TimeProvider {
	providerMu.Lock()
	defer providerMu.Unlock()

	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London, Australia/Sydney", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// SetTimeFormat selects "12h" or "24h" clock rendering
func (tp *TimeProvider) SetTimeFormat(format string) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.use12Hour = format == "12h"
}

// Location returns the configured timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// In converts a time to the configured timezone
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// Format formats a time according to the layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// FormatClock renders hours and minutes, e.g. axis labels
func (tp *TimeProvider) FormatClock(t time.Time) string {
	tp.mu.RLock()
	layout := ClockLayout24h
	if tp.use12Hour {
		layout = ClockLayout12h
	}
	tp.mu.RUnlock()
	return tp.Format(t, layout)
}

// FormatDateTime renders month/day plus clock, e.g. session start times
func (tp *TimeProvider) FormatDateTime(t time.Time) string {
	tp.mu.RLock()
	layout := DateTimeLayout24h
	if tp.use12Hour {
		layout = DateTimeLayout12h
	}
	tp.mu.RUnlock()
	return tp.Format(t, layout)
}
