package battery

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func writeSupply(t *testing.T, root, name string, attrs map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for k, v := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0644))
	}
	return dir
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})
	writeSupply(t, root, "BAT0", map[string]string{"type": "Battery", "capacity": "80", "status": "Full"})
	writeSupply(t, root, "hidpp_battery_0", map[string]string{"type": "Battery"})

	reader, err := Discover(root)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "BAT0"), reader.Path())
}

func TestDiscover_NoBattery(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing root",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
		},
		{
			name: "only mains",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeSupply(t, root, "AC", map[string]string{"type": "Mains"})
				return root
			},
		},
		{
			name: "entry without type",
			setup: func(t *testing.T) string {
				root := t.TempDir()
				writeSupply(t, root, "BAT0", map[string]string{"capacity": "50"})
				return root
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Discover(tt.setup(t))
			assert.ErrorIs(t, err, ErrNoBattery)
		})
	}
}

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		powerNow      string
		expectedPower float64
		expected      model.Status
	}{
		{"charging is positive", "Charging", "15500000", 15.5, model.StatusCharging},
		{"discharging is negative", "Discharging", "7250000", -7.25, model.StatusDischarging},
		{"negative driver value normalised", "Discharging", "-7250000", -7.25, model.StatusDischarging},
		{"full reports zero", "Full", "1000000", 0, model.StatusFull},
		{"not charging reports zero", "Not charging", "500000", 0, model.StatusNotCharging},
		{"unknown status", "Weird", "500000", 0, model.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSupply(t, t.TempDir(), "BAT0", map[string]string{
				"type":        "Battery",
				"capacity":    "64",
				"status":      tt.status,
				"power_now":   tt.powerNow,
				"energy_now":  "32000000",
				"energy_full": "50000000",
				"voltage_now": "12450000",
			})

			sample, err := NewReader(dir).WithClock(func() time.Time { return fixedNow }).Read()

			require.NoError(t, err)
			assert.Equal(t, fixedNow, sample.Timestamp)
			assert.Equal(t, 64.0, sample.Capacity)
			assert.Equal(t, tt.expected, sample.Status)
			assert.InDelta(t, tt.expectedPower, sample.PowerWatts, 1e-9)
			assert.InDelta(t, 32.0, sample.EnergyNowWh, 1e-9)
			assert.InDelta(t, 50.0, sample.EnergyFullWh, 1e-9)
			assert.InDelta(t, 12.45, sample.VoltageNowV, 1e-9)
		})
	}
}

func TestReader_OptionalAttributesDefaultToZero(t *testing.T) {
	dir := writeSupply(t, t.TempDir(), "BAT1", map[string]string{
		"capacity": "12",
		"status":   "Charging",
	})

	sample, err := NewReader(dir).Read()

	require.NoError(t, err)
	assert.Equal(t, 12.0, sample.Capacity)
	assert.Equal(t, 0.0, sample.PowerWatts)
	assert.Equal(t, 0.0, sample.EnergyNowWh)
	assert.Equal(t, 0.0, sample.EnergyFullWh)
	assert.Equal(t, 0.0, sample.VoltageNowV)
}

func TestReader_RequiredAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
	}{
		{"missing capacity", map[string]string{"status": "Charging"}},
		{"missing status", map[string]string{"capacity": "40"}},
		{"malformed capacity", map[string]string{"capacity": "forty", "status": "Charging"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSupply(t, t.TempDir(), "BAT0", tt.attrs)
			_, err := NewReader(dir).Read()
			assert.Error(t, err)
		})
	}
}

func TestReader_Name(t *testing.T) {
	tests := []struct {
		name     string
		attrs    map[string]string
		expected string
	}{
		{"manufacturer and model", map[string]string{"manufacturer": "SMP", "model_name": "5B10W13975"}, "SMP 5B10W13975"},
		{"model only", map[string]string{"model_name": "DELL 7FHHV"}, "DELL 7FHHV"},
		{"manufacturer only", map[string]string{"manufacturer": "LGC"}, "LGC"},
		{"falls back to directory", map[string]string{}, "BAT0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeSupply(t, t.TempDir(), "BAT0", tt.attrs)
			assert.Equal(t, tt.expected, NewReader(dir).Name())
		})
	}
}
