package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Status is the charging state reported by the power supply
type Status int

const (
	StatusUnknown Status = iota
	StatusCharging
	StatusDischarging
	StatusNotCharging
	StatusFull
)

var statusNames = map[Status]string{
	StatusUnknown:     "Unknown",
	StatusCharging:    "Charging",
	StatusDischarging: "Discharging",
	StatusNotCharging: "NotCharging",
	StatusFull:        "Full",
}

// String returns the human readable label
func (s Status) String() string {
	switch s {
	case StatusCharging:
		return "Charging"
	case StatusDischarging:
		return "Discharging"
	case StatusNotCharging:
		return "Not charging"
	case StatusFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the status as its variant name
func (s Status) MarshalJSON() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		name = statusNames[StatusUnknown]
	}
	return sonic.Marshal(name)
}

// UnmarshalJSON accepts a variant name; anything unrecognised becomes Unknown
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := sonic.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	*s = StatusUnknown
	for status, n := range statusNames {
		if n == name {
			*s = status
			break
		}
	}
	return nil
}

// ParseSysfsStatus maps the text of a power_supply "status" attribute
func ParseSysfsStatus(raw string) Status {
	switch strings.TrimSpace(raw) {
	case "Charging":
		return StatusCharging
	case "Discharging":
		return StatusDischarging
	case "Not charging":
		return StatusNotCharging
	case "Full":
		return StatusFull
	default:
		return StatusUnknown
	}
}

// Sample is one point-in-time telemetry reading. Samples are values and
// are never modified once produced.
type Sample struct {
	Timestamp    time.Time `json:"timestamp"`
	Capacity     float64   `json:"capacity"`    // percent 0-100
	PowerWatts   float64   `json:"power_watts"` // positive = charging, negative = discharging
	Status       Status    `json:"status"`
	EnergyNowWh  float64   `json:"energy_now_wh"`
	EnergyFullWh float64   `json:"energy_full_wh"`
	VoltageNowV  float64   `json:"voltage_now_v"`
}

// IsCharging reports whether the sample was taken while charging
func (s Sample) IsCharging() bool {
	return s.Status == StatusCharging
}

// Field selects the y value plotted for a sample
type Field int

const (
	FieldCapacity Field = iota
	FieldPower
)

// Value extracts the field from a sample
func (f Field) Value(s Sample) float64 {
	if f == FieldPower {
		return s.PowerWatts
	}
	return s.Capacity
}

func (f Field) String() string {
	if f == FieldPower {
		return "power"
	}
	return "capacity"
}

// Unit returns the display unit of the field
func (f Field) Unit() string {
	if f == FieldPower {
		return "W"
	}
	return "%"
}
