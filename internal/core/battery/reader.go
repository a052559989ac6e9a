// Package battery reads power-supply telemetry from the Linux sysfs
// interface and turns it into samples.
package battery

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// DefaultPowerSupplyRoot is where the kernel exposes power supplies
const DefaultPowerSupplyRoot = "/sys/class/power_supply"

// microUnits converts µW, µWh and µV to their base units
const microUnits = 1_000_000.0

var (
	// ErrNoBattery is returned when no power supply of type Battery exists
	ErrNoBattery = errors.New("no battery found")
)

// Source produces one sample per call
type Source interface {
	Read() (model.Sample, error)
	Name() string
}

// Reader samples a single sysfs power supply directory
type Reader struct {
	basePath string
	now      func() time.Time
}

// NewReader creates a reader for an already known supply directory
func NewReader(basePath string) *Reader {
	return &Reader{
		basePath: basePath,
		now:      time.Now,
	}
}

// WithClock replaces the timestamp source
func (r *Reader) WithClock(now func() time.Time) *Reader {
	r.now = now
	return r
}

// Discover returns a reader for the first supply under root whose type is Battery
func Discover(root string) (*Reader, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoBattery
		}
		return nil, fmt.Errorf("failed to scan power supplies: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		supplyType, err := readString(filepath.Join(path, "type"))
		if err != nil {
			util.LogDebugf("Skip power supply %s: %v", entry.Name(), err)
			continue
		}
		if supplyType == "Battery" {
			util.LogInfof("Using battery at %s", path)
			return NewReader(path), nil
		}
	}

	return nil, ErrNoBattery
}

// Path is the supply directory
func (r *Reader) Path() string {
	return r.basePath
}

// Read takes one sample. Capacity and status are required; the remaining
// attributes read as zero when the driver does not expose them.
func (r *Reader) Read() (model.Sample, error) {
	capacity, err := r.readInt("capacity")
	if err != nil {
		return model.Sample{}, fmt.Errorf("failed to read capacity: %w", err)
	}

	rawStatus, err := r.readString("status")
	if err != nil {
		return model.Sample{}, fmt.Errorf("failed to read status: %w", err)
	}
	status := model.ParseSysfsStatus(rawStatus)

	powerWatts := math.Abs(float64(r.readIntOrZero("power_now"))) / microUnits
	switch status {
	case model.StatusCharging:
	case model.StatusDischarging:
		powerWatts = -powerWatts
	default:
		powerWatts = 0
	}

	return model.Sample{
		Timestamp:    r.now(),
		Capacity:     float64(capacity),
		PowerWatts:   powerWatts,
		Status:       status,
		EnergyNowWh:  float64(r.readIntOrZero("energy_now")) / microUnits,
		EnergyFullWh: float64(r.readIntOrZero("energy_full")) / microUnits,
		VoltageNowV:  float64(r.readIntOrZero("voltage_now")) / microUnits,
	}, nil
}

// Name is "manufacturer model", or the directory name when neither is set
func (r *Reader) Name() string {
	modelName, _ := r.readString("model_name")
	mfr, _ := r.readString("manufacturer")
	if modelName == "" && mfr == "" {
		if base := filepath.Base(r.basePath); base != "." && base != string(filepath.Separator) {
			return base
		}
		return "Battery"
	}
	return strings.TrimSpace(mfr + " " + modelName)
}

func (r *Reader) readString(name string) (string, error) {
	return readString(filepath.Join(r.basePath, name))
}

func (r *Reader) readInt(name string) (int64, error) {
	raw, err := r.readString(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, nil
}

func (r *Reader) readIntOrZero(name string) int64 {
	v, err := r.readInt(name)
	if err != nil {
		return 0
	}
	return v
}

func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
