// Package formatter writes retained samples and charge sessions as a
// table, JSON or CSV for the export and sessions commands.
package formatter

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
)

// Supported output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Formatter writes samples or sessions in one output format
type Formatter interface {
	FormatSamples(samples []model.Sample) error
	FormatSessions(entries []interaction.SessionEntry) error
}

// NewFormatter returns the formatter for a format name
func NewFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case FormatTable, "":
		return NewTableFormatter(w), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	}
	return nil, fmt.Errorf("unsupported format %q (table, json, csv)", format)
}

var (
	sampleHeaders  = []string{"Time", "Status", "Capacity (%)", "Power (W)", "Energy (Wh)", "Full (Wh)", "Voltage (V)"}
	sessionHeaders = []string{"#", "Started", "Ended", "Start (%)", "End (%)", "Peak (%)", "Duration", "Energy (Wh)", "Samples"}
)

// SessionRecord is the exported shape of one completed charge session
type SessionRecord struct {
	Index           int        `json:"index"`
	ID              string     `json:"id,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	StartCapacity   float64    `json:"start_capacity"`
	EndCapacity     float64    `json:"end_capacity"`
	PeakCapacity    float64    `json:"peak_capacity"`
	DurationSeconds float64    `json:"duration_seconds"`
	EnergyAddedWh   float64    `json:"energy_added_wh"`
	SampleCount     int        `json:"sample_count"`
}

// NewSessionRecord summarises an entry; Index is one based as shown in views
func NewSessionRecord(entry interaction.SessionEntry) SessionRecord {
	s := entry.Session
	return SessionRecord{
		Index:           entry.Index + 1,
		ID:              s.ID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		StartCapacity:   s.StartCapacity,
		EndCapacity:     s.EndCapacity,
		PeakCapacity:    s.PeakCapacity(),
		DurationSeconds: s.Duration().Seconds(),
		EnergyAddedWh:   s.EnergyAddedWh(),
		SampleCount:     len(s.Samples),
	}
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
