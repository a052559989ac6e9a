package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
)

type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{out: w}
}

// FormatSamples writes raw values with RFC 3339 timestamps so the output
// can be re-imported
func (f *CSVFormatter) FormatSamples(samples []model.Sample) error {
	w := csv.NewWriter(f.out)

	if err := w.Write(sampleHeaders); err != nil {
		return err
	}
	for _, s := range samples {
		record := []string{
			s.Timestamp.Format(time.RFC3339),
			s.Status.String(),
			formatFloat(s.Capacity, -1),
			formatFloat(s.PowerWatts, -1),
			formatFloat(s.EnergyNowWh, -1),
			formatFloat(s.EnergyFullWh, -1),
			formatFloat(s.VoltageNowV, -1),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (f *CSVFormatter) FormatSessions(entries []interaction.SessionEntry) error {
	w := csv.NewWriter(f.out)

	if err := w.Write(sessionHeaders); err != nil {
		return err
	}
	for _, e := range entries {
		r := NewSessionRecord(e)
		ended := ""
		if r.EndTime != nil {
			ended = r.EndTime.Format(time.RFC3339)
		}
		record := []string{
			fmt.Sprintf("%d", r.Index),
			r.StartTime.Format(time.RFC3339),
			ended,
			formatFloat(r.StartCapacity, -1),
			formatFloat(r.EndCapacity, -1),
			formatFloat(r.PeakCapacity, -1),
			formatFloat(r.DurationSeconds, 0),
			formatFloat(r.EnergyAddedWh, 2),
			fmt.Sprintf("%d", r.SampleCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
