package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Summary describes a stored history at a glance
type Summary struct {
	Path        string
	SampleCount int
	First       time.Time
	Last        time.Time
	Sessions    []model.ChargeSession
	Active      *model.ChargeSession
}

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct {
	out io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{out: w}
}

// Format writes the history overview followed by per-session averages.
func (f *SummaryFormatter) Format(s Summary) error {
	var b strings.Builder
	tp := util.GetTimeProvider()

	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("Battery History Summary\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "File: %s\n", s.Path)
	if s.SampleCount == 0 {
		b.WriteString("\nNo samples recorded yet\n\n")
		b.WriteString(strings.Repeat("=", 60) + "\n")
		_, err := io.WriteString(f.out, b.String())
		return err
	}

	fmt.Fprintf(&b, "Samples: %d\n", s.SampleCount)
	fmt.Fprintf(&b, "Range: %s to %s (%s)\n",
		tp.Format(s.First, "2006-01-02 15:04"),
		tp.Format(s.Last, "2006-01-02 15:04"),
		util.FormatDuration(s.Last.Sub(s.First)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Completed charge sessions: %d\n", len(s.Sessions))
	if len(s.Sessions) > 0 {
		var totalDuration time.Duration
		var totalGain, totalEnergy float64
		for i := range s.Sessions {
			totalDuration += s.Sessions[i].Duration()
			totalGain += s.Sessions[i].EndCapacity - s.Sessions[i].StartCapacity
			totalEnergy += s.Sessions[i].EnergyAddedWh()
		}
		n := float64(len(s.Sessions))
		fmt.Fprintf(&b, "  Average duration: %s\n", util.FormatDuration(time.Duration(float64(totalDuration)/n)))
		fmt.Fprintf(&b, "  Average gain:     %.0f%%\n", totalGain/n)
		fmt.Fprintf(&b, "  Average energy:   %s\n", util.FormatWattHours(totalEnergy/n))
	}
	if s.Active != nil {
		fmt.Fprintf(&b, "Charging now since %s (%s → %s)\n",
			tp.FormatDateTime(s.Active.StartTime),
			util.FormatPercent(s.Active.StartCapacity),
			util.FormatPercent(s.Active.EndCapacity))
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	_, err := io.WriteString(f.out, b.String())
	return err
}
