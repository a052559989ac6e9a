package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-battery-monitor/internal/util"
)

// DashboardStrategy renders the live battery readout and the list of
// completed charge sessions
type DashboardStrategy struct {
	BaseStrategy
}

func (d *DashboardStrategy) GetName() string {
	return ViewDashboard
}

func (d *DashboardStrategy) Render(w io.Writer, frame *Frame, sizer *Sizer) {
	lines := d.TitleBar(frame, sizer)
	lines = append(lines, d.statusLines(frame, sizer)...)
	lines = append(lines, "", util.FormatSectionSeparator(sizer.Width))
	lines = append(lines, d.sessionLines(frame, sizer)...)
	lines = append(lines, d.HelpBar(DashboardHelp, frame, sizer)...)
	d.WriteLines(w, lines)
}

func (d *DashboardStrategy) statusLines(frame *Frame, sizer *Sizer) []string {
	sample := frame.Latest
	if sample == nil {
		return []string{"", "  Waiting for first battery sample..."}
	}

	status := util.Colorize(util.ColorBold+d.StatusColor(sample.Status), sample.Status.String())
	bar := util.Colorize(util.CapacityColor(sample.Capacity), util.CreateProgressBar(sample.Capacity, sizer.ProgressBarWidth()))

	return []string{
		"",
		fmt.Sprintf("  Status:   %s", status),
		fmt.Sprintf("  Battery:  %s%.1f%%%s %s", util.ColorBold, sample.Capacity, util.ColorReset, bar),
		fmt.Sprintf("  Power:    %s", d.PowerLine(sample.PowerWatts)),
		fmt.Sprintf("  Voltage:  %.3f V", sample.VoltageNowV),
		fmt.Sprintf("  Energy:   %.2f / %.2f Wh", sample.EnergyNowWh, sample.EnergyFullWh),
	}
}

func (d *DashboardStrategy) sessionLines(frame *Frame, sizer *Sizer) []string {
	title := fmt.Sprintf(" Charge Sessions (90%%+) | %s samples ", util.FormatCount(frame.SampleCount))
	lines := []string{util.FormatSectionTitle(title)}

	if frame.Active != nil {
		active := fmt.Sprintf("  Charging now: %s → %s  (%s)",
			util.FormatPercent(frame.Active.StartCapacity),
			util.FormatPercent(frame.Active.EndCapacity),
			util.FormatDuration(frame.Active.Duration()))
		lines = append(lines, util.Colorize(util.ColorGreen, active))
	}

	if len(frame.Sessions) == 0 {
		return append(lines, util.FormatHint("  No completed charge sessions yet"))
	}
	for i := len(frame.Sessions) - 1; i >= 0; i-- {
		lines = append(lines, sizer.Fit("  "+d.SessionSummary(i, frame.Sessions[i]), sizer.Width))
	}
	return lines
}
