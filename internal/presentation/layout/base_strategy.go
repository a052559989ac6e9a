package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
	"github.com/penwyp/go-battery-monitor/internal/presentation/chart"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Placeholders shown instead of an empty chart
const (
	NoDataYet     = "No data yet"
	NoDataInRange = "No data in range (try [f] to fit)"
)

// Help bar text per view
const (
	DashboardHelp = " [h] History Chart  [1/2] Session Detail  [q] Quit "
	HistoryHelp   = " [d] Dashboard  [←/→] Pan  [+/-] Zoom  [f] Fit  [1/2] Session  [q] Quit "
	SessionHelp   = " [d] Dashboard  [h] History  [←/→] Pan  [+/-] Zoom  [f] Fit  [q] Quit "
)

// Lines a chart panel adds around its plot rows: title, x axis, x labels
const chartChromeLines = 3

var capacityTicks = []float64{0, 25, 50, 75, 100}

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// TitleBar renders the application title with the battery name
func (b *BaseStrategy) TitleBar(frame *Frame, sizer *Sizer) []string {
	name := frame.BatteryName
	if name == "" {
		name = "Battery"
	}
	title := util.FormatHeaderTitle(fmt.Sprintf(" ⚡ Battery Monitor - %s", name))
	if frame.ReadOnly {
		title += util.FormatHint("  (following recorder)")
	}
	return []string{
		sizer.Fit(title, sizer.Width),
		util.FormatSectionSeparator(sizer.Width),
	}
}

// HelpBar renders the key hints for a view, plus a transient status message
func (b *BaseStrategy) HelpBar(help string, frame *Frame, sizer *Sizer) []string {
	lines := []string{util.FormatSectionSeparator(sizer.Width)}
	if frame.StatusMessage != "" {
		lines = append(lines, " "+util.Colorize(util.ColorYellow, frame.StatusMessage))
	}
	lines = append(lines, util.FormatHint(sizer.Fit(help, sizer.Width)))
	return lines
}

// StatusColor picks the color for a charging state
func (b *BaseStrategy) StatusColor(status model.Status) string {
	switch status {
	case model.StatusCharging:
		return util.ColorGreen
	case model.StatusDischarging:
		return util.ColorYellow
	case model.StatusFull:
		return util.ColorCyan
	default:
		return util.ColorGray
	}
}

// PowerLine describes the power flow direction in words
func (b *BaseStrategy) PowerLine(watts float64) string {
	switch {
	case watts > -0.01 && watts < 0.01:
		return "0.00 W"
	case watts > 0:
		return fmt.Sprintf("+%.2f W (charging)", watts)
	default:
		return fmt.Sprintf("%.2f W (discharging)", watts)
	}
}

// SessionSummary formats one line of the completed session list.
// index is zero based; the label shown is one based.
func (b *BaseStrategy) SessionSummary(index int, session model.ChargeSession) string {
	return fmt.Sprintf("[%d] %s → %s  (%s)  %s",
		index+1,
		util.FormatPercent(session.StartCapacity),
		util.FormatPercent(session.EndCapacity),
		util.FormatDuration(session.Duration()),
		util.GetTimeProvider().FormatDateTime(session.StartTime),
	)
}

// ChartHeight splits the space left after fixed lines between two charts.
// The result is the plot height of each chart, excluding chart chrome.
func (b *BaseStrategy) ChartHeight(sizer *Sizer, fixedLines int) int {
	per := sizer.AvailableLines(fixedLines, 0)/2 - chartChromeLines
	if per < 3 {
		return 3
	}
	return per
}

// CapacityChart renders the battery percentage panel
func (b *BaseStrategy) CapacityChart(frame *Frame, sizer *Sizer, height int) []string {
	opts := chart.Options{
		Height: height,
		XMin:   frame.VisibleStart,
		XMax:   frame.VisibleEnd,
		YMin:   0,
		YMax:   100,
		YTicks: capacityTicks,
		XLabel: frame.XLabel,
		YLabel: util.FormatAxisValue,
		Color:  util.ColorGreen,
	}
	return b.chartPanel(" Battery %", frame.Capacity, frame.SourceCount, opts, sizer)
}

// PowerChart renders the signed power panel. Bounds always include zero.
func (b *BaseStrategy) PowerChart(frame *Frame, sizer *Sizer, height int) []string {
	yMin, yMax := chart.PowerBounds(frame.Power)
	opts := chart.Options{
		Height: height,
		XMin:   frame.VisibleStart,
		XMax:   frame.VisibleEnd,
		YMin:   yMin,
		YMax:   yMax,
		YTicks: []float64{yMax, 0, yMin},
		XLabel: frame.XLabel,
		YLabel: func(y float64) string {
			if y == 0 {
				return "0"
			}
			return fmt.Sprintf("%.1f", y)
		},
		Color: util.ColorYellow,
	}
	return b.chartPanel(" Power (W) +charge / -discharge", frame.Power, frame.SourceCount, opts, sizer)
}

func (b *BaseStrategy) chartPanel(title string, points []viewport.Point, sourceCount int, opts chart.Options, sizer *Sizer) []string {
	lines := make([]string, 0, opts.Height+chartChromeLines)
	lines = append(lines, util.FormatSectionTitle(title))

	if len(points) == 0 {
		msg := NoDataInRange
		if sourceCount == 0 {
			msg = NoDataYet
		}
		for i := 0; i < opts.Height+chartChromeLines-1; i++ {
			if i == opts.Height/2 {
				lines = append(lines, util.FormatHint(util.CenterText(msg, sizer.Width)))
				continue
			}
			lines = append(lines, "")
		}
		return lines
	}

	// one leading space, gutter, then " ┤"
	opts.Width = sizer.Width - opts.GutterWidth() - 3
	for _, line := range chart.Render(points, opts) {
		lines = append(lines, " "+line)
	}
	return lines
}

// WriteLines writes each line followed by a newline
func (b *BaseStrategy) WriteLines(w io.Writer, lines []string) {
	_, _ = io.WriteString(w, strings.Join(lines, "\n"))
	_, _ = io.WriteString(w, "\n")
}
