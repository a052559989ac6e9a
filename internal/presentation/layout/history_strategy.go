package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-battery-monitor/internal/util"
)

// HistoryStrategy renders capacity and power over the whole retained
// history, windowed by the history viewport
type HistoryStrategy struct {
	BaseStrategy
}

func (h *HistoryStrategy) GetName() string {
	return ViewHistory
}

func (h *HistoryStrategy) Render(w io.Writer, frame *Frame, sizer *Sizer) {
	lines := h.TitleBar(frame, sizer)
	lines = append(lines, h.rangeLine(frame))

	// title bar, range line, help bar
	height := h.ChartHeight(sizer, len(lines)+2)
	lines = append(lines, h.CapacityChart(frame, sizer, height)...)
	lines = append(lines, h.PowerChart(frame, sizer, height)...)
	lines = append(lines, h.HelpBar(HistoryHelp, frame, sizer)...)
	h.WriteLines(w, lines)
}

func (h *HistoryStrategy) rangeLine(frame *Frame) string {
	label := func(x float64) string {
		if frame.XLabel == nil {
			return util.FormatAxisValue(x)
		}
		return frame.XLabel(x)
	}
	return util.FormatHint(fmt.Sprintf("  %s - %s  |  showing %.0f%%  |  %s samples",
		label(frame.VisibleStart), label(frame.VisibleEnd), frame.Zoom*100, util.FormatCount(frame.SampleCount)))
}
