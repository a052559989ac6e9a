package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-battery-monitor/internal/util"
)

// SessionStrategy renders one completed charge session in detail
type SessionStrategy struct {
	BaseStrategy
}

func (s *SessionStrategy) GetName() string {
	return ViewSession
}

func (s *SessionStrategy) Render(w io.Writer, frame *Frame, sizer *Sizer) {
	lines := s.TitleBar(frame, sizer)

	if frame.Session == nil {
		lines = append(lines, "", fmt.Sprintf("  Session %d not found", frame.SessionIndex+1))
		lines = append(lines, s.HelpBar(SessionHelp, frame, sizer)...)
		s.WriteLines(w, lines)
		return
	}

	session := frame.Session
	info := fmt.Sprintf("  Session %d  |  %s → %s  |  %s  |  Started: %s",
		frame.SessionIndex+1,
		util.FormatPercent(session.StartCapacity),
		util.FormatPercent(session.EndCapacity),
		util.FormatDuration(session.Duration()),
		util.GetTimeProvider().Format(session.StartTime, "2006-01-02 15:04"),
	)
	lines = append(lines, util.Colorize(util.ColorCyan, sizer.Fit(info, sizer.Width)))

	height := s.ChartHeight(sizer, len(lines)+2)
	lines = append(lines, s.CapacityChart(frame, sizer, height)...)
	lines = append(lines, s.PowerChart(frame, sizer, height)...)
	lines = append(lines, s.HelpBar(SessionHelp, frame, sizer)...)
	s.WriteLines(w, lines)
}
