package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

type TableFormatter struct {
	out io.Writer
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{out: w}
}

func (f *TableFormatter) FormatSamples(samples []model.Sample) error {
	tp := util.GetTimeProvider()
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, []string{
			tp.Format(s.Timestamp, "2006-01-02 15:04:05"),
			s.Status.String(),
			formatFloat(s.Capacity, 1),
			util.FormatWatts(s.PowerWatts),
			formatFloat(s.EnergyNowWh, 2),
			formatFloat(s.EnergyFullWh, 2),
			formatFloat(s.VoltageNowV, 3),
		})
	}
	return f.write(sampleHeaders, rows, 2)
}

func (f *TableFormatter) FormatSessions(entries []interaction.SessionEntry) error {
	tp := util.GetTimeProvider()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		r := NewSessionRecord(e)
		ended := "-"
		if r.EndTime != nil {
			ended = tp.FormatDateTime(*r.EndTime)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Index),
			tp.FormatDateTime(r.StartTime),
			ended,
			util.FormatPercent(r.StartCapacity),
			util.FormatPercent(r.EndCapacity),
			util.FormatPercent(r.PeakCapacity),
			util.FormatDuration(e.Session.Duration()),
			formatFloat(r.EnergyAddedWh, 2),
			fmt.Sprintf("%d", r.SampleCount),
		})
	}
	return f.write(sessionHeaders, rows, 3)
}

// write prints a bordered table; columns from numericFrom on are right
// aligned
func (f *TableFormatter) write(headers []string, rows [][]string, numericFrom int) error {
	widths := f.calculateColumnWidths(headers, rows)

	var b strings.Builder
	f.printBorder(&b, widths, "top")
	f.printRow(&b, headers, widths, len(headers))
	f.printBorder(&b, widths, "middle")
	for _, row := range rows {
		f.printRow(&b, row, widths, numericFrom)
	}
	f.printBorder(&b, widths, "bottom")

	_, err := io.WriteString(f.out, b.String())
	return err
}

func (f *TableFormatter) calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2)) // +2 for padding spaces
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteString("\n")
}

// printRow prints a row, padding by display width so arrows and wide
// runes stay aligned
func (f *TableFormatter) printRow(b *strings.Builder, values []string, widths []int, numericFrom int) {
	b.WriteString("│")
	for i, value := range values {
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(value))
		if i >= numericFrom {
			b.WriteString(" " + pad + value + " │")
		} else {
			b.WriteString(" " + value + pad + " │")
		}
	}
	b.WriteString("\n")
}
