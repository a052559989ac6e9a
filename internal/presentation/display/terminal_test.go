package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/stretchr/testify/assert"
)

func newTestDisplay() (*TerminalDisplay, *bytes.Buffer) {
	var buf bytes.Buffer
	td := NewTerminalDisplayWithWriter(&buf, func() *layout.Sizer {
		return layout.NewSizer(80, 24)
	})
	return td, &buf
}

func TestAlternateScreenIsIdempotent(t *testing.T) {
	td, buf := newTestDisplay()

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.EnterAltScreen))
	assert.Contains(t, buf.String(), util.HideCursor)

	td.ExitAlternateScreen()
	td.ExitAlternateScreen()
	assert.Equal(t, 1, strings.Count(buf.String(), util.ExitAltScreen))
	assert.Contains(t, buf.String(), util.ShowCursor)
}

func TestExitWithoutEnterWritesNothing(t *testing.T) {
	td, buf := newTestDisplay()

	td.ExitAlternateScreen()

	assert.Empty(t, buf.String())
}

func TestRender_ClearsOnFirstFrameAndViewChange(t *testing.T) {
	td, buf := newTestDisplay()

	td.Render(&layout.Frame{View: layout.ViewDashboard, BatteryName: "BAT0"})
	assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen+util.MoveCursorHome))
	assert.Contains(t, buf.String(), "Waiting for first battery sample...")
	assert.True(t, strings.HasSuffix(buf.String(), util.ClearToEndOfScreen))

	buf.Reset()
	td.Render(&layout.Frame{View: layout.ViewDashboard})
	assert.True(t, strings.HasPrefix(buf.String(), util.MoveCursorHome), "same view repaints in place")

	buf.Reset()
	td.Render(&layout.Frame{View: layout.ViewHistory})
	assert.True(t, strings.HasPrefix(buf.String(), util.ClearScreen))
	assert.Contains(t, buf.String(), layout.HistoryHelp)
}

func TestRender_EveryLineClearsItsTail(t *testing.T) {
	td, buf := newTestDisplay()

	td.Render(&layout.Frame{View: layout.ViewDashboard})

	body := strings.TrimSuffix(buf.String(), util.ClearToEndOfScreen)
	lines := strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n")
	for _, line := range lines {
		assert.True(t, strings.HasSuffix(line, util.ClearLineFromCursor), "%q", line)
	}
}
