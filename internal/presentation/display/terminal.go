// Package display owns the terminal: the alternate screen, cursor and
// per-frame repaints of a layout strategy.
package display

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// TerminalDisplay repaints whole frames in place
type TerminalDisplay struct {
	out               io.Writer
	inAlternateScreen bool
	isFirstRender     bool
	lastView          string
	sizer             func() *layout.Sizer
	mu                sync.Mutex
}

// NewTerminalDisplay writes to stdout and sizes frames from the terminal
func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithWriter(os.Stdout, layout.DetectSizer)
}

// NewTerminalDisplayWithWriter lets tests capture output with a fixed size
func NewTerminalDisplayWithWriter(out io.Writer, sizer func() *layout.Sizer) *TerminalDisplay {
	return &TerminalDisplay{
		out:           out,
		sizer:         sizer,
		isFirstRender: true,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if td.inAlternateScreen {
		return
	}
	td.write(util.EnterAltScreen + util.ClearScreen + util.MoveCursorHome + util.HideCursor)
	td.inAlternateScreen = true
	td.isFirstRender = true
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()

	if !td.inAlternateScreen {
		return
	}
	td.write(util.ClearScreen + util.MoveCursorHome + util.ShowCursor + util.ExitAltScreen)
	td.inAlternateScreen = false
}

// Render draws one frame with the strategy for its view
func (td *TerminalDisplay) Render(frame *layout.Frame) {
	td.mu.Lock()
	defer td.mu.Unlock()

	var buf bytes.Buffer
	strategy := layout.GetViewStrategy(frame.View)
	strategy.Render(&buf, frame, td.sizer())

	var screen strings.Builder
	// Switching views changes every line, so clear instead of overdrawing
	if td.isFirstRender || td.lastView != strategy.GetName() {
		screen.WriteString(util.ClearScreen)
		td.isFirstRender = false
		td.lastView = strategy.GetName()
	}
	screen.WriteString(util.MoveCursorHome)
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		screen.WriteString(line)
		screen.WriteString(util.ClearLineFromCursor)
		screen.WriteString("\r\n")
	}
	screen.WriteString(util.ClearToEndOfScreen)

	td.write(screen.String())
}

func (td *TerminalDisplay) write(s string) {
	if _, err := io.WriteString(td.out, s); err != nil {
		util.LogDebugf("Terminal write failed: %v", err)
	}
}
