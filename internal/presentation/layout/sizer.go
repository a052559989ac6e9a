// Package layout turns a monitor frame into terminal lines, one strategy
// per view.
package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minWidth      = 40
	minHeight     = 12
	maxWidth      = 160
)

// Sizer holds the drawable terminal area
type Sizer struct {
	Width  int
	Height int
}

// NewSizer creates a sizer for an explicit area
func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// DetectSizer reads the terminal size from stdout, falling back to 80x24
// when stdout is not a terminal
func DetectSizer() *Sizer {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	if height < minHeight {
		height = minHeight
	}
	util.LogDebugf("Terminal size %dx%d", width, height)
	return NewSizer(width, height)
}

// AvailableLines is the height left after fixed header and footer lines
func (s *Sizer) AvailableLines(headerLines, footerLines int) int {
	if n := s.Height - headerLines - footerLines; n > 0 {
		return n
	}
	return 0
}

// ProgressBarWidth scales the capacity bar to the terminal
func (s *Sizer) ProgressBarWidth() int {
	w := s.Width / 3
	if w < 12 {
		w = 12
	}
	if w > 42 {
		w = 42
	}
	return w
}

// InnerWidth is the width inside a box border with one space of padding
func (s *Sizer) InnerWidth() int {
	if w := s.Width - 4; w > 1 {
		return w
	}
	return 1
}

// PadString pads a string to a specific display width, handling wide runes
// and color codes
func (s *Sizer) PadString(text string, width int, leftAlign bool) string {
	actualWidth := DisplayWidth(text)
	if actualWidth >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// Fit pads or truncates text to exactly width display cells
func (s *Sizer) Fit(text string, width int) string {
	if DisplayWidth(text) > width {
		return runewidth.Truncate(util.StripANSI(text), width, "…")
	}
	return s.PadString(text, width, true)
}

// DisplayWidth measures text as shown, ignoring color codes
func DisplayWidth(text string) int {
	return util.GetDisplayWidth(text)
}
