package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal colors
const (
	ColorReset   = "\033[0m"
	ColorBlue    = "\033[34m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorGray    = "\033[90m"
	ColorBold    = "\033[1m"
)

// Terminal control sequences
const (
	ClearScreen         = "\033[2J"     // Clear entire screen
	ClearLineFromCursor = "\033[0K"     // Clear from cursor to end of line
	ClearToEndOfScreen  = "\033[J"      // Clear from cursor to end of screen
	MoveCursorHome      = "\033[H"      // Move cursor to home position
	HideCursor          = "\033[?25l"   // Hide cursor
	ShowCursor          = "\033[?25h"   // Show cursor
	EnterAltScreen      = "\033[?1049h" // Switch to alternate screen buffer
	ExitAltScreen       = "\033[?1049l" // Restore main screen buffer
)

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(StripANSI(text))
}

// StripANSI removes CSI escape sequences so widths can be measured
func StripANSI(text string) string {
	if !strings.Contains(text, "\033[") {
		return text
	}
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inEscape:
			if c >= 0x40 && c <= 0x7e {
				inEscape = false
			}
		case c == '\033' && i+1 < len(text) && text[i+1] == '[':
			inEscape = true
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// CreateProgressBar renders a bracketed bar of width cells filled to percentage
func CreateProgressBar(percentage float64, width int) string {
	barWidth := width - 2
	if barWidth < 1 {
		barWidth = 1
	}
	filled := int((percentage / 100) * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// CapacityColor picks a color for a charge level: red when low, yellow when
// middling, green otherwise
func CapacityColor(capacity float64) string {
	if capacity < 20 {
		return ColorRed
	}
	if capacity < 50 {
		return ColorYellow
	}
	return ColorGreen
}

// Colorize wraps text in a color and a reset
func Colorize(color, text string) string {
	return color + text + ColorReset
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// FormatSectionTitle formats section titles (Cyan + Bold)
func FormatSectionTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}

// FormatHint formats help and status hints (Gray)
func FormatHint(text string) string {
	return Colorize(ColorGray, text)
}

// FormatSectionSeparator creates a separator line of the given width
func FormatSectionSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return fmt.Sprintf("%s%s%s", ColorCyan, strings.Repeat("─", width), ColorReset)
}

// CenterText centers text within the given display width
func CenterText(text string, width int) string {
	w := GetDisplayWidth(text)
	if w >= width {
		return runewidth.Truncate(text, width, "")
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-padding-w)
}
