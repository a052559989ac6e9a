package util

import (
	"fmt"
	"math"
	"time"
)

// FormatCount abbreviates large counts, e.g. 40000 -> 40.0K
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatDuration renders "2h 5m", "5m" or "45s" for short spans
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes == 0 && d > 0 {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatPercent renders a charge level as "87%"
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}

// FormatWatts renders a signed power flow with an explicit sign
func FormatWatts(w float64) string {
	if w == 0 {
		return "0.00 W"
	}
	return fmt.Sprintf("%+.2f W", w)
}

// FormatWattHours renders energy with one decimal
func FormatWattHours(wh float64) string {
	return fmt.Sprintf("%.1f Wh", wh)
}

// FormatVolts renders a voltage with two decimals
func FormatVolts(v float64) string {
	return fmt.Sprintf("%.2f V", v)
}

// FormatAxisValue renders a y axis tick compactly
func FormatAxisValue(v float64) string {
	if math.Abs(v) >= 100 || v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
