// Package viewport implements the zoom/pan window over a one dimensional
// time axis. Positions are seconds since a caller chosen reference instant.
package viewport

import (
	"math"

	"github.com/penwyp/go-battery-monitor/internal/core/constants"
)

// Point is one plotted (x, y) pair
type Point struct {
	X float64
	Y float64
}

// Viewport is the visible sub-range of a series.
// Invariant: 0 <= TimeStart <= TimeEnd <= TimeTotal and
// Zoom == (TimeEnd-TimeStart)/TimeTotal after every operation.
type Viewport struct {
	TimeStart float64
	TimeEnd   float64
	TimeTotal float64
	Zoom      float64 // 1.0 = everything visible
}

// New returns a viewport over a unit extent
func New() *Viewport {
	return &Viewport{
		TimeStart: 0,
		TimeEnd:   1,
		TimeTotal: 1,
		Zoom:      1,
	}
}

// Fit shows the entire extent. Extents below one second are floored to 1.
func (v *Viewport) Fit(total float64) {
	v.TimeTotal = math.Max(total, 1.0)
	v.TimeStart = 0
	v.TimeEnd = v.TimeTotal
	v.Zoom = 1.0
}

// ZoomIn shrinks the window around its midpoint
func (v *Viewport) ZoomIn() {
	v.scaleAroundCenter(constants.ZoomFactor)
}

// ZoomOut grows the window around its midpoint, snapping back to the
// full extent once nearly everything is visible
func (v *Viewport) ZoomOut() {
	v.scaleAroundCenter(1 / constants.ZoomFactor)
	if v.Zoom > constants.FitSnapRatio {
		v.Fit(v.TimeTotal)
	}
}

func (v *Viewport) scaleAroundCenter(factor float64) {
	center := (v.TimeStart + v.TimeEnd) / 2
	halfRange := (v.TimeEnd - v.TimeStart) / 2 * factor
	v.TimeStart = math.Max(center-halfRange, 0)
	v.TimeEnd = math.Min(center+halfRange, v.TimeTotal)
	v.Zoom = (v.TimeEnd - v.TimeStart) / v.TimeTotal
}

// PanLeft moves the window towards earlier times by a fifth of its width.
// No-op when the window already starts at 0.
func (v *Viewport) PanLeft() {
	width := v.Width()
	if v.TimeStart <= 0 {
		return
	}
	v.TimeStart = math.Max(v.TimeStart-width*constants.PanFraction, 0)
	v.TimeEnd = v.TimeStart + width
}

// PanRight moves the window towards later times by a fifth of its width.
// No-op when the window already ends at the total extent.
func (v *Viewport) PanRight() {
	width := v.Width()
	if v.TimeEnd >= v.TimeTotal {
		return
	}
	v.TimeEnd = math.Min(v.TimeEnd+width*constants.PanFraction, v.TimeTotal)
	v.TimeStart = v.TimeEnd - width
}

// VisibleRange returns the current window bounds
func (v *Viewport) VisibleRange() (float64, float64) {
	return v.TimeStart, v.TimeEnd
}

// Width is the visible span in seconds
func (v *Viewport) Width() float64 {
	return v.TimeEnd - v.TimeStart
}

// Contains reports whether x lies inside the window, bounds inclusive
func (v *Viewport) Contains(x float64) bool {
	return x >= v.TimeStart && x <= v.TimeEnd
}

// IsFit reports whether the whole extent is visible
func (v *Viewport) IsFit() bool {
	return v.TimeStart == 0 && v.TimeEnd == v.TimeTotal
}
