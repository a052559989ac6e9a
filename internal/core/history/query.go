package history

import (
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
)

// TimeToX converts an absolute timestamp to seconds since ref, at
// millisecond resolution
func TimeToX(ref, t time.Time) float64 {
	return float64(t.Sub(ref).Milliseconds()) / 1000.0
}

// XToTime converts axis seconds back to an absolute timestamp
func XToTime(ref time.Time, x float64) time.Time {
	return ref.Add(time.Duration(x*1000) * time.Millisecond)
}

// Series pairs each sample's x position with the requested field and keeps
// only points inside the visible range, bounds inclusive. Input order is
// preserved. An empty result is an empty slice, never an error.
func Series(samples []model.Sample, ref time.Time, field model.Field, vp *viewport.Viewport) []viewport.Point {
	points := make([]viewport.Point, 0)
	for _, s := range samples {
		x := TimeToX(ref, s.Timestamp)
		if !vp.Contains(x) {
			continue
		}
		points = append(points, viewport.Point{X: x, Y: field.Value(s)})
	}
	return points
}

// SpanSeconds is the extent between the first and last sample on the axis
// anchored at ref, or 0 for an empty slice
func SpanSeconds(samples []model.Sample, ref time.Time) float64 {
	if len(samples) == 0 {
		return 0
	}
	return TimeToX(ref, samples[len(samples)-1].Timestamp) - TimeToX(ref, samples[0].Timestamp)
}
