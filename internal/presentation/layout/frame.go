package layout

import (
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
)

// View names, shared with the view state machine
const (
	ViewDashboard = "dashboard"
	ViewHistory   = "history"
	ViewSession   = "session"
)

// Frame is everything a view needs to draw one screen
type Frame struct {
	View        string
	BatteryName string
	ReadOnly    bool // following a recorder, no live sampling

	Latest      *model.Sample
	Sessions    []model.ChargeSession // completed, oldest first
	Active      *model.ChargeSession
	SampleCount int

	// Chart state for the history and session views
	Capacity     []viewport.Point
	SourceCount  int // samples the series were queried from, before windowing
	Power        []viewport.Point
	VisibleStart float64
	VisibleEnd   float64
	Zoom         float64
	XLabel       func(x float64) string

	// Session view
	SessionIndex int
	Session      *model.ChargeSession

	StatusMessage string
}
