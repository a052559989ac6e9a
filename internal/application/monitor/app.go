// Package monitor runs the battery monitor: the interactive terminal loop,
// the headless recorder and the read-only follower all share App.
package monitor

import (
	"fmt"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Persister saves a history; *history.Store satisfies it
type Persister interface {
	Save(h *history.History) error
}

// App is the single-writer state behind every view
type App struct {
	history   *history.History
	store     Persister
	views     *ViewMachine
	historyVP *viewport.Viewport
	sessionVP *viewport.Viewport

	batteryName   string
	lastSample    *model.Sample
	ticks         int
	autosaveEvery int

	// x positions on the history chart are seconds since refTime
	refTime time.Time
	hasRef  bool

	readOnly      bool
	statusMessage string
}

// NewApp wraps a loaded history. store may be nil, in which case nothing
// is persisted.
func NewApp(h *history.History, store Persister, batteryName string, autosaveEvery int) *App {
	if autosaveEvery < 1 {
		autosaveEvery = 1
	}
	a := &App{
		history:       h,
		store:         store,
		views:         NewViewMachine(),
		historyVP:     viewport.New(),
		sessionVP:     viewport.New(),
		batteryName:   batteryName,
		autosaveEvery: autosaveEvery,
	}
	if first, _, ok := h.Span(); ok {
		a.refTime = first
		a.hasRef = true
	}
	return a
}

// AddSample records a live reading and autosaves every autosaveEvery ticks
func (a *App) AddSample(sample model.Sample) {
	if !a.hasRef {
		a.refTime = sample.Timestamp
		a.hasRef = true
	}
	a.lastSample = &sample
	a.history.AddSample(sample)
	a.ticks++

	// Keep a fitted history chart following new data
	if a.views.Current() == StateHistory && a.historyVP.IsFit() {
		a.FitHistory()
	}

	if a.ticks%a.autosaveEvery == 0 {
		if err := a.Save(); err != nil {
			util.LogErrorf("Autosave failed: %v", err)
			a.statusMessage = "Autosave failed: " + err.Error()
		} else {
			util.LogDebugf("Autosaved %d samples", a.history.Len())
		}
	}
}

// Save persists the history if a store is configured
func (a *App) Save() error {
	if a.store == nil || a.readOnly {
		return nil
	}
	return a.store.Save(a.history)
}

// ReplaceHistory swaps in a freshly loaded history, used when following a
// file written by a recorder. View and zoom state are kept.
func (a *App) ReplaceHistory(h *history.History) {
	a.history = h
	if latest, ok := h.Latest(); ok {
		a.lastSample = &latest
	}
	if !a.hasRef {
		if first, _, ok := h.Span(); ok {
			a.refTime = first
			a.hasRef = true
		}
	}

	switch a.views.Current() {
	case StateHistory:
		if a.historyVP.IsFit() {
			a.FitHistory()
		}
	case StateSession:
		if idx := a.views.SessionIndex(); idx >= h.SessionCount() {
			a.ShowDashboard()
		}
	}
}

// History exposes the underlying history
func (a *App) History() *history.History {
	return a.history
}

// Ticks is the number of samples added since start
func (a *App) Ticks() int {
	return a.ticks
}

// SetReadOnly marks the app as a follower: it never saves
func (a *App) SetReadOnly(readOnly bool) {
	a.readOnly = readOnly
}

// View returns the current view name
func (a *App) View() string {
	return a.views.Current()
}

// TimeToX converts a timestamp to seconds since the reference time, or 0
// when no reference is set
func (a *App) TimeToX(t time.Time) float64 {
	if !a.hasRef {
		return 0
	}
	return history.TimeToX(a.refTime, t)
}

// XToTime converts a chart position back to a timestamp
func (a *App) XToTime(x float64) (time.Time, bool) {
	if !a.hasRef {
		return time.Time{}, false
	}
	return history.XToTime(a.refTime, x), true
}

// seriesRef is the instant x = 0 refers to in the current view: the
// session's first sample in the session view, else the reference time
func (a *App) seriesRef(samples []model.Sample) time.Time {
	if a.views.Current() == StateSession && len(samples) > 0 {
		return samples[0].Timestamp
	}
	return a.refTime
}

// CapacitySeries windows samples' capacity by the active viewport
func (a *App) CapacitySeries(samples []model.Sample) []viewport.Point {
	return history.Series(samples, a.seriesRef(samples), model.FieldCapacity, a.ActiveViewport())
}

// PowerSeries windows samples' power by the active viewport
func (a *App) PowerSeries(samples []model.Sample) []viewport.Point {
	return history.Series(samples, a.seriesRef(samples), model.FieldPower, a.ActiveViewport())
}

// FitHistory shows all retained samples. The reference time moves to the
// first retained sample so evicted data leaves no gap on the left.
func (a *App) FitHistory() {
	first, _, ok := a.history.Span()
	if !ok {
		return
	}
	a.refTime = first
	a.hasRef = true
	a.historyVP.Fit(a.history.SpanSeconds())
}

// FitSession shows the whole of completed session idx
func (a *App) FitSession(idx int) {
	session, ok := a.history.Session(idx)
	if !ok || len(session.Samples) == 0 {
		return
	}
	a.sessionVP.Fit(history.SpanSeconds(session.Samples, session.Samples[0].Timestamp))
}

// ActiveViewport is the session viewport in the session view, else the
// history viewport
func (a *App) ActiveViewport() *viewport.Viewport {
	if a.views.Current() == StateSession {
		return a.sessionVP
	}
	return a.historyVP
}

// ShowDashboard switches to the dashboard
func (a *App) ShowDashboard() {
	a.switchView(a.views.ShowDashboard())
}

// ShowHistory switches to the history chart, fitted to all data
func (a *App) ShowHistory() {
	a.switchView(a.views.ShowHistory())
	a.FitHistory()
}

// ShowSession switches to session idx if it exists; otherwise nothing
// changes
func (a *App) ShowSession(idx int) bool {
	if idx < 0 || idx >= a.history.SessionCount() {
		util.LogDebugf("No completed session %d", idx+1)
		return false
	}
	a.switchView(a.views.ShowSession(idx))
	a.FitSession(idx)
	return true
}

func (a *App) switchView(err error) {
	if err != nil {
		util.LogWarnf("View switch failed: %v", err)
	}
	a.statusMessage = ""
}

// HandleKey applies one key press and reports whether the user asked to
// quit. Saving on quit is left to the caller.
func (a *App) HandleKey(event interaction.KeyEvent) bool {
	switch event.Type {
	case interaction.KeyCtrlC:
		return true
	case interaction.KeyEscape:
		a.ShowDashboard()
	case interaction.KeyLeft:
		a.ActiveViewport().PanLeft()
	case interaction.KeyRight:
		a.ActiveViewport().PanRight()
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q':
			return true
		case 'd':
			a.ShowDashboard()
		case 'h':
			a.ShowHistory()
		case '1':
			a.ShowSession(0)
		case '2':
			a.ShowSession(1)
		case '+', '=':
			a.ActiveViewport().ZoomIn()
		case '-':
			a.ActiveViewport().ZoomOut()
		case 'f':
			switch a.views.Current() {
			case StateHistory:
				a.FitHistory()
			case StateSession:
				a.FitSession(a.views.SessionIndex())
			}
		}
	}
	return false
}

// Frame snapshots everything the current view draws
func (a *App) Frame() *layout.Frame {
	frame := &layout.Frame{
		View:          a.views.Current(),
		BatteryName:   a.batteryName,
		ReadOnly:      a.readOnly,
		Latest:        a.lastSample,
		Sessions:      a.history.CompletedSessions(),
		Active:        a.history.ActiveSession(),
		SampleCount:   a.history.Len(),
		StatusMessage: a.statusMessage,
	}

	switch frame.View {
	case StateHistory:
		frame.Capacity = a.history.Series(a.refTime, model.FieldCapacity, a.historyVP)
		frame.Power = a.history.Series(a.refTime, model.FieldPower, a.historyVP)
		frame.SourceCount = frame.SampleCount
		a.fillAxis(frame, a.historyVP, a.refTime)

	case StateSession:
		frame.SessionIndex = a.views.SessionIndex()
		session, ok := a.history.Session(frame.SessionIndex)
		if !ok {
			break
		}
		frame.Session = &session
		frame.Capacity = a.CapacitySeries(session.Samples)
		frame.Power = a.PowerSeries(session.Samples)
		frame.SourceCount = len(session.Samples)
		a.fillAxis(frame, a.sessionVP, a.seriesRef(session.Samples))
	}
	return frame
}

func (a *App) fillAxis(frame *layout.Frame, vp *viewport.Viewport, ref time.Time) {
	frame.VisibleStart, frame.VisibleEnd = vp.VisibleRange()
	frame.Zoom = vp.Zoom
	tp := util.GetTimeProvider()
	frame.XLabel = func(x float64) string {
		return tp.FormatClock(history.XToTime(ref, x))
	}
}

// String is used in debug logs
func (a *App) String() string {
	return fmt.Sprintf("App{view=%s samples=%d sessions=%d ticks=%d}",
		a.views.Current(), a.history.Len(), a.history.SessionCount(), a.ticks)
}
