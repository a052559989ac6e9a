package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/looplab/fsm"
	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// View states
const (
	StateDashboard = layout.ViewDashboard
	StateHistory   = layout.ViewHistory
	StateSession   = layout.ViewSession
)

// View events
const (
	EventShowDashboard = "show_dashboard"
	EventShowHistory   = "show_history"
	EventShowSession   = "show_session"
)

var allViews = []string{StateDashboard, StateHistory, StateSession}

// ViewMachine tracks which view is shown and, for the session view, which
// completed session is selected
type ViewMachine struct {
	mu           sync.RWMutex
	fsm          *fsm.FSM
	sessionIndex int
}

// NewViewMachine starts on the dashboard
func NewViewMachine() *ViewMachine {
	m := &ViewMachine{}
	m.fsm = fsm.NewFSM(
		StateDashboard,
		fsm.Events{
			{Name: EventShowDashboard, Src: allViews, Dst: StateDashboard},
			{Name: EventShowHistory, Src: allViews, Dst: StateHistory},
			{Name: EventShowSession, Src: allViews, Dst: StateSession},
		},
		fsm.Callbacks{
			"after_event": func(_ context.Context, e *fsm.Event) {
				util.LogDebugf("View %s -> %s", e.Src, e.Dst)
			},
		},
	)
	return m
}

// Current returns the current view state
func (m *ViewMachine) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Current()
}

// SessionIndex is the selected completed session, meaningful in the
// session view
func (m *ViewMachine) SessionIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionIndex
}

// ShowDashboard switches to the dashboard
func (m *ViewMachine) ShowDashboard() error {
	return m.trigger(EventShowDashboard)
}

// ShowHistory switches to the history chart
func (m *ViewMachine) ShowHistory() error {
	return m.trigger(EventShowHistory)
}

// ShowSession switches to the detail of session idx. Moving between
// sessions keeps the state and only changes the index.
func (m *ViewMachine) ShowSession(idx int) error {
	m.mu.Lock()
	m.sessionIndex = idx
	m.mu.Unlock()
	return m.trigger(EventShowSession)
}

func (m *ViewMachine) trigger(event string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.fsm.Event(context.Background(), event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}
	return nil
}
