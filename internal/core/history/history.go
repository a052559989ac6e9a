// Package history retains battery samples, tracks charge sessions and
// answers windowed queries over the retained series.
package history

import (
	"sync"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/constants"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/core/viewport"
)

// Snapshot is the persisted form of a History. It never carries the
// in-progress session.
type Snapshot struct {
	Samples        []model.Sample        `json:"samples"`
	ChargeSessions []model.ChargeSession `json:"charge_sessions"`
}

// History owns the bounded sample sequence and the completed sessions.
// All mutation goes through AddSample.
type History struct {
	mu          sync.RWMutex
	samples     []model.Sample
	sessions    []model.ChargeSession
	tracker     *SessionTracker
	maxSamples  int
	maxSessions int
}

// New creates an empty history
func New() *History {
	return &History{
		samples:     make([]model.Sample, 0),
		sessions:    make([]model.ChargeSession, 0),
		tracker:     NewSessionTracker(),
		maxSamples:  constants.MaxSamples,
		maxSessions: constants.MaxCompletedSessions,
	}
}

// NewFromSnapshot rebuilds a history from its persisted form. Caps are
// re-applied and sessions that never completed are dropped; no session is
// open afterwards.
func NewFromSnapshot(snap Snapshot) *History {
	h := New()
	h.samples = append(h.samples, snap.Samples...)
	h.trimSamples()
	for _, s := range snap.ChargeSessions {
		if s.Completed {
			h.retainSession(s)
		}
	}
	return h
}

// AddSample appends a sample, feeds the session tracker and enforces the
// retention caps. It never fails and performs no validation.
func (h *History) AddSample(sample model.Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples = append(h.samples, sample)

	if closed := h.tracker.Observe(sample); closed != nil && closed.Completed {
		h.retainSession(*closed)
	}

	h.trimSamples()
}

// retainSession appends a completed session, evicting the oldest beyond the cap
func (h *History) retainSession(session model.ChargeSession) {
	h.sessions = append(h.sessions, session)
	for len(h.sessions) > h.maxSessions {
		h.sessions = h.sessions[1:]
	}
}

// trimSamples drops from the front so at most maxSamples remain
func (h *History) trimSamples() {
	if excess := len(h.samples) - h.maxSamples; excess > 0 {
		h.samples = h.samples[excess:]
	}
}

// Samples returns a copy of the retained samples, oldest first
func (h *History) Samples() []model.Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// CompletedSessions returns copies of the retained sessions, most recent last
func (h *History) CompletedSessions() []model.ChargeSession {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]model.ChargeSession, len(h.sessions))
	for i := range h.sessions {
		out[i] = *h.sessions[i].Clone()
	}
	return out
}

// Session returns a copy of the completed session at idx
func (h *History) Session(idx int) (model.ChargeSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if idx < 0 || idx >= len(h.sessions) {
		return model.ChargeSession{}, false
	}
	return *h.sessions[idx].Clone(), true
}

// SessionCount is the number of retained completed sessions
func (h *History) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ActiveSession returns a copy of the in-progress session, or nil
func (h *History) ActiveSession() *model.ChargeSession {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tracker.Active()
}

// Len is the number of retained samples
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// Latest returns the most recent sample
func (h *History) Latest() (model.Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return model.Sample{}, false
	}
	return h.samples[len(h.samples)-1], true
}

// Span returns the timestamps of the first and last retained samples
func (h *History) Span() (first, last time.Time, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return h.samples[0].Timestamp, h.samples[len(h.samples)-1].Timestamp, true
}

// SpanSeconds is the extent of the retained samples, used to fit a viewport
func (h *History) SpanSeconds() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.samples) == 0 {
		return 0
	}
	return SpanSeconds(h.samples, h.samples[0].Timestamp)
}

// Series runs the windowed query over the retained samples
func (h *History) Series(ref time.Time, field model.Field, vp *viewport.Viewport) []viewport.Point {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Series(h.samples, ref, field, vp)
}

// Snapshot returns the persisted form
func (h *History) Snapshot() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := Snapshot{
		Samples:        make([]model.Sample, len(h.samples)),
		ChargeSessions: make([]model.ChargeSession, len(h.sessions)),
	}
	copy(snap.Samples, h.samples)
	for i := range h.sessions {
		snap.ChargeSessions[i] = *h.sessions[i].Clone()
	}
	return snap
}
