package history

import (
	"github.com/google/uuid"
	"github.com/penwyp/go-battery-monitor/internal/core/constants"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
)

// trackerState is either idleState or openState
type trackerState interface {
	isTrackerState()
}

// idleState: no session is open
type idleState struct{}

// openState: a charge session is in progress
type openState struct {
	session *model.ChargeSession
}

func (idleState) isTrackerState() {}
func (openState) isTrackerState() {}

// SessionTracker folds samples into charge sessions, one transition per
// sample with no lookahead
type SessionTracker struct {
	state     trackerState
	threshold float64
	newID     func() string
}

// NewSessionTracker creates a tracker in the idle state
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		state:     idleState{},
		threshold: constants.CompletionThreshold,
		newID:     uuid.NewString,
	}
}

// Observe applies one sample. When the sample closes an open session the
// closed session is returned; the caller decides whether to keep it.
func (t *SessionTracker) Observe(sample model.Sample) *model.ChargeSession {
	switch st := t.state.(type) {
	case idleState:
		if sample.IsCharging() {
			t.state = openState{session: t.open(sample)}
		}
		return nil

	case openState:
		if sample.IsCharging() {
			t.extend(st.session, sample)
			return nil
		}
		closed := st.session
		if closed.EndTime == nil {
			end := sample.Timestamp
			closed.EndTime = &end
		}
		t.state = idleState{}
		return closed

	default:
		// Unreachable: state is always one of the two variants
		t.state = idleState{}
		return nil
	}
}

func (t *SessionTracker) open(sample model.Sample) *model.ChargeSession {
	return &model.ChargeSession{
		ID:            t.newID(),
		StartTime:     sample.Timestamp,
		EndTime:       nil,
		StartCapacity: sample.Capacity,
		EndCapacity:   sample.Capacity,
		Samples:       []model.Sample{sample},
		Completed:     false,
	}
}

func (t *SessionTracker) extend(session *model.ChargeSession, sample model.Sample) {
	end := sample.Timestamp
	session.EndCapacity = sample.Capacity
	session.EndTime = &end
	session.Samples = append(session.Samples, sample)

	// Sticky: never reset once reached
	if sample.Capacity >= t.threshold && !session.Completed {
		session.Completed = true
	}
}

// Active returns a copy of the open session, or nil when idle
func (t *SessionTracker) Active() *model.ChargeSession {
	if st, ok := t.state.(openState); ok {
		return st.session.Clone()
	}
	return nil
}
