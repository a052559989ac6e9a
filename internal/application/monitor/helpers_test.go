package monitor

import (
	"errors"
	"sync"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
)

var t0 = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

var errNoReading = errors.New("no reading")

func sampleAt(offset time.Duration, capacity float64, status model.Status) model.Sample {
	power := 0.0
	switch status {
	case model.StatusCharging:
		power = 25
	case model.StatusDischarging:
		power = -8.5
	}
	return model.Sample{
		Timestamp:    t0.Add(offset),
		Capacity:     capacity,
		PowerWatts:   power,
		Status:       status,
		EnergyNowWh:  capacity / 2,
		EnergyFullWh: 50,
		VoltageNowV:  12,
	}
}

// historyWithSession holds one completed session 10% -> 95% over 10 minutes
// followed by discharging
func historyWithSession() *history.History {
	h := history.New()
	h.AddSample(sampleAt(0, 40, model.StatusDischarging))
	h.AddSample(sampleAt(5*time.Minute, 10, model.StatusCharging))
	h.AddSample(sampleAt(10*time.Minute, 50, model.StatusCharging))
	h.AddSample(sampleAt(15*time.Minute, 95, model.StatusCharging))
	h.AddSample(sampleAt(20*time.Minute, 94, model.StatusDischarging))
	return h
}

// fakeSource replays samples one per Read, then fails. onRead runs after
// every successful read.
type fakeSource struct {
	mu      sync.Mutex
	samples []model.Sample
	reads   int
	onRead  func(n int)
}

func (f *fakeSource) Read() (model.Sample, error) {
	f.mu.Lock()
	if f.reads >= len(f.samples) {
		f.mu.Unlock()
		return model.Sample{}, errNoReading
	}
	s := f.samples[f.reads]
	f.reads++
	n := f.reads
	f.mu.Unlock()

	if f.onRead != nil {
		f.onRead(n)
	}
	return s, nil
}

func (f *fakeSource) Name() string {
	return "TEST BAT0"
}

func (f *fakeSource) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func dischargingSamples(n int) []model.Sample {
	out := make([]model.Sample, n)
	for i := range out {
		out[i] = sampleAt(time.Duration(i)*5*time.Second, 80-float64(i)*0.1, model.StatusDischarging)
	}
	return out
}

// memStore counts saves and remembers the last snapshot
type memStore struct {
	mu    sync.Mutex
	saves int
	last  history.Snapshot
	err   error
}

func (m *memStore) Save(h *history.History) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.last = h.Snapshot()
	return nil
}

func (m *memStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// fakeScreen records rendered frames
type fakeScreen struct {
	mu      sync.Mutex
	entered int
	exited  int
	frames  []*layout.Frame
}

func (s *fakeScreen) EnterAlternateScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entered++
}

func (s *fakeScreen) ExitAlternateScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exited++
}

func (s *fakeScreen) Render(frame *layout.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, frame)
}

func (s *fakeScreen) LastFrame() *layout.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// fakeKeys is a key source fed by the test
type fakeKeys struct {
	ch     chan interaction.KeyEvent
	closed bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{ch: make(chan interaction.KeyEvent, 8)}
}

func (k *fakeKeys) Events() <-chan interaction.KeyEvent {
	return k.ch
}

func (k *fakeKeys) Close() error {
	k.closed = true
	return nil
}

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Key: r, Type: interaction.KeyChar}
}
