package monitor

import (
	"context"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Recorder samples the battery without a terminal, persisting as it goes
type Recorder struct {
	source        battery.Source
	history       *history.History
	store         Persister
	interval      time.Duration
	autosaveEvery int
	samples       int
	log           util.LoggerInterface
}

// NewRecorder records into h, saving to store every autosaveEvery samples
func NewRecorder(source battery.Source, h *history.History, store Persister, interval time.Duration, autosaveEvery int) *Recorder {
	if autosaveEvery < 1 {
		autosaveEvery = 1
	}
	return &Recorder{
		source:        source,
		history:       h,
		store:         store,
		interval:      interval,
		autosaveEvery: autosaveEvery,
	}
}

// Samples is the number of samples recorded so far
func (r *Recorder) Samples() int {
	return r.samples
}

// Run samples immediately, then every interval, until ctx is cancelled.
// A final save happens on shutdown.
func (r *Recorder) Run(ctx context.Context) error {
	r.log = util.LogWith(util.F("battery", r.source.Name()))
	r.log.Info("Recording battery samples",
		util.F("interval", r.interval.String()),
		util.F("autosave_every", r.autosaveEvery))

	r.sample()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("Recorder stopping", util.F("samples", r.samples))
			r.save()
			return nil
		case <-ticker.C:
			r.sample()
		}
	}
}

func (r *Recorder) sample() {
	s, err := r.source.Read()
	if err != nil {
		r.log.Warnf("Failed to read battery: %v", err)
		return
	}
	r.history.AddSample(s)
	r.samples++

	if r.samples%r.autosaveEvery == 0 {
		r.save()
	}
}

func (r *Recorder) save() {
	if err := r.store.Save(r.history); err != nil {
		r.log.Errorf("Failed to save history: %v", err)
		return
	}
	r.log.Debugf("Saved %d samples", r.history.Len())
}
