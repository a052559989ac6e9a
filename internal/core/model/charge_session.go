package model

import "time"

// ChargeSession is one charging episode, from the first Charging sample to
// the first sample that is not Charging
type ChargeSession struct {
	ID            string     `json:"id,omitempty"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"` // nil until a second sample or the close
	StartCapacity float64    `json:"start_capacity"`
	EndCapacity   float64    `json:"end_capacity"`
	Samples       []Sample   `json:"samples"`
	Completed     bool       `json:"completed"` // capacity reached the threshold at least once
}

// Duration returns the span between start and end, or zero without an end
func (c *ChargeSession) Duration() time.Duration {
	if c.EndTime == nil {
		return 0
	}
	return c.EndTime.Sub(c.StartTime)
}

// HasEnd reports whether an end time has been recorded
func (c *ChargeSession) HasEnd() bool {
	return c.EndTime != nil
}

// PeakCapacity is the highest capacity observed during the session
func (c *ChargeSession) PeakCapacity() float64 {
	peak := c.StartCapacity
	for _, s := range c.Samples {
		if s.Capacity > peak {
			peak = s.Capacity
		}
	}
	return peak
}

// EnergyAddedWh is the difference in stored energy between the first and
// last sample
func (c *ChargeSession) EnergyAddedWh() float64 {
	if len(c.Samples) < 2 {
		return 0
	}
	return c.Samples[len(c.Samples)-1].EnergyNowWh - c.Samples[0].EnergyNowWh
}

// Clone returns a deep copy so callers can't alias the sample slice
func (c *ChargeSession) Clone() *ChargeSession {
	if c == nil {
		return nil
	}
	out := *c
	if c.EndTime != nil {
		end := *c.EndTime
		out.EndTime = &end
	}
	out.Samples = make([]Sample, len(c.Samples))
	copy(out.Samples, c.Samples)
	return &out
}
