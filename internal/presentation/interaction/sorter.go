package interaction

import (
	"fmt"
	"sort"

	"github.com/penwyp/go-battery-monitor/internal/core/model"
)

// SortField represents the field to sort charge sessions by
type SortField int

const (
	SortByTime SortField = iota
	SortByDuration
	SortByEnergy
	SortByGain
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// ParseSortField maps a flag value to a SortField
func ParseSortField(name string) (SortField, error) {
	switch name {
	case "", "time":
		return SortByTime, nil
	case "duration":
		return SortByDuration, nil
	case "energy":
		return SortByEnergy, nil
	case "gain":
		return SortByGain, nil
	}
	return SortByTime, fmt.Errorf("unknown sort field %q (time, duration, energy, gain)", name)
}

// SessionEntry is a charge session with its position in the history's
// completed list, which is what the view keys select by
type SessionEntry struct {
	Index   int
	Session model.ChargeSession
}

// Entries pairs sessions with their positions
func Entries(sessions []model.ChargeSession) []SessionEntry {
	entries := make([]SessionEntry, len(sessions))
	for i, s := range sessions {
		entries[i] = SessionEntry{Index: i, Session: s}
	}
	return entries
}

// SessionSorter handles sorting of charge sessions
type SessionSorter struct {
	field SortField
	order SortOrder
}

// NewSessionSorter creates a sorter listing the newest session first
func NewSessionSorter() *SessionSorter {
	return &SessionSorter{
		field: SortByTime,
		order: SortDescending,
	}
}

// SetField changes the sort key
func (s *SessionSorter) SetField(field SortField) {
	s.field = field
}

// SetOrder changes the sort direction
func (s *SessionSorter) SetOrder(order SortOrder) {
	s.order = order
}

// Sort orders entries in place; ties keep their original order
func (s *SessionSorter) Sort(entries []SessionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := s.key(&entries[i].Session), s.key(&entries[j].Session)
		if a == b {
			return false
		}
		if s.order == SortDescending {
			return a > b
		}
		return a < b
	})
}

func (s *SessionSorter) key(c *model.ChargeSession) float64 {
	switch s.field {
	case SortByDuration:
		return c.Duration().Seconds()
	case SortByEnergy:
		return c.EnergyAddedWh()
	case SortByGain:
		return c.EndCapacity - c.StartCapacity
	default:
		return float64(c.StartTime.UnixNano())
	}
}
