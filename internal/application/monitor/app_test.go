package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/core/constants"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/core/model"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = util.InitializeTimeProvider("UTC")
}

func TestNewApp_ReferenceTimeFromLoadedHistory(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)

	assert.Equal(t, StateDashboard, app.View())
	assert.Equal(t, 0.0, app.TimeToX(t0))
	assert.Equal(t, 300.0, app.TimeToX(t0.Add(5*time.Minute)))

	got, ok := app.XToTime(90)
	require.True(t, ok)
	assert.True(t, got.Equal(t0.Add(90*time.Second)))
}

func TestApp_NoReferenceTimeBeforeFirstSample(t *testing.T) {
	app := NewApp(history.New(), nil, "BAT0", 60)

	assert.Equal(t, 0.0, app.TimeToX(t0.Add(time.Hour)))
	_, ok := app.XToTime(10)
	assert.False(t, ok)

	app.AddSample(sampleAt(time.Minute, 50, model.StatusDischarging))
	assert.Equal(t, 0.0, app.TimeToX(t0.Add(time.Minute)))
	assert.Equal(t, 60.0, app.TimeToX(t0.Add(2*time.Minute)))
}

func TestApp_AddSampleAutosaves(t *testing.T) {
	store := &memStore{}
	app := NewApp(history.New(), store, "BAT0", 3)

	for i, s := range dischargingSamples(7) {
		app.AddSample(s)
		assert.Equal(t, i+1, app.Ticks())
	}

	assert.Equal(t, 2, store.Saves())
	assert.Len(t, store.last.Samples, 6)
	assert.Equal(t, 7, app.History().Len())
	require.NotNil(t, app.Frame().Latest)
	assert.InDelta(t, 79.4, app.Frame().Latest.Capacity, 1e-9)
}

func TestApp_AutosaveFailureIsReported(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	app := NewApp(history.New(), store, "BAT0", 1)

	app.AddSample(sampleAt(0, 50, model.StatusDischarging))

	assert.Contains(t, app.Frame().StatusMessage, "disk full")
	assert.Equal(t, 1, app.History().Len(), "the sample is kept")
}

func TestApp_ReadOnlyNeverSaves(t *testing.T) {
	store := &memStore{}
	app := NewApp(history.New(), store, "BAT0", 1)
	app.SetReadOnly(true)

	app.AddSample(sampleAt(0, 50, model.StatusDischarging))
	require.NoError(t, app.Save())

	assert.Equal(t, 0, store.Saves())
}

func TestApp_ShowHistoryFits(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)

	app.ShowHistory()

	assert.Equal(t, StateHistory, app.View())
	vp := app.ActiveViewport()
	assert.Equal(t, 0.0, vp.TimeStart)
	assert.Equal(t, 1200.0, vp.TimeEnd)
	assert.Equal(t, 1.0, vp.Zoom)
}

func TestApp_ShowSession(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)

	assert.False(t, app.ShowSession(1), "only one completed session")
	assert.Equal(t, StateDashboard, app.View())

	require.True(t, app.ShowSession(0))
	assert.Equal(t, StateSession, app.View())
	assert.Equal(t, 600.0, app.ActiveViewport().TimeTotal)

	// the history viewport is untouched
	app.ShowDashboard()
	assert.Equal(t, 1.0, app.ActiveViewport().TimeTotal)
}

func TestApp_SessionSeriesStartAtSessionStart(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)
	require.True(t, app.ShowSession(0))

	session, ok := app.History().Session(0)
	require.True(t, ok)
	points := app.CapacitySeries(session.Samples)

	require.Len(t, points, 3)
	assert.Equal(t, 0.0, points[0].X)
	assert.Equal(t, 10.0, points[0].Y)
	assert.Equal(t, 600.0, points[2].X)

	power := app.PowerSeries(session.Samples)
	require.Len(t, power, 3)
	assert.Equal(t, 25.0, power[1].Y)
}

func TestApp_HandleKey(t *testing.T) {
	tests := []struct {
		name     string
		keys     []interaction.KeyEvent
		wantView string
		wantQuit bool
	}{
		{"q quits", []interaction.KeyEvent{char('q')}, StateDashboard, true},
		{"ctrl-c quits", []interaction.KeyEvent{{Key: 3, Type: interaction.KeyCtrlC}}, StateDashboard, true},
		{"h shows history", []interaction.KeyEvent{char('h')}, StateHistory, false},
		{"d returns to dashboard", []interaction.KeyEvent{char('h'), char('d')}, StateDashboard, false},
		{"1 shows first session", []interaction.KeyEvent{char('1')}, StateSession, false},
		{"2 without a second session stays", []interaction.KeyEvent{char('h'), char('2')}, StateHistory, false},
		{"escape returns to dashboard", []interaction.KeyEvent{char('1'), {Key: 27, Type: interaction.KeyEscape}}, StateDashboard, false},
		{"unknown keys are ignored", []interaction.KeyEvent{char('x'), char('Z')}, StateDashboard, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(historyWithSession(), nil, "BAT0", 60)
			quit := false
			for _, k := range tt.keys {
				quit = app.HandleKey(k)
			}
			assert.Equal(t, tt.wantQuit, quit)
			assert.Equal(t, tt.wantView, app.View())
		})
	}
}

func TestApp_ZoomPanAndFitKeys(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)
	app.HandleKey(char('h'))
	vp := app.ActiveViewport()

	app.HandleKey(char('+'))
	assert.InDelta(t, constants.ZoomFactor, vp.Zoom, 1e-9)
	app.HandleKey(char('='))
	assert.InDelta(t, constants.ZoomFactor*constants.ZoomFactor, vp.Zoom, 1e-9)

	start := vp.TimeStart
	app.HandleKey(interaction.KeyEvent{Type: interaction.KeyLeft})
	assert.Less(t, vp.TimeStart, start)
	app.HandleKey(interaction.KeyEvent{Type: interaction.KeyRight})
	app.HandleKey(interaction.KeyEvent{Type: interaction.KeyRight})
	assert.Greater(t, vp.TimeStart, start)

	app.HandleKey(char('-'))
	assert.Greater(t, vp.Zoom, constants.ZoomFactor*constants.ZoomFactor)

	app.HandleKey(char('f'))
	assert.True(t, vp.IsFit())
}

func TestApp_FitRebasesAfterEviction(t *testing.T) {
	app := NewApp(history.New(), nil, "BAT0", 1000000)
	for _, s := range dischargingSamples(constants.MaxSamples + 10) {
		app.AddSample(s)
	}

	first, last, ok := app.History().Span()
	require.True(t, ok)
	require.True(t, first.After(t0))

	app.ShowHistory()

	assert.Equal(t, 0.0, app.TimeToX(first))
	assert.Equal(t, last.Sub(first).Seconds(), app.ActiveViewport().TimeTotal)
	frame := app.Frame()
	require.NotEmpty(t, frame.Capacity)
	assert.Equal(t, 0.0, frame.Capacity[0].X)
}

func TestApp_FittedHistoryFollowsNewSamples(t *testing.T) {
	app := NewApp(history.New(), nil, "BAT0", 60)
	samples := dischargingSamples(10)
	app.AddSample(samples[0])
	app.AddSample(samples[1])
	app.ShowHistory()
	assert.Equal(t, 5.0, app.ActiveViewport().TimeTotal)

	app.AddSample(samples[2])
	assert.Equal(t, 10.0, app.ActiveViewport().TimeTotal)

	// a zoomed chart stays where the user put it
	app.ActiveViewport().ZoomIn()
	app.AddSample(samples[3])
	assert.Equal(t, 10.0, app.ActiveViewport().TimeTotal)
}

func TestApp_Frame(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)

	frame := app.Frame()
	assert.Equal(t, StateDashboard, frame.View)
	assert.Equal(t, "BAT0", frame.BatteryName)
	assert.Equal(t, 5, frame.SampleCount)
	assert.Len(t, frame.Sessions, 1)
	assert.Nil(t, frame.Active)
	assert.Nil(t, frame.Capacity)

	app.ShowHistory()
	frame = app.Frame()
	assert.Len(t, frame.Capacity, 5)
	assert.Len(t, frame.Power, 5)
	assert.Equal(t, 5, frame.SourceCount)
	assert.Equal(t, 1200.0, frame.VisibleEnd)
	require.NotNil(t, frame.XLabel)
	assert.Equal(t, "09:10", frame.XLabel(600))

	app.ShowSession(0)
	frame = app.Frame()
	require.NotNil(t, frame.Session)
	assert.Equal(t, 0, frame.SessionIndex)
	assert.Equal(t, 3, frame.SourceCount)
	assert.Equal(t, "09:05", frame.XLabel(0))
}

func TestApp_ReplaceHistory(t *testing.T) {
	app := NewApp(historyWithSession(), nil, "BAT0", 60)
	require.True(t, app.ShowSession(0))

	app.ReplaceHistory(history.New())
	assert.Equal(t, StateDashboard, app.View(), "selected session no longer exists")

	app.ShowHistory()
	app.ReplaceHistory(historyWithSession())
	assert.Equal(t, StateHistory, app.View())
	assert.Equal(t, 1200.0, app.ActiveViewport().TimeTotal)
	require.NotNil(t, app.Frame().Latest)
	assert.Equal(t, 94.0, app.Frame().Latest.Capacity)
}
