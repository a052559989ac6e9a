package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/config"
	"github.com/penwyp/go-battery-monitor/internal/core/battery"
	"github.com/penwyp/go-battery-monitor/internal/presentation/display"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/presentation/layout"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Screen draws frames; *display.TerminalDisplay satisfies it
type Screen interface {
	EnterAlternateScreen()
	ExitAlternateScreen()
	Render(frame *layout.Frame)
}

// KeySource delivers key presses; *interaction.KeyboardReader satisfies it
type KeySource interface {
	Events() <-chan interaction.KeyEvent
	Close() error
}

// Manager runs the interactive monitor: it samples the battery, redraws
// the current view and dispatches keys, all on one goroutine
type Manager struct {
	cfg    *config.Config
	source battery.Source
	app    *App
	screen Screen
	keys   KeySource
}

// NewManager builds a monitor on the real terminal. The keyboard is opened
// by Run.
func NewManager(cfg *config.Config, source battery.Source, app *App) *Manager {
	return &Manager{
		cfg:    cfg,
		source: source,
		app:    app,
		screen: display.NewTerminalDisplay(),
	}
}

// WithTerminal replaces the screen and key source, for tests
func (m *Manager) WithTerminal(screen Screen, keys KeySource) *Manager {
	m.screen = screen
	m.keys = keys
	return m
}

// App exposes the monitor state
func (m *Manager) App() *App {
	return m.app
}

// Run blocks until the user quits or ctx is cancelled. History is saved
// on the way out either way.
func (m *Manager) Run(ctx context.Context) error {
	util.LogInfo("Starting battery monitor",
		util.F("battery", m.source.Name()),
		util.F("interval", m.cfg.SampleInterval.String()))

	if m.keys == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		m.keys = keyboard
	}
	defer func() {
		if err := m.keys.Close(); err != nil {
			util.LogWarnf("Failed to restore terminal: %v", err)
		}
	}()

	m.screen.EnterAlternateScreen()
	defer m.screen.ExitAlternateScreen()

	// Initial sample so the dashboard is not empty for a whole interval
	m.sample()
	m.render()

	uiTicker := time.NewTicker(m.cfg.UIRefreshInterval())
	defer uiTicker.Stop()

	sampleTicker := time.NewTicker(m.cfg.SampleInterval)
	defer sampleTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down battery monitor...")
			m.save()
			return nil

		case <-uiTicker.C:
			m.render()

		case <-sampleTicker.C:
			m.sample()

		case event, ok := <-m.keys.Events():
			if !ok {
				m.save()
				return nil
			}
			if m.app.HandleKey(event) {
				util.LogInfo("Quit requested")
				m.save()
				return nil
			}
			m.render()
		}
	}
}

// sample reads the battery once; failures skip the tick
func (m *Manager) sample() {
	s, err := m.source.Read()
	if err != nil {
		util.LogWarnf("Failed to read battery: %v", err)
		return
	}
	m.app.AddSample(s)
}

func (m *Manager) render() {
	m.screen.Render(m.app.Frame())
}

func (m *Manager) save() {
	if err := m.app.Save(); err != nil {
		util.LogErrorf("Failed to save history: %v", err)
	}
}
