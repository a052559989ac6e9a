package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-battery-monitor/internal/config"
	"github.com/penwyp/go-battery-monitor/internal/core/history"
	"github.com/penwyp/go-battery-monitor/internal/data/watcher"
	"github.com/penwyp/go-battery-monitor/internal/presentation/display"
	"github.com/penwyp/go-battery-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// Loader reads a history; *history.Store satisfies it
type Loader interface {
	Load() *history.History
	Path() string
}

// Follower shows a history file written by a running recorder. It never
// samples or saves; it reloads whenever the file changes.
type Follower struct {
	cfg    *config.Config
	store  Loader
	app    *App
	screen Screen
	keys   KeySource
}

// NewFollower loads the store once and prepares a read-only app
func NewFollower(cfg *config.Config, store Loader, batteryName string) *Follower {
	app := NewApp(store.Load(), nil, batteryName, cfg.AutosaveEvery)
	app.SetReadOnly(true)
	if latest, ok := app.History().Latest(); ok {
		app.lastSample = &latest
	}
	return &Follower{
		cfg:    cfg,
		store:  store,
		app:    app,
		screen: display.NewTerminalDisplay(),
	}
}

// WithTerminal replaces the screen and key source, for tests
func (f *Follower) WithTerminal(screen Screen, keys KeySource) *Follower {
	f.screen = screen
	f.keys = keys
	return f
}

// App exposes the follower state
func (f *Follower) App() *App {
	return f.app
}

// Reload re-reads the history file
func (f *Follower) Reload() {
	f.app.ReplaceHistory(f.store.Load())
	util.LogDebugf("Reloaded %d samples from %s", f.app.History().Len(), f.store.Path())
}

// Run blocks until the user quits or ctx is cancelled
func (f *Follower) Run(ctx context.Context) error {
	fileWatcher, err := watcher.NewFileWatcher(f.store.Path())
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fileWatcher.Close()

	if f.keys == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		f.keys = keyboard
	}
	defer func() {
		if err := f.keys.Close(); err != nil {
			util.LogWarnf("Failed to restore terminal: %v", err)
		}
	}()

	f.screen.EnterAlternateScreen()
	defer f.screen.ExitAlternateScreen()
	f.render()

	uiTicker := time.NewTicker(f.cfg.UIRefreshInterval())
	defer uiTicker.Stop()

	events := fileWatcher.Events()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-uiTicker.C:
			f.render()

		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			util.LogDebugf("History file changed: %s (%s)", event.Path, event.Operation)
			f.Reload()
			f.render()

		case key, ok := <-f.keys.Events():
			if !ok || f.app.HandleKey(key) {
				return nil
			}
			f.render()
		}
	}
}

func (f *Follower) render() {
	f.screen.Render(f.app.Frame())
}
