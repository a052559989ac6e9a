// Package watcher reports changes to a single file using fsnotify.
package watcher

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-battery-monitor/internal/util"
)

// FileEvent is a change to the watched file
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches the parent directory of a file so that atomic
// replacements (write temp, rename over) are seen as well as in-place writes
type FileWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	events  chan FileEvent
	done    chan struct{}
}

// NewFileWatcher starts watching path. The parent directory must exist.
func NewFileWatcher(path string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		target:  target,
		events:  make(chan FileEvent, 16),
		done:    make(chan struct{}),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != fw.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			fe := FileEvent{Path: event.Name, Operation: event.Op.String()}
			select {
			case fw.events <- fe:
			case <-fw.done:
				return
			default:
				// A reload is already pending
				util.LogDebugf("Dropping coalesced file event %s", fe.Operation)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			return
		}
	}
}

// Events is closed after Close
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

// Close stops watching
func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}
