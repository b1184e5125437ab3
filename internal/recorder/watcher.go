package recorder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// EventType classifies a recordings-directory change.
type EventType int

const (
	EventAdded EventType = iota
	EventRemoved
)

// Event is a change to the recordings directory: a new finished recording
// appeared or one was removed.
type Event struct {
	Path string
	Type EventType
	Time time.Time
}

// audioExtensions are the file types the watcher reports.
var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
}

// Watcher monitors the recordings directory for new audio files, used by
// auto-send mode to pick up recordings produced outside a live session.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
}

// NewWatcher creates a watcher on the given recordings directory.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}
	return &Watcher{
		watcher:  fsw,
		dir:      dir,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Watch starts watching and returns a channel of events. Cancelling the
// context stops watching; the channel is closed when watching ends. Rapid
// write bursts for the same file (capture tools append continuously) are
// coalesced into one event per debounce window.
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		var debounceTimer *time.Timer
		pending := make(map[string]Event)

		resetDebounce := func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
		}

		flush := func() {
			for _, ev := range pending {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
			clear(pending)
		}

		// Initialize a stopped timer so the select below always has a
		// valid channel.
		debounceTimer = time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				base := filepath.Base(event.Name)
				// Skip temp files and partial captures.
				if strings.HasPrefix(base, ".") || strings.Contains(base, ".tmp-") {
					continue
				}
				if !audioExtensions[strings.ToLower(filepath.Ext(base))] {
					continue
				}
				pending[event.Name] = Event{
					Path: event.Name,
					Type: classify(event),
					Time: time.Now(),
				}
				resetDebounce()

			case <-debounceTimer.C:
				if len(pending) > 0 {
					flush()
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Warn("recordings watcher error", "err", err)
			}
		}
	}()

	return out
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func classify(ev fsnotify.Event) EventType {
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		return EventRemoved
	}
	return EventAdded
}
