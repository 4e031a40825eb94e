package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Event is emitted by Watch when the database file changes on disk.
type Event struct {
	Path string
}

// Watch streams change notifications for the database file until ctx is
// cancelled. Bursts of writes are coalesced into one event. The channel is
// closed once ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	return watchFile(ctx, s.path, 100*time.Millisecond)
}

func watchFile(ctx context.Context, path string, delay time.Duration) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	// The directory is watched so journal files and atomic replaces are seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	events := make(chan Event, 8)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				log.WithError(err).Warn("store: watcher close")
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer has a refresh pending already.
			}
		}

		throttle := newEventThrottle(delay)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Debug("store: watcher error")
				throttle.Enqueue(Event{Path: path}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(evt.Name), base) {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				throttle.Enqueue(Event{Path: path}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so the UI redraws once
// per burst of writes instead of on every page write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending *Event
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.pending = &ev
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	// send never blocks, so it runs under the lock; after Stop returns no
	// event can reach a closed channel.
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = nil
	t.timer = nil
	if pending != nil && !t.stopped {
		send(*pending)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
