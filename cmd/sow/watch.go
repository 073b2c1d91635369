package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"sowbuilder/cmd/sow/ui"
	"sowbuilder/internal/logging"
)

// RecordWatcher re-runs a callback when a record file changes on disk.
// It watches the parent directory so editors that save by rename are seen.
type RecordWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce *ui.ChangeDebouncer
	onChange func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewRecordWatcher creates a watcher for path.
func NewRecordWatcher(path string, onChange func()) (*RecordWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &RecordWatcher{
		watcher:  w,
		path:     abs,
		debounce: ui.NewChangeDebouncer(ui.DefaultChangeDuration),
		onChange: onChange,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It does not block.
func (rw *RecordWatcher) Start(ctx context.Context) error {
	rw.mu.Lock()
	if rw.running {
		rw.mu.Unlock()
		return nil
	}
	rw.running = true
	rw.mu.Unlock()

	if err := rw.watcher.Add(filepath.Dir(rw.path)); err != nil {
		rw.mu.Lock()
		rw.running = false
		rw.mu.Unlock()
		_ = rw.watcher.Close()
		return fmt.Errorf("watch %s: %w", rw.path, err)
	}
	logging.Preview("watching %s", rw.path)

	go rw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (rw *RecordWatcher) Stop() {
	rw.mu.Lock()
	if !rw.running {
		rw.mu.Unlock()
		return
	}
	rw.running = false
	rw.mu.Unlock()

	close(rw.stopCh)
	<-rw.doneCh
	rw.debounce.Cancel()

	if err := rw.watcher.Close(); err != nil {
		logging.PreviewWarn("error closing watcher: %v", err)
	}
}

func (rw *RecordWatcher) run(ctx context.Context) {
	defer close(rw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-rw.stopCh:
			return

		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != rw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logging.Get(logging.CategoryPreview).Debug("%s event for %s", event.Op, event.Name)
			rw.debounce.Changed(event.Name, func([]string) { rw.onChange() })

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			logging.PreviewWarn("watcher error: %v", err)
		}
	}
}
