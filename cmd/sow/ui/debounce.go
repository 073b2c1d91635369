package ui

import (
	"slices"
	"sync"
	"time"
)

// Debouncer runs a function once a burst of calls has gone quiet.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce executes fn after the debounce duration has elapsed without any
// new calls. Rapid successive calls reset the timer.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel cancels any pending debounced function call
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ChangeDebouncer coalesces file change events. An editor save often
// produces several writes and a rename; the handler sees each path once.
type ChangeDebouncer struct {
	debouncer *Debouncer

	mu      sync.Mutex
	pending []string
}

// NewChangeDebouncer creates a debouncer for file change events.
func NewChangeDebouncer(duration time.Duration) *ChangeDebouncer {
	return &ChangeDebouncer{debouncer: NewDebouncer(duration)}
}

// Changed records path and schedules handler with every path seen in
// the burst, in first-seen order.
func (cd *ChangeDebouncer) Changed(path string, handler func([]string)) {
	cd.mu.Lock()
	if !slices.Contains(cd.pending, path) {
		cd.pending = append(cd.pending, path)
	}
	cd.mu.Unlock()

	cd.debouncer.Debounce(func() {
		cd.mu.Lock()
		paths := cd.pending
		cd.pending = nil
		cd.mu.Unlock()

		if len(paths) > 0 {
			handler(paths)
		}
	})
}

// Cancel drops pending changes.
func (cd *ChangeDebouncer) Cancel() {
	cd.debouncer.Cancel()
	cd.mu.Lock()
	cd.pending = nil
	cd.mu.Unlock()
}

// DefaultChangeDuration is the recommended quiet period for file saves.
const DefaultChangeDuration = 150 * time.Millisecond
