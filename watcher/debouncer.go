package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collapses repeated changes to the same path within a quiet
// period into a single sorted batch. Editors tend to fire several events per
// save; rule reloading only needs one.
type Debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]bool
	timer    *time.Timer
	output   chan []string
	closed   bool
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]bool),
		output:   make(chan []string, 4),
	}
}

// Output returns the channel that receives batched paths.
func (d *Debouncer) Output() <-chan []string {
	return d.output
}

// Add records a changed path and restarts the quiet timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.pending[path] = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// Close stops the timer and closes the output channel so consumers ranging
// over it terminate.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.output)
}

// flush sends the accumulated paths to the output channel and resets the buffer.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || len(d.pending) == 0 {
		return
	}

	batch := make([]string, 0, len(d.pending))
	for path := range d.pending {
		batch = append(batch, path)
	}
	sort.Strings(batch)

	d.pending = make(map[string]bool)
	d.output <- batch
}
