package watcher

import (
	"sync"
	"time"
)

// Op classifies a file system change.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// FileEvent is a single coalesced change for one path.
type FileEvent struct {
	Path string
	Op   Op
}

// Debouncer coalesces bursts of file system events. Events arriving within
// the quiet interval are collected; the batch is emitted once the interval
// passes without new events. Repeated events for one path collapse to the
// most recent operation, except that a remove followed by a create is
// reported as a write, since editors often save through a rename dance and
// the net effect is a changed file.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	pending  map[string]FileEvent
	timer    *time.Timer
	output   chan []FileEvent
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		pending:  make(map[string]FileEvent),
		output:   make(chan []FileEvent, 16),
	}
}

// Output returns the channel batches are delivered on.
func (d *Debouncer) Output() <-chan []FileEvent {
	return d.output
}

// Record adds an event to the current window and restarts the quiet timer.
func (d *Debouncer) Record(path string, op Op) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[path]; ok && prev.Op == OpRemove && op == OpCreate {
		op = OpWrite
	}
	d.pending[path] = FileEvent{Path: path, Op: op}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	batch := make([]FileEvent, 0, len(d.pending))
	for _, event := range d.pending {
		batch = append(batch, event)
	}
	d.pending = make(map[string]FileEvent)

	d.output <- batch
}
