package source

import (
	"sync"
	"time"

	"github.com/codelens-dev/codelens-mcp/pkg/types"
)

// debouncer collapses bursts of filesystem events and emits one batch after a
// quiet period. Multiple events for the same path within the window are
// merged, keeping the most significant operation (a delete beats a write).
type debouncer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]types.FileEvent
	timer    *time.Timer
	output   chan []types.FileEvent
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		pending:  make(map[string]types.FileEvent),
		output:   make(chan []types.FileEvent, 16),
	}
}

func (d *debouncer) Output() <-chan []types.FileEvent {
	return d.output
}

func (d *debouncer) Add(event types.FileEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[event.Path]; ok {
		// A file recreated after a delete within the window is a change.
		if prev.Op == types.FileDeleted && event.Op == types.FileCreated {
			event.Op = types.FileChanged
		}
	}
	d.pending[event.Path] = event

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.pending) == 0 {
		return
	}

	batch := make([]types.FileEvent, 0, len(d.pending))
	for _, event := range d.pending {
		batch = append(batch, event)
	}
	d.pending = make(map[string]types.FileEvent)

	select {
	case d.output <- batch:
	default:
		// Consumer stalled; drop the batch rather than block the timer
		// goroutine. The next full scan repairs any missed update.
	}
}
