package observability

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/domain/events"
)

// Recorder keeps a bounded in-memory log of lifecycle events for
// inspection endpoints and tests. Older events are dropped once the
// capacity is reached.
type Recorder struct {
	mu       sync.Mutex
	buffer   []events.Event
	capacity int
	logger   *zap.Logger
}

// DefaultCapacity is the event count kept when none is specified
const DefaultCapacity = 256

// NewRecorder creates a recorder holding up to capacity events
func NewRecorder(capacity int, logger *zap.Logger) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		buffer:   make([]events.Event, 0, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Record appends an event, evicting the oldest when full. It has the
// signature of an event listener so it can be subscribed directly.
func (r *Recorder) Record(event events.Event) {
	r.mu.Lock()
	if len(r.buffer) == r.capacity {
		copy(r.buffer, r.buffer[1:])
		r.buffer = r.buffer[:len(r.buffer)-1]
	}
	r.buffer = append(r.buffer, event)
	r.mu.Unlock()

	r.logger.Debug("lifecycle event",
		zap.String("type", event.GetEventType()),
		zap.Int64("navigation_id", event.GetNavigationID()),
	)
}

// Snapshot returns a copy of the recorded events, oldest first
func (r *Recorder) Snapshot() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.buffer))
	copy(out, r.buffer)
	return out
}

// Clear empties the log
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffer = r.buffer[:0]
}
