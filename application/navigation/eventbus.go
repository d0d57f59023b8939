package navigation

import (
	"sync"

	"github.com/Dimo99/angular/domain/events"
)

// EventBus fans lifecycle events out to registered listeners in
// publication order. Listeners run synchronously on the publishing
// goroutine, matching the engine's serialized event model.
type EventBus struct {
	mu        sync.RWMutex
	listeners map[int]func(events.Event)
	nextID    int
}

// NewEventBus creates an empty bus
func NewEventBus() *EventBus {
	return &EventBus{
		listeners: map[int]func(events.Event){},
	}
}

// Subscribe registers a listener; the returned function removes it
func (b *EventBus) Subscribe(listener func(events.Event)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish delivers an event to every listener
func (b *EventBus) Publish(event events.Event) {
	b.mu.RLock()
	listeners := make([]func(events.Event), 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}
