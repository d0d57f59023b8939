package navigation

import (
	"context"
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Next once the channel is closed and drained
var ErrChannelClosed = errors.New("transition channel closed")

// TransitionChannel is an ordered, stateful broadcast of navigation
// records. It always holds the latest published record, delivers every
// record to exactly one consumer in publication order, and lets
// observers subscribe with immediate delivery of the current value.
type TransitionChannel struct {
	mu        sync.Mutex
	current   *Navigation
	pending   []*Navigation
	signal    chan struct{}
	closed    bool
	observers map[int]func(*Navigation)
	nextObsID int
}

// NewTransitionChannel creates an empty channel
func NewTransitionChannel() *TransitionChannel {
	return &TransitionChannel{
		signal:    make(chan struct{}, 1),
		observers: map[int]func(*Navigation){},
	}
}

// Publish stores nav as the current record and queues it for the consumer
func (c *TransitionChannel) Publish(nav *Navigation) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.current = nav
	c.pending = append(c.pending, nav)
	observers := make([]func(*Navigation), 0, len(c.observers))
	for _, o := range c.observers {
		observers = append(observers, o)
	}
	c.mu.Unlock()

	select {
	case c.signal <- struct{}{}:
	default:
	}
	for _, o := range observers {
		o(nav)
	}
}

// Current returns the latest published record, or nil before the first publish
func (c *TransitionChannel) Current() *Navigation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Next blocks until a record is available, preserving publication order.
// It returns ErrChannelClosed once the channel is closed and drained.
func (c *TransitionChannel) Next(ctx context.Context) (*Navigation, error) {
	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return nil, ErrChannelClosed
		}
		if len(c.pending) > 0 {
			nav := c.pending[0]
			c.pending = c.pending[1:]
			c.mu.Unlock()
			return nav, nil
		}
		c.mu.Unlock()
		select {
		case <-c.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Observe registers an observer that immediately receives the current
// record (if any) and every subsequent publication. The returned
// function removes the observer.
func (c *TransitionChannel) Observe(observer func(*Navigation)) func() {
	c.mu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers[id] = observer
	current := c.current
	c.mu.Unlock()

	if current != nil {
		observer(current)
	}
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.observers, id)
	}
}

// Close stops accepting publications. Records already queued are
// returned by Drain rather than Next so the closer can settle them.
func (c *TransitionChannel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	select {
	case c.signal <- struct{}{}:
	default:
	}
}

// Drain removes and returns all queued records
func (c *TransitionChannel) Drain() []*Navigation {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := c.pending
	c.pending = nil
	return pending
}
