package navigation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionChannelDeliversInOrder(t *testing.T) {
	c := NewTransitionChannel()

	first := &Navigation{ID: 1}
	second := &Navigation{ID: 2}
	third := &Navigation{ID: 3}
	c.Publish(first)
	c.Publish(second)
	c.Publish(third)

	ctx := context.Background()
	for _, want := range []*Navigation{first, second, third} {
		got, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
}

func TestTransitionChannelHoldsLatestValue(t *testing.T) {
	c := NewTransitionChannel()
	assert.Nil(t, c.Current())

	c.Publish(&Navigation{ID: 1})
	c.Publish(&Navigation{ID: 2})

	assert.Equal(t, int64(2), c.Current().ID)

	// consuming does not clear the latest value
	_, err := c.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Current().ID)
}

func TestTransitionChannelNextBlocksUntilPublish(t *testing.T) {
	c := NewTransitionChannel()

	got := make(chan *Navigation, 1)
	go func() {
		nav, err := c.Next(context.Background())
		if err == nil {
			got <- nav
		}
	}()

	time.Sleep(10 * time.Millisecond)
	c.Publish(&Navigation{ID: 7})

	select {
	case nav := <-got:
		assert.Equal(t, int64(7), nav.ID)
	case <-time.After(time.Second):
		t.Fatal("Next never returned after publish")
	}
}

func TestTransitionChannelNextHonorsContext(t *testing.T) {
	c := NewTransitionChannel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransitionChannelObserve(t *testing.T) {
	c := NewTransitionChannel()
	c.Publish(&Navigation{ID: 1})

	var seen []int64
	unsubscribe := c.Observe(func(nav *Navigation) {
		seen = append(seen, nav.ID)
	})

	// immediate delivery of the current record
	assert.Equal(t, []int64{1}, seen)

	c.Publish(&Navigation{ID: 2})
	assert.Equal(t, []int64{1, 2}, seen)

	unsubscribe()
	c.Publish(&Navigation{ID: 3})
	assert.Equal(t, []int64{1, 2}, seen)
}

func TestTransitionChannelCloseAndDrain(t *testing.T) {
	c := NewTransitionChannel()
	c.Publish(&Navigation{ID: 1})
	c.Publish(&Navigation{ID: 2})
	c.Close()

	// Next reports closure; queued records go to Drain
	_, err := c.Next(context.Background())
	assert.ErrorIs(t, err, ErrChannelClosed)

	drained := c.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, int64(1), drained[0].ID)

	// publishing after close is a no-op
	c.Publish(&Navigation{ID: 3})
	assert.Empty(t, c.Drain())
}
