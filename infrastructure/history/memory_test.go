package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStackStartsAtRoot(t *testing.T) {
	stack := NewMemoryStack(nil)

	assert.Equal(t, "/", stack.Path())
	assert.Nil(t, stack.State())
	assert.Equal(t, 1, stack.Length())
}

func TestPushStateTruncatesForwardEntries(t *testing.T) {
	stack := NewMemoryStack(nil)
	stack.PushState("/a", nil)
	stack.PushState("/b", nil)
	stack.PushState("/c", nil)
	require.Equal(t, 4, stack.Length())

	stack.Go(-2) // back to /a
	require.Equal(t, "/a", stack.Path())

	stack.PushState("/d", nil)
	assert.Equal(t, "/d", stack.Path())
	assert.Equal(t, 3, stack.Length())

	// /b and /c are gone
	stack.Go(1)
	assert.Equal(t, "/d", stack.Path())
}

func TestReplaceStateKeepsPositionAndKey(t *testing.T) {
	stack := NewMemoryStack(nil)
	stack.PushState("/a", State{"v": 1})
	key := stack.Key()

	stack.ReplaceState("/b", State{"v": 2})

	assert.Equal(t, "/b", stack.Path())
	assert.Equal(t, key, stack.Key())
	assert.Equal(t, 2, stack.Length())
	assert.Equal(t, State{"v": 2}, stack.State())
}

func TestGoClampsToStackBounds(t *testing.T) {
	stack := NewMemoryStack(nil)
	stack.PushState("/a", nil)

	stack.Go(-10)
	assert.Equal(t, "/", stack.Path())

	stack.Go(10)
	assert.Equal(t, "/a", stack.Path())
}

func TestGoNotifiesSubscribers(t *testing.T) {
	stack := NewMemoryStack(nil)
	stack.PushState("/a", State{"navigationId": int64(1)})
	stack.PushState("/b", nil)

	var events []ChangeEvent
	unsubscribe := stack.Subscribe(func(e ChangeEvent) {
		events = append(events, e)
	})

	stack.Go(-1)
	require.Len(t, events, 1)
	assert.Equal(t, ChangePop, events[0].Kind)
	assert.Equal(t, "/a", events[0].Path)
	assert.Equal(t, State{"navigationId": int64(1)}, events[0].State)

	// a zero-distance traversal is silent
	stack.Go(0)
	assert.Len(t, events, 1)

	unsubscribe()
	stack.Go(1)
	assert.Len(t, events, 1)
}

func TestSetFragmentEmitsHashChange(t *testing.T) {
	stack := NewMemoryStack(nil)
	stack.PushState("/docs", nil)

	var events []ChangeEvent
	stack.Subscribe(func(e ChangeEvent) {
		events = append(events, e)
	})

	stack.SetFragment("usage")
	require.Len(t, events, 1)
	assert.Equal(t, ChangeHash, events[0].Kind)
	assert.Equal(t, "/docs#usage", events[0].Path)
	assert.Equal(t, "/docs#usage", stack.Path())

	stack.SetFragment("")
	require.Len(t, events, 2)
	assert.Equal(t, "/docs", stack.Path())
}
