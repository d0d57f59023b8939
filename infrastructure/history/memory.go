package history

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// entry is one slot of the in-memory session history
type entry struct {
	key   string
	path  string
	state State
}

// MemoryStack is an in-memory Stack implementation.
//
// It mirrors host session-history semantics: pushing truncates any
// forward entries, replacing keeps the position, and Go traversals
// notify subscribers the way a host's popstate notification would.
type MemoryStack struct {
	mu        sync.Mutex
	entries   []entry
	index     int
	listeners map[int]func(ChangeEvent)
	nextID    int
	logger    *zap.Logger
}

// NewMemoryStack creates a stack with a single root entry at "/"
func NewMemoryStack(logger *zap.Logger) *MemoryStack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStack{
		entries:   []entry{{key: uuid.New().String(), path: "/"}},
		listeners: map[int]func(ChangeEvent){},
		logger:    logger,
	}
}

// Path returns the currently visible address
func (s *MemoryStack) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index].path
}

// State returns the state payload of the current entry
func (s *MemoryStack) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index].state
}

// Key returns the opaque identifier of the current entry
func (s *MemoryStack) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index].key
}

// Length returns the number of entries on the stack
func (s *MemoryStack) Length() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// PushState adds a new entry, discarding any forward entries
func (s *MemoryStack) PushState(path string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries[:s.index+1], entry{
		key:   uuid.New().String(),
		path:  path,
		state: state,
	})
	s.index = len(s.entries) - 1

	s.logger.Debug("history push",
		zap.String("path", path),
		zap.Int("index", s.index),
	)
}

// ReplaceState overwrites the current entry, keeping its key
func (s *MemoryStack) ReplaceState(path string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.index].path = path
	s.entries[s.index].state = state

	s.logger.Debug("history replace",
		zap.String("path", path),
		zap.Int("index", s.index),
	)
}

// Go moves the stack pointer and notifies subscribers
func (s *MemoryStack) Go(delta int) {
	s.mu.Lock()

	target := s.index + delta
	if target < 0 {
		target = 0
	}
	if target >= len(s.entries) {
		target = len(s.entries) - 1
	}
	if target == s.index {
		s.mu.Unlock()
		return
	}
	s.index = target
	event := ChangeEvent{
		Kind:  ChangePop,
		Path:  s.entries[s.index].path,
		State: s.entries[s.index].state,
	}
	listeners := make([]func(ChangeEvent), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.logger.Debug("history traverse",
		zap.Int("delta", delta),
		zap.String("path", event.Path),
	)
	for _, l := range listeners {
		l(event)
	}
}

// SetFragment changes only the fragment of the visible address and
// notifies subscribers with a hash change, the way hosts report
// same-document fragment navigations
func (s *MemoryStack) SetFragment(fragment string) {
	s.mu.Lock()
	path := stripFragment(s.entries[s.index].path)
	if fragment != "" {
		path += "#" + fragment
	}
	s.entries[s.index].path = path
	event := ChangeEvent{
		Kind:  ChangeHash,
		Path:  path,
		State: s.entries[s.index].state,
	}
	listeners := make([]func(ChangeEvent), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}

// Subscribe registers a change listener
func (s *MemoryStack) Subscribe(listener func(ChangeEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func stripFragment(path string) string {
	for i := 0; i < len(path); i++ {
		if path[i] == '#' {
			return path[:i]
		}
	}
	return path
}
