package history

// State is the auxiliary payload attached to a history entry
type State map[string]interface{}

// ChangeKind classifies externally driven history changes
type ChangeKind string

const (
	// ChangePop is a back/forward traversal of the stack
	ChangePop ChangeKind = "popstate"
	// ChangeHash is a fragment-only change of the visible address
	ChangeHash ChangeKind = "hashchange"
)

// ChangeEvent describes a history change the host performed on its own,
// outside of PushState/ReplaceState calls made by the engine
type ChangeEvent struct {
	Kind  ChangeKind
	Path  string
	State State
}

// Stack abstracts the host environment's session history.
//
// The engine never assumes it is the only writer: the host (or the
// user) can move the stack underneath it, reported via Subscribe.
type Stack interface {
	// Path returns the currently visible address
	Path() string

	// State returns the state payload of the current entry, or nil
	State() State

	// PushState adds a new entry after the current one and makes it current
	PushState(path string, state State)

	// ReplaceState overwrites the current entry in place
	ReplaceState(path string, state State)

	// Go moves the stack pointer by delta entries (negative = back).
	// Out-of-range deltas are clamped silently, as hosts do.
	Go(delta int)

	// Subscribe registers a listener for externally driven changes.
	// The returned function removes the listener.
	Subscribe(listener func(ChangeEvent)) (unsubscribe func())
}
