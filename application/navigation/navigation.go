package navigation

import (
	"context"
	"sync"

	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
)

// Trigger identifies what caused a navigation
type Trigger string

const (
	// TriggerProgrammatic is an explicit navigate call
	TriggerProgrammatic Trigger = "programmatic"
	// TriggerPopState is a back/forward traversal reported by the host
	TriggerPopState Trigger = "popstate"
	// TriggerHashChange is a fragment change reported by the host
	TriggerHashChange Trigger = "hashchange"
)

// Extras are caller-supplied options for one navigation
type Extras struct {
	// ReplaceURL overwrites the current history entry instead of pushing
	ReplaceURL bool

	// SkipLocationChange navigates without writing the visible address
	SkipLocationChange bool

	// State is an auxiliary payload to attach to the history entry
	State history.State
}

// RestoredState is the history payload recovered when a navigation was
// triggered by a host back/forward traversal
type RestoredState struct {
	// State is the raw entry payload
	State history.State

	// NavigationID is the id the engine stored on that entry, if any
	NavigationID int64

	// PageID is the page identifier stored on that entry; nil if the
	// entry was not written by this engine
	PageID *int64
}

// Navigation is the record of one attempt, created at schedule time and
// discarded after its terminal outcome. All fields except FinalURL are
// fixed at creation.
type Navigation struct {
	// ID orders navigations; strictly increasing, never reused
	ID int64

	// TargetPageID is the position this navigation should occupy in the
	// host history stack (computed resolution only, otherwise 0)
	TargetPageID int64

	// Trigger identifies the source of the navigation
	Trigger Trigger

	// InitialURL is the full requested tree before any extraction
	InitialURL *urltree.Tree

	// ExtractedURL is the portion of InitialURL this engine owns
	ExtractedURL *urltree.Tree

	// FinalURL is the tree after redirects, set by the pipeline once
	// recognition completes
	FinalURL *urltree.Tree

	// CurrentURLTree and CurrentRawURL snapshot the committed state at
	// schedule time; the reconciler restores to them on rollback
	CurrentURLTree *urltree.Tree
	CurrentRawURL  *urltree.Tree

	// Extras are the caller options
	Extras Extras

	// RestoredState is set when the host triggered this navigation
	RestoredState *RestoredState

	// PreviousNavigation is the last successfully committed record
	PreviousNavigation *Navigation

	// Result is the one deferred outcome exposed to the caller
	Result *Deferred
}

// Deferred is a single-settlement future for a navigation outcome.
// It resolves to true on success, false on benign cancellation, and
// rejects with an error on unrecovered failure. Settling more than
// once is a no-op, which keeps the exactly-once contract auditable
// when a deferred is shared across superseding schedule calls.
type Deferred struct {
	once  sync.Once
	done  chan struct{}
	value bool
	err   error
}

// NewDeferred creates an unsettled deferred
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles the deferred with a boolean outcome
func (d *Deferred) Resolve(value bool) {
	d.once.Do(func() {
		d.value = value
		close(d.done)
	})
}

// Reject settles the deferred with an error
func (d *Deferred) Reject(err error) {
	d.once.Do(func() {
		d.err = err
		close(d.done)
	})
}

// Done returns a channel closed once the deferred settles
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether the deferred has already been settled
func (d *Deferred) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the deferred settles or the context ends
func (d *Deferred) Wait(ctx context.Context) (bool, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// URLHandlingStrategy restricts which portion of an address this engine
// owns and how partial updates merge back into the full raw address
type URLHandlingStrategy interface {
	// ShouldProcess reports whether the engine handles this address at all
	ShouldProcess(tree *urltree.Tree) bool

	// Extract returns the portion of the address the engine owns
	Extract(tree *urltree.Tree) *urltree.Tree

	// Merge folds the owned portion back into the full raw address
	Merge(owned, whole *urltree.Tree) *urltree.Tree
}

// DefaultURLHandlingStrategy treats the whole address as engine-owned
type DefaultURLHandlingStrategy struct{}

// ShouldProcess always returns true
func (DefaultURLHandlingStrategy) ShouldProcess(*urltree.Tree) bool { return true }

// Extract returns the address unchanged
func (DefaultURLHandlingStrategy) Extract(tree *urltree.Tree) *urltree.Tree { return tree }

// Merge returns the owned portion, which is the whole address
func (DefaultURLHandlingStrategy) Merge(owned, _ *urltree.Tree) *urltree.Tree { return owned }

// TitleStrategy is consulted after a successful navigation to update
// the host document title
type TitleStrategy interface {
	UpdateTitle(nav *Navigation)
}

// NoopTitleStrategy leaves the title alone
type NoopTitleStrategy struct{}

// UpdateTitle does nothing
func (NoopTitleStrategy) UpdateTitle(*Navigation) {}

// pageIDFromState extracts the engine-written page identifier from a
// history entry payload. JSON round-trips turn integers into float64,
// so both encodings are accepted.
func pageIDFromState(state history.State) (int64, bool) {
	if state == nil {
		return 0, false
	}
	switch v := state[StateKeyPageID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// navigationIDFromState extracts the engine-written navigation id
func navigationIDFromState(state history.State) (int64, bool) {
	if state == nil {
		return 0, false
	}
	switch v := state[StateKeyNavigationID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// Keys the engine writes into history entry payloads
const (
	StateKeyNavigationID = "navigationId"
	StateKeyPageID       = "pageId"
)
