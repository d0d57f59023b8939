package navigation

import (
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
)

// syncHistory writes the visible address for a transition that is about
// to become (or already is) the committed state. The entry state is the
// caller's payload merged with the engine's own bookkeeping keys.
func (e *Engine) syncHistory(nav *Navigation, tree *urltree.Tree) {
	path := e.serializer.Serialize(tree)
	state := history.State{}
	for k, v := range nav.Extras.State {
		state[k] = v
	}
	state[StateKeyNavigationID] = nav.ID
	if e.cfg.CanceledNavigationResolution == ResolutionComputed {
		state[StateKeyPageID] = nav.TargetPageID
	}

	if e.stack.Path() == path || nav.Extras.ReplaceURL {
		e.stack.ReplaceState(path, state)
	} else {
		e.stack.PushState(path, state)
	}
}

// resetURLToCommitted overwrites the visible address with the committed
// raw address, tagging the entry with the last successful navigation
func (e *Engine) resetURLToCommitted() {
	raw := e.state.RawURLTree()
	state := history.State{
		StateKeyNavigationID: e.state.LastSuccessfulID(),
	}
	if e.cfg.CanceledNavigationResolution == ResolutionComputed {
		state[StateKeyPageID] = e.state.CurrentPageID()
	}
	e.stack.ReplaceState(e.serializer.Serialize(raw), state)
}
