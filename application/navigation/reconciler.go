package navigation

import (
	"go.uber.org/zap"
)

// restore rolls the engine back after a cancelled or failed transition
// so the committed address, the raw address and the visible
// address/history position end up consistent again, no matter how far
// the transition had progressed.
func (e *Engine) restore(nav *Navigation, causedByError bool) {
	if e.cfg.CanceledNavigationResolution == ResolutionComputed {
		e.restoreComputed(nav)
		return
	}

	// Replace resolution never reasons about stack position: on an
	// error the committed state reverts to the pre-navigation
	// snapshot, and in every case the current history entry is
	// overwritten with the committed address.
	if causedByError {
		e.resetState(nav)
	}
	e.resetURLToCommitted()
}

func (e *Engine) restoreComputed(nav *Navigation) {
	delta := e.state.CurrentPageID() - nav.TargetPageID
	committedEqualsFinal := nav.FinalURL != nil && e.state.CurrentURLTree().Equal(nav.FinalURL)
	// The visible address has already advanced for this transition if
	// the host itself moved (back/forward), the engine writes eagerly,
	// or the transition reached the pre-activation update.
	browserAdvanced := nav.Trigger == TriggerPopState ||
		nav.Trigger == TriggerHashChange ||
		e.cfg.URLUpdate == URLUpdateEager ||
		committedEqualsFinal

	switch {
	case browserAdvanced && delta != 0:
		// Realign the stack pointer with the last known-good page.
		// This is the only path that moves history position instead of
		// rewriting entry content.
		e.logger.Debug("restoring history position",
			zap.Int64("navigation_id", nav.ID),
			zap.Int64("delta", delta),
		)
		e.stack.Go(int(delta))

	case committedEqualsFinal && delta == 0:
		// Activation had begun without a real stack move (replace or
		// skip-address-update): revert the committed state and rewrite
		// the current entry to match.
		e.resetState(nav)
		e.state.SetBrowserURLTree(nav.CurrentURLTree)
		e.resetURLToCommitted()

	default:
		// Neither the visible address nor the entry state was advanced
		// for this transition. Known asymmetry: committed state is not
		// reset here even though the zero-delta branch above does.
	}
}

// resetState reverts the committed address pair to the transition's
// pre-navigation snapshot. The raw address is recomputed by merging the
// reverted address with the transition's original request so portions
// of the address the engine does not own survive.
func (e *Engine) resetState(nav *Navigation) {
	merged := e.urlStrategy.Merge(nav.CurrentURLTree, nav.InitialURL)
	e.state.Rollback(Snapshot{
		CurrentURLTree: nav.CurrentURLTree,
		RawURLTree:     nav.CurrentRawURL,
	}, merged)
}
