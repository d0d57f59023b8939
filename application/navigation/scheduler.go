package navigation

import (
	"go.uber.org/zap"

	"github.com/Dimo99/angular/domain/urltree"
)

// Schedule turns a navigation request into an ordered transition and
// publishes it on the transition channel. It returns the deferred the
// caller settles on.
//
// prior lets the externally observed address-change path re-enter
// scheduling with an earlier unsettled deferred so both host
// notifications of one user action share a single resolution; every
// other caller passes nil and gets a fresh deferred.
func (e *Engine) Schedule(rawURL *urltree.Tree, trigger Trigger, restored *RestoredState, extras Extras, prior *Deferred) *Deferred {
	result := prior
	if result == nil {
		result = NewDeferred()
	}

	if e.disposed.Load() {
		result.Resolve(false)
		return result
	}

	// A programmatic request for the committed address is a no-op
	// unless the engine is configured to reload on same-address
	// navigations.
	if trigger == TriggerProgrammatic &&
		e.cfg.OnSameURL == SameURLIgnore &&
		e.state.Navigated() &&
		e.state.RawURLTree().Equal(rawURL) {
		result.Resolve(true)
		return result
	}

	id := e.state.NextNavigationID()
	targetPageID := e.computeTargetPageID(restored, extras)
	snapshot := e.state.Snapshot()

	e.mu.Lock()
	previous := e.lastSuccessful
	inflightCancel := e.inflightCancel
	e.mu.Unlock()

	nav := &Navigation{
		ID:                 id,
		TargetPageID:       targetPageID,
		Trigger:            trigger,
		InitialURL:         rawURL,
		ExtractedURL:       e.urlStrategy.Extract(rawURL),
		CurrentURLTree:     snapshot.CurrentURLTree,
		CurrentRawURL:      snapshot.RawURLTree,
		Extras:             extras,
		RestoredState:      restored,
		PreviousNavigation: previous,
		Result:             result,
	}

	e.logger.Debug("navigation scheduled",
		zap.Int64("navigation_id", id),
		zap.Int64("target_page_id", targetPageID),
		zap.String("trigger", string(trigger)),
	)

	// Signal the in-flight transition that a newer one exists; whether
	// that cancels it is the pipeline's decision.
	if inflightCancel != nil {
		inflightCancel()
	}
	e.transitions.Publish(nav)
	return result
}

// computeTargetPageID approximates the position this navigation should
// occupy in the host's back/forward stack. Page identifiers mirror the
// stack's actual depth so a rollback can compute how many entries to
// traverse, not only which address to show.
func (e *Engine) computeTargetPageID(restored *RestoredState, extras Extras) int64 {
	if e.cfg.CanceledNavigationResolution != ResolutionComputed {
		return 0
	}

	hostPageID, reported := pageIDFromState(e.stack.State())
	switch {
	case !e.state.Navigated() && reported:
		// First navigation of this process resuming mid-stack, e.g.
		// after a page reload: adopt the host's position.
		return hostPageID
	case restored != nil && restored.PageID != nil:
		// Host back/forward traversal: the entry records its position.
		return *restored.PageID
	case extras.ReplaceURL || extras.SkipLocationChange:
		if reported {
			return hostPageID
		}
		return e.state.CurrentPageID()
	default:
		if reported {
			return hostPageID + 1
		}
		return e.state.CurrentPageID() + 1
	}
}
