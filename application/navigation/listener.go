package navigation

import (
	"go.uber.org/zap"

	"github.com/Dimo99/angular/infrastructure/history"
)

// onHistoryChange schedules a navigation for a history change the host
// performed on its own (back/forward traversal or fragment change).
func (e *Engine) onHistoryChange(change history.ChangeEvent) {
	if e.disposed.Load() {
		return
	}

	trigger := TriggerPopState
	if change.Kind == history.ChangeHash {
		trigger = TriggerHashChange
	}

	tree, err := e.serializer.Parse(change.Path)
	if err != nil {
		e.logger.Warn("malformed address from host history",
			zap.String("path", change.Path),
			zap.Error(err),
		)
		tree = e.malformedURLHandler(change.Path, err)
	}

	restored := &RestoredState{State: change.State}
	if id, ok := navigationIDFromState(change.State); ok {
		restored.NavigationID = id
	}
	if pageID, ok := pageIDFromState(change.State); ok {
		restored.PageID = &pageID
	}

	// One user action can surface as a popstate/hashchange pair for the
	// same address; the second notification reuses the first deferred
	// so the caller-visible future settles exactly once.
	var prior *Deferred
	e.mu.Lock()
	if e.lastChange != nil &&
		e.lastChange.path == change.Path &&
		e.lastChange.kind != change.Kind &&
		!e.lastChange.deferred.Settled() {
		prior = e.lastChange.deferred
	}
	e.mu.Unlock()

	deferred := e.Schedule(tree, trigger, restored, Extras{}, prior)

	e.mu.Lock()
	e.lastChange = &changeRecord{
		path:     change.Path,
		kind:     change.Kind,
		deferred: deferred,
	}
	e.mu.Unlock()
}
