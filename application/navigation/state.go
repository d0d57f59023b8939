package navigation

import (
	"sync"

	"go.uber.org/atomic"

	"github.com/Dimo99/angular/domain/urltree"
)

// Snapshot is the value of the committed state at one point in time,
// captured at schedule time and restored on rollback
type Snapshot struct {
	CurrentURLTree *urltree.Tree
	RawURLTree     *urltree.Tree
}

// Store owns the committed router state: the logical current address,
// the full raw address, the last address written to the host, and the
// page/navigation counters. Only the completion sink and the
// reconciler mutate it, through the narrow commit/rollback API below.
type Store struct {
	mu sync.RWMutex

	currentURLTree *urltree.Tree
	rawURLTree     *urltree.Tree
	browserURLTree *urltree.Tree

	currentPageID    int64
	lastSuccessfulID int64
	navigated        bool

	navigationID *atomic.Int64
}

// NewStore creates a store committed to the root address
func NewStore() *Store {
	root := urltree.NewTree()
	return &Store{
		currentURLTree: root,
		rawURLTree:     root,
		browserURLTree: root,
		navigationID:   atomic.NewInt64(0),
	}
}

// NextNavigationID assigns the next navigation identifier
func (s *Store) NextNavigationID() int64 {
	return s.navigationID.Inc()
}

// NavigationID returns the most recently assigned identifier
func (s *Store) NavigationID() int64 {
	return s.navigationID.Load()
}

// Snapshot captures the committed URL pair for later rollback
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		CurrentURLTree: s.currentURLTree,
		RawURLTree:     s.rawURLTree,
	}
}

// CurrentURLTree returns the committed logical address
func (s *Store) CurrentURLTree() *urltree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentURLTree
}

// RawURLTree returns the committed full raw address
func (s *Store) RawURLTree() *urltree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rawURLTree
}

// BrowserURLTree returns the last address written to the host
func (s *Store) BrowserURLTree() *urltree.Tree {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.browserURLTree
}

// SetBrowserURLTree records the address just written to the host
func (s *Store) SetBrowserURLTree(tree *urltree.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.browserURLTree = tree
}

// CurrentPageID returns the page identifier last reconciled with the host
func (s *Store) CurrentPageID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPageID
}

// LastSuccessfulID returns the id of the last committed navigation
func (s *Store) LastSuccessfulID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSuccessfulID
}

// Navigated reports whether any navigation has completed successfully
func (s *Store) Navigated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.navigated
}

// PreCommit updates the committed URL pair once activation is assured
// but before it completes. A failure after this point must roll back
// through Rollback.
func (s *Store) PreCommit(current, raw *urltree.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentURLTree = current
	s.rawURLTree = raw
}

// Commit finalizes a successful navigation
func (s *Store) Commit(nav *Navigation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navigated = true
	s.lastSuccessfulID = nav.ID
	s.currentPageID = nav.TargetPageID
}

// Rollback restores the committed URL pair to a pre-navigation snapshot.
// The raw tree is recomputed by the caller so that address portions the
// engine does not own survive the rollback.
func (s *Store) Rollback(snapshot Snapshot, mergedRaw *urltree.Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentURLTree = snapshot.CurrentURLTree
	s.rawURLTree = mergedRaw
}
