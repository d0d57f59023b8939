package navigation

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/Dimo99/angular/domain/events"
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
	apperrors "github.com/Dimo99/angular/pkg/errors"
)

// Resolution selects how a cancelled navigation is rolled back
type Resolution string

const (
	// ResolutionReplace always overwrites the current history entry
	ResolutionReplace Resolution = "replace"
	// ResolutionComputed traverses the history stack back to the last
	// known-good page position
	ResolutionComputed Resolution = "computed"
)

// URLUpdateStrategy selects when the visible address is written
type URLUpdateStrategy string

const (
	// URLUpdateDeferred writes the address only once activation is assured
	URLUpdateDeferred URLUpdateStrategy = "deferred"
	// URLUpdateEager writes the address before guards run
	URLUpdateEager URLUpdateStrategy = "eager"
)

// SameURLPolicy selects what happens when the requested address equals
// the committed one
type SameURLPolicy string

const (
	// SameURLIgnore resolves the caller immediately without a transition
	SameURLIgnore SameURLPolicy = "ignore"
	// SameURLReload runs the full pipeline again
	SameURLReload SameURLPolicy = "reload"
)

// Config holds the process-wide engine policies. It is applied once at
// construction and never mutated afterwards.
type Config struct {
	CanceledNavigationResolution Resolution
	URLUpdate                    URLUpdateStrategy
	OnSameURL                    SameURLPolicy
}

// withDefaults fills unset options with the standard policies
func (c Config) withDefaults() Config {
	if c.CanceledNavigationResolution == "" {
		c.CanceledNavigationResolution = ResolutionReplace
	}
	if c.URLUpdate == "" {
		c.URLUpdate = URLUpdateDeferred
	}
	if c.OnSameURL == "" {
		c.OnSameURL = SameURLIgnore
	}
	return c
}

// Dependencies are the collaborators the engine drives
type Dependencies struct {
	Serializer  urltree.Serializer
	Stack       history.Stack
	Pipeline    Pipeline
	URLStrategy URLHandlingStrategy
	Title       TitleStrategy
	Logger      *zap.Logger

	// ErrorHandler observes unrecovered navigation errors after the
	// caller's deferred has been rejected
	ErrorHandler func(error)

	// MalformedURLHandler recovers from unparseable address strings;
	// the default produces the root address
	MalformedURLHandler func(rawURL string, err error) *urltree.Tree
}

// changeRecord remembers the last externally observed address change so
// the popstate/hashchange pair a single host action produces can share
// one deferred
type changeRecord struct {
	path     string
	kind     history.ChangeKind
	deferred *Deferred
}

// Engine is the navigation lifecycle engine: it sequences navigation
// requests, keeps the host history stack consistent with the committed
// address, and rolls both back when a transition cancels or fails.
type Engine struct {
	cfg Config

	serializer  urltree.Serializer
	stack       history.Stack
	pipeline    Pipeline
	urlStrategy URLHandlingStrategy
	title       TitleStrategy
	logger      *zap.Logger

	errorHandler        func(error)
	malformedURLHandler func(string, error) *urltree.Tree

	state       *Store
	transitions *TransitionChannel
	events      *EventBus

	disposed *atomic.Bool

	mu             sync.Mutex
	inflightCancel context.CancelFunc
	current        *Navigation
	lastSuccessful *Navigation
	lastChange     *changeRecord

	runCtx             context.Context
	runCancel          context.CancelFunc
	runDone            chan struct{}
	unsubscribeHistory func()
}

// NewEngine wires an engine and starts its processing loop. The engine
// subscribes to the stack's change notifications so host-driven
// traversals are scheduled like any other navigation.
func NewEngine(cfg Config, deps Dependencies) *Engine {
	if deps.Serializer == nil {
		deps.Serializer = urltree.NewDefaultSerializer()
	}
	if deps.Pipeline == nil {
		deps.Pipeline = AcceptPipeline{}
	}
	if deps.URLStrategy == nil {
		deps.URLStrategy = DefaultURLHandlingStrategy{}
	}
	if deps.Title == nil {
		deps.Title = NoopTitleStrategy{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	e := &Engine{
		cfg:                 cfg.withDefaults(),
		serializer:          deps.Serializer,
		stack:               deps.Stack,
		pipeline:            deps.Pipeline,
		urlStrategy:         deps.URLStrategy,
		title:               deps.Title,
		logger:              deps.Logger,
		errorHandler:        deps.ErrorHandler,
		malformedURLHandler: deps.MalformedURLHandler,
		state:               NewStore(),
		transitions:         NewTransitionChannel(),
		events:              NewEventBus(),
		disposed:            atomic.NewBool(false),
		runCtx:              runCtx,
		runCancel:           runCancel,
		runDone:             make(chan struct{}),
	}
	if e.malformedURLHandler == nil {
		e.malformedURLHandler = func(string, error) *urltree.Tree {
			return urltree.NewTree()
		}
	}
	if e.stack != nil {
		e.unsubscribeHistory = e.stack.Subscribe(e.onHistoryChange)
	}

	go e.run()
	return e
}

// State exposes the committed router state (read side)
func (e *Engine) State() *Store {
	return e.state
}

// Events exposes the lifecycle event stream
func (e *Engine) Events() *EventBus {
	return e.events
}

// Transitions exposes the transition channel for observers
func (e *Engine) Transitions() *TransitionChannel {
	return e.transitions
}

// Serializer returns the address serializer the engine was built with
func (e *Engine) Serializer() urltree.Serializer {
	return e.serializer
}

// CurrentNavigation returns the in-flight navigation, or nil
func (e *Engine) CurrentNavigation() *Navigation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Disposed reports whether Dispose has been called
func (e *Engine) Disposed() bool {
	return e.disposed.Load()
}

// Dispose terminally shuts the engine down. Pending navigations
// resolve to false; Schedule short-circuits afterwards.
func (e *Engine) Dispose() {
	if !e.disposed.CompareAndSwap(false, true) {
		return
	}
	if e.unsubscribeHistory != nil {
		e.unsubscribeHistory()
	}
	e.transitions.Close()
	e.runCancel()
	<-e.runDone

	for _, nav := range e.transitions.Drain() {
		nav.Result.Resolve(false)
	}
	e.logger.Info("navigation engine disposed")
}

// run consumes scheduled navigations in submission order
func (e *Engine) run() {
	defer close(e.runDone)
	for {
		nav, err := e.transitions.Next(e.runCtx)
		if err != nil {
			return
		}
		e.process(nav)
	}
}

// process drives one navigation from start to its terminal outcome
func (e *Engine) process(nav *Navigation) {
	ctx, cancel := context.WithCancel(e.runCtx)
	e.mu.Lock()
	e.inflightCancel = cancel
	e.current = nav
	e.mu.Unlock()
	defer func() {
		cancel()
		e.mu.Lock()
		e.inflightCancel = nil
		e.current = nil
		e.mu.Unlock()
	}()

	e.events.Publish(events.NewNavigationStart(
		nav.ID, e.serializer.Serialize(nav.ExtractedURL), string(nav.Trigger), time.Now()))

	phases := PhaseHooks{
		Recognized: func(finalURL *urltree.Tree) {
			nav.FinalURL = finalURL
			if e.cfg.URLUpdate == URLUpdateEager {
				if !nav.Extras.SkipLocationChange {
					e.syncHistory(nav, finalURL)
				}
				e.state.SetBrowserURLTree(finalURL)
			}
		},
		PreActivation: func() {
			raw := e.urlStrategy.Merge(nav.FinalURL, nav.InitialURL)
			e.state.PreCommit(nav.FinalURL, raw)
			if e.cfg.URLUpdate == URLUpdateDeferred {
				if !nav.Extras.SkipLocationChange {
					e.syncHistory(nav, raw)
				}
				e.state.SetBrowserURLTree(nav.FinalURL)
			}
		},
	}

	outcome := e.pipeline.Process(ctx, nav, phases)
	switch outcome.Status {
	case StatusSuccess:
		e.complete(nav)
	case StatusCanceled:
		e.cancelTransition(nav, outcome)
	default:
		e.failTransition(nav, outcome)
	}
}

// complete is the success path of the completion sink
func (e *Engine) complete(nav *Navigation) {
	e.state.Commit(nav)
	e.mu.Lock()
	e.lastSuccessful = nav
	e.mu.Unlock()

	e.events.Publish(events.NewNavigationEnd(
		nav.ID,
		e.serializer.Serialize(nav.ExtractedURL),
		e.serializer.Serialize(nav.FinalURL),
		time.Now()))
	e.title.UpdateTitle(nav)
	nav.Result.Resolve(true)

	e.logger.Debug("navigation completed",
		zap.Int64("navigation_id", nav.ID),
		zap.Int64("page_id", nav.TargetPageID),
	)
}

// cancelTransition finalizes a benign cancellation
func (e *Engine) cancelTransition(nav *Navigation, outcome Outcome) {
	e.restore(nav, false)
	e.events.Publish(events.NewNavigationCancel(
		nav.ID,
		e.serializer.Serialize(nav.ExtractedURL),
		outcome.Code,
		outcome.Reason,
		time.Now()))
	nav.Result.Resolve(false)

	e.logger.Debug("navigation cancelled",
		zap.Int64("navigation_id", nav.ID),
		zap.String("code", string(outcome.Code)),
		zap.String("reason", outcome.Reason),
	)
}

// failTransition finalizes an unrecovered pipeline error
func (e *Engine) failTransition(nav *Navigation, outcome Outcome) {
	e.logger.Warn("navigation failed",
		zap.Int64("navigation_id", nav.ID),
		zap.Error(outcome.Err),
	)
	e.restore(nav, true)
	e.events.Publish(events.NewNavigationError(
		nav.ID,
		e.serializer.Serialize(nav.ExtractedURL),
		outcome.Err,
		time.Now()))

	err := apperrors.NewNavigationError(nav.ID, outcome.Err)
	nav.Result.Reject(err)
	if e.errorHandler != nil {
		e.errorHandler(err)
	}
}
