package router

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Dimo99/angular/application/navigation"
	"github.com/Dimo99/angular/domain/events"
	"github.com/Dimo99/angular/domain/routes"
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
	apperrors "github.com/Dimo99/angular/pkg/errors"
)

// NavigationExtras are the caller options accepted by Navigate and
// NavigateByURL. Tree-building options apply only to Navigate.
type NavigationExtras struct {
	// RelativeTo resolves relative commands against this tree instead
	// of the committed address
	RelativeTo *urltree.Tree

	// QueryParams, Fragment and their handling modes shape the target tree
	QueryParams         map[string][]string
	QueryParamsHandling urltree.QueryParamsHandling
	Fragment            string
	PreserveFragment    bool

	// ReplaceURL overwrites the current history entry instead of pushing
	ReplaceURL bool

	// SkipLocationChange navigates without touching the visible address
	SkipLocationChange bool

	// State is an auxiliary payload attached to the history entry
	State history.State
}

// Options configures a Router
type Options struct {
	Engine      navigation.Config
	Stack       history.Stack
	Pipeline    navigation.Pipeline
	URLStrategy navigation.URLHandlingStrategy
	Title       navigation.TitleStrategy
	Serializer  urltree.Serializer
	Loader      routes.Loader
	Routes      []routes.Route
	Logger      *zap.Logger

	ErrorHandler        func(error)
	MalformedURLHandler func(rawURL string, err error) *urltree.Tree
}

// Router is the public surface of the navigation engine: it builds
// target trees from commands or strings, schedules them, and exposes
// the committed state, the lifecycle event stream and the route
// configuration.
type Router struct {
	engine      *navigation.Engine
	serializer  urltree.Serializer
	urlStrategy navigation.URLHandlingStrategy
	loader      routes.Loader
	logger      *zap.Logger

	malformedURLHandler func(string, error) *urltree.Tree

	mu     sync.RWMutex
	config []routes.Route
}

// New creates a Router and starts its engine
func New(opts Options) (*Router, error) {
	if err := routes.Validate(opts.Routes); err != nil {
		return nil, apperrors.NewConfigError("invalid route configuration").WithCause(err)
	}
	if opts.Serializer == nil {
		opts.Serializer = urltree.NewDefaultSerializer()
	}
	if opts.URLStrategy == nil {
		opts.URLStrategy = navigation.DefaultURLHandlingStrategy{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	engine := navigation.NewEngine(opts.Engine, navigation.Dependencies{
		Serializer:          opts.Serializer,
		Stack:               opts.Stack,
		Pipeline:            opts.Pipeline,
		URLStrategy:         opts.URLStrategy,
		Title:               opts.Title,
		Logger:              opts.Logger,
		ErrorHandler:        opts.ErrorHandler,
		MalformedURLHandler: opts.MalformedURLHandler,
	})

	r := &Router{
		engine:              engine,
		serializer:          opts.Serializer,
		urlStrategy:         opts.URLStrategy,
		loader:              opts.Loader,
		logger:              opts.Logger,
		malformedURLHandler: opts.MalformedURLHandler,
		config:              opts.Routes,
	}
	if r.malformedURLHandler == nil {
		r.malformedURLHandler = func(string, error) *urltree.Tree {
			return urltree.NewTree()
		}
	}
	return r, nil
}

// Engine exposes the underlying navigation engine
func (r *Router) Engine() *navigation.Engine {
	return r.engine
}

// NavigateByURL schedules a navigation to an address string or tree.
// The returned deferred resolves true on success, false on benign
// cancellation, and rejects on unrecovered errors.
func (r *Router) NavigateByURL(url interface{}, extras NavigationExtras) *navigation.Deferred {
	var tree *urltree.Tree
	switch u := url.(type) {
	case *urltree.Tree:
		tree = u
	case string:
		tree = r.ParseURL(u)
	default:
		deferred := navigation.NewDeferred()
		deferred.Reject(apperrors.NewInvalidCommandError("url must be a string or a tree"))
		return deferred
	}

	// Merge with the committed raw address so portions of the address
	// the engine does not own are preserved in the request.
	merged := r.urlStrategy.Merge(tree, r.engine.State().RawURLTree())
	return r.engine.Schedule(merged, navigation.TriggerProgrammatic, nil, navigation.Extras{
		ReplaceURL:         extras.ReplaceURL,
		SkipLocationChange: extras.SkipLocationChange,
		State:              extras.State,
	}, nil)
}

// Navigate schedules a navigation built from path commands. It fails
// synchronously, without scheduling anything, when a command is invalid.
func (r *Router) Navigate(commands []interface{}, extras NavigationExtras) (*navigation.Deferred, error) {
	tree, err := r.CreateURLTree(commands, extras)
	if err != nil {
		return nil, err
	}
	return r.NavigateByURL(tree, extras), nil
}

// CreateURLTree builds a target tree from commands without navigating
func (r *Router) CreateURLTree(commands []interface{}, extras NavigationExtras) (*urltree.Tree, error) {
	relativeTo := extras.RelativeTo
	if relativeTo == nil {
		relativeTo = r.engine.State().CurrentURLTree()
	}
	tree, err := urltree.CreateTree(commands, urltree.CreateOptions{
		RelativeTo:          relativeTo,
		QueryParams:         extras.QueryParams,
		QueryParamsHandling: extras.QueryParamsHandling,
		Fragment:            extras.Fragment,
		PreserveFragment:    extras.PreserveFragment,
	})
	if err != nil {
		return nil, apperrors.NewInvalidCommandError(err.Error()).WithCause(err)
	}
	return tree, nil
}

// ParseURL converts an address string into a tree. Malformed input is
// recovered through the configured handler, never surfaced.
func (r *Router) ParseURL(rawURL string) *urltree.Tree {
	tree, err := r.serializer.Parse(rawURL)
	if err != nil {
		r.logger.Warn("malformed url", zap.String("url", rawURL), zap.Error(err))
		return r.malformedURLHandler(rawURL, err)
	}
	return tree
}

// SerializeURL converts a tree back into an address string
func (r *Router) SerializeURL(tree *urltree.Tree) string {
	return r.serializer.Serialize(tree)
}

// URL returns the committed address as a string
func (r *Router) URL() string {
	return r.serializer.Serialize(r.engine.State().CurrentURLTree())
}

// Navigated reports whether any navigation has completed
func (r *Router) Navigated() bool {
	return r.engine.State().Navigated()
}

// IsActive reports whether the given address is covered by the
// committed one under the supplied match options
func (r *Router) IsActive(url interface{}, options urltree.MatchOptions) bool {
	var tree *urltree.Tree
	switch u := url.(type) {
	case *urltree.Tree:
		tree = u
	case string:
		tree = r.ParseURL(u)
	default:
		return false
	}
	return urltree.ContainsTree(r.engine.State().CurrentURLTree(), tree, options)
}

// ResetConfig validates and replaces the route configuration
func (r *Router) ResetConfig(config []routes.Route) error {
	if err := routes.Validate(config); err != nil {
		return apperrors.NewConfigError("invalid route configuration").WithCause(err)
	}
	r.mu.Lock()
	r.config = config
	r.mu.Unlock()
	r.logger.Info("route configuration replaced", zap.Int("routes", len(config)))
	return nil
}

// Config returns the active route configuration
func (r *Router) Config() []routes.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config
}

// LoadChildren resolves the lazy children of a route through the
// configured loader, emitting load start/end events around the call
func (r *Router) LoadChildren(ctx context.Context, navigationID int64, route routes.Route) ([]routes.Route, error) {
	if r.loader == nil {
		return nil, apperrors.NewConfigError("no route loader configured")
	}
	r.engine.Events().Publish(events.NewRouteConfigLoadStart(navigationID, route.Path, time.Now()))
	children, err := r.loader.Load(ctx, route)
	if err != nil {
		return nil, apperrors.Wrap(err, "loading lazy route configuration")
	}
	if err := routes.Validate(children); err != nil {
		return nil, apperrors.NewConfigError("invalid lazy route configuration").WithCause(err)
	}
	r.engine.Events().Publish(events.NewRouteConfigLoadEnd(navigationID, route.Path, time.Now()))
	return children, nil
}

// GetCurrentNavigation returns the in-flight navigation, or nil
func (r *Router) GetCurrentNavigation() *navigation.Navigation {
	return r.engine.CurrentNavigation()
}

// SubscribeEvents registers a lifecycle event listener
func (r *Router) SubscribeEvents(listener func(events.Event)) func() {
	return r.engine.Events().Subscribe(listener)
}

// Dispose terminally shuts the router down
func (r *Router) Dispose() {
	r.engine.Dispose()
}
