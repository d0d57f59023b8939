package router

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dimo99/angular/application/navigation"
	"github.com/Dimo99/angular/domain/events"
	"github.com/Dimo99/angular/domain/routes"
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/history"
	apperrors "github.com/Dimo99/angular/pkg/errors"
)

func newTestRouter(t *testing.T, opts Options) *Router {
	t.Helper()
	if opts.Stack == nil {
		opts.Stack = history.NewMemoryStack(nil)
	}
	r, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(r.Dispose)
	return r
}

func wait(t *testing.T, d *navigation.Deferred) bool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resolved, err := d.Wait(ctx)
	require.NoError(t, err)
	return resolved
}

func TestNavigateByURLString(t *testing.T) {
	r := newTestRouter(t, Options{})

	resolved := wait(t, r.NavigateByURL("/team/33?open=true", NavigationExtras{}))

	assert.True(t, resolved)
	assert.Equal(t, "/team/33?open=true", r.URL())
	assert.True(t, r.Navigated())
}

func TestNavigateByURLTree(t *testing.T) {
	r := newTestRouter(t, Options{})

	tree, err := r.CreateURLTree([]interface{}{"inbox", "detail"}, NavigationExtras{})
	require.NoError(t, err)

	resolved := wait(t, r.NavigateByURL(tree, NavigationExtras{}))
	assert.True(t, resolved)
	assert.Equal(t, "/inbox/detail", r.URL())
}

func TestNavigateBuildsFromCurrentAddress(t *testing.T) {
	r := newTestRouter(t, Options{})
	wait(t, r.NavigateByURL("/team/33", NavigationExtras{}))

	deferred, err := r.Navigate([]interface{}{"user", "victor"}, NavigationExtras{})
	require.NoError(t, err)
	require.True(t, wait(t, deferred))

	assert.Equal(t, "/team/33/user/victor", r.URL())
}

func TestNavigateInvalidCommandFailsSynchronously(t *testing.T) {
	r := newTestRouter(t, Options{})

	before := r.Engine().State().NavigationID()
	_, err := r.Navigate([]interface{}{"team", nil, "user"}, NavigationExtras{})

	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidCommand(err))
	// nothing was scheduled, no identifier was consumed
	assert.Equal(t, before, r.Engine().State().NavigationID())
	assert.Nil(t, r.GetCurrentNavigation())
}

func TestParseURLRecoversFromMalformedInput(t *testing.T) {
	t.Run("default handler produces the root address", func(t *testing.T) {
		r := newTestRouter(t, Options{})
		tree := r.ParseURL("/team((")
		assert.True(t, tree.Equal(urltree.NewTree()))
	})

	t.Run("custom handler", func(t *testing.T) {
		r := newTestRouter(t, Options{
			MalformedURLHandler: func(rawURL string, err error) *urltree.Tree {
				fallback, _ := urltree.NewDefaultSerializer().Parse("/error")
				return fallback
			},
		})
		tree := r.ParseURL("/team((")
		assert.Equal(t, "/error", r.SerializeURL(tree))
	})
}

func TestIsActive(t *testing.T) {
	r := newTestRouter(t, Options{})
	wait(t, r.NavigateByURL("/team/33/user?x=1", NavigationExtras{}))

	assert.True(t, r.IsActive("/team/33", urltree.SubsetMatchOptions()))
	assert.False(t, r.IsActive("/team/44", urltree.SubsetMatchOptions()))
	assert.False(t, r.IsActive("/team/33", urltree.ExactMatchOptions()))
	assert.True(t, r.IsActive("/team/33/user?x=1", urltree.ExactMatchOptions()))
}

func TestResetConfig(t *testing.T) {
	r := newTestRouter(t, Options{
		Routes: []routes.Route{{Path: "home"}},
	})

	t.Run("replaces valid config", func(t *testing.T) {
		err := r.ResetConfig([]routes.Route{{Path: "a"}, {Path: "b"}})
		require.NoError(t, err)
		assert.Len(t, r.Config(), 2)
	})

	t.Run("rejects invalid config and keeps the old one", func(t *testing.T) {
		err := r.ResetConfig([]routes.Route{{Path: "/bad"}})
		require.Error(t, err)
		assert.Len(t, r.Config(), 2)
	})
}

func TestNewRejectsInvalidRoutes(t *testing.T) {
	_, err := New(Options{
		Stack:  history.NewMemoryStack(nil),
		Routes: []routes.Route{{Path: "/leading"}},
	})
	assert.Error(t, err)
}

func TestLoadChildren(t *testing.T) {
	loader := routes.LoaderFunc(func(ctx context.Context, route routes.Route) ([]routes.Route, error) {
		return []routes.Route{{Path: "settings"}}, nil
	})
	r := newTestRouter(t, Options{Loader: loader})

	var seen []string
	r.SubscribeEvents(func(e events.Event) {
		seen = append(seen, e.GetEventType())
	})

	children, err := r.LoadChildren(context.Background(), 1, routes.Route{Path: "admin", LazyChildren: true})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "settings", children[0].Path)
	assert.Equal(t, []string{"route_config.load_start", "route_config.load_end"}, seen)
}

func TestLoadChildrenWithoutLoader(t *testing.T) {
	r := newTestRouter(t, Options{})

	_, err := r.LoadChildren(context.Background(), 1, routes.Route{Path: "admin", LazyChildren: true})
	assert.Error(t, err)
}
