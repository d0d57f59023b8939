package routes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	config := []Route{
		{Path: "", RedirectTo: "home"},
		{Path: "home", Title: "Home"},
		{
			Path: "team",
			Children: []Route{
				{Path: ":id", Title: "Team"},
				{Path: "compose", Outlet: "popup"},
			},
		},
		{Path: "admin", LazyChildren: true},
	}

	assert.NoError(t, Validate(config))
}

func TestValidateRejectsBadRoutes(t *testing.T) {
	cases := []struct {
		name   string
		config []Route
	}{
		{
			name:   "leading slash",
			config: []Route{{Path: "/home"}},
		},
		{
			name: "redirect with children",
			config: []Route{{
				Path:       "a",
				RedirectTo: "b",
				Children:   []Route{{Path: "c"}},
			}},
		},
		{
			name: "redirect with lazy children",
			config: []Route{{
				Path:         "a",
				RedirectTo:   "b",
				LazyChildren: true,
			}},
		},
		{
			name:   "outlet with delimiter characters",
			config: []Route{{Path: "a", Outlet: "pop/up"}},
		},
		{
			name: "invalid nested route",
			config: []Route{{
				Path:     "a",
				Children: []Route{{Path: "/b"}},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, Validate(tc.config))
		})
	}
}

func TestLoaderFunc(t *testing.T) {
	loader := LoaderFunc(func(ctx context.Context, route Route) ([]Route, error) {
		return []Route{{Path: "lazy"}}, nil
	})

	children, err := loader.Load(context.Background(), Route{Path: "admin", LazyChildren: true})
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "lazy", children[0].Path)
}
