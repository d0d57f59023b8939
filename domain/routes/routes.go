package routes

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Route describes one entry of the router configuration.
//
// Matching and guard evaluation happen in the navigation pipeline;
// this package only carries and validates the configuration.
type Route struct {
	// Path is the path this route matches, without a leading slash
	Path string `yaml:"path" json:"path"`

	// RedirectTo sends matching navigations to another address
	RedirectTo string `yaml:"redirect_to,omitempty" json:"redirect_to,omitempty"`

	// Outlet names the outlet this route fills; empty means primary
	Outlet string `yaml:"outlet,omitempty" validate:"omitempty,excludesall=/()?#&" json:"outlet,omitempty"`

	// Title is handed to the title policy on successful activation
	Title string `yaml:"title,omitempty" json:"title,omitempty"`

	// Children are routes matched against the remaining segments
	Children []Route `yaml:"children,omitempty" validate:"dive" json:"children,omitempty"`

	// LazyChildren marks the route as lazily loaded through a Loader
	LazyChildren bool `yaml:"lazy_children,omitempty" json:"lazy_children,omitempty"`
}

// Loader supplies child routes for lazily configured entries.
// Implementations typically fetch or construct a module's routes on
// first use; the engine emits load start/end events around the call.
type Loader interface {
	Load(ctx context.Context, route Route) ([]Route, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func(ctx context.Context, route Route) ([]Route, error)

// Load implements Loader
func (f LoaderFunc) Load(ctx context.Context, route Route) ([]Route, error) {
	return f(ctx, route)
}

var validate = validator.New()

// Validate checks a route configuration for structural problems
func Validate(config []Route) error {
	for i, route := range config {
		if err := validateRoute(route, ""); err != nil {
			return fmt.Errorf("route %d: %w", i, err)
		}
	}
	return nil
}

func validateRoute(route Route, prefix string) error {
	fullPath := prefix + "/" + route.Path

	if strings.HasPrefix(route.Path, "/") {
		return fmt.Errorf("path %q must not start with a slash", route.Path)
	}
	if route.RedirectTo != "" && len(route.Children) > 0 {
		return fmt.Errorf("route %q cannot have both a redirect and children", fullPath)
	}
	if route.RedirectTo != "" && route.LazyChildren {
		return fmt.Errorf("route %q cannot have both a redirect and lazy children", fullPath)
	}
	if err := validate.Struct(route); err != nil {
		return fmt.Errorf("route %q: %w", fullPath, err)
	}
	for _, child := range route.Children {
		if err := validateRoute(child, fullPath); err != nil {
			return err
		}
	}
	return nil
}
