package di

import (
	"go.uber.org/zap"

	"github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/infrastructure/config"
	"github.com/Dimo99/angular/infrastructure/history"
	"github.com/Dimo99/angular/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Stack    history.Stack
	Router   *router.Router
	Recorder *observability.Recorder
	Watcher  *config.RoutesWatcher
}

// Shutdown tears the container down in reverse construction order
func (c *Container) Shutdown() {
	if c.Watcher != nil {
		if err := c.Watcher.Close(); err != nil {
			c.Logger.Warn("closing routes watcher", zap.Error(err))
		}
	}
	c.Router.Dispose()
	_ = c.Logger.Sync()
}
