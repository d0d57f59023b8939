package di

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Dimo99/angular/application/navigation"
	"github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/domain/routes"
	"github.com/Dimo99/angular/domain/urltree"
	"github.com/Dimo99/angular/infrastructure/config"
	"github.com/Dimo99/angular/infrastructure/history"
	"github.com/Dimo99/angular/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideSerializer creates the address serializer
func ProvideSerializer() urltree.Serializer {
	return urltree.NewDefaultSerializer()
}

// ProvideHistoryStack creates the in-process history stack
func ProvideHistoryStack(logger *zap.Logger) history.Stack {
	return history.NewMemoryStack(logger)
}

// ProvidePipeline creates the default navigation pipeline
func ProvidePipeline() navigation.Pipeline {
	return navigation.AcceptPipeline{}
}

// ProvideEngineConfig translates application configuration into engine
// policies
func ProvideEngineConfig(cfg *config.Config) navigation.Config {
	return navigation.Config{
		CanceledNavigationResolution: navigation.Resolution(cfg.CanceledNavigationResolution),
		URLUpdate:                    navigation.URLUpdateStrategy(cfg.URLUpdateStrategy),
		OnSameURL:                    navigation.SameURLPolicy(cfg.OnSameURLNavigation),
	}
}

// ProvideRoutes loads the initial route configuration, if any
func ProvideRoutes(cfg *config.Config, logger *zap.Logger) ([]routes.Route, error) {
	if cfg.RoutesFile == "" {
		return nil, nil
	}
	loaded, err := config.LoadRoutes(cfg.RoutesFile)
	if err != nil {
		return nil, err
	}
	logger.Info("routes loaded",
		zap.String("path", cfg.RoutesFile),
		zap.Int("routes", len(loaded)),
	)
	return loaded, nil
}

// ProvideRouter creates the router and starts its engine
func ProvideRouter(
	engineCfg navigation.Config,
	stack history.Stack,
	pipeline navigation.Pipeline,
	serializer urltree.Serializer,
	routeConfig []routes.Route,
	logger *zap.Logger,
) (*router.Router, error) {
	return router.New(router.Options{
		Engine:     engineCfg,
		Stack:      stack,
		Pipeline:   pipeline,
		Serializer: serializer,
		Routes:     routeConfig,
		Logger:     logger,
	})
}

// ProvideRecorder creates the lifecycle event log and subscribes it to
// the router's event stream
func ProvideRecorder(r *router.Router, logger *zap.Logger) *observability.Recorder {
	recorder := observability.NewRecorder(observability.DefaultCapacity, logger)
	r.SubscribeEvents(recorder.Record)
	return recorder
}

// ProvideRoutesWatcher starts the route file watcher when enabled.
// Reloads replace the router's configuration in place.
func ProvideRoutesWatcher(cfg *config.Config, logger *zap.Logger, r *router.Router) (*config.RoutesWatcher, error) {
	if !cfg.WatchRoutes {
		return nil, nil
	}
	return config.WatchRoutes(cfg.RoutesFile, logger, func(loaded []routes.Route) {
		if err := r.ResetConfig(loaded); err != nil {
			logger.Warn("reloaded routes rejected", zap.Error(err))
		}
	})
}
