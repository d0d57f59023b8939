package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	approuter "github.com/Dimo99/angular/application/router"
	"github.com/Dimo99/angular/infrastructure/history"
	"github.com/Dimo99/angular/interfaces/http/rest/handlers"
	"github.com/Dimo99/angular/interfaces/http/rest/middleware"
	"github.com/Dimo99/angular/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	app      *approuter.Router
	stack    history.Stack
	recorder *observability.Recorder
	logger   *zap.Logger

	enableCORS   bool
	rateLimitRPM int
}

// NewRouter creates a new router instance
func NewRouter(
	app *approuter.Router,
	stack history.Stack,
	recorder *observability.Recorder,
	logger *zap.Logger,
	enableCORS bool,
	rateLimitRPM int,
) *Router {
	return &Router{
		app:          app,
		stack:        stack,
		recorder:     recorder,
		logger:       logger,
		enableCORS:   enableCORS,
		rateLimitRPM: rateLimitRPM,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.rateLimitRPM > 0 {
		router.Use(middleware.NewRateLimiter(rt.rateLimitRPM, time.Minute).Handler)
	}

	// CORS configuration
	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		navigationHandler := handlers.NewNavigationHandler(rt.app, rt.logger)
		r.Post("/navigate", navigationHandler.Navigate)
		r.Get("/navigation/current", navigationHandler.Current)

		stateHandler := handlers.NewStateHandler(rt.app, rt.logger)
		r.Get("/state", stateHandler.Get)

		r.Route("/history", func(r chi.Router) {
			historyHandler := handlers.NewHistoryHandler(rt.stack, rt.logger)
			r.Get("/", historyHandler.Current)
			r.Post("/go", historyHandler.Go)
			r.Post("/back", historyHandler.Back)
			r.Post("/forward", historyHandler.Forward)
		})

		r.Route("/events", func(r chi.Router) {
			eventsHandler := handlers.NewEventsHandler(rt.recorder, rt.logger)
			r.Get("/", eventsHandler.List)
			r.Delete("/", eventsHandler.Clear)
		})

		r.Route("/routes", func(r chi.Router) {
			routesHandler := handlers.NewRoutesHandler(rt.app, rt.logger)
			r.Get("/", routesHandler.List)
			r.Put("/", routesHandler.Reset)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if rt.app.Engine().Disposed() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"disposed"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
