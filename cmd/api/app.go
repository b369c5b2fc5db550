package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"city-explorer/internal/config"
	"city-explorer/internal/events"
	"city-explorer/internal/location"
	"city-explorer/internal/observability"
	"city-explorer/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ReadinessChecker reports whether the location cache database is reachable
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// CacheStore is the database-backed store the location service caches into
type CacheStore interface {
	location.Store
	ReadinessChecker
}

// Services bundles the domain services the handlers delegate to
type Services struct {
	Location location.Service
	Weather  weather.Service
	Events   events.Service
}

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	registry        *prometheus.Registry
	metrics         *observability.Metrics
	ready           ReadinessChecker
	locationService location.Service
	weatherService  weather.Service
	eventsService   events.Service
}

// NewApp creates the application with provider-backed services
func NewApp(
	cfg *config.Config,
	store CacheStore,
	registry *prometheus.Registry,
	metrics *observability.Metrics,
	logger *slog.Logger,
) (*App, error) {
	weatherService, err := weather.NewWeatherService(cfg, metrics, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather service: %w", err)
	}

	return newApp(logger, registry, metrics, store, Services{
		Location: location.NewLocationService(cfg, store, metrics, logger),
		Weather:  weatherService,
		Events:   events.NewEventsService(cfg, metrics, logger),
	}), nil
}

func newApp(
	logger *slog.Logger,
	registry *prometheus.Registry,
	metrics *observability.Metrics,
	ready ReadinessChecker,
	services Services,
) *App {
	app := &App{
		router:          gin.New(),
		logger:          logger,
		registry:        registry,
		metrics:         metrics,
		ready:           ready,
		locationService: services.Location,
		weatherService:  services.Weather,
		eventsService:   services.Events,
	}

	// requestMetrics wraps recovery so recovered panics are counted as 500s
	app.router.Use(
		app.requestMetrics(),
		gin.CustomRecovery(app.recoverPanic),
		corsMiddleware(),
	)
	app.registerRoutes()

	logger.Info("application initialized")

	return app
}

// ServeHTTP delegates to the router, useful for testing
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}
