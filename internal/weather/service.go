package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
	"city-explorer/internal/providers/darksky"
	"city-explorer/internal/timezone"
	"city-explorer/internal/types"
)

type ForecastProvider interface {
	// GetForecast fetches the daily forecast for the given latitude and longitude
	GetForecast(ctx context.Context, latitude, longitude float64) (*darksky.ForecastAPIResponse, error)
}

type Service interface {
	Forecast(ctx context.Context, coords types.Coords) ([]types.WeatherEntry, error)
}

type weatherService struct {
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	logger           *slog.Logger
}

func NewWeatherService(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}
	client := darksky.NewClient(cfg.Providers.Weather, cfg.Providers.Timeout, metrics, logger)
	return NewWeatherServiceWithProvider(client, tzSvc, logger), nil
}

// NewWeatherServiceWithProvider wires custom dependencies. timezoneService
// may be nil, in which case dates fall back to UTC when the provider does
// not name a zone.
func NewWeatherServiceWithProvider(
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) Forecast(ctx context.Context, coords types.Coords) ([]types.WeatherEntry, error) {
	if err := coords.Validate(); err != nil {
		return nil, err
	}

	apiResponse, err := s.forecastProvider.GetForecast(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Error("failed to get forecast from provider",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}
	if apiResponse == nil {
		return nil, fmt.Errorf("forecast response is nil")
	}

	loc := s.location(coords, apiResponse.Timezone)
	return mapDailyForecast(apiResponse.Daily.Data, loc), nil
}

// location picks the zone used to render forecast dates: the provider's,
// then a lookup by coordinates, then UTC.
func (s *weatherService) location(coords types.Coords, providerZone string) *time.Location {
	if providerZone != "" {
		loc, err := time.LoadLocation(providerZone)
		if err == nil {
			return loc
		}
		s.logger.Warn("provider returned unknown timezone", "timezone", providerZone, "error", err)
	}

	if s.timezoneService != nil {
		loc, err := s.timezoneService.Location(coords.Latitude, coords.Longitude)
		if err == nil {
			return loc
		}
		s.logger.Debug("falling back to UTC", "error", err)
	}

	return time.UTC
}
