package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
	"city-explorer/internal/providers/googlemaps"
	"city-explorer/internal/types"
)

var (
	ErrEmptyQuery = errors.New("search query is empty")
	ErrNoResults  = errors.New("geocoder returned no results")
)

// Service turns search text into a stored LocationRecord
type Service interface {
	// Resolve returns the cached record for query, geocoding and storing it on a miss
	Resolve(ctx context.Context, query string) (*types.LocationRecord, error)
}

// locationService implements the Service interface
type locationService struct {
	geocoder GeocodeProvider
	store    Store
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewLocationService creates a location service backed by the Google geocoder
func NewLocationService(cfg *config.Config, store Store, metrics *observability.Metrics, logger *slog.Logger) Service {
	geocoder := googlemaps.NewClient(cfg.Providers.Geocode, cfg.Providers.Timeout, metrics, logger)
	return NewLocationServiceWithProviders(geocoder, store, metrics, logger)
}

// NewLocationServiceWithProviders creates a location service with custom dependencies
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(
	geocoder GeocodeProvider,
	store Store,
	metrics *observability.Metrics,
	logger *slog.Logger,
) Service {
	return &locationService{
		geocoder: geocoder,
		store:    store,
		metrics:  metrics,
		logger:   logger.With("component", "location-service"),
	}
}

func (s *locationService) Resolve(ctx context.Context, query string) (*types.LocationRecord, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := s.store.FindByQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to check location cache: %w", err)
	}
	if len(rows) > 0 {
		s.metrics.CacheHit()
		s.logger.Debug("location cache hit", "search_query", query, "id", rows[0].ID)
		return &rows[0], nil
	}
	s.metrics.CacheMiss()

	resp, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", query, err)
	}

	rec, err := translateGeocode(query, resp)
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to cache location: %w", err)
	}

	s.logger.Info("location resolved",
		"search_query", rec.SearchQuery,
		"formatted_query", rec.FormattedQuery,
		"id", rec.ID,
	)

	return rec, nil
}

// translateGeocode builds a LocationRecord from the first geocoder result
func translateGeocode(query string, resp *googlemaps.GeocodeAPIResponse) (*types.LocationRecord, error) {
	if resp == nil || len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoResults, query)
	}

	first := resp.Results[0]
	return &types.LocationRecord{
		SearchQuery:    query,
		FormattedQuery: first.FormattedAddress,
		Latitude:       first.Geometry.Location.Lat,
		Longitude:      first.Geometry.Location.Lng,
	}, nil
}
