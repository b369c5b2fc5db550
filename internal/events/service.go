package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
	"city-explorer/internal/providers/eventbrite"
	"city-explorer/internal/types"
)

var ErrEmptyAddress = errors.New("formatted address is empty")

type EventsProvider interface {
	// SearchByAddress fetches events near the given address
	SearchByAddress(ctx context.Context, address string) (*eventbrite.SearchAPIResponse, error)
}

type Service interface {
	Search(ctx context.Context, formattedAddress string) ([]types.EventEntry, error)
}

type eventsService struct {
	provider EventsProvider
	logger   *slog.Logger
}

func NewEventsService(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) Service {
	client := eventbrite.NewClient(cfg.Providers.Events, cfg.Providers.Timeout, metrics, logger)
	return NewEventsServiceWithProvider(client, logger)
}

func NewEventsServiceWithProvider(provider EventsProvider, logger *slog.Logger) Service {
	return &eventsService{
		provider: provider,
		logger:   logger.With("component", "events-service"),
	}
}

func (s *eventsService) Search(ctx context.Context, formattedAddress string) ([]types.EventEntry, error) {
	if formattedAddress == "" {
		return nil, ErrEmptyAddress
	}

	apiResponse, err := s.provider.SearchByAddress(ctx, formattedAddress)
	if err != nil {
		s.logger.Error("failed to search events from provider",
			"address", formattedAddress,
			"error", err,
		)
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	if apiResponse == nil {
		return nil, fmt.Errorf("events response is nil")
	}

	entries := mapEvents(apiResponse.Events)
	s.logger.Debug("events mapped", "address", formattedAddress, "count", len(entries))
	return entries, nil
}
