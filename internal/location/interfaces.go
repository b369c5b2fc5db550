package location

import (
	"context"

	"city-explorer/internal/providers/googlemaps"
	"city-explorer/internal/types"
)

// GeocodeProvider resolves a free-text address to candidate places
type GeocodeProvider interface {
	Geocode(ctx context.Context, address string) (*googlemaps.GeocodeAPIResponse, error)
}

// Store is the persistent cache of resolved locations
type Store interface {
	FindByQuery(ctx context.Context, query string) ([]types.LocationRecord, error)
	Insert(ctx context.Context, rec *types.LocationRecord) error
}
