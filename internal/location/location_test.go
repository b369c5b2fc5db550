package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
	"city-explorer/internal/providers/googlemaps"
	"city-explorer/internal/storage"
	"city-explorer/internal/types"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock dependencies for testing

type mockGeocoder struct {
	response *googlemaps.GeocodeAPIResponse
	err      error
	calls    []string
}

func (m *mockGeocoder) Geocode(_ context.Context, address string) (*googlemaps.GeocodeAPIResponse, error) {
	m.calls = append(m.calls, address)
	return m.response, m.err
}

type mockStore struct {
	rows      []types.LocationRecord
	findErr   error
	insertErr error
	inserted  []types.LocationRecord
	nextID    uint
}

func (m *mockStore) FindByQuery(_ context.Context, query string) ([]types.LocationRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []types.LocationRecord
	for _, r := range m.rows {
		if r.SearchQuery == query {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockStore) Insert(_ context.Context, rec *types.LocationRecord) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	rec.ID = m.nextID
	m.inserted = append(m.inserted, *rec)
	m.rows = append(m.rows, *rec)
	return nil
}

func seattleResponse() *googlemaps.GeocodeAPIResponse {
	result := googlemaps.GeocodeResult{FormattedAddress: "Seattle, WA, USA"}
	result.Geometry.Location = googlemaps.LatLng{Lat: 47.6062095, Lng: -122.3320708}
	other := googlemaps.GeocodeResult{FormattedAddress: "Seattle Center, Seattle, WA, USA"}
	other.Geometry.Location = googlemaps.LatLng{Lat: 47.6205, Lng: -122.3493}
	return &googlemaps.GeocodeAPIResponse{
		Status:  googlemaps.StatusOK,
		Results: []googlemaps.GeocodeResult{result, other},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocationService_Resolve(t *testing.T) {
	cached := types.LocationRecord{
		ID:             7,
		SearchQuery:    "Seattle",
		FormattedQuery: "Seattle, WA, USA (cached)",
		Latitude:       47.6,
		Longitude:      -122.3,
	}

	tests := []struct {
		name            string
		query           string
		storeRows       []types.LocationRecord
		findErr         error
		insertErr       error
		geocodeResponse *googlemaps.GeocodeAPIResponse
		geocodeErr      error
		wantErr         error
		errContains     string
		wantGeocodes    int
		wantInserts     int
		validate        func(*testing.T, *types.LocationRecord)
	}{
		{
			name:         "cache hit returns stored record without geocoding",
			query:        "Seattle",
			storeRows:    []types.LocationRecord{cached},
			wantGeocodes: 0,
			wantInserts:  0,
			validate: func(t *testing.T, rec *types.LocationRecord) {
				assert.Equal(t, cached, *rec)
			},
		},
		{
			name:  "cache hit with duplicate rows returns the first",
			query: "Seattle",
			storeRows: []types.LocationRecord{
				cached,
				{ID: 9, SearchQuery: "Seattle", FormattedQuery: "dup"},
			},
			validate: func(t *testing.T, rec *types.LocationRecord) {
				assert.Equal(t, uint(7), rec.ID)
			},
		},
		{
			name:            "cache miss geocodes and stores first result",
			query:           "Seattle",
			geocodeResponse: seattleResponse(),
			wantGeocodes:    1,
			wantInserts:     1,
			validate: func(t *testing.T, rec *types.LocationRecord) {
				assert.Equal(t, uint(1), rec.ID)
				assert.Equal(t, "Seattle", rec.SearchQuery)
				assert.Equal(t, "Seattle, WA, USA", rec.FormattedQuery)
				assert.InDelta(t, 47.6062095, rec.Latitude, 1e-9)
				assert.InDelta(t, -122.3320708, rec.Longitude, 1e-9)
			},
		},
		{
			name:            "different spelling is a separate cache key",
			query:           "seattle",
			storeRows:       []types.LocationRecord{cached},
			geocodeResponse: seattleResponse(),
			wantGeocodes:    1,
			wantInserts:     1,
			validate: func(t *testing.T, rec *types.LocationRecord) {
				assert.Equal(t, "seattle", rec.SearchQuery)
			},
		},
		{
			name:         "empty query",
			query:        "",
			wantErr:      ErrEmptyQuery,
			wantGeocodes: 0,
		},
		{
			name:         "geocoder error is propagated and nothing stored",
			query:        "Seattle",
			geocodeErr:   errors.New("connection refused"),
			errContains:  "connection refused",
			wantGeocodes: 1,
			wantInserts:  0,
		},
		{
			name:            "no results",
			query:           "qwertyuiop",
			geocodeResponse: &googlemaps.GeocodeAPIResponse{Status: googlemaps.StatusZeroResults},
			wantErr:         ErrNoResults,
			wantGeocodes:    1,
			wantInserts:     0,
		},
		{
			name:         "nil geocoder response",
			query:        "Seattle",
			wantErr:      ErrNoResults,
			wantGeocodes: 1,
		},
		{
			name:         "cache lookup failure",
			query:        "Seattle",
			findErr:      errors.New("db down"),
			errContains:  "failed to check location cache",
			wantGeocodes: 0,
		},
		{
			name:            "cache write failure",
			query:           "Seattle",
			geocodeResponse: seattleResponse(),
			insertErr:       errors.New("disk full"),
			errContains:     "failed to cache location",
			wantGeocodes:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := &mockGeocoder{response: tt.geocodeResponse, err: tt.geocodeErr}
			store := &mockStore{
				rows:      append([]types.LocationRecord(nil), tt.storeRows...),
				findErr:   tt.findErr,
				insertErr: tt.insertErr,
			}

			service := NewLocationServiceWithProviders(geocoder, store, observability.NewMetricsForTesting(), discardLogger())

			got, err := service.Resolve(context.Background(), tt.query)

			assert.Len(t, geocoder.calls, tt.wantGeocodes)
			assert.Len(t, store.inserted, tt.wantInserts)

			if tt.wantErr != nil || tt.errContains != "" {
				require.Error(t, err)
				assert.Nil(t, got)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, got)
			}
		})
	}
}

func TestLocationService_GeocoderReceivesRawQuery(t *testing.T) {
	geocoder := &mockGeocoder{response: seattleResponse()}
	service := NewLocationServiceWithProviders(geocoder, &mockStore{}, observability.NewMetricsForTesting(), discardLogger())

	_, err := service.Resolve(context.Background(), "  Seattle, wa ")
	require.NoError(t, err)
	assert.Equal(t, []string{"  Seattle, wa "}, geocoder.calls)
}

func TestLocationService_RecordsCacheMetrics(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	service := NewLocationServiceWithProviders(&mockGeocoder{response: seattleResponse()}, &mockStore{}, metrics, discardLogger())

	_, err := service.Resolve(context.Background(), "Seattle")
	require.NoError(t, err)
	_, err = service.Resolve(context.Background(), "Seattle")
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LocationCache.WithLabelValues("miss")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.LocationCache.WithLabelValues("hit")), 0)
}

func TestLocationService_NilMetrics(t *testing.T) {
	service := NewLocationServiceWithProviders(&mockGeocoder{response: seattleResponse()}, &mockStore{}, nil, discardLogger())

	first, err := service.Resolve(context.Background(), "Seattle")
	require.NoError(t, err)
	second, err := service.Resolve(context.Background(), "Seattle")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestLocationService_WithSQLiteStore(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	store, err := storage.Open(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, slog.LevelInfo, metrics, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	geocoder := &mockGeocoder{response: seattleResponse()}
	service := NewLocationServiceWithProviders(geocoder, store, metrics, discardLogger())
	ctx := context.Background()

	first, err := service.Resolve(ctx, "Seattle")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := service.Resolve(ctx, "Seattle")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.FormattedQuery, second.FormattedQuery)
	assert.Len(t, geocoder.calls, 1, "second lookup must be served from the cache")

	rows, err := store.FindByQuery(ctx, "Seattle")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLocationService_WithSQLiteStore_GeocodeFailureStoresNothing(t *testing.T) {
	store, err := storage.Open(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, slog.LevelInfo, nil, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	geocoder := &mockGeocoder{err: errors.New("network unreachable")}
	service := NewLocationServiceWithProviders(geocoder, store, observability.NewMetricsForTesting(), discardLogger())

	_, err = service.Resolve(context.Background(), "Seattle")
	require.Error(t, err)

	rows, err := store.FindByQuery(context.Background(), "Seattle")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
