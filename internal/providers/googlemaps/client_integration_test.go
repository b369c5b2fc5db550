//go:build integration

package googlemaps

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
)

func TestClient_Geocode_Integration(t *testing.T) {
	key := os.Getenv("GEOCODE_API_KEY")
	if key == "" {
		t.Skip("GEOCODE_API_KEY not set")
	}

	client := NewClient(
		config.ProviderConfig{APIKey: key},
		10*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	t.Logf("Making API call to Google Geocoding API...")

	resp, err := client.Geocode(context.Background(), "Seattle")
	if err != nil {
		t.Fatalf("Failed to geocode: %v", err)
	}

	rawJSON, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	t.Logf("Raw API Response:\n%s", string(rawJSON))

	if len(resp.Results) == 0 {
		t.Fatal("Expected at least one result")
	}

	first := resp.Results[0]
	t.Logf("  Formatted Address: %s", first.FormattedAddress)
	t.Logf("  Location: lat=%f, lng=%f", first.Geometry.Location.Lat, first.Geometry.Location.Lng)

	if first.FormattedAddress == "" {
		t.Error("FormattedAddress is empty")
	}
	if first.Geometry.Location.Lat == 0 || first.Geometry.Location.Lng == 0 {
		t.Error("Location coordinates are empty")
	}
}
