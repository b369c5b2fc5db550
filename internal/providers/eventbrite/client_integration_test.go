//go:build integration

package eventbrite

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"
)

func TestClient_SearchByAddress_Integration(t *testing.T) {
	token := os.Getenv("EVENTBRITE_API_KEY")
	if token == "" {
		t.Skip("EVENTBRITE_API_KEY not set")
	}

	client := NewClient(
		config.ProviderConfig{APIKey: token},
		10*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	resp, err := client.SearchByAddress(context.Background(), "Seattle, WA, USA")
	if err != nil {
		t.Fatalf("Failed to search events: %v", err)
	}

	t.Logf("Found %d events (%d total)", len(resp.Events), resp.Pagination.ObjectCount)
	for _, e := range resp.Events {
		t.Logf("  %s | %s | %s", e.Start.Local, e.Name.Text, e.URL)
		if e.URL == "" {
			t.Errorf("event %s has no url", e.ID)
		}
	}
}
