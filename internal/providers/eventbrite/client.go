package eventbrite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"

	"github.com/go-resty/resty/v2"
)

// API Docs: https://www.eventbrite.com/platform/api#/reference/event-search
// Sample request: https://www.eventbriteapi.com/v3/events/search?token=KEY&location.address=Seattle,%20WA,%20USA
const providerName = "events"

type Client struct {
	http    *resty.Client
	baseURL string
	token   string
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewClient(cfg config.ProviderConfig, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultEventsURL
	}
	return &Client{
		http:    resty.New().SetTimeout(timeout).SetHeader("Accept", "application/json"),
		baseURL: baseURL,
		token:   cfg.APIKey,
		metrics: metrics,
		logger:  logger.With("provider", providerName),
	}
}

// SearchByAddress returns the first page of events near the address
func (c *Client) SearchByAddress(ctx context.Context, address string) (resp *SearchAPIResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProvider(providerName, start, err) }()

	r, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"token":            c.token,
			"location.address": address,
		}).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}

	if r.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d: %s", r.StatusCode(), r.String())
	}

	var apiResp SearchAPIResponse
	if err := json.Unmarshal(r.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("event search response",
		"address", address,
		"events", len(apiResp.Events),
		"total", apiResp.Pagination.ObjectCount,
	)

	return &apiResp, nil
}
