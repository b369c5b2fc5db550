package googlemaps

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

// API Docs: https://developers.google.com/maps/documentation/geocoding/requests-geocoding
// Sample request: https://maps.googleapis.com/maps/api/geocode/json?address=Seattle&key=KEY
const providerName = "geocode"

type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	metrics *observability.Metrics
	logger  *slog.Logger
}

func NewClient(cfg config.ProviderConfig, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultGeocodeURL
	}
	return &Client{
		http:    resty.New().SetTimeout(timeout).SetHeader("Accept", "application/json"),
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		metrics: metrics,
		logger:  logger.With("provider", providerName),
	}
}

// Geocode looks up a free-text address. A ZERO_RESULTS answer is returned
// as a response with no results, not as an error.
func (c *Client) Geocode(ctx context.Context, address string) (resp *GeocodeAPIResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProvider(providerName, start, err) }()

	r, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"address": address,
			"key":     c.apiKey,
		}).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}

	if r.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d: %s", r.StatusCode(), r.String())
	}

	var apiResp GeocodeAPIResponse
	if err := json.Unmarshal(r.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch apiResp.Status {
	case StatusOK, StatusZeroResults:
	default:
		return nil, fmt.Errorf("geocode returned status %s: %s", apiResp.Status, apiResp.ErrorMessage)
	}

	c.logger.Debug("geocode response",
		"address", address,
		"status", apiResp.Status,
		"results", len(apiResp.Results),
	)

	return &apiResp, nil
}
