package darksky

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"city-explorer/internal/config"
	"city-explorer/internal/observability"

	"github.com/go-resty/resty/v2"
)

// API Docs: https://darksky.net/dev/docs#forecast-request
// Sample request: https://api.darksky.net/forecast/KEY/47.6062,-122.3321?exclude=currently,minutely,hourly,alerts
const providerName = "weather"

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
		baseURL = config.DefaultWeatherURL
	}
	return &Client{
		http:    resty.New().SetTimeout(timeout).SetHeader("Accept", "application/json"),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		metrics: metrics,
		logger:  logger.With("provider", providerName),
	}
}

// GetForecast fetches the daily forecast for the given coordinates
func (c *Client) GetForecast(ctx context.Context, latitude, longitude float64) (resp *ForecastAPIResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveProvider(providerName, start, err) }()

	u := fmt.Sprintf("%s/%s/%s,%s", c.baseURL, url.PathEscape(c.apiKey),
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64),
	)

	r, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("exclude", "currently,minutely,hourly,alerts,flags").
		Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}

	if r.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d: %s", r.StatusCode(), r.String())
	}

	var apiResp ForecastAPIResponse
	if err := json.Unmarshal(r.Body(), &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("forecast response",
		"latitude", latitude,
		"longitude", longitude,
		"timezone", apiResp.Timezone,
		"days", len(apiResp.Daily.Data),
	)

	return &apiResp, nil
}
