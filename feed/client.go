package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/theoremus-urban-solutions/metrolive/config"
)

// subscriptionKeyHeader is the bearer-style header the upstream data exchange
// expects on every feed request.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// Fetcher retrieves the raw protobuf bytes of both upstream feeds. The poller
// depends on this interface so tests can substitute a fake upstream.
type Fetcher interface {
	FetchVehiclePositions(ctx context.Context) ([]byte, error)
	FetchTripUpdates(ctx context.Context) ([]byte, error)
}

// Client fetches GTFS-RT feeds over HTTP with the subscription key attached.
type Client struct {
	httpClient          *http.Client
	vehiclePositionsURL string
	tripUpdatesURL      string
	subscriptionKey     string
}

func NewClient(cfg config.FeedConfig) *Client {
	return &Client{
		httpClient:          &http.Client{},
		vehiclePositionsURL: cfg.VehiclePositionsURL,
		tripUpdatesURL:      cfg.TripUpdatesURL,
		subscriptionKey:     cfg.SubscriptionKey,
	}
}

func (c *Client) FetchVehiclePositions(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, c.vehiclePositionsURL)
}

func (c *Client) FetchTripUpdates(ctx context.Context) ([]byte, error) {
	return c.fetch(ctx, c.tripUpdatesURL)
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("feed URL not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.subscriptionKey != "" {
		req.Header.Set(subscriptionKeyHeader, c.subscriptionKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
