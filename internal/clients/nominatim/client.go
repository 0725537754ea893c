package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var ErrNoResults = errors.New("no geocoding results")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Location struct {
	Latitude  float64
	Longitude float64
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client talks to a Nominatim search endpoint. The usage policy requires an
// identifying User-Agent and at most one request per second, so callers
// should set a rate limit before issuing lookups.
type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
	endpoint    string
	userAgent   string
}

func NewClient(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		userAgent:  userAgent,
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Search resolves a free-form address to coordinates, requesting a single
// result. Returns ErrNoResults when the service finds nothing.
func (c *Client) Search(ctx context.Context, query string) (Location, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return Location{}, err
		}
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("limit", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Location{}, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("request failed with status %v", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if len(results) == 0 {
		return Location{}, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed latitude %q: %v", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, fmt.Errorf("malformed longitude %q: %v", results[0].Lon, err)
	}

	return Location{Latitude: lat, Longitude: lon}, nil
}
