package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client handles Nominatim geocoding and reverse geocoding. All calls share
// one rate limiter; Nominatim's usage policy allows at most one request per
// second per client.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Nominatim client for the given base URL. The user agent
// is mandatory for Nominatim; it identifies the application to the service.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder error: %d %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// SearchResponse represents the Nominatim search response. Coordinates arrive
// as numeric strings.
type SearchResponse []struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Search resolves a free-text place name to coordinates, taking the first
// result. Returns ErrLocationNotFound when the geocoder has no match.
func (c *Client) Search(ctx context.Context, query string) (Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	data, err := c.get(ctx, c.BaseURL+"/search?"+params.Encode())
	if err != nil {
		return Coordinates{}, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Coordinates{}, fmt.Errorf("geocoder response: %w", err)
	}

	if len(resp) == 0 {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
	}

	lat, err := strconv.ParseFloat(resp[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoder latitude %q: %w", resp[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(resp[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocoder longitude %q: %w", resp[0].Lon, err)
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// ReverseResponse represents the Nominatim reverse response.
type ReverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse fetches the full comma-separated address string for coords.
// Returns ErrNoAddress when the response carries no address.
func (c *Client) Reverse(ctx context.Context, coords Coordinates) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', 6, 64))
	params.Set("format", "json")
	params.Set("addressdetails", "0")

	data, err := c.get(ctx, c.BaseURL+"/reverse?"+params.Encode())
	if err != nil {
		return "", err
	}

	var resp ReverseResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("reverse geocoder response: %w", err)
	}

	if resp.DisplayName == "" {
		return "", ErrNoAddress
	}

	return resp.DisplayName, nil
}
