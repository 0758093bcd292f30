package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hourlycast/hourlycast/internal/dates"
	"github.com/hourlycast/hourlycast/internal/geo"
)

var (
	// ErrNetwork means the forecast request failed in transport or the
	// service answered with a non-OK status.
	ErrNetwork = errors.New("forecast request failed")

	// ErrMalformedResponse means the forecast body was not the expected
	// shape: undecodable, or required series missing or misaligned.
	ErrMalformedResponse = errors.New("malformed forecast response")
)

// Requested field lists. These are part of the contract with the response
// types: every field named here has a corresponding series or member there.
const (
	currentFields = "temperature_2m,is_day,precipitation,rain,showers,snowfall"
	hourlyFields  = "temperature_2m,visibility"
	dailyFields   = "temperature_2m_max,temperature_2m_min,apparent_temperature_max,apparent_temperature_min,sunrise,sunset,daylight_duration,sunshine_duration"
)

// Client fetches forecasts from an Open-Meteo compatible API.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a forecast client for the given base URL.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ForecastURL builds the single request URL for coords over the given date
// range. Temperature unit is fixed to fahrenheit; timezone=auto makes the
// service express all timestamps in the local time of the coordinates, which
// the aligner's clock strategy depends on.
func (c *Client) ForecastURL(coords geo.Coordinates, span dates.Range) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("temperature_unit", "fahrenheit")
	params.Set("timezone", "auto")
	params.Set("start_date", span.Start)
	params.Set("end_date", span.End)
	return c.BaseURL + "?" + params.Encode()
}

// Fetch issues one forecast request and decodes the body. Transport failures
// and non-OK statuses wrap ErrNetwork; undecodable or incomplete bodies wrap
// ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, coords geo.Coordinates, span dates.Range) (*ForecastResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ForecastURL(coords, span), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrNetwork, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var fc ForecastResponse
	if err := json.Unmarshal(body, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := fc.validate(); err != nil {
		return nil, err
	}

	return &fc, nil
}
