package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hourlycast/hourlycast/internal/dates"
	"github.com/hourlycast/hourlycast/internal/geo"
)

// mockRoundTripper is a custom RoundTripper for testing
type mockRoundTripper struct {
	handler http.Handler
	err     error
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec := httptest.NewRecorder()
	m.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

func testForecastClient(handler http.Handler) *Client {
	return &Client{
		BaseURL:   "https://forecast.test/v1/forecast",
		UserAgent: "test-agent",
		HTTPClient: &http.Client{
			Transport: &mockRoundTripper{handler: handler},
		},
	}
}

var testCoords = geo.Coordinates{Latitude: 41.8781, Longitude: -87.6298}

var testSpan = dates.Range{Start: "2024-01-15", End: "2024-01-22"}

// validForecastBody is the smallest response Fetch accepts.
const validForecastBody = `{
	"hourly": {
		"time": ["2024-01-15T00:00", "2024-01-15T01:00"],
		"temperature_2m": [28.5, 27.9],
		"visibility": [24000, 23000]
	},
	"daily": {
		"time": ["2024-01-15"],
		"temperature_2m_max": [33.1],
		"temperature_2m_min": [25.2]
	}
}`

func TestFetch_RequestParameters(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		expectations := map[string]string{
			"latitude":         "41.8781",
			"longitude":        "-87.6298",
			"current":          "temperature_2m,is_day,precipitation,rain,showers,snowfall",
			"hourly":           "temperature_2m,visibility",
			"daily":            "temperature_2m_max,temperature_2m_min,apparent_temperature_max,apparent_temperature_min,sunrise,sunset,daylight_duration,sunshine_duration",
			"temperature_unit": "fahrenheit",
			"timezone":         "auto",
			"start_date":       "2024-01-15",
			"end_date":         "2024-01-22",
		}
		for key, want := range expectations {
			if got := q.Get(key); got != want {
				t.Errorf("expected %s=%q, got %q", key, want, got)
			}
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("expected User-Agent test-agent, got %s", r.Header.Get("User-Agent"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validForecastBody))
	})

	fc, err := testForecastClient(handler).Fetch(context.Background(), testCoords, testSpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fc.Hourly.Time) != 2 {
		t.Errorf("expected 2 hourly entries, got %d", len(fc.Hourly.Time))
	}
	if fc.Hourly.Temperature2m[0] != 28.5 {
		t.Errorf("expected first hourly temperature 28.5, got %f", fc.Hourly.Temperature2m[0])
	}
	if fc.Daily.Temperature2mMax[0] != 33.1 {
		t.Errorf("expected daily max 33.1, got %f", fc.Daily.Temperature2mMax[0])
	}
}

func TestFetch_TransportError(t *testing.T) {
	client := &Client{
		BaseURL:   "https://forecast.test/v1/forecast",
		UserAgent: "test-agent",
		HTTPClient: &http.Client{
			Transport: &mockRoundTripper{err: fmt.Errorf("connection refused")},
		},
	}

	_, err := client.Fetch(context.Background(), testCoords, testSpan)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := testForecastClient(handler).Fetch(context.Background(), testCoords, testSpan)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestFetch_InvalidJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json {"))
	})

	_, err := testForecastClient(handler).Fetch(context.Background(), testCoords, testSpan)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestFetch_MissingSeries(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "no hourly series",
			body: `{"daily": {"time": ["2024-01-15"], "temperature_2m_max": [33.1], "temperature_2m_min": [25.2]}}`,
		},
		{
			name: "no daily series",
			body: `{"hourly": {"time": ["2024-01-15T00:00"], "temperature_2m": [28.5]}}`,
		},
		{
			name: "hourly series misaligned",
			body: `{
				"hourly": {"time": ["2024-01-15T00:00", "2024-01-15T01:00"], "temperature_2m": [28.5]},
				"daily": {"time": ["2024-01-15"], "temperature_2m_max": [33.1], "temperature_2m_min": [25.2]}
			}`,
		},
		{
			name: "daily series misaligned",
			body: `{
				"hourly": {"time": ["2024-01-15T00:00"], "temperature_2m": [28.5]},
				"daily": {"time": ["2024-01-15", "2024-01-16"], "temperature_2m_max": [33.1], "temperature_2m_min": [25.2]}
			}`,
		},
		{
			name: "empty object",
			body: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			})

			_, err := testForecastClient(handler).Fetch(context.Background(), testCoords, testSpan)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestForecastURL_Deterministic(t *testing.T) {
	client := NewClient("https://api.open-meteo.com/v1/forecast", "test-agent")

	first := client.ForecastURL(testCoords, testSpan)
	second := client.ForecastURL(testCoords, testSpan)
	if first != second {
		t.Errorf("expected identical URLs, got %q and %q", first, second)
	}
}
