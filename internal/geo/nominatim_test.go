package geo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockRoundTripper is a custom RoundTripper for testing
type mockRoundTripper struct {
	handler http.Handler
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	m.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

func testClient(handler http.Handler) *Client {
	return &Client{
		BaseURL:   "https://geocoder.test",
		UserAgent: "test-agent",
		HTTPClient: &http.Client{
			Transport: &mockRoundTripper{handler: handler},
		},
	}
}

func TestSearch_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Chicago" {
			t.Errorf("expected q=Chicago, got %s", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %s", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("addressdetails") != "1" {
			t.Errorf("expected addressdetails=1, got %s", r.URL.Query().Get("addressdetails"))
		}
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("expected limit=1, got %s", r.URL.Query().Get("limit"))
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("expected User-Agent test-agent, got %s", r.Header.Get("User-Agent"))
		}

		w.Header().Set("Content-Type", "application/json")
		// Nominatim returns coordinates as numeric strings.
		w.Write([]byte(`[{"lat": "41.8781", "lon": "-87.6298"}]`))
	})

	coords, err := testClient(handler).Search(context.Background(), "Chicago")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if coords.Latitude != 41.8781 {
		t.Errorf("expected latitude 41.8781, got %f", coords.Latitude)
	}
	if coords.Longitude != -87.6298 {
		t.Errorf("expected longitude -87.6298, got %f", coords.Longitude)
	}
}

func TestSearch_NoResults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	_, err := testClient(handler).Search(context.Background(), "Nowhereland")
	if !errors.Is(err, ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestSearch_APIError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := testClient(handler).Search(context.Background(), "Chicago")
	if err == nil {
		t.Fatal("expected error for API error, got nil")
	}
}

func TestSearch_InvalidCoordinateStrings(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "-87.6298"}]`))
	})

	_, err := testClient(handler).Search(context.Background(), "Chicago")
	if err == nil {
		t.Fatal("expected error for unparseable latitude, got nil")
	}
}

func TestReverse_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "41.878100" {
			t.Errorf("expected lat=41.878100, got %s", r.URL.Query().Get("lat"))
		}
		if r.URL.Query().Get("lon") != "-87.629800" {
			t.Errorf("expected lon=-87.629800, got %s", r.URL.Query().Get("lon"))
		}
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("expected format=json, got %s", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("addressdetails") != "0" {
			t.Errorf("expected addressdetails=0, got %s", r.URL.Query().Get("addressdetails"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ReverseResponse{
			DisplayName: "Daley Plaza, Washington Street, Chicago, Cook County, Illinois, 60602, United States",
		})
	})

	name, err := testClient(handler).Reverse(context.Background(), Coordinates{Latitude: 41.8781, Longitude: -87.6298})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Daley Plaza, Washington Street, Chicago, Cook County, Illinois, 60602, United States"
	if name != expected {
		t.Errorf("expected %q, got %q", expected, name)
	}
}

func TestReverse_NoAddress(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	_, err := testClient(handler).Reverse(context.Background(), Coordinates{})
	if !errors.Is(err, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
}

func TestReverse_InvalidJSON(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json {"))
	})

	_, err := testClient(handler).Reverse(context.Background(), Coordinates{})
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestNewClient_RateLimiterInstalled(t *testing.T) {
	client := NewClient("https://geocoder.test", "test-agent")
	if client.limiter == nil {
		t.Error("expected NewClient to install a rate limiter")
	}
	if client.HTTPClient.Timeout == 0 {
		t.Error("expected NewClient to set a request timeout")
	}
}
