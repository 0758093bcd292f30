package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/hourlycast/hourlycast/internal/db"
	"github.com/hourlycast/hourlycast/internal/geo"
	"github.com/hourlycast/hourlycast/internal/weather"
)

// ForecastService is the pipeline surface the handlers drive.
type ForecastService interface {
	Forecast(ctx context.Context, locationText string) (*weather.Model, error)
	ForecastAt(ctx context.Context, coords geo.Coordinates, label string) (*weather.Model, error)
	CurrentPlace(ctx context.Context) (string, error)
	PlaceName(ctx context.Context, coords geo.Coordinates) (string, error)
}

// Searcher is the slice of the place index the handlers need.
type Searcher interface {
	SearchPlaces(query string) ([]db.Place, error)
	Ping() error
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	service   ForecastService
	db        Searcher
	templates *template.Template
}

// New creates a new Handlers instance. database may be nil; search and the
// health report degrade accordingly.
func New(service ForecastService, database Searcher) *Handlers {
	return &Handlers{
		service:   service,
		db:        database,
		templates: template.Must(template.New("hourlycast").Parse(pageTemplates)),
	}
}

// HandleIndex serves the main page.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index", nil); err != nil {
		log.Printf("Error executing index template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleHealth serves the health check endpoint.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
		}
	} else {
		status = "no_database"
	}

	w.Write([]byte(`{"status":"` + status + `"}`))
}

// HandleForecast runs one forecast pipeline and serves the rendered fragment.
// The request carries either ?location= text, ?lat=&lon= coordinates from the
// browser, or nothing (server-side locator fallback). The fragment is rendered
// into a buffer first, so an error never commits a partial page update.
func (h *Handlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var model *weather.Model
	var err error

	if latStr != "" && lonStr != "" {
		var coords geo.Coordinates
		coords.Latitude, err = strconv.ParseFloat(latStr, 64)
		if err != nil {
			writeErrorFragment(w, http.StatusBadRequest, "Invalid latitude")
			return
		}
		coords.Longitude, err = strconv.ParseFloat(lonStr, 64)
		if err != nil {
			writeErrorFragment(w, http.StatusBadRequest, "Invalid longitude")
			return
		}
		model, err = h.service.ForecastAt(r.Context(), coords, geo.CurrentLocationLabel)
	} else {
		model, err = h.service.Forecast(r.Context(), location)
	}

	if err != nil {
		log.Printf("Forecast pipeline error: %v", err)
		writeErrorFragment(w, forecastErrorStatus(err), forecastErrorMessage(err))
		return
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "forecast_fragment", model); err != nil {
		log.Printf("Template error: %v", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Failed to render forecast")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandlePlace resolves and serves the current place name. Independent of the
// forecast pipeline; the page calls it separately on load.
func (h *Handlers) HandlePlace(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	var place string
	var err error

	if latStr != "" && lonStr != "" {
		var coords geo.Coordinates
		coords.Latitude, err = strconv.ParseFloat(latStr, 64)
		if err != nil {
			http.Error(w, "Invalid latitude", http.StatusBadRequest)
			return
		}
		coords.Longitude, err = strconv.ParseFloat(lonStr, 64)
		if err != nil {
			http.Error(w, "Invalid longitude", http.StatusBadRequest)
			return
		}
		place, err = h.service.PlaceName(r.Context(), coords)
	} else {
		place, err = h.service.CurrentPlace(r.Context())
	}

	if err != nil {
		log.Printf("Place lookup error: %v", err)
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, geo.ErrNoAddress):
			status = http.StatusNotFound
		case errors.Is(err, geo.ErrLocationUnavailable):
			status = http.StatusServiceUnavailable
		}
		http.Error(w, "Place name unavailable", status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"place": place})
}

// HandleSearch performs location autocomplete against the place index.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	if len(q) < 2 || h.db == nil {
		w.Write([]byte("[]"))
		return
	}

	places, err := h.db.SearchPlaces(q)
	if err != nil {
		log.Printf("Search error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if places == nil {
		places = []db.Place{}
	}

	if err := json.NewEncoder(w).Encode(places); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}

func forecastErrorStatus(err error) int {
	switch {
	case errors.Is(err, geo.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, geo.ErrLocationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, weather.ErrNetwork), errors.Is(err, weather.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func forecastErrorMessage(err error) string {
	switch {
	case errors.Is(err, geo.ErrLocationNotFound):
		return "Location not found"
	case errors.Is(err, geo.ErrLocationUnavailable):
		return "Current location unavailable"
	default:
		return "Failed to retrieve weather data"
	}
}

func writeErrorFragment(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`))
}
