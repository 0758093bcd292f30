package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/hourlycast/hourlycast/internal/config"
	"github.com/hourlycast/hourlycast/internal/db"
	"github.com/hourlycast/hourlycast/internal/geo"
	"github.com/hourlycast/hourlycast/internal/handlers"
	"github.com/hourlycast/hourlycast/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	addr := flag.String("addr", "", "Listen address override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}

	var searcher handlers.Searcher
	if database, err := db.Open(cfg.DBPath); err != nil {
		log.Printf("Warning: place index unavailable: %v", err)
		log.Println("Continuing without location autocomplete...")
	} else {
		defer database.Close()
		searcher = database
		log.Println("Place index opened successfully")
	}

	geocoder := geo.NewClient(cfg.GeocoderBaseURL, cfg.UserAgent)
	geocoder.HTTPClient.Timeout = time.Duration(cfg.RequestTimeout)

	locator := geo.WithTimeout(geo.StaticLocator{
		Position: geo.Coordinates{
			Latitude:  cfg.DefaultLatitude,
			Longitude: cfg.DefaultLongitude,
		},
	}, time.Duration(cfg.LocateTimeout))

	resolver := &geo.Resolver{Geocoder: geocoder, Locator: locator}

	forecasts := weather.NewClient(cfg.ForecastBaseURL, cfg.UserAgent)
	forecasts.HTTPClient.Timeout = time.Duration(cfg.RequestTimeout)

	strategy := weather.AlignByClock
	if cfg.AlignmentStrategy == "timestamp" {
		strategy = weather.AlignByTimestamp
	}

	service := weather.NewService(resolver, forecasts, strategy)
	h := handlers.New(service, searcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.HandleIndex)
	mux.HandleFunc("/api/forecast", h.HandleForecast)
	mux.HandleFunc("/api/place", h.HandlePlace)
	mux.HandleFunc("/api/search", h.HandleSearch)
	mux.HandleFunc("/health", h.HandleHealth)

	log.Printf("Server starting on http://localhost%s", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
		log.Fatal(err)
	}
}
