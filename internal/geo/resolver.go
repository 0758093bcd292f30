package geo

import (
	"context"
	"strings"
)

// CurrentLocationLabel is the display label used when a forecast was requested
// without location text and the position came from the locator instead.
const CurrentLocationLabel = "Current Location"

// Resolver turns user input into coordinates: free text goes through the
// geocoder, empty input falls back to the locator.
type Resolver struct {
	Geocoder *Client
	Locator  Locator

	// Format extracts the display place name from a reverse-geocoded
	// address. Defaults to NominatimCity.
	Format AddressFormatter
}

// Resolve maps optional free-text input to coordinates plus a display label.
// Non-empty text is geocoded and becomes the label; empty text delegates to
// the locator and labels the result as the current location.
func (r *Resolver) Resolve(ctx context.Context, locationText string) (Coordinates, string, error) {
	text := strings.TrimSpace(locationText)
	if text != "" {
		coords, err := r.Geocoder.Search(ctx, text)
		if err != nil {
			return Coordinates{}, "", err
		}
		return coords, text, nil
	}

	coords, err := r.Locator.Locate(ctx)
	if err != nil {
		return Coordinates{}, "", err
	}
	return coords, CurrentLocationLabel, nil
}

// DisplayName resolves a short human-readable place name for coords via
// reverse geocoding.
func (r *Resolver) DisplayName(ctx context.Context, coords Coordinates) (string, error) {
	displayName, err := r.Geocoder.Reverse(ctx, coords)
	if err != nil {
		return "", err
	}

	format := r.Format
	if format == nil {
		format = NominatimCity
	}
	return format(displayName)
}
