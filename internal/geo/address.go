package geo

import (
	"fmt"
	"strings"
)

// AddressFormatter extracts a short display label from a reverse-geocoded
// address string. Alternate geocoding backends with different address shapes
// can substitute their own formatter without touching the pipeline.
type AddressFormatter func(displayName string) (string, error)

// NominatimCity picks the city component out of a Nominatim display_name.
// Nominatim full addresses read like "house, road, suburb, city, county,
// state, postcode, country", which puts the city fifth from the end. The
// position is a property of the upstream format, not of addresses in general;
// when an address has too few components this reports a mismatch instead of
// guessing.
func NominatimCity(displayName string) (string, error) {
	if displayName == "" {
		return "", ErrNoAddress
	}
	parts := strings.Split(displayName, ", ")
	if len(parts) < 5 {
		return "", fmt.Errorf("%w: unexpected address shape %q", ErrNoAddress, displayName)
	}
	return parts[len(parts)-5], nil
}
