package geo

import "errors"

// Coordinates is a WGS 84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var (
	// ErrLocationNotFound means the geocoder returned zero results for a query.
	ErrLocationNotFound = errors.New("location not found")

	// ErrLocationUnavailable means no current position could be obtained:
	// the position source was denied, failed, or timed out.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrNoAddress means the reverse geocoder returned no usable address.
	ErrNoAddress = errors.New("no address for coordinates")
)
