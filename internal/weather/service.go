package weather

import (
	"context"
	"time"

	"github.com/hourlycast/hourlycast/internal/dates"
	"github.com/hourlycast/hourlycast/internal/geo"
)

// Service runs the forecast pipeline: resolve, fetch, align, render. Each
// call is an independent pipeline run; nothing is cached or shared between
// runs.
type Service struct {
	Resolver *geo.Resolver
	Client   *Client
	Strategy AlignStrategy

	// Now supplies the pipeline's notion of the current instant. Tests
	// replace it; production leaves it as time.Now.
	Now func() time.Time
}

// NewService creates a forecast service around a resolver and client.
func NewService(resolver *geo.Resolver, client *Client, strategy AlignStrategy) *Service {
	return &Service{
		Resolver: resolver,
		Client:   client,
		Strategy: strategy,
		Now:      time.Now,
	}
}

// Forecast executes one pipeline run for optional free-text location input.
// Any stage error aborts the run and nothing is rendered; the returned model
// is complete and meant to be applied to the display surface in one step.
func (s *Service) Forecast(ctx context.Context, locationText string) (*Model, error) {
	coords, label, err := s.Resolver.Resolve(ctx, locationText)
	if err != nil {
		return nil, err
	}
	return s.ForecastAt(ctx, coords, label)
}

// ForecastAt runs the pipeline for already-resolved coordinates, labeling the
// result with label.
func (s *Service) ForecastAt(ctx context.Context, coords geo.Coordinates, label string) (*Model, error) {
	now := s.Now()
	fc, err := s.Client.Fetch(ctx, coords, dates.WeekAhead(now))
	if err != nil {
		return nil, err
	}
	return BuildModel(fc, Align(fc, now, s.Strategy), label), nil
}

// CurrentPlace names the locator's current position. This flow is independent
// of Forecast and may run concurrently with it.
func (s *Service) CurrentPlace(ctx context.Context) (string, error) {
	coords, err := s.Resolver.Locator.Locate(ctx)
	if err != nil {
		return "", err
	}
	return s.Resolver.DisplayName(ctx, coords)
}

// PlaceName names an already-known position.
func (s *Service) PlaceName(ctx context.Context, coords geo.Coordinates) (string, error) {
	return s.Resolver.DisplayName(ctx, coords)
}
