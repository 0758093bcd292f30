package geo

import (
	"context"
	"errors"
	"testing"
	"time"
)

// blockedLocator models a position source that never answers, like a user
// ignoring a permission prompt.
type blockedLocator struct{}

func (blockedLocator) Locate(ctx context.Context) (Coordinates, error) {
	<-ctx.Done()
	return Coordinates{}, ctx.Err()
}

func TestStaticLocator_ConfiguredPosition(t *testing.T) {
	locator := StaticLocator{Position: Coordinates{Latitude: 41.8781, Longitude: -87.6298}}

	coords, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords.Latitude != 41.8781 || coords.Longitude != -87.6298 {
		t.Errorf("unexpected coordinates: %+v", coords)
	}
}

func TestStaticLocator_Unconfigured(t *testing.T) {
	_, err := StaticLocator{}.Locate(context.Background())
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestStaticLocator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := StaticLocator{Position: Coordinates{Latitude: 1, Longitude: 1}}.Locate(ctx)
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestWithTimeout_HungLocatorFails(t *testing.T) {
	locator := WithTimeout(blockedLocator{}, 20*time.Millisecond)

	start := time.Now()
	_, err := locator.Locate(context.Background())
	if !errors.Is(err, ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestWithTimeout_PassesThroughSuccess(t *testing.T) {
	inner := StaticLocator{Position: Coordinates{Latitude: 37.7749, Longitude: -122.4194}}
	locator := WithTimeout(inner, time.Second)

	coords, err := locator.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coords != inner.Position {
		t.Errorf("expected %+v, got %+v", inner.Position, coords)
	}
}
