package geo

import (
	"context"
	"fmt"
	"time"
)

// Locator produces a single position fix for "the current location".
// Implementations may block while the underlying source acquires a fix.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator reports a fixed position, typically the deployment's
// configured default. A zero Position means no default was configured and
// Locate fails with ErrLocationUnavailable.
type StaticLocator struct {
	Position Coordinates
}

func (s StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	if s.Position == (Coordinates{}) {
		return Coordinates{}, fmt.Errorf("%w: no default position configured", ErrLocationUnavailable)
	}
	return s.Position, nil
}

type timeoutLocator struct {
	inner   Locator
	timeout time.Duration
}

// WithTimeout bounds a Locator so a hung or denied position request fails
// with ErrLocationUnavailable instead of blocking its pipeline forever.
func WithTimeout(l Locator, d time.Duration) Locator {
	return &timeoutLocator{inner: l, timeout: d}
}

func (t *timeoutLocator) Locate(ctx context.Context) (Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type fix struct {
		coords Coordinates
		err    error
	}
	done := make(chan fix, 1)
	go func() {
		coords, err := t.inner.Locate(ctx)
		done <- fix{coords, err}
	}()

	select {
	case f := <-done:
		return f.coords, f.err
	case <-ctx.Done():
		return Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, ctx.Err())
	}
}
