package notify

import (
	"context"
	"errors"
)

// Surface is wherever notifications become visible.
// Hide must be a no-op for ids that are unknown or already hidden.
type Surface interface {
	Show(ctx context.Context, n Notification) error
	Hide(ctx context.Context, id string) error
}

// MultiSurface mirrors every call onto each wrapped surface.
type MultiSurface []Surface

// NewMultiSurface drops nil entries.
func NewMultiSurface(surfaces ...Surface) MultiSurface {
	out := make(MultiSurface, 0, len(surfaces))
	for _, s := range surfaces {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m MultiSurface) Show(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Show(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSurface) Hide(ctx context.Context, id string) error {
	var errs []error
	for _, s := range m {
		if err := s.Hide(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
