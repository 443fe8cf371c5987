package sinks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/brainrot-academy/academy-client/pkg/notify"
)

// Fanout mirrors notifications to every configured sink. It implements
// notify.Surface so it can sit next to the terminal surface.
type Fanout struct {
	sinks []Sink

	mu    sync.Mutex
	shown map[string]notify.Notification
}

// NewFanout builds a dispatcher that fans out events across sinks.
func NewFanout(sinks []Sink) *Fanout {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		cp = append(cp, s)
	}
	return &Fanout{sinks: cp, shown: make(map[string]notify.Notification)}
}

// Publish forwards the event to every registered sink.
// It returns the number of sinks that successfully handled the event.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, s := range f.sinks {
		if err := s.Send(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", s.Type(), s.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Show publishes a show event.
func (f *Fanout) Show(ctx context.Context, n notify.Notification) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	f.shown[n.ID] = n
	f.mu.Unlock()

	_, err := f.Publish(ctx, NewEvent(ActionShow, n))
	return err
}

// Hide publishes a hide event once per shown notification; repeats are dropped.
func (f *Fanout) Hide(ctx context.Context, id string) error {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	n, ok := f.shown[id]
	delete(f.shown, id)
	f.mu.Unlock()
	if !ok {
		return nil
	}

	_, err := f.Publish(ctx, NewEvent(ActionHide, n))
	return err
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Close releases sinks holding client connections.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, s := range f.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s sink[%s]: %w", s.Type(), s.ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}
