package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// scheduleFunc runs f once after d and returns a function that cancels it.
type scheduleFunc func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Emitter shows notifications on a surface and guarantees their removal.
type Emitter struct {
	surface  Surface
	ttl      time.Duration
	log      Logger
	schedule scheduleFunc
	newID    func() string
	now      func() time.Time

	mu      sync.Mutex
	pending map[string]func() bool
}

// Option customizes an Emitter.
type Option func(*Emitter)

// WithTTL overrides DefaultTTL for Notify.
func WithTTL(ttl time.Duration) Option {
	return func(e *Emitter) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for surface failures.
func WithLogger(log Logger) Option {
	return func(e *Emitter) { e.log = ensureLogger(log) }
}

// NewEmitter builds an emitter over surface. A nil surface keeps notifications in memory.
func NewEmitter(surface Surface, opts ...Option) *Emitter {
	if surface == nil {
		surface = NewMemorySurface()
	}
	e := &Emitter{
		surface:  surface,
		ttl:      DefaultTTL,
		log:      noopLogger{},
		schedule: afterFunc,
		newID:    uuid.NewString,
		now:      time.Now,
		pending:  make(map[string]func() bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notify shows message with the emitter's TTL. An empty or unknown severity means info.
func (e *Emitter) Notify(ctx context.Context, message string, severity Severity) (Notification, error) {
	return e.NotifyFor(ctx, message, severity, e.ttl)
}

// NotifyFor shows message and removes it after ttl. Removal is scheduled even
// when the surface reports an error, since part of it may have shown the message.
func (e *Emitter) NotifyFor(ctx context.Context, message string, severity Severity, ttl time.Duration) (Notification, error) {
	severity = ParseSeverity(string(severity))
	if ttl <= 0 {
		ttl = e.ttl
	}
	n := Notification{
		ID:        e.newID(),
		Message:   message,
		Severity:  severity,
		TTL:       ttl,
		CreatedAt: e.now(),
	}

	showErr := e.surface.Show(ctx, n)

	e.mu.Lock()
	e.pending[n.ID] = e.schedule(ttl, func() { e.expire(n.ID) })
	e.mu.Unlock()

	if showErr != nil {
		e.log.ErrorObj("notification show failed", "notification_error", map[string]any{
			"notification_id": n.ID,
			"severity":        n.Severity,
			"error":           showErr.Error(),
		})
		return n, fmt.Errorf("show notification: %w", showErr)
	}
	e.log.DebugObj("notification shown", "notification", n)
	return n, nil
}

// Dismiss hides a notification before its timeout. The scheduled removal
// still fires later and is then a no-op.
func (e *Emitter) Dismiss(ctx context.Context, id string) error {
	if err := e.surface.Hide(ctx, id); err != nil {
		return fmt.Errorf("hide notification %s: %w", id, err)
	}
	return nil
}

// Pending reports how many notifications still await their scheduled removal.
func (e *Emitter) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Close cancels pending timers and hides every notification they guarded.
func (e *Emitter) Close(ctx context.Context) error {
	e.mu.Lock()
	pending := e.pending
	e.pending = make(map[string]func() bool)
	e.mu.Unlock()

	var errs []error
	for id, stop := range pending {
		stop()
		if err := e.surface.Hide(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("hide notification %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (e *Emitter) expire(id string) {
	e.mu.Lock()
	_, ok := e.pending[id]
	delete(e.pending, id)
	e.mu.Unlock()
	if !ok {
		// already flushed by Close
		return
	}

	if err := e.surface.Hide(context.Background(), id); err != nil {
		e.log.ErrorObj("notification removal failed", "notification_error", map[string]any{
			"notification_id": id,
			"error":           err.Error(),
		})
	}
}
