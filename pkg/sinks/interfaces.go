package sinks

import "context"

// Sink sends notification events to a downstream destination (SQS, HTTP, etc).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, evt Event) error
}
