package sinks

import (
	"time"

	"github.com/brainrot-academy/academy-client/pkg/notify"
)

// Actions mirrored to sinks.
const (
	ActionShow = "show"
	ActionHide = "hide"
)

// Event represents the payload delivered downstream.
type Event struct {
	Action       string              `json:"action"`
	Notification notify.Notification `json:"notification"`
	EmittedAt    time.Time           `json:"emitted_at"`
}

// NewEvent constructs an Event for the given action + notification.
func NewEvent(action string, n notify.Notification) Event {
	return Event{
		Action:       action,
		Notification: n,
		EmittedAt:    time.Now().UTC(),
	}
}

// attributes are the routing hints attached to queue/topic messages.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{
		"action":          e.Action,
		"notification_id": e.Notification.ID,
	}
	if e.Notification.Severity != "" {
		attrs["severity"] = string(e.Notification.Severity)
	}
	return attrs
}
