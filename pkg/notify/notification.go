package notify

import (
	"strings"
	"time"
)

// Severity tags a notification for styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// DefaultTTL is how long a notification stays visible before it is removed.
const DefaultTTL = 5000 * time.Millisecond

// ParseSeverity normalizes a severity name; unknown or empty values fall back to info.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeveritySuccess, SeverityWarning, SeverityDanger:
		return sev
	default:
		return SeverityInfo
	}
}

// Notification is a transient user-facing message.
type Notification struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	TTL       time.Duration `json:"ttl"`
	CreatedAt time.Time     `json:"created_at"`
}

// ExpiresAt reports when the scheduled removal fires.
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.TTL)
}
