package format

import (
	"fmt"
	"strings"
	"time"
)

var monthsGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Date renders t in the long Russian style used across the academy UI,
// e.g. "2 января 2024 г., 15:04".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d г., %02d:%02d",
		t.Day(), monthsGenitive[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// DateString parses the timestamp formats the API emits and renders them with Date.
func DateString(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}
