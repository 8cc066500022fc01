package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// Parse accepts a calendar date (2006-01-02) or RFC 3339. Empty input yields nil.
func Parse(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", raw)
}

// Format renders a nullable date as 2006-01-02.
func Format(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}
