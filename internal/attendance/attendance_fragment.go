package attendance

import (
	"fmt"
	"strings"
	"time"

	"hris-core/internal/calendar"
)

type PunchKind string

const (
	PunchIn  PunchKind = "in"
	PunchOut PunchKind = "out"
)

// Punch is a single check-in or check-out event embedded in an aggregate
// fragment.
type Punch struct {
	Kind PunchKind `json:"kind"`
	At   string    `json:"at"`
}

// Fragment is one raw attendance observation for an employee on a date.
// Several fragments may exist for the same key. A zero Date means the
// fragment belongs to whatever day it is resolved against.
type Fragment struct {
	EmployeeID string        `json:"employee_id"`
	Date       calendar.Date `json:"date"`
	Status     string        `json:"status"`
	CheckIn    string        `json:"check_in,omitempty"`
	CheckOut   string        `json:"check_out,omitempty"`
	Punches    []Punch       `json:"punches,omitempty"`
	Source     string        `json:"source,omitempty"`
}

var clockLayouts = []string{"15:04:05", "15:04"}

// parseTimestamp accepts RFC3339 instants, or a local wall clock that is
// anchored on day in loc. Empty input is not an error.
func parseTimestamp(v string, day calendar.Date, loc *time.Location) (time.Time, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", v, loc); err == nil {
		return t, true, nil
	}
	if !day.IsZero() {
		for _, layout := range clockLayouts {
			c, err := time.Parse(layout, v)
			if err != nil {
				continue
			}
			base := day.In(loc)
			return base.Add(time.Duration(c.Hour())*time.Hour +
				time.Duration(c.Minute())*time.Minute +
				time.Duration(c.Second())*time.Second), true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("malformed timestamp %q", v)
}

// isWallClock reports whether v is a bare HH:MM[:SS] clock with no date.
func isWallClock(v string) bool {
	v = strings.TrimSpace(v)
	for _, layout := range clockLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
