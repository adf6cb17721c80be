package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Calendar holds the organization's working-week rules and the clock used to
// decide which dates are still in the future.
type Calendar struct {
	Location *time.Location
	Weekend  map[time.Weekday]bool
	Now      func() time.Time
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// New builds a calendar for the IANA zone tz. weekend lists day names
// ("saturday", "Sun", ...); an empty list means Saturday and Sunday.
func New(tz string, weekend []string) (Calendar, error) {
	loc := time.UTC
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return Calendar{}, fmt.Errorf("load time zone %q: %w", tz, err)
		}
		loc = l
	}

	days := map[time.Weekday]bool{}
	if len(weekend) == 0 {
		days[time.Saturday] = true
		days[time.Sunday] = true
	}
	for _, name := range weekend {
		wd, ok := parseWeekday(name)
		if !ok {
			return Calendar{}, fmt.Errorf("unknown weekday %q", name)
		}
		days[wd] = true
	}

	return Calendar{Location: loc, Weekend: days, Now: time.Now}, nil
}

// Default is a UTC calendar with a Saturday/Sunday weekend.
func Default() Calendar {
	c, _ := New("", nil)
	return c
}

func parseWeekday(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if wd, ok := weekdayNames[n]; ok {
		return wd, true
	}
	for full, wd := range weekdayNames {
		if len(n) >= 3 && strings.HasPrefix(full, n) {
			return wd, true
		}
	}
	return 0, false
}

func (c Calendar) IsWeekend(d Date) bool {
	return c.Weekend[d.Weekday()]
}

// CurrentTime reads the calendar clock.
func (c Calendar) CurrentTime() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today is the current date in the organization's time zone.
func (c Calendar) Today() Date {
	return FromTime(c.CurrentTime(), c.Location)
}

// IsFuture reports whether d is strictly after today.
func (c Calendar) IsFuture(d Date) bool {
	return d.After(c.Today())
}
