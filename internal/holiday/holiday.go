package holiday

import "hris-core/internal/calendar"

// Holiday is a declared non-working date on the organization calendar.
type Holiday struct {
	Date   calendar.Date `json:"date"`
	Reason string        `json:"reason"`
}

// Set indexes holidays by date. Later entries for the same date win.
type Set map[calendar.Date]Holiday

func NewSet(holidays []Holiday) Set {
	s := make(Set, len(holidays))
	for _, h := range holidays {
		if h.Date.IsZero() {
			continue
		}
		s[h.Date] = h
	}
	return s
}

func (s Set) Contains(d calendar.Date) bool {
	_, ok := s[d]
	return ok
}

func (s Set) Reason(d calendar.Date) string {
	return s[d].Reason
}

func FromRecord(r HolidayRecord) Holiday {
	return Holiday{
		Date:   calendar.NewDate(r.HolidayDate.Year(), r.HolidayDate.Month(), r.HolidayDate.Day()),
		Reason: r.Reason,
	}
}
