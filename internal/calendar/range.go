package calendar

import "errors"

var ErrInvalidRange = errors.New("invalid date range: end before start")

// Range is an inclusive window of calendar dates [Start, End].
type Range struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func NewRange(start, end Date) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, ErrInvalidDate
	}
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange parses two YYYY-MM-DD strings into a range.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return Range{}, err
	}
	return NewRange(s, e)
}

// YearRange covers Jan 1 - Dec 31 of year.
func YearRange(year int) Range {
	return Range{Start: NewDate(year, 1, 1), End: NewDate(year, 12, 31)}
}

// LastNDays returns the n-day window ending on (and including) end.
func LastNDays(end Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: end.AddDays(-(n - 1)), End: end}
}

// LastNMonths returns the window from the first day of the month n-1 months
// before end's month through the last day of end's month.
func LastNMonths(end Date, n int) Range {
	if n < 1 {
		n = 1
	}
	first := end.FirstOfMonth()
	start := Date{t: first.t.AddDate(0, -(n - 1), 0)}
	return Range{Start: start, End: end.LastOfMonth()}
}

func (r Range) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

func (r Range) Intersects(other Range) bool {
	return !(r.End.Before(other.Start) || r.Start.After(other.End))
}

// Len returns the number of dates in the range.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

func (r Range) Days() []Date {
	days := make([]Date, 0, r.Len())
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Months splits the range into calendar months, clipping the first and last
// month to the range bounds.
func (r Range) Months() []Range {
	var months []Range
	for cur := r.Start; cur.BeforeOrEqual(r.End); {
		end := cur.LastOfMonth()
		if end.After(r.End) {
			end = r.End
		}
		months = append(months, Range{Start: cur, End: end})
		cur = end.AddDays(1)
	}
	return months
}

func (r Range) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
