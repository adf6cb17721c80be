package attendance

import (
	"time"

	"hris-core/internal/calendar"
	"hris-core/internal/holiday"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	minutesPerTenth = decimal.NewFromInt(6)
	ten             = decimal.NewFromInt(10)
)

// DayResult is the resolved view of one employee-day.
type DayResult struct {
	Date          calendar.Date       `json:"date"`
	Status        DayStatus           `json:"status"`
	WorkHours     decimal.NullDecimal `json:"work_hours"`
	CheckIn       *time.Time          `json:"check_in,omitempty"`
	CheckOut      *time.Time          `json:"check_out,omitempty"`
	HolidayReason string              `json:"holiday_reason,omitempty"`
}

// Resolver turns raw fragments into one DayStatus per date. It holds only
// configuration, so one instance may be shared by concurrent callers.
type Resolver struct {
	cal          calendar.Calendar
	fullDayHours decimal.Decimal
	logger       *zap.Logger
}

// NewResolver builds a resolver. A zero fullDayHours disables half-day
// inference from worked hours.
func NewResolver(cal calendar.Calendar, fullDayHours decimal.Decimal, logger ...*zap.Logger) *Resolver {
	l := zap.L().Named("attendance.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.resolver")
	}
	return &Resolver{cal: cal, fullDayHours: fullDayHours, logger: l}
}

func (r *Resolver) Calendar() calendar.Calendar {
	return r.cal
}

// ResolveDay returns the canonical status for date given every fragment and
// holiday known for it.
func (r *Resolver) ResolveDay(date calendar.Date, fragments []Fragment, holidays []holiday.Holiday) DayStatus {
	return r.Resolve(date, fragments, holiday.NewSet(holidays)).Status
}

type evidence struct {
	present, halfDay, leave, absent bool
	weekendMarker, holidayMarker    bool
	clock                           clockSpan
}

func (r *Resolver) Resolve(date calendar.Date, fragments []Fragment, holidays holiday.Set) DayResult {
	ev := r.collect(date, fragments)
	res := DayResult{Date: date}

	if !ev.clock.in.IsZero() {
		in := ev.clock.in
		res.CheckIn = &in
	}
	if out := ev.clock.checkOut(); !out.IsZero() {
		res.CheckOut = &out
	}
	if res.CheckIn != nil && res.CheckOut != nil && res.CheckOut.After(*res.CheckIn) {
		res.WorkHours = decimal.NewNullDecimal(workHours(res.CheckOut.Sub(*res.CheckIn)))
	}

	worked := ev.present || ev.halfDay
	switch {
	case (holidays.Contains(date) || ev.holidayMarker) && !worked:
		res.Status = DayHoliday
		res.HolidayReason = holidays.Reason(date)
	case ev.present:
		res.Status = DayPresent
		if r.shortDay(res.WorkHours) {
			res.Status = DayHalfDay
		}
	case ev.halfDay:
		res.Status = DayHalfDay
	case ev.leave:
		res.Status = DayLeave
	case ev.absent:
		res.Status = DayAbsent
	case r.cal.IsWeekend(date) || ev.weekendMarker:
		res.Status = DayWeekend
	case r.cal.IsFuture(date):
		res.Status = DayFuture
	default:
		res.Status = DayAbsent
	}
	return res
}

// ResolveRange resolves every date of rng for one employee. Fragments for
// other employees, or without a date, are skipped.
func (r *Resolver) ResolveRange(employeeID string, rng calendar.Range, fragments []Fragment, holidays holiday.Set) []DayResult {
	byDate := make(map[calendar.Date][]Fragment)
	for _, f := range fragments {
		if f.EmployeeID != employeeID || f.Date.IsZero() || !rng.Contains(f.Date) {
			continue
		}
		byDate[f.Date] = append(byDate[f.Date], f)
	}

	out := make([]DayResult, 0, rng.Len())
	for _, d := range rng.Days() {
		out = append(out, r.Resolve(d, byDate[d], holidays))
	}
	return out
}

func (r *Resolver) collect(date calendar.Date, fragments []Fragment) evidence {
	var ev evidence
	for _, f := range fragments {
		if !f.Date.IsZero() && !f.Date.Equal(date) {
			continue
		}

		span, err := fragmentClock(f, date, r.cal.Location)
		if err != nil {
			r.logger.Warn("malformed attendance timestamp, fragment counted as absent",
				zap.String("employee_id", f.EmployeeID),
				zap.String("date", date.String()),
				zap.String("source", f.Source),
				zap.Error(err),
			)
			ev.absent = true
			continue
		}

		status, ok := ParseRawStatus(f.Status)
		if !ok {
			if f.Status != "" {
				r.logger.Warn("unknown attendance status ignored",
					zap.String("employee_id", f.EmployeeID),
					zap.String("date", date.String()),
					zap.String("status", f.Status),
				)
				continue
			}
			if span.in.IsZero() && span.out.IsZero() {
				continue
			}
			status = RawPresent
		}

		switch status {
		case RawPresent:
			ev.present = true
		case RawHalfDay:
			ev.halfDay = true
		case RawLeave:
			ev.leave = true
		case RawAbsent:
			ev.absent = true
		case RawWeekend:
			ev.weekendMarker = true
		case RawHoliday:
			ev.holidayMarker = true
		}

		if status == RawPresent || status == RawHalfDay {
			ev.clock.merge(span)
		}
	}
	return ev
}

// clockSpan is the earliest check-in and latest check-out seen for a day.
// outWall records that the check-out was a bare wall clock anchored on the
// fragment date.
type clockSpan struct {
	in, out time.Time
	outWall bool
}

func (c *clockSpan) merge(other clockSpan) {
	if !other.in.IsZero() && (c.in.IsZero() || other.in.Before(c.in)) {
		c.in = other.in
	}
	if !other.out.IsZero() && other.out.After(c.out) {
		c.out = other.out
		c.outWall = other.outWall
	}
}

// checkOut returns the check-out, moved to the next day when a wall-clock
// check-out is not after the check-in (an overnight shift).
func (c clockSpan) checkOut() time.Time {
	if c.outWall && !c.in.IsZero() && !c.out.IsZero() && !c.out.After(c.in) {
		return c.out.AddDate(0, 0, 1)
	}
	return c.out
}

// fragmentClock returns the earliest check-in and latest check-out carried by
// a fragment, including its embedded punches.
func fragmentClock(f Fragment, date calendar.Date, loc *time.Location) (clockSpan, error) {
	var span clockSpan

	keep := func(raw string, isIn bool) error {
		t, ok, err := parseTimestamp(raw, date, loc)
		if err != nil || !ok {
			return err
		}
		if isIn {
			span.merge(clockSpan{in: t})
		} else {
			span.merge(clockSpan{out: t, outWall: isWallClock(raw)})
		}
		return nil
	}

	if err := keep(f.CheckIn, true); err != nil {
		return clockSpan{}, err
	}
	if err := keep(f.CheckOut, false); err != nil {
		return clockSpan{}, err
	}
	for _, p := range f.Punches {
		if err := keep(p.At, p.Kind != PunchOut); err != nil {
			return clockSpan{}, err
		}
	}
	return span, nil
}

func (r *Resolver) shortDay(hours decimal.NullDecimal) bool {
	if !hours.Valid || !r.fullDayHours.IsPositive() {
		return false
	}
	return hours.Decimal.LessThan(r.fullDayHours)
}

// workHours converts a duration to hours with one decimal place, rounding on
// whole six-minute steps.
func workHours(d time.Duration) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(d / time.Second)).Div(decimal.NewFromInt(60))
	return minutes.Div(minutesPerTenth).Round(0).Div(ten)
}
