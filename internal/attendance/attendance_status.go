package attendance

import "strings"

// DayStatus is the canonical classification of one employee on one date.
// It is derived on demand and never stored.
type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayHalfDay DayStatus = "half-day"
	DayAbsent  DayStatus = "absent"
	DayWeekend DayStatus = "weekend"
	DayHoliday DayStatus = "holiday"
	DayLeave   DayStatus = "leave"
	DayFuture  DayStatus = "future"
)

// AllDayStatuses lists every DayStatus in precedence-independent order.
var AllDayStatuses = []DayStatus{
	DayPresent, DayHalfDay, DayAbsent, DayWeekend, DayHoliday, DayLeave, DayFuture,
}

func (s DayStatus) Valid() bool {
	switch s {
	case DayPresent, DayHalfDay, DayAbsent, DayWeekend, DayHoliday, DayLeave, DayFuture:
		return true
	}
	return false
}

// CountsAsWorkday reports whether a day with this status belongs in the
// attendance-rate denominator.
func (s DayStatus) CountsAsWorkday() bool {
	switch s {
	case DayWeekend, DayHoliday, DayFuture:
		return false
	}
	return true
}

// RawStatus is the status carried by a stored attendance fragment.
type RawStatus string

const (
	RawPresent RawStatus = "present"
	RawAbsent  RawStatus = "absent"
	RawHalfDay RawStatus = "half-day"
	RawWeekend RawStatus = "weekend"
	RawHoliday RawStatus = "holiday"
	RawLeave   RawStatus = "leave"
)

// ParseRawStatus normalizes a stored status string. Legacy clock rows were
// written as "LATE"; those still count as attendance.
func ParseRawStatus(v string) (RawStatus, bool) {
	n := strings.ToLower(strings.TrimSpace(v))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "present", "late":
		return RawPresent, true
	case "absent":
		return RawAbsent, true
	case "half-day", "halfday":
		return RawHalfDay, true
	case "weekend":
		return RawWeekend, true
	case "holiday":
		return RawHoliday, true
	case "leave", "on-leave":
		return RawLeave, true
	}
	return "", false
}
