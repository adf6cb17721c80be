package leave

import "hris-core/internal/calendar"

// Balance is the derived allocation account for one employee, leave type and
// calendar year. Available may be negative after historical corrections; it
// is reported, never clamped.
type Balance struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Year       int    `json:"year"`
	Total      int    `json:"total"`
	Used       int    `json:"used"`
	Pending    int    `json:"pending"`
	Available  int    `json:"available"`
	Negative   bool   `json:"negative"`
}

// ComputeBalance derives the balance of lt for employeeID in year from the
// employee's request history. A request counts with its stored TotalDays in
// every year its period touches. Allocation is flat per year regardless of
// joining date.
func ComputeBalance(lt LeaveType, employeeID string, year int, requests []Leave) Balance {
	b := Balance{
		EmployeeID: employeeID,
		LeaveType:  lt.ID,
		Year:       year,
		Total:      lt.MaxDaysPerYear,
	}

	yr := calendar.YearRange(year)
	for _, r := range requests {
		if r.EmployeeID.String() != employeeID || normalizeTypeID(r.LeaveType) != lt.ID {
			continue
		}
		if !r.Period().Intersects(yr) {
			continue
		}
		switch r.Status {
		case StatusApproved:
			b.Used += r.TotalDays
		case StatusPending:
			b.Pending += r.TotalDays
		}
	}

	b.Available = b.Total - b.Used - b.Pending
	b.Negative = b.Available < 0
	return b
}

// ComputeBalances returns one balance per catalog entry, in catalog order.
func ComputeBalances(catalog Catalog, employeeID string, year int, requests []Leave) []Balance {
	types := catalog.All()
	out := make([]Balance, len(types))
	for i, lt := range types {
		out[i] = ComputeBalance(lt, employeeID, year, requests)
	}
	return out
}

// CanSubmit reports whether requestedDays fit in the available balance. It is
// advisory: approval does not re-check it.
func CanSubmit(b Balance, requestedDays int) bool {
	return requestedDays <= b.Available
}

// yearsOf lists the calendar years a period touches.
func yearsOf(p calendar.Range) []int {
	var years []int
	for y := p.Start.Year(); y <= p.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}
