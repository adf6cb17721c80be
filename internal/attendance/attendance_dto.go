package attendance

import "hris-core/internal/calendar"

type ClockInRequest struct {
	Notes *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type ImportRecord struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Status      string  `json:"status"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Punches     []Punch `json:"punches"`
	ExternalRef *string `json:"external_ref" binding:"omitempty,max=100"`
	Notes       *string `json:"notes"`
}

type ImportRequest struct {
	Records []ImportRecord `json:"records" binding:"required,dive"`
}

type ImportRejection struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Received   int               `json:"received"`
	Inserted   int64             `json:"inserted"`
	Skipped    int64             `json:"skipped"`
	Downgraded int               `json:"downgraded"`
	Rejected   []ImportRejection `json:"rejected"`
}

type ListFilter struct {
	From       string
	To         string
	EmployeeID string
}

type AttendanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	AttendanceDate string  `json:"attendance_date"`
	CheckIn        *string `json:"check_in,omitempty"`
	CheckOut       *string `json:"check_out,omitempty"`
	Status         string  `json:"status"`
	Source         string  `json:"source"`
	ExternalRef    *string `json:"external_ref,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

type TimelineResponse struct {
	EmployeeID string            `json:"employee_id"`
	Range      calendar.Range    `json:"range"`
	Days       []DayResult       `json:"days"`
	Summary    map[DayStatus]int `json:"summary"`
}
