package events

import "time"

const AttendanceRecordedType = "attendance.recorded"

// AttendanceRecordedEvent is emitted when clock punches or an import change
// the fragments stored for [From, To]. EmployeeID is empty for imports that
// span several employees.
type AttendanceRecordedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Source     string    `json:"source"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
