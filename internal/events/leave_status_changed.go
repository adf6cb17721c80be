package events

import "time"

const (
	LeaveStatusChangedType = "leave.status_changed"
	LeaveAggregateType     = "leave"
)

// LeaveStatusChangedEvent is emitted once per effective lifecycle transition.
// No-op transitions produce no event.
type LeaveStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	LeaveType  string    `json:"leave_type"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
