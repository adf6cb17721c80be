package events

import "time"

const (
	AbsenteesMarkedType     = "attendance.absentees_marked"
	AttendanceAggregateType = "attendance"
)

type AbsenteesMarkedEvent struct {
	EventType  string    `json:"event_type"`
	Date       string    `json:"date"`
	Count      int64     `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope decodes just enough of any event to route it.
type Envelope struct {
	EventType string `json:"event_type"`
}
