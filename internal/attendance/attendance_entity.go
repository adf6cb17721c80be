package attendance

import (
	"time"

	"hris-core/internal/calendar"

	"github.com/google/uuid"
)

const (
	SourceClock   = "CLOCK"
	SourceImport  = "IMPORT"
	SourceNightly = "NIGHTLY"
	SourceLeave   = "LEAVE"
)

// Record is a stored attendance fragment.
type Record struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID     uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;index"`
	CheckIn        *time.Time   `gorm:"column:check_in;type:timestamptz"`
	CheckOut       *time.Time   `gorm:"column:check_out;type:timestamptz"`
	Status         string       `gorm:"column:status;type:varchar(20);not null"`
	Source         string       `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	ExternalRef    *string      `gorm:"column:external_ref;type:varchar(100)"`
	Notes          *string      `gorm:"column:notes;type:text"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Record) TableName() string {
	return "attendance_fragments"
}

func (r Record) Date() calendar.Date {
	return calendar.NewDate(r.AttendanceDate.Year(), r.AttendanceDate.Month(), r.AttendanceDate.Day())
}

// Fragment exposes the stored row to the resolver.
func (r Record) Fragment() Fragment {
	f := Fragment{
		EmployeeID: r.EmployeeID.String(),
		Date:       r.Date(),
		Status:     r.Status,
		Source:     r.Source,
	}
	if r.CheckIn != nil {
		f.CheckIn = r.CheckIn.Format(time.RFC3339)
	}
	if r.CheckOut != nil {
		f.CheckOut = r.CheckOut.Format(time.RFC3339)
	}
	return f
}

func Fragments(rows []Record) []Fragment {
	out := make([]Fragment, len(rows))
	for i, r := range rows {
		out[i] = r.Fragment()
	}
	return out
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
