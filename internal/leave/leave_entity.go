package leave

import (
	"time"

	"hris-core/internal/calendar"

	"github.com/google/uuid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"column:total_days;type:int;not null"`
	Reason    string    `gorm:"column:reason;type:text"`

	Status          Status     `gorm:"column:status;type:varchar(20);not null;default:'pending';index:idx_leaves_status"`
	CreatedBy       uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

func (l Leave) Start() calendar.Date { return calendar.FromTime(l.StartDate, time.UTC) }
func (l Leave) End() calendar.Date { return calendar.FromTime(l.EndDate, time.UTC) }

func (l Leave) Period() calendar.Range {
	return calendar.Range{Start: l.Start(), End: l.End()}
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// CountDays is the inclusive number of calendar days in [start, end].
func CountDays(start, end calendar.Date) int {
	return calendar.DaysBetween(start, end) + 1
}
