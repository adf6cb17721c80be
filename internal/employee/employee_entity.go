package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmploymentStatus is the lifecycle state kept by the HR store.
type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusOnLeave  EmploymentStatus = "on-leave"
	StatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	DepartmentID *uuid.UUID       `gorm:"column:department_id;type:uuid"`
	FullName     string           `gorm:"column:full_name"`
	Email        string           `gorm:"column:email"`
	JoiningDate  time.Time        `gorm:"column:joining_date;type:date"`
	Status       EmploymentStatus `gorm:"column:status"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"column:deleted_at;index"`

	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

// DepartmentName returns the department the employee belongs to, or ""
// when the employee is not assigned to one.
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}
