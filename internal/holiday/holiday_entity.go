package holiday

import (
	"time"

	"github.com/google/uuid"
)

type HolidayRecord struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	HolidayDate time.Time `gorm:"column:holiday_date;type:date;not null;uniqueIndex"`
	Reason      string    `gorm:"column:reason;type:varchar(255);not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (HolidayRecord) TableName() string {
	return "holidays"
}
