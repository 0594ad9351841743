package attendance

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of daily attendance states. A missing row for a
// date is not the same as an explicit ABSENT row; the monthly report
// synthesizes absence for gaps without persisting it.
type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
)

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPresent:
		return StatusPresent, nil
	case StatusLate:
		return StatusLate, nil
	case StatusAbsent:
		return StatusAbsent, nil
	case StatusOnLeave:
		return StatusOnLeave, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", s)
	}
}

type Attendance struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendances_employee_date"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendances_employee_date"`
	Status     Status    `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
