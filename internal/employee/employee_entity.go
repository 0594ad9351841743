package employee

import (
	"time"

	"go-attendance/internal/domain"

	"github.com/google/uuid"
)

const DefaultPaidLeaves = 15

type Employee struct {
	ID                  uuid.UUID   `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID          string      `gorm:"column:employee_id;type:varchar(20);not null;uniqueIndex:uq_employees_employee_id"`
	FirstName           string      `gorm:"column:first_name;type:varchar(100);not null"`
	LastName            string      `gorm:"column:last_name;type:varchar(100);not null"`
	Email               string      `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Password            string      `gorm:"column:password;type:varchar(255);not null"`
	Role                domain.Role `gorm:"column:role;type:varchar(20);not null;default:'GENERAL'"`
	DateJoined          time.Time   `gorm:"column:date_joined;type:date;not null"`
	AvailablePaidLeaves int         `gorm:"column:available_paid_leaves;not null;default:15"`
	CreatedAt           time.Time   `gorm:"column:created_at"`
	UpdatedAt           time.Time   `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
