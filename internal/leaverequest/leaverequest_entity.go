package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"
)

// LeaveRequest uses a random 10-digit numeric primary key so request IDs are
// not guessable or enumerable from the API.
type LeaveRequest struct {
	ID              int64      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"employee_id"`
	ProcessorID     *uuid.UUID `gorm:"type:uuid" json:"processor_id,omitempty"`
	Date            time.Time  `gorm:"type:date;not null" json:"date"`
	Status          Status     `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	Message         string     `gorm:"type:text" json:"message"`
	ResponseMessage string     `gorm:"type:text" json:"response_message"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
