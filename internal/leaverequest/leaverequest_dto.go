package leaverequest

type CreateLeaveRequestRequest struct {
	Date    string `json:"date" binding:"required"`
	Message string `json:"message" binding:"max=500"`
}

type UpdateLeaveRequestRequest struct {
	Date    *string `json:"date"`
	Message *string `json:"message" binding:"omitempty,max=500"`
}

type ProcessLeaveRequestRequest struct {
	ResponseMessage string `json:"response_message" binding:"max=500"`
}

type FilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING APPROVED DENIED"`
}

type LeaveRequestResponse struct {
	ID              int64  `json:"id"`
	EmployeeID      string `json:"employee_id"`
	ProcessorID     string `json:"processor_id,omitempty"`
	Date            string `json:"date"`
	Status          string `json:"status"`
	Message         string `json:"message"`
	ResponseMessage string `json:"response_message"`
	CreatedAt       string `json:"created_at"`
}
