package attendance

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=PRESENT LATE ABSENT ON_LEAVE"`
}

type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=PRESENT LATE ABSENT ON_LEAVE"`
}

type FilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Date       string `form:"date"`
	Status     string `form:"status"`
}

type AttendanceResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

// DailyLog is one entry in the monthly report timeline.
type DailyLog struct {
	Date   string `json:"date"`
	Day    string `json:"day"`
	Status string `json:"status"`
}

type MonthlyReportResponse struct {
	EmployeeID          string     `json:"employee_id"`
	AbsentThisMonth     int        `json:"absent_this_month"`
	AbsentLastMonth     int        `json:"absent_last_month"`
	AvailablePaidLeaves int        `json:"available_paid_leaves"`
	Logs                []DailyLog `json:"logs"`
}
