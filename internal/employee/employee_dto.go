package employee

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role" binding:"required,oneof=GENERAL PRIVILEGED"`
	DateJoined string `json:"date_joined"`
}

type UpdateEmployeeRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=6"`
}

type FilterRequest struct {
	EmployeeID string `form:"employee_id"`
	Email      string `form:"email"`
	Role       string `form:"role"`
	Name       string `form:"name"`
}

type EmployeeResponse struct {
	EmployeeID          string `json:"employee_id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	FullName            string `json:"full_name"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	DateJoined          string `json:"date_joined"`
	AvailablePaidLeaves int    `json:"available_paid_leaves"`
}
