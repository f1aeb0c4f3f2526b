package employees

import "time"

type CreateEmployeeRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=150"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"max=100"`
	Salary     float64 `json:"salary" validate:"gte=0"`
}

type UpdateEmployeeRequest struct {
	Name       *string  `json:"name,omitempty" validate:"omitempty,min=2,max=150"`
	Department *string  `json:"department,omitempty" validate:"omitempty,max=100"`
	Salary     *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
}

type EmployeeResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
	}
}
