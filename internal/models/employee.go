package models

// Employee represents one person tracked by the attendance system
type Employee struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	EmployeeNo string `json:"employee_no" db:"employee_no"`
	Department string `json:"department" db:"department"`
	Position   string `json:"position,omitempty" db:"position"`
}
