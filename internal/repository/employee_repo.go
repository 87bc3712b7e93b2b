// Package repository implements the sqlite-backed stores that own
// employee and attendance data. The interpretation pipeline never
// touches these directly; they supply data to the sheet generator.
package repository

import (
	"database/sql"
	"fmt"

	"github.com/ppx007/smart-attendance/internal/models"
	"go.uber.org/zap"
)

// EmployeeRepository handles employee database operations
type EmployeeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sql.DB, logger *zap.Logger) *EmployeeRepository {
	return &EmployeeRepository{db: db, logger: logger}
}

// Create inserts one employee and sets its generated id
func (r *EmployeeRepository) Create(emp *models.Employee) error {
	result, err := r.db.Exec(`
		INSERT INTO employees (name, employee_no, department, position)
		VALUES (?, ?, ?, ?)
	`, emp.Name, emp.EmployeeNo, emp.Department, emp.Position)
	if err != nil {
		r.logger.Error("Failed to create employee", zap.String("name", emp.Name), zap.Error(err))
		return fmt.Errorf("failed to create employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	emp.ID = id
	return nil
}

// Upsert finds an employee by name or employee number and creates it
// when absent, mirroring the importer's first-match-wins identity rule
func (r *EmployeeRepository) Upsert(emp *models.Employee) error {
	existing, err := r.FindByIdentity(emp.Name, emp.EmployeeNo)
	if err != nil {
		return err
	}
	if existing != nil {
		emp.ID = existing.ID
		return nil
	}
	return r.Create(emp)
}

// FindByIdentity looks an employee up by name first, then by number.
// Returns nil without error when no match exists.
func (r *EmployeeRepository) FindByIdentity(name, employeeNo string) (*models.Employee, error) {
	query := `
		SELECT id, name, employee_no, department, position
		FROM employees
		WHERE (? != '' AND name = ?) OR (? != '' AND employee_no = ?)
		ORDER BY id LIMIT 1
	`
	row := r.db.QueryRow(query, name, name, employeeNo, employeeNo)

	var emp models.Employee
	if err := row.Scan(&emp.ID, &emp.Name, &emp.EmployeeNo, &emp.Department, &emp.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return &emp, nil
}

// List returns all employees, optionally filtered by department
func (r *EmployeeRepository) List(department string) ([]models.Employee, error) {
	query := "SELECT id, name, employee_no, department, position FROM employees"
	args := []any{}
	if department != "" {
		query += " WHERE department = ?"
		args = append(args, department)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var emp models.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.EmployeeNo, &emp.Department, &emp.Position); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
