package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ppx007/smart-attendance/internal/models"
	"go.uber.org/zap"
)

// RecordRepository handles attendance record database operations
type RecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB, logger *zap.Logger) *RecordRepository {
	return &RecordRepository{db: db, logger: logger}
}

// Create inserts one record and sets its generated id
func (r *RecordRepository) Create(rec *models.AttendanceRecord) error {
	result, err := r.db.Exec(`
		INSERT INTO attendance_records
			(employee_id, date, check_in_time, check_out_time, work_hours, overtime_hours, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.EmployeeID,
		rec.Date.Format("2006-01-02"),
		rec.CheckInTime,
		rec.CheckOutTime,
		rec.WorkHours,
		rec.OvertimeHours,
		string(rec.Status),
		rec.Notes,
	)
	if err != nil {
		r.logger.Error("Failed to create record",
			zap.Int64("employee_id", rec.EmployeeID),
			zap.Error(err))
		return fmt.Errorf("failed to create record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// CreateBatch inserts records inside one transaction
func (r *RecordRepository) CreateBatch(tx *sql.Tx, records []models.AttendanceRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO attendance_records
			(employee_id, date, check_in_time, check_out_time, work_hours, overtime_hours, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.EmployeeID,
			rec.Date.Format("2006-01-02"),
			rec.CheckInTime,
			rec.CheckOutTime,
			rec.WorkHours,
			rec.OvertimeHours,
			string(rec.Status),
			rec.Notes,
		); err != nil {
			return fmt.Errorf("failed to insert record for employee %d: %w", rec.EmployeeID, err)
		}
	}
	return nil
}

// ListByRange returns records whose date falls inside the range,
// inclusive on both ends
func (r *RecordRepository) ListByRange(dateRange models.DateRange) ([]models.AttendanceRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, employee_id, date, check_in_time, check_out_time,
			work_hours, overtime_hours, status, notes
		FROM attendance_records
		WHERE date >= ? AND date <= ?
		ORDER BY date, employee_id
	`,
		dateRange.Start.Format("2006-01-02"),
		dateRange.End.Format("2006-01-02"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	var dateText string
	var status string

	if err := rows.Scan(
		&rec.ID, &rec.EmployeeID, &dateText, &rec.CheckInTime, &rec.CheckOutTime,
		&rec.WorkHours, &rec.OvertimeHours, &status, &rec.Notes,
	); err != nil {
		return rec, fmt.Errorf("failed to scan record: %w", err)
	}

	// Stored dates may carry a time suffix; only the date part matters
	if len(dateText) > 10 {
		dateText = dateText[:10]
	}
	date, err := time.ParseInLocation("2006-01-02", dateText, time.Local)
	if err != nil {
		return rec, fmt.Errorf("failed to parse stored date %q: %w", dateText, err)
	}
	rec.Date = date
	rec.Status = models.AttendanceStatus(status)
	return rec, nil
}
