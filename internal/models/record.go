package models

import "time"

// AttendanceStatus classifies one person's one-day attendance
type AttendanceStatus string

const (
	StatusNormal       AttendanceStatus = "NORMAL"
	StatusLate         AttendanceStatus = "LATE"
	StatusEarlyLeave   AttendanceStatus = "EARLY_LEAVE"
	StatusAbsent       AttendanceStatus = "ABSENT"
	StatusLeave        AttendanceStatus = "LEAVE"
	StatusOvertime     AttendanceStatus = "OVERTIME"
	StatusBusinessTrip AttendanceStatus = "BUSINESS_TRIP"
)

// statusLabels maps status values to their Chinese display labels (考勤状态)
var statusLabels = map[AttendanceStatus]string{
	StatusNormal:       "正常",
	StatusLate:         "迟到",
	StatusEarlyLeave:   "早退",
	StatusAbsent:       "缺勤",
	StatusLeave:        "请假",
	StatusOvertime:     "加班",
	StatusBusinessTrip: "出差",
}

// Label returns the Chinese display label for the status
func (s AttendanceStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsWorked reports whether the status counts as an actual work day
func (s AttendanceStatus) IsWorked() bool {
	switch s {
	case StatusNormal, StatusLate, StatusEarlyLeave, StatusOvertime:
		return true
	}
	return false
}

// AttendanceRecord describes one employee's attendance for one day
type AttendanceRecord struct {
	ID            int64            `json:"id" db:"id"`
	EmployeeID    int64            `json:"employee_id" db:"employee_id"`
	Date          time.Time        `json:"date" db:"date"`
	CheckInTime   string           `json:"check_in_time,omitempty" db:"check_in_time"`
	CheckOutTime  string           `json:"check_out_time,omitempty" db:"check_out_time"`
	WorkHours     float64          `json:"work_hours" db:"work_hours"`
	OvertimeHours float64          `json:"overtime_hours" db:"overtime_hours"`
	Status        AttendanceStatus `json:"status" db:"status"`
	Notes         string           `json:"notes,omitempty" db:"notes"`
}

// AttendanceStatistics holds aggregate counts over a date range
type AttendanceStatistics struct {
	TotalWorkDays     int     `json:"total_work_days"`
	ActualWorkDays    int     `json:"actual_work_days"`
	LateCount         int     `json:"late_count"`
	EarlyLeaveCount   int     `json:"early_leave_count"`
	AbsentCount       int     `json:"absent_count"`
	LeaveCount        int     `json:"leave_count"`
	OvertimeCount     int     `json:"overtime_count"`
	TotalWorkHours    float64 `json:"total_work_hours"`
	TotalOvertime     float64 `json:"total_overtime_hours"`
	AttendanceRate    float64 `json:"attendance_rate"`
	AverageDailyHours float64 `json:"average_daily_hours"`
}

// DateRange is an inclusive date interval
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, inclusive on both ends
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}
