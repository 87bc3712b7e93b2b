package models

// ChartType identifies a chart style requested by the user
type ChartType string

const (
	ChartPie  ChartType = "pie"
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// StatisticType identifies one aggregate the user asked for (出勤率, 加班时长...)
type StatisticType string

const (
	StatAttendanceRate StatisticType = "ATTENDANCE_RATE"
	StatLateCount      StatisticType = "LATE_COUNT"
	StatAbsentCount    StatisticType = "ABSENT_COUNT"
	StatOvertimeHours  StatisticType = "OVERTIME_HOURS"
	StatWorkHours      StatisticType = "WORK_HOURS"
	StatLeaveCount     StatisticType = "LEAVE_COUNT"
)

// ColumnType identifies a report column the user asked for by name
type ColumnType string

const (
	ColumnIndex      ColumnType = "index"
	ColumnName       ColumnType = "name"
	ColumnEmployeeNo ColumnType = "employeeNo"
	ColumnDepartment ColumnType = "department"
	ColumnCheckIn    ColumnType = "checkInTime"
	ColumnCheckOut   ColumnType = "checkOutTime"
	ColumnWorkHours  ColumnType = "workHours"
	ColumnOvertime   ColumnType = "overtimeHours"
	ColumnStatus     ColumnType = "status"
	ColumnNotes      ColumnType = "notes"
)

// TemplateType identifies one of the built-in report layouts
type TemplateType string

const (
	TemplateDailySimple   TemplateType = "DAILY_SIMPLE"
	TemplateDailyDetailed TemplateType = "DAILY_DETAILED"
	TemplateWeekly        TemplateType = "WEEKLY"
	TemplateMonthly       TemplateType = "MONTHLY"
	TemplateSummary       TemplateType = "SUMMARY"
	TemplateDepartment    TemplateType = "DEPARTMENT"
)

// GeneratedTable is the structured table envelope returned by the remote
// AI collaborator. The pipeline treats it as opaque display data.
type GeneratedTable struct {
	TableName string     `json:"table_name"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}
