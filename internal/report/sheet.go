package report

import (
	"fmt"
	"math"
	"time"

	"github.com/ppx007/smart-attendance/internal/models"
	"go.uber.org/zap"
)

// GenerateOptions selects the template and filters for one sheet
type GenerateOptions struct {
	TemplateType      models.TemplateType `json:"template_type,omitempty"`
	CustomTemplateID  string              `json:"custom_template_id,omitempty"`
	Title             string              `json:"title,omitempty"`
	Department        string              `json:"department,omitempty"`
	EmployeeIDs       []int64             `json:"employee_ids,omitempty"`
	IncludeStatistics bool                `json:"include_statistics,omitempty"`
}

// GeneratedSheet bundles one generation's render with the template and
// statistics it was produced from
type GeneratedSheet struct {
	Render     *RenderResult                `json:"render"`
	Template   *AttendanceTemplate          `json:"template"`
	Statistics *models.AttendanceStatistics `json:"statistics,omitempty"`
	Title      string                       `json:"title"`
}

// Generator orchestrates date-range filtering, statistics aggregation
// and template rendering
type Generator struct {
	registry *Registry
	engine   *Engine
	logger   *zap.Logger
}

// NewGenerator creates a sheet generator
func NewGenerator(registry *Registry, engine *Engine, logger *zap.Logger) *Generator {
	return &Generator{registry: registry, engine: engine, logger: logger}
}

// Generate renders one attendance sheet. The template is resolved by
// custom id first, then by type; a missing default type is a hard
// configuration error.
func (g *Generator) Generate(dateRange models.DateRange, employees []models.Employee, records []models.AttendanceRecord, opts GenerateOptions) (*GeneratedSheet, error) {
	tmpl, err := g.resolveTemplate(opts)
	if err != nil {
		return nil, err
	}

	filteredEmployees := filterEmployees(employees, opts.Department, opts.EmployeeIDs)
	filteredRecords := filterRecords(records, filteredEmployees, dateRange)

	var stats *models.AttendanceStatistics
	if opts.IncludeStatistics {
		s := ComputeStatistics(dateRange, filteredRecords)
		stats = &s
	}

	title := opts.Title
	if title == "" {
		title = tmpl.Name
	}

	render := g.engine.Render(tmpl, TemplateContext{
		Title:      title,
		DateRange:  &dateRange,
		Department: opts.Department,
		Employees:  filteredEmployees,
		Records:    filteredRecords,
		Statistics: stats,
	})

	g.logger.Info("Sheet generated",
		zap.String("template", tmpl.ID),
		zap.Int("employees", len(filteredEmployees)),
		zap.Int("records", len(filteredRecords)))

	return &GeneratedSheet{Render: render, Template: tmpl, Statistics: stats, Title: title}, nil
}

// GenerateDaily renders a single-day sheet with the daily template
func (g *Generator) GenerateDaily(day time.Time, employees []models.Employee, records []models.AttendanceRecord, opts GenerateOptions) (*GeneratedSheet, error) {
	if opts.TemplateType == "" && opts.CustomTemplateID == "" {
		opts.TemplateType = models.TemplateDailySimple
	}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("%s 考勤表", day.Format("2006年01月02日"))
	}
	return g.Generate(singleDayRange(day), employees, records, opts)
}

// GenerateWeekly renders the Monday-to-Sunday week containing day
func (g *Generator) GenerateWeekly(day time.Time, employees []models.Employee, records []models.AttendanceRecord, opts GenerateOptions) (*GeneratedSheet, error) {
	if opts.TemplateType == "" && opts.CustomTemplateID == "" {
		opts.TemplateType = models.TemplateWeekly
	}
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, -(weekday - 1))
	r := models.DateRange{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("%s 周考勤表", monday.Format("2006年01月02日"))
	}
	return g.Generate(r, employees, records, opts)
}

// GenerateMonthly renders the calendar month containing day
func (g *Generator) GenerateMonthly(day time.Time, employees []models.Employee, records []models.AttendanceRecord, opts GenerateOptions) (*GeneratedSheet, error) {
	if opts.TemplateType == "" && opts.CustomTemplateID == "" {
		opts.TemplateType = models.TemplateMonthly
	}
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	r := models.DateRange{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("%s 考勤月报", day.Format("2006年01月"))
	}
	return g.Generate(r, employees, records, opts)
}

func (g *Generator) resolveTemplate(opts GenerateOptions) (*AttendanceTemplate, error) {
	if opts.CustomTemplateID != "" {
		if tmpl, ok := g.registry.TemplateByID(opts.CustomTemplateID); ok {
			return tmpl, nil
		}
		return nil, fmt.Errorf("custom template %q not registered", opts.CustomTemplateID)
	}
	t := opts.TemplateType
	if t == "" {
		t = models.TemplateDailySimple
	}
	return DefaultTemplate(t)
}

// filterEmployees keeps employees matching the department and/or the
// explicit id list; empty filters keep everyone
func filterEmployees(employees []models.Employee, department string, ids []int64) []models.Employee {
	idSet := map[int64]bool{}
	for _, id := range ids {
		idSet[id] = true
	}

	var out []models.Employee
	for _, emp := range employees {
		if department != "" && emp.Department != department {
			continue
		}
		if len(idSet) > 0 && !idSet[emp.ID] {
			continue
		}
		out = append(out, emp)
	}
	return out
}

// filterRecords keeps records whose employee survived filtering and
// whose date falls inside the range, inclusive
func filterRecords(records []models.AttendanceRecord, employees []models.Employee, dateRange models.DateRange) []models.AttendanceRecord {
	keep := make(map[int64]bool, len(employees))
	for _, emp := range employees {
		keep[emp.ID] = true
	}

	var out []models.AttendanceRecord
	for _, rec := range records {
		if keep[rec.EmployeeID] && dateRange.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// ComputeStatistics aggregates the filtered records over the range.
// Recomputing over the same inputs yields identical numbers.
func ComputeStatistics(dateRange models.DateRange, records []models.AttendanceRecord) models.AttendanceStatistics {
	stats := models.AttendanceStatistics{
		TotalWorkDays: countWeekdays(dateRange),
	}

	for _, rec := range records {
		if rec.Status.IsWorked() {
			stats.ActualWorkDays++
		}
		switch rec.Status {
		case models.StatusLate:
			stats.LateCount++
		case models.StatusEarlyLeave:
			stats.EarlyLeaveCount++
		case models.StatusAbsent:
			stats.AbsentCount++
		case models.StatusLeave:
			stats.LeaveCount++
		case models.StatusOvertime:
			stats.OvertimeCount++
		}
		stats.TotalWorkHours += rec.WorkHours
		stats.TotalOvertime += rec.OvertimeHours
	}

	if stats.TotalWorkDays > 0 {
		stats.AttendanceRate = round2(float64(stats.ActualWorkDays) / float64(stats.TotalWorkDays) * 100)
	}
	if stats.ActualWorkDays > 0 {
		stats.AverageDailyHours = round2(stats.TotalWorkHours / float64(stats.ActualWorkDays))
	}

	return stats
}

// countWeekdays counts Monday-Friday dates in the range, inclusive
func countWeekdays(r models.DateRange) int {
	count := 0
	day := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
	for !day.After(r.End) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func singleDayRange(day time.Time) models.DateRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return models.DateRange{Start: start, End: endOfDay(start)}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
