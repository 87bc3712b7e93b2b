// Package importer parses delimited or array input into typed
// attendance records, with column auto-detection and employee identity
// resolution.
package importer

import (
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppx007/smart-attendance/internal/models"
	"go.uber.org/zap"
)

// lunchDeductionThreshold is the raw-hours boundary above which one
// hour of lunch break is deducted
const lunchDeductionThreshold = 5.0

// RowError describes one failed row; other rows continue processing
type RowError struct {
	Row     int      `json:"row"`
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

// ImportStats summarizes one import job
type ImportStats struct {
	TotalRows    int `json:"total_rows"`
	Imported     int `json:"imported"`
	Failed       int `json:"failed"`
	NewEmployees int `json:"new_employees"`
}

// ImportResult is the outcome of one import job
type ImportResult struct {
	Records   []models.AttendanceRecord `json:"records"`
	Employees []models.Employee         `json:"employees"`
	Errors    []RowError                `json:"errors,omitempty"`
	Warnings  []string                  `json:"warnings,omitempty"`
	Stats     ImportStats               `json:"stats"`
}

// statusLabelTable maps explicit Chinese status text to statuses
var statusLabelTable = map[string]models.AttendanceStatus{
	"正常": models.StatusNormal,
	"出勤": models.StatusNormal,
	"迟到": models.StatusLate,
	"早退": models.StatusEarlyLeave,
	"缺勤": models.StatusAbsent,
	"旷工": models.StatusAbsent,
	"请假": models.StatusLeave,
	"加班": models.StatusOvertime,
	"出差": models.StatusBusinessTrip,
}

// Date layouts tried in order; the first successful parse wins
var (
	dashDatePattern  = regexp.MustCompile(`^(\d{1,4})-(\d{1,2})-(\d{1,4})$`)
	slashDatePattern = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	cnFullDate       = regexp.MustCompile(`^(\d{4})年(\d{1,2})月(\d{1,2})日?$`)
	cnShortDate      = regexp.MustCompile(`^(\d{1,2})月(\d{1,2})日?$`)
	timeOfDay        = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)
)

// Importer resolves employee identities across rows of one job. The
// per-instance employee map is meant to be cleared between independent
// jobs via ClearCache.
type Importer struct {
	byIdentity   map[string]*models.Employee
	employees    []*models.Employee
	nextID       int64
	nextRecordID int64
	now          func() time.Time
	logger       *zap.Logger
}

// NewImporter creates an importer with an empty identity cache
func NewImporter(logger *zap.Logger) *Importer {
	return &Importer{
		byIdentity: make(map[string]*models.Employee),
		nextID:     1,
		now:        time.Now,
		logger:     logger,
	}
}

// ClearCache resets employee identity state between independent jobs
func (im *Importer) ClearCache() {
	im.byIdentity = make(map[string]*models.Employee)
	im.employees = nil
	im.nextID = 1
	im.nextRecordID = 0
}

// ImportFromCSV parses delimited text. A nil mapping is auto-detected
// from the first row, which is then consumed as the header; with an
// explicit mapping, hasHeader controls whether the first row is data.
func (im *Importer) ImportFromCSV(data string, mapping *ColumnMapping, hasHeader bool) *ImportResult {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return &ImportResult{
			Errors: []RowError{{Row: 0, Message: fmt.Sprintf("failed to parse delimited input: %v", err)}},
			Stats:  ImportStats{Failed: 1},
		}
	}

	if mapping == nil {
		if len(rows) == 0 {
			return &ImportResult{}
		}
		detected := DetectColumnMapping(rows[0])
		return im.ImportFromArray(rows, detected, true)
	}
	return im.ImportFromArray(rows, *mapping, hasHeader)
}

// ImportFromArray processes rows independently: one row's failure never
// aborts the batch, it only adds a structured error.
func (im *Importer) ImportFromArray(rows [][]string, mapping ColumnMapping, hasHeader bool) *ImportResult {
	result := &ImportResult{}

	dataRows := rows
	rowOffset := 0
	if hasHeader && len(rows) > 0 {
		dataRows = rows[1:]
		rowOffset = 1
	}
	result.Stats.TotalRows = len(dataRows)

	newBefore := len(im.employees)

	for i, row := range dataRows {
		rowNum := i + rowOffset + 1
		record, warn, err := im.parseRow(row, mapping)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error(), Data: row})
			result.Stats.Failed++
			continue
		}
		if warn != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %s", rowNum, warn))
		}
		result.Records = append(result.Records, *record)
		result.Stats.Imported++
	}

	result.Employees = make([]models.Employee, len(im.employees))
	for i, emp := range im.employees {
		result.Employees[i] = *emp
	}
	result.Stats.NewEmployees = len(im.employees) - newBefore

	if im.logger != nil {
		im.logger.Info("Import finished",
			zap.Int("total", result.Stats.TotalRows),
			zap.Int("imported", result.Stats.Imported),
			zap.Int("failed", result.Stats.Failed),
			zap.Int("new_employees", result.Stats.NewEmployees))
	}

	return result
}

// parseRow turns one source row into a record, resolving the employee
func (im *Importer) parseRow(row []string, mapping ColumnMapping) (*models.AttendanceRecord, string, error) {
	name := cell(row, mapping.Name)
	employeeNo := cell(row, mapping.EmployeeNo)
	if name == "" && employeeNo == "" {
		return nil, "", fmt.Errorf("row has neither a name nor an employee number")
	}

	emp := im.resolveEmployee(name, employeeNo, cell(row, mapping.Department))

	dateText := cell(row, mapping.Date)
	date, err := ParseDate(dateText, im.now())
	if err != nil {
		return nil, "", fmt.Errorf("unparseable date %q: %w", dateText, err)
	}

	checkIn := cell(row, mapping.CheckInTime)
	checkOut := cell(row, mapping.CheckOutTime)

	var warn string
	workHours := 0.0
	if h := cell(row, mapping.WorkHours); h != "" {
		if parsed, err := strconv.ParseFloat(h, 64); err == nil {
			workHours = parsed
		} else {
			warn = fmt.Sprintf("ignoring unparseable work hours %q", h)
		}
	} else {
		workHours = ComputeWorkHours(checkIn, checkOut)
	}

	overtime := 0.0
	if o := cell(row, mapping.OvertimeHours); o != "" {
		if parsed, err := strconv.ParseFloat(o, 64); err == nil {
			overtime = parsed
		}
	}

	status := inferStatus(cell(row, mapping.Status), checkIn, checkOut)

	im.nextRecordID++
	return &models.AttendanceRecord{
		ID:            im.nextRecordID,
		EmployeeID:    emp.ID,
		Date:          date,
		CheckInTime:   checkIn,
		CheckOutTime:  checkOut,
		WorkHours:     workHours,
		OvertimeHours: overtime,
		Status:        status,
		Notes:         cell(row, mapping.Notes),
	}, warn, nil
}

// resolveEmployee is first-match-wins against the identity map keyed by
// name-or-number equality; unseen identifiers create a new employee
// with an auto-incremented id
func (im *Importer) resolveEmployee(name, employeeNo, department string) *models.Employee {
	if name != "" {
		if emp, ok := im.byIdentity[name]; ok {
			return emp
		}
	}
	if employeeNo != "" {
		if emp, ok := im.byIdentity[employeeNo]; ok {
			return emp
		}
	}

	emp := &models.Employee{
		ID:         im.nextID,
		Name:       name,
		EmployeeNo: employeeNo,
		Department: department,
	}
	im.employees = append(im.employees, emp)
	im.nextID++

	if name != "" {
		im.byIdentity[name] = emp
	}
	if employeeNo != "" {
		im.byIdentity[employeeNo] = emp
	}
	return emp
}

// ParseDate tries the supported date shapes in a fixed order: ISO dash,
// slash, MM-DD-YYYY (the 4-digit group disambiguates), Chinese full
// date, Chinese month-day (assumes the current year), then a generic
// parse.
func ParseDate(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if m := dashDatePattern.FindStringSubmatch(text); m != nil {
		a, b, c := atoi(m[1]), atoi(m[2]), atoi(m[3])
		if len(m[1]) == 4 {
			return makeDate(a, b, c)
		}
		if len(m[3]) == 4 {
			// MM-DD-YYYY
			return makeDate(c, a, b)
		}
		return time.Time{}, fmt.Errorf("ambiguous dashed date %q", text)
	}

	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := cnFullDate.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}

	if m := cnShortDate.FindStringSubmatch(text); m != nil {
		return makeDate(now.Year(), atoi(m[1]), atoi(m[2]))
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006.01.02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func makeDate(year, month, day int) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range: %04d-%02d-%02d", year, month, day)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// ComputeWorkHours derives hours from check-in/check-out times of day,
// deducting a one-hour lunch break when the raw span exceeds five
// hours. Unparseable or missing times yield zero.
func ComputeWorkHours(checkIn, checkOut string) float64 {
	in, okIn := parseTimeOfDay(checkIn)
	out, okOut := parseTimeOfDay(checkOut)
	if !okIn || !okOut || out <= in {
		return 0
	}

	hours := out - in
	if hours > lunchDeductionThreshold {
		hours -= 1
	}
	return math.Round(hours*100) / 100
}

func parseTimeOfDay(text string) (float64, bool) {
	m := timeOfDay.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	h, min := atoi(m[1]), atoi(m[2])
	if h > 23 || min > 59 {
		return 0, false
	}
	return float64(h) + float64(min)/60, true
}

// inferStatus maps explicit status text through the label table; absent
// text defaults to ABSENT when no times exist and NORMAL otherwise
func inferStatus(text, checkIn, checkOut string) models.AttendanceStatus {
	text = strings.TrimSpace(text)
	if text != "" {
		if status, ok := statusLabelTable[text]; ok {
			return status
		}
	}
	if checkIn == "" && checkOut == "" {
		return models.StatusAbsent
	}
	return models.StatusNormal
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
