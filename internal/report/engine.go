package report

import (
	"fmt"

	"github.com/ppx007/smart-attendance/internal/models"
)

// Fixed row heights, in points
const (
	titleRowHeight    = 30
	subtitleRowHeight = 25
	headerRowHeight   = 25
	dataRowHeight     = 22
)

const defaultColumnWidth = 100

// TemplateContext carries the data one render call works from. It is
// read-only to the engine.
type TemplateContext struct {
	Title      string                       `json:"title,omitempty"`
	DateRange  *models.DateRange            `json:"date_range,omitempty"`
	Department string                       `json:"department,omitempty"`
	Employees  []models.Employee            `json:"employees"`
	Records    []models.AttendanceRecord    `json:"records"`
	Statistics *models.AttendanceStatistics `json:"statistics,omitempty"`
}

// MergeRegion is one merged cell block, zero-based inclusive
type MergeRegion struct {
	StartRow int `json:"start_row"`
	StartCol int `json:"start_col"`
	EndRow   int `json:"end_row"`
	EndCol   int `json:"end_col"`
}

// RenderResult is the fully resolved tabular layout, ready for a
// document writer. It is derived state, disposable after writing.
type RenderResult struct {
	Headers      [][]string           `json:"headers"`
	Rows         [][]any              `json:"rows"`
	Styles       map[string]CellStyle `json:"styles"`
	Merges       []MergeRegion        `json:"merges"`
	ColumnWidths []int                `json:"column_widths"`
	RowHeights   []int                `json:"row_heights"`
}

// FieldResolver produces one cell value for an employee row. rec is the
// employee's first matching record, or nil when none exists.
type FieldResolver func(index int, emp models.Employee, rec *models.AttendanceRecord) any

// defaultResolvers maps known field names to their resolvers. Unknown
// fields fall back to reading employee attributes by name, preserving
// the blank-value semantics for anything unresolvable.
var defaultResolvers = map[string]FieldResolver{
	"index":      func(i int, _ models.Employee, _ *models.AttendanceRecord) any { return i + 1 },
	"name":       func(_ int, emp models.Employee, _ *models.AttendanceRecord) any { return emp.Name },
	"employeeNo": func(_ int, emp models.Employee, _ *models.AttendanceRecord) any { return emp.EmployeeNo },
	"department": func(_ int, emp models.Employee, _ *models.AttendanceRecord) any { return emp.Department },
	"checkInTime": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return ""
		}
		return rec.CheckInTime
	},
	"checkOutTime": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return ""
		}
		return rec.CheckOutTime
	},
	"workHours": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return 0.0
		}
		return rec.WorkHours
	},
	"overtimeHours": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return 0.0
		}
		return rec.OvertimeHours
	},
	"status": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return ""
		}
		return rec.Status.Label()
	},
	"notes": func(_ int, _ models.Employee, rec *models.AttendanceRecord) any {
		if rec == nil {
			return ""
		}
		return rec.Notes
	},
}

// fallbackResolver reads employee attributes for fields with no
// registered resolver; anything else renders blank
func fallbackResolver(field string) FieldResolver {
	return func(_ int, emp models.Employee, _ *models.AttendanceRecord) any {
		switch field {
		case "position":
			return emp.Position
		case "id":
			return emp.ID
		default:
			return ""
		}
	}
}

// Engine renders templates against contexts. Stateless and reentrant;
// per-template resolvers can be registered on top of the defaults.
type Engine struct {
	resolvers map[string]FieldResolver
}

// NewEngine creates an engine with the default field resolvers
func NewEngine() *Engine {
	return &Engine{resolvers: defaultResolvers}
}

// RegisterResolver adds or replaces the resolver for a field name.
// Intended for custom templates whose columns fall outside the standard
// attendance fields.
func (e *Engine) RegisterResolver(field string, resolver FieldResolver) {
	if e.resolvers == nil {
		e.resolvers = map[string]FieldResolver{}
	}
	// Copy-on-write so the shared default map stays untouched
	copied := make(map[string]FieldResolver, len(e.resolvers)+1)
	for k, v := range e.resolvers {
		copied[k] = v
	}
	copied[field] = resolver
	e.resolvers = copied
}

// Render lays out the template against the context: optional title
// merge row, optional date-range merge row, one column-title row, then
// one data row per employee in order. Row count always equals the
// employee count.
func (e *Engine) Render(tmpl *AttendanceTemplate, ctx TemplateContext) *RenderResult {
	colCount := len(tmpl.Headers)

	result := &RenderResult{
		Styles:       map[string]CellStyle{},
		ColumnWidths: make([]int, colCount),
		Headers:      [][]string{},
	}

	for i, h := range tmpl.Headers {
		if h.Width > 0 {
			result.ColumnWidths[i] = h.Width
		} else {
			result.ColumnWidths[i] = defaultColumnWidth
		}
	}

	// Optional merge rows before the column-title row
	mergeRow := 0
	if ctx.Title != "" {
		row := make([]string, colCount)
		row[0] = ctx.Title
		result.Headers = append(result.Headers, row)
		result.Merges = append(result.Merges, MergeRegion{StartRow: mergeRow, StartCol: 0, EndRow: mergeRow, EndCol: colCount - 1})
		result.RowHeights = append(result.RowHeights, titleRowHeight)
		mergeRow++
	}
	if ctx.DateRange != nil {
		row := make([]string, colCount)
		row[0] = formatDateRange(*ctx.DateRange)
		result.Headers = append(result.Headers, row)
		result.Merges = append(result.Merges, MergeRegion{StartRow: mergeRow, StartCol: 0, EndRow: mergeRow, EndCol: colCount - 1})
		result.RowHeights = append(result.RowHeights, subtitleRowHeight)
		mergeRow++
	}

	titles := make([]string, colCount)
	for i, h := range tmpl.Headers {
		titles[i] = h.Title
	}
	result.Headers = append(result.Headers, titles)
	result.RowHeights = append(result.RowHeights, headerRowHeight)

	// One row per employee, order preserved
	recordsByEmployee := indexRecords(ctx.Records)
	result.Rows = make([][]any, 0, len(ctx.Employees))
	for i, emp := range ctx.Employees {
		rec := recordsByEmployee[emp.ID]
		row := make([]any, colCount)
		for c, h := range tmpl.Headers {
			resolver, ok := e.resolvers[h.Field]
			if !ok {
				resolver = fallbackResolver(h.Field)
			}
			row[c] = resolver(i, emp, rec)
		}
		result.Rows = append(result.Rows, row)
		result.RowHeights = append(result.RowHeights, dataRowHeight)
	}

	// Styles are copied verbatim by region; the engine derives none
	if tmpl.Styles.Title != nil {
		result.Styles["title"] = *tmpl.Styles.Title
	}
	if tmpl.Styles.Header != nil {
		result.Styles["header"] = *tmpl.Styles.Header
	}
	if tmpl.Styles.Body != nil {
		result.Styles["body"] = *tmpl.Styles.Body
	}

	return result
}

// indexRecords keeps each employee's first record, matching the
// first-record convention for daily fields
func indexRecords(records []models.AttendanceRecord) map[int64]*models.AttendanceRecord {
	byEmployee := make(map[int64]*models.AttendanceRecord, len(records))
	for i := range records {
		rec := &records[i]
		if _, ok := byEmployee[rec.EmployeeID]; !ok {
			byEmployee[rec.EmployeeID] = rec
		}
	}
	return byEmployee
}

func formatDateRange(r models.DateRange) string {
	return fmt.Sprintf("%s 至 %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
