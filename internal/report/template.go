// Package report turns resolved intents and attendance data into fully
// laid-out tabular renders: templates, the render engine, the sheet
// generator and chart descriptors.
package report

import (
	"fmt"
	"sync"

	"github.com/ppx007/smart-attendance/internal/models"
)

// CellStyle describes the visual style of a cell region
type CellStyle struct {
	FontSize  int    `json:"font_size,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	FontColor string `json:"font_color,omitempty"`
	FillColor string `json:"fill_color,omitempty"`
	Align     string `json:"align,omitempty"`
	Border    bool   `json:"border,omitempty"`
}

// HeaderDef defines one report column: its title, the field it renders
// and its layout
type HeaderDef struct {
	Title string `json:"title"`
	Field string `json:"field"`
	Width int    `json:"width,omitempty"`
	Align string `json:"align,omitempty"`
}

// TemplateStyles holds the optional per-region styles of a template
type TemplateStyles struct {
	Title  *CellStyle `json:"title,omitempty"`
	Header *CellStyle `json:"header,omitempty"`
	Body   *CellStyle `json:"body,omitempty"`
}

// AttendanceTemplate is a static report layout definition, independent
// of any specific data. Default templates are immutable singletons;
// custom templates are registered by id into a separate registry.
type AttendanceTemplate struct {
	ID      string              `json:"id"`
	Name    string              `json:"name"`
	Type    models.TemplateType `json:"type"`
	Headers []HeaderDef         `json:"headers"`
	Columns []models.ColumnType `json:"columns"`
	Styles  TemplateStyles      `json:"styles"`
}

var defaultHeaderStyle = CellStyle{FontSize: 11, Bold: true, FillColor: "#D9E1F2", Align: "center", Border: true}
var defaultBodyStyle = CellStyle{FontSize: 10, Align: "center", Border: true}
var defaultTitleStyle = CellStyle{FontSize: 16, Bold: true, Align: "center"}

// defaultTemplates is the fixed catalogue keyed by type. Treated as
// read-only after init; callers wanting to modify one must clone it.
var defaultTemplates = map[models.TemplateType]*AttendanceTemplate{
	models.TemplateDailySimple: {
		ID:   "daily-simple",
		Name: "每日考勤表",
		Type: models.TemplateDailySimple,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "签到时间", Field: "checkInTime", Width: 110, Align: "center"},
			{Title: "签退时间", Field: "checkOutTime", Width: 110, Align: "center"},
			{Title: "状态", Field: "status", Width: 80, Align: "center"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnName, models.ColumnCheckIn,
			models.ColumnCheckOut, models.ColumnStatus, models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
	models.TemplateDailyDetailed: {
		ID:   "daily-detailed",
		Name: "每日考勤明细表",
		Type: models.TemplateDailyDetailed,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "工号", Field: "employeeNo", Width: 90, Align: "center"},
			{Title: "部门", Field: "department", Width: 100, Align: "center"},
			{Title: "签到时间", Field: "checkInTime", Width: 110, Align: "center"},
			{Title: "签退时间", Field: "checkOutTime", Width: 110, Align: "center"},
			{Title: "工时", Field: "workHours", Width: 80, Align: "right"},
			{Title: "加班时长", Field: "overtimeHours", Width: 90, Align: "right"},
			{Title: "状态", Field: "status", Width: 80, Align: "center"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnName, models.ColumnEmployeeNo,
			models.ColumnDepartment, models.ColumnCheckIn, models.ColumnCheckOut,
			models.ColumnWorkHours, models.ColumnOvertime, models.ColumnStatus,
			models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
	models.TemplateWeekly: {
		ID:   "weekly",
		Name: "周考勤表",
		Type: models.TemplateWeekly,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "部门", Field: "department", Width: 100, Align: "center"},
			{Title: "工时", Field: "workHours", Width: 80, Align: "right"},
			{Title: "加班时长", Field: "overtimeHours", Width: 90, Align: "right"},
			{Title: "状态", Field: "status", Width: 80, Align: "center"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnName, models.ColumnDepartment,
			models.ColumnWorkHours, models.ColumnOvertime, models.ColumnStatus,
			models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
	models.TemplateMonthly: {
		ID:   "monthly",
		Name: "月度考勤表",
		Type: models.TemplateMonthly,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "工号", Field: "employeeNo", Width: 90, Align: "center"},
			{Title: "部门", Field: "department", Width: 100, Align: "center"},
			{Title: "工时", Field: "workHours", Width: 80, Align: "right"},
			{Title: "加班时长", Field: "overtimeHours", Width: 90, Align: "right"},
			{Title: "状态", Field: "status", Width: 80, Align: "center"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnName, models.ColumnEmployeeNo,
			models.ColumnDepartment, models.ColumnWorkHours, models.ColumnOvertime,
			models.ColumnStatus, models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
	models.TemplateSummary: {
		ID:   "summary",
		Name: "考勤汇总表",
		Type: models.TemplateSummary,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "部门", Field: "department", Width: 100, Align: "center"},
			{Title: "工时", Field: "workHours", Width: 80, Align: "right"},
			{Title: "加班时长", Field: "overtimeHours", Width: 90, Align: "right"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnName, models.ColumnDepartment,
			models.ColumnWorkHours, models.ColumnOvertime, models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
	models.TemplateDepartment: {
		ID:   "department",
		Name: "部门考勤表",
		Type: models.TemplateDepartment,
		Headers: []HeaderDef{
			{Title: "序号", Field: "index", Width: 60, Align: "center"},
			{Title: "部门", Field: "department", Width: 100, Align: "center"},
			{Title: "姓名", Field: "name", Width: 100, Align: "center"},
			{Title: "工时", Field: "workHours", Width: 80, Align: "right"},
			{Title: "状态", Field: "status", Width: 80, Align: "center"},
			{Title: "备注", Field: "notes", Width: 150, Align: "left"},
		},
		Columns: []models.ColumnType{
			models.ColumnIndex, models.ColumnDepartment, models.ColumnName,
			models.ColumnWorkHours, models.ColumnStatus, models.ColumnNotes,
		},
		Styles: TemplateStyles{Title: &defaultTitleStyle, Header: &defaultHeaderStyle, Body: &defaultBodyStyle},
	},
}

// Registry holds the custom-template map. Default templates live in the
// immutable catalogue; only RegisterTemplate mutates the registry.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]*AttendanceTemplate
}

// NewRegistry creates an empty custom-template registry
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]*AttendanceTemplate)}
}

// DefaultTemplate returns the built-in template for the type. A missing
// type is a configuration error, not bad user input.
func DefaultTemplate(t models.TemplateType) (*AttendanceTemplate, error) {
	tmpl, ok := defaultTemplates[t]
	if !ok {
		return nil, fmt.Errorf("no template registered for type %q", t)
	}
	return tmpl, nil
}

// RegisterTemplate registers a custom template by id, replacing any
// previous registration under the same id
func (r *Registry) RegisterTemplate(tmpl *AttendanceTemplate) error {
	if tmpl == nil || tmpl.ID == "" {
		return fmt.Errorf("template must have an id")
	}
	if len(tmpl.Headers) == 0 {
		return fmt.Errorf("template %q has no headers", tmpl.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[tmpl.ID] = tmpl
	return nil
}

// TemplateByID looks up a custom template
func (r *Registry) TemplateByID(id string) (*AttendanceTemplate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.custom[id]
	return tmpl, ok
}

// CloneTemplate returns a fully independent deep copy under a new id
// and name. Mutating the clone never affects the original.
func CloneTemplate(tmpl *AttendanceTemplate, newID, newName string) *AttendanceTemplate {
	clone := &AttendanceTemplate{
		ID:      newID,
		Name:    newName,
		Type:    tmpl.Type,
		Headers: append([]HeaderDef(nil), tmpl.Headers...),
		Columns: append([]models.ColumnType(nil), tmpl.Columns...),
	}
	if tmpl.Styles.Title != nil {
		s := *tmpl.Styles.Title
		clone.Styles.Title = &s
	}
	if tmpl.Styles.Header != nil {
		s := *tmpl.Styles.Header
		clone.Styles.Header = &s
	}
	if tmpl.Styles.Body != nil {
		s := *tmpl.Styles.Body
		clone.Styles.Body = &s
	}
	return clone
}
