package importer

import "regexp"

// ColumnMapping assigns source column indices to semantic fields. A
// value of -1 means the field is absent from the input.
type ColumnMapping struct {
	Name          int `json:"name"`
	EmployeeNo    int `json:"employee_no"`
	Department    int `json:"department"`
	Date          int `json:"date"`
	CheckInTime   int `json:"check_in_time"`
	CheckOutTime  int `json:"check_out_time"`
	WorkHours     int `json:"work_hours"`
	OvertimeHours int `json:"overtime_hours"`
	Status        int `json:"status"`
	Notes         int `json:"notes"`
}

// EmptyMapping returns a mapping with every field unassigned
func EmptyMapping() ColumnMapping {
	return ColumnMapping{
		Name: -1, EmployeeNo: -1, Department: -1, Date: -1,
		CheckInTime: -1, CheckOutTime: -1, WorkHours: -1,
		OvertimeHours: -1, Status: -1, Notes: -1,
	}
}

// DefaultMapping returns the positional layout used by headerless
// exports: name, date, check-in, check-out, status
func DefaultMapping() ColumnMapping {
	m := EmptyMapping()
	m.Name = 0
	m.Date = 1
	m.CheckInTime = 2
	m.CheckOutTime = 3
	m.Status = 4
	return m
}

// headerMatchers lists, per field, the header patterns tried in order.
// The first header matching a field's pattern wins for that field.
var headerMatchers = []struct {
	field    func(*ColumnMapping) *int
	patterns []*regexp.Regexp
}{
	{
		field: func(m *ColumnMapping) *int { return &m.Name },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`姓名|名字|员工姓名`),
			regexp.MustCompile(`(?i)^name$`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.EmployeeNo },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`工号|员工编号|编号`),
			regexp.MustCompile(`(?i)employee.?(no|id)`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.Department },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`部门`),
			regexp.MustCompile(`(?i)^dept|department`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.Date },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`日期|考勤日期`),
			regexp.MustCompile(`(?i)^date$`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.CheckInTime },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`签到|上班时间|打卡时间|签到时间`),
			regexp.MustCompile(`(?i)check.?in`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.CheckOutTime },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`签退|下班时间|签退时间`),
			regexp.MustCompile(`(?i)check.?out`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.WorkHours },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^工时$|工作时长`),
			regexp.MustCompile(`(?i)work.?hours`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.OvertimeHours },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`加班|加班时长`),
			regexp.MustCompile(`(?i)overtime`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.Status },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`状态|考勤状态|出勤状态`),
			regexp.MustCompile(`(?i)^status$`),
		},
	},
	{
		field: func(m *ColumnMapping) *int { return &m.Notes },
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`备注|说明`),
			regexp.MustCompile(`(?i)notes?|remark`),
		},
	},
}

// DetectColumnMapping assigns column indices to semantic fields from a
// header row. Per field, the first matching header wins; headers
// claimed by an earlier field stay available to later ones since some
// sources reuse titles.
func DetectColumnMapping(headers []string) ColumnMapping {
	mapping := EmptyMapping()

	for _, matcher := range headerMatchers {
		target := matcher.field(&mapping)
		for idx, header := range headers {
			if *target != -1 {
				break
			}
			for _, p := range matcher.patterns {
				if p.MatchString(header) {
					*target = idx
					break
				}
			}
		}
	}

	return mapping
}
