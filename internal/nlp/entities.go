package nlp

import (
	"strconv"
	"strings"
	"time"

	"github.com/ppx007/smart-attendance/internal/models"
)

// ExtractedEntities holds the typed values resolved from one input.
// Absence of a match leaves the field empty; extraction never fails.
type ExtractedEntities struct {
	DateRange    *models.DateRange      `json:"date_range,omitempty"`
	Employees    []string               `json:"employees,omitempty"`
	Department   string                 `json:"department,omitempty"`
	ChartType    models.ChartType       `json:"chart_type,omitempty"`
	Statistics   []models.StatisticType `json:"statistics,omitempty"`
	Columns      []models.ColumnType    `json:"columns,omitempty"`
	ColumnNames  []string               `json:"column_names,omitempty"`
	OutputFormat string                 `json:"output_format,omitempty"`
	TemplateType models.TemplateType    `json:"template_type,omitempty"`
}

// Extractor applies the pattern library to resolve entities from
// normalized input. The clock is injectable so relative dates stay
// deterministic under test.
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an extractor using the wall clock
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// ExtractEntities resolves all entity types from the input. Entity
// groups are independent: date range, employees, department, chart type,
// statistics and columns may all be present at once.
func (e *Extractor) ExtractEntities(input string) ExtractedEntities {
	entities := ExtractedEntities{}

	entities.DateRange = e.extractDateRange(input)
	entities.Employees = e.extractEmployees(input)
	entities.Department = e.extractDepartment(input)
	entities.ChartType = extractChartType(input)
	entities.Statistics = extractStatistics(input)
	entities.Columns, entities.ColumnNames = extractColumns(input)
	entities.OutputFormat = extractOutputFormat(input)
	entities.TemplateType = extractTemplateType(input)

	return entities
}

// extractDateRange resolves a date range with a fixed precedence:
// relative keyword, explicit year-month, bare month, cross-month day
// range, same-month day range. First match wins.
func (e *Extractor) extractDateRange(input string) *models.DateRange {
	now := e.now()

	for _, kw := range relativeDateKeywords {
		if strings.Contains(input, kw) {
			r := relativeRange(kw, now)
			return &r
		}
	}

	if m := yearMonthPattern.FindStringSubmatch(input); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 {
			r := monthRange(year, time.Month(month))
			return &r
		}
	}

	// Bare month, only when not the start of a day expression (e.g. 1月5日)
	if loc := bareMonthPattern.FindStringSubmatchIndex(input); loc != nil && !followedByDigit(input, loc[1]) {
		month, _ := strconv.Atoi(input[loc[2]:loc[3]])
		if month >= 1 && month <= 12 {
			year := now.Year()
			// A stated month later than the current one is read as last year
			if month > int(now.Month()) {
				year--
			}
			r := monthRange(year, time.Month(month))
			return &r
		}
	}

	if m := crossMonthDayPattern.FindStringSubmatch(input); m != nil {
		m1, _ := strconv.Atoi(m[1])
		d1, _ := strconv.Atoi(m[2])
		m2, _ := strconv.Atoi(m[3])
		d2, _ := strconv.Atoi(m[4])
		start := time.Date(now.Year(), time.Month(m1), d1, 0, 0, 0, 0, now.Location())
		end := endOfDay(time.Date(now.Year(), time.Month(m2), d2, 0, 0, 0, 0, now.Location()))
		if !end.Before(start) {
			return &models.DateRange{Start: start, End: end}
		}
	}

	if m := sameMonthDayPattern.FindStringSubmatch(input); m != nil {
		month, _ := strconv.Atoi(m[1])
		d1, _ := strconv.Atoi(m[2])
		d2, _ := strconv.Atoi(m[3])
		start := time.Date(now.Year(), time.Month(month), d1, 0, 0, 0, 0, now.Location())
		end := endOfDay(time.Date(now.Year(), time.Month(month), d2, 0, 0, 0, 0, now.Location()))
		if !end.Before(start) {
			return &models.DateRange{Start: start, End: end}
		}
	}

	return nil
}

// relativeRange computes the range for one relative date keyword
func relativeRange(keyword string, now time.Time) models.DateRange {
	switch keyword {
	case "今天":
		return dayRange(now)
	case "昨天":
		return dayRange(now.AddDate(0, 0, -1))
	case "明天":
		return dayRange(now.AddDate(0, 0, 1))
	case "本周":
		return weekRange(now)
	case "上周":
		return weekRange(now.AddDate(0, 0, -7))
	case "本月", "这个月":
		return monthRange(now.Year(), now.Month())
	case "上月", "上个月":
		prev := now.AddDate(0, -1, -now.Day()+1)
		return monthRange(prev.Year(), prev.Month())
	case "今年":
		return yearRange(now.Year(), now.Location())
	case "去年":
		return yearRange(now.Year()-1, now.Location())
	}
	return dayRange(now)
}

func dayRange(t time.Time) models.DateRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return models.DateRange{Start: start, End: endOfDay(start)}
}

// weekRange returns the Monday-to-Sunday week containing t
func weekRange(t time.Time) models.DateRange {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, -(weekday - 1))
	return models.DateRange{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
}

func monthRange(year int, month time.Month) models.DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	lastDay := start.AddDate(0, 1, -1)
	return models.DateRange{Start: start, End: endOfDay(lastDay)}
}

func yearRange(year int, loc *time.Location) models.DateRange {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, loc)
	return models.DateRange{Start: start, End: endOfDay(time.Date(year, 12, 31, 0, 0, 0, 0, loc))}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func followedByDigit(s string, byteIdx int) bool {
	if byteIdx >= len(s) {
		return false
	}
	c := s[byteIdx]
	return c >= '0' && c <= '9'
}

// extractEmployees resolves an employee name list. An explicit list
// marker (包含/包括/有/员工) is tried first; otherwise every 2-4
// character CJK run left after removing known domain words is treated
// as a candidate name. The fallback is a known precision limitation:
// names colliding with common nouns missing from the exclude list are
// still picked up, and vice versa.
func (e *Extractor) extractEmployees(input string) []string {
	if m := employeeListPattern.FindStringSubmatch(input); m != nil {
		var names []string
		for _, part := range employeeSplitter.Split(m[1], -1) {
			if cjkNamePattern.MatchString(part) && !employeeExcludeWords[part] {
				names = append(names, part)
			}
		}
		if len(names) > 0 {
			return names
		}
	}

	stripped := stripDomainWords(input)
	var names []string
	seen := map[string]bool{}
	for _, run := range cjkRunPattern.FindAllString(stripped, -1) {
		if len([]rune(run)) >= 2 && !employeeExcludeWords[run] && !seen[run] {
			seen[run] = true
			names = append(names, run)
		}
	}
	return names
}

// stripDomainWords blanks out exclude-list words and stop words so the
// CJK-run fallback only sees residual text
func stripDomainWords(input string) string {
	s := input
	for word := range employeeExcludeWords {
		s = strings.ReplaceAll(s, word, " ")
	}
	for word := range stopWords {
		s = strings.ReplaceAll(s, word, " ")
	}
	for word := range dictionary {
		if len([]rune(word)) >= 2 {
			s = strings.ReplaceAll(s, word, " ")
		}
	}
	return s
}

// knownDepartments are matched before the generic XX部 pattern
var knownDepartments = []string{
	"技术部", "研发部", "销售部", "市场部", "人事部", "财务部", "行政部", "运营部", "客服部", "采购部",
}

func (e *Extractor) extractDepartment(input string) string {
	for _, dept := range knownDepartments {
		if strings.Contains(input, dept) {
			return dept
		}
	}
	if m := departmentPattern.FindStringSubmatch(stripDomainWords(input)); m != nil {
		return m[1]
	}
	return ""
}

func extractChartType(input string) models.ChartType {
	for _, entry := range chartTypeKeywords {
		if strings.Contains(input, entry.keyword) {
			return entry.chart
		}
	}
	return ""
}

func extractStatistics(input string) []models.StatisticType {
	var stats []models.StatisticType
	seen := map[models.StatisticType]bool{}
	for _, entry := range statisticKeywords {
		if strings.Contains(input, entry.keyword) && !seen[entry.stat] {
			seen[entry.stat] = true
			stats = append(stats, entry.stat)
		}
	}
	return stats
}

func extractColumns(input string) ([]models.ColumnType, []string) {
	var columns []models.ColumnType
	seen := map[models.ColumnType]bool{}
	for _, entry := range columnKeywords {
		if strings.Contains(input, entry.keyword) && !seen[entry.column] {
			seen[entry.column] = true
			columns = append(columns, entry.column)
		}
	}

	var names []string
	if m := columnNamePattern.FindStringSubmatch(input); m != nil {
		for _, part := range employeeSplitter.Split(strings.TrimSpace(m[1]), -1) {
			if part != "" {
				names = append(names, part)
			}
		}
	}

	return columns, names
}

func extractOutputFormat(input string) string {
	lower := strings.ToLower(input)
	for _, entry := range outputFormatKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.format
		}
	}
	return ""
}

func extractTemplateType(input string) models.TemplateType {
	for _, entry := range templateTypeKeywords {
		if strings.Contains(input, entry.keyword) {
			return entry.template
		}
	}
	return ""
}
