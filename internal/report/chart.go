package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/ppx007/smart-attendance/internal/models"
)

// ChartSeries is one named data series
type ChartSeries struct {
	Name string    `json:"name"`
	Data []float64 `json:"data"`
}

// ChartConfig is a declarative chart descriptor for a host renderer
type ChartConfig struct {
	Type   models.ChartType `json:"type"`
	Title  string           `json:"title"`
	Labels []string         `json:"labels"`
	Series []ChartSeries    `json:"series"`
	Colors []string         `json:"colors"`
}

// Fixed palettes per chart style
var (
	pieColors  = []string{"#5B9BD5", "#ED7D31", "#A5A5A5", "#FFC000", "#70AD47", "#264478", "#9E480E"}
	barColors  = []string{"#4472C4", "#ED7D31"}
	lineColors = []string{"#70AD47"}
)

// GeneratePieChart builds a status-distribution pie from aggregate
// statistics
func GeneratePieChart(title string, stats models.AttendanceStatistics) ChartConfig {
	normal := stats.ActualWorkDays - stats.LateCount - stats.EarlyLeaveCount - stats.OvertimeCount
	if normal < 0 {
		normal = 0
	}

	return ChartConfig{
		Type:   models.ChartPie,
		Title:  title,
		Labels: []string{"正常", "迟到", "早退", "缺勤", "请假", "加班"},
		Series: []ChartSeries{{
			Name: "考勤分布",
			Data: []float64{
				float64(normal),
				float64(stats.LateCount),
				float64(stats.EarlyLeaveCount),
				float64(stats.AbsentCount),
				float64(stats.LeaveCount),
				float64(stats.OvertimeCount),
			},
		}},
		Colors: pieColors,
	}
}

// GenerateBarChart builds a per-employee work-hours comparison
func GenerateBarChart(title string, employees []models.Employee, records []models.AttendanceRecord) ChartConfig {
	workHours := make(map[int64]float64, len(employees))
	overtime := make(map[int64]float64, len(employees))
	for _, rec := range records {
		workHours[rec.EmployeeID] += rec.WorkHours
		overtime[rec.EmployeeID] += rec.OvertimeHours
	}

	labels := make([]string, 0, len(employees))
	work := make([]float64, 0, len(employees))
	over := make([]float64, 0, len(employees))
	for _, emp := range employees {
		labels = append(labels, emp.Name)
		work = append(work, round2(workHours[emp.ID]))
		over = append(over, round2(overtime[emp.ID]))
	}

	return ChartConfig{
		Type:   models.ChartBar,
		Title:  title,
		Labels: labels,
		Series: []ChartSeries{
			{Name: "工时", Data: work},
			{Name: "加班时长", Data: over},
		},
		Colors: barColors,
	}
}

// GenerateLineChart builds a daily total-hours trend over the range
func GenerateLineChart(title string, dateRange models.DateRange, records []models.AttendanceRecord) ChartConfig {
	perDay := map[string]float64{}
	for _, rec := range records {
		if dateRange.Contains(rec.Date) {
			perDay[rec.Date.Format("2006-01-02")] += rec.WorkHours
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	data := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, day := range days {
		labels[i] = shortDayLabel(day)
		data[i] = round2(perDay[day])
	}

	return ChartConfig{
		Type:   models.ChartLine,
		Title:  title,
		Labels: labels,
		Series: []ChartSeries{{Name: "每日工时", Data: data}},
		Colors: lineColors,
	}
}

// GenerateChart dispatches by chart type; an unrecognized type falls
// back to a pie chart.
func GenerateChart(chartType models.ChartType, title string, dateRange models.DateRange, employees []models.Employee, records []models.AttendanceRecord) ChartConfig {
	switch chartType {
	case models.ChartBar:
		return GenerateBarChart(title, employees, records)
	case models.ChartLine:
		return GenerateLineChart(title, dateRange, records)
	default:
		return GeneratePieChart(title, ComputeStatistics(dateRange, records))
	}
}

func shortDayLabel(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
