package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppx007/smart-attendance/internal/models"
)

func TestGeneratePieChart(t *testing.T) {
	stats := models.AttendanceStatistics{
		ActualWorkDays:  10,
		LateCount:       2,
		EarlyLeaveCount: 1,
		AbsentCount:     1,
		LeaveCount:      1,
		OvertimeCount:   1,
	}

	config := GeneratePieChart("考勤分布", stats)

	assert.Equal(t, models.ChartPie, config.Type)
	assert.Equal(t, []string{"正常", "迟到", "早退", "缺勤", "请假", "加班"}, config.Labels)
	require.Len(t, config.Series, 1)
	// normal = actual work days minus late, early-leave and overtime
	assert.Equal(t, []float64{6, 2, 1, 1, 1, 1}, config.Series[0].Data)
	assert.NotEmpty(t, config.Colors)
}

func TestGeneratePieChartNeverNegative(t *testing.T) {
	stats := models.AttendanceStatistics{ActualWorkDays: 1, LateCount: 3}

	config := GeneratePieChart("考勤分布", stats)

	assert.Equal(t, 0.0, config.Series[0].Data[0])
}

func TestGenerateBarChart(t *testing.T) {
	employees := testEmployees()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	records := []models.AttendanceRecord{
		{EmployeeID: 1, Date: day, WorkHours: 8, OvertimeHours: 1},
		{EmployeeID: 1, Date: day.AddDate(0, 0, 1), WorkHours: 8},
		{EmployeeID: 2, Date: day, WorkHours: 7.5},
	}

	config := GenerateBarChart("工时对比", employees, records)

	assert.Equal(t, models.ChartBar, config.Type)
	assert.Equal(t, []string{"张三", "李四", "王五"}, config.Labels)
	require.Len(t, config.Series, 2)
	assert.Equal(t, []float64{16, 7.5, 0}, config.Series[0].Data)
	assert.Equal(t, []float64{1, 0, 0}, config.Series[1].Data)
}

func TestGenerateLineChart(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.Local)
	}
	records := []models.AttendanceRecord{
		{EmployeeID: 1, Date: day(16), WorkHours: 8},
		{EmployeeID: 2, Date: day(15), WorkHours: 7.5},
		{EmployeeID: 1, Date: day(15), WorkHours: 8},
	}

	config := GenerateLineChart("工时趋势", januaryRange(), records)

	assert.Equal(t, models.ChartLine, config.Type)
	// Days sorted ascending regardless of record order
	assert.Equal(t, []string{"1/15", "1/16"}, config.Labels)
	require.Len(t, config.Series, 1)
	assert.Equal(t, []float64{15.5, 8}, config.Series[0].Data)
}

func TestGenerateLineChartExcludesOutOfRange(t *testing.T) {
	records := []models.AttendanceRecord{
		{EmployeeID: 1, Date: time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local), WorkHours: 8},
	}

	config := GenerateLineChart("工时趋势", januaryRange(), records)

	assert.Empty(t, config.Labels)
}

func TestGenerateChartDispatch(t *testing.T) {
	employees := testEmployees()
	records := testRecords()

	bar := GenerateChart(models.ChartBar, "t", januaryRange(), employees, records)
	assert.Equal(t, models.ChartBar, bar.Type)

	line := GenerateChart(models.ChartLine, "t", januaryRange(), employees, records)
	assert.Equal(t, models.ChartLine, line.Type)

	pie := GenerateChart(models.ChartPie, "t", januaryRange(), employees, records)
	assert.Equal(t, models.ChartPie, pie.Type)

	// Unknown types fall back to pie
	fallback := GenerateChart("radar", "t", januaryRange(), employees, records)
	assert.Equal(t, models.ChartPie, fallback.Type)
}
