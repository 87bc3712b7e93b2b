package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ppx007/smart-attendance/internal/models"
	"github.com/ppx007/smart-attendance/internal/report"
)

func renderTestSheet(t *testing.T) *report.RenderResult {
	t.Helper()

	tmpl, err := report.DefaultTemplate(models.TemplateDailySimple)
	require.NoError(t, err)

	dateRange := models.DateRange{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, 1, 15, 23, 59, 59, 0, time.Local),
	}
	employees := []models.Employee{
		{ID: 1, Name: "张三", EmployeeNo: "E001"},
		{ID: 2, Name: "李四", EmployeeNo: "E002"},
	}
	records := []models.AttendanceRecord{
		{EmployeeID: 1, Date: dateRange.Start, CheckInTime: "09:00", CheckOutTime: "18:00", WorkHours: 8, Status: models.StatusNormal},
	}

	return report.NewEngine().Render(tmpl, report.TemplateContext{
		Title:     "考勤表",
		DateRange: &dateRange,
		Employees: employees,
		Records:   records,
	})
}

func TestWriteWorkbook(t *testing.T) {
	writer := NewExcelWriter(zap.NewNop())
	result := renderTestSheet(t)
	outputPath := filepath.Join(t.TempDir(), "attendance.xlsx")

	require.NoError(t, writer.Write(result, "一月考勤", outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"一月考勤"}, f.GetSheetList())

	title, err := f.GetCellValue("一月考勤", "A1")
	require.NoError(t, err)
	assert.Equal(t, "考勤表", title)

	subtitle, err := f.GetCellValue("一月考勤", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 至 2024-01-15", subtitle)

	header, err := f.GetCellValue("一月考勤", "A3")
	require.NoError(t, err)
	assert.Equal(t, "序号", header)

	name, err := f.GetCellValue("一月考勤", "B4")
	require.NoError(t, err)
	assert.Equal(t, "张三", name)

	status, err := f.GetCellValue("一月考勤", "E4")
	require.NoError(t, err)
	assert.Equal(t, "正常", status)

	// Second employee has no record; time cells render empty
	checkIn, err := f.GetCellValue("一月考勤", "C5")
	require.NoError(t, err)
	assert.Empty(t, checkIn)
}

func TestWriteAppliesLayout(t *testing.T) {
	writer := NewExcelWriter(zap.NewNop())
	result := renderTestSheet(t)
	outputPath := filepath.Join(t.TempDir(), "layout.xlsx")

	require.NoError(t, writer.Write(result, "布局", outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	merges, err := f.GetMergeCells("布局")
	require.NoError(t, err)
	assert.Len(t, merges, 2)

	height, err := f.GetRowHeight("布局", 1)
	require.NoError(t, err)
	assert.Equal(t, 30.0, height)
}

func TestWriteDefaultSheetName(t *testing.T) {
	writer := NewExcelWriter(zap.NewNop())
	result := renderTestSheet(t)
	outputPath := filepath.Join(t.TempDir(), "default.xlsx")

	require.NoError(t, writer.Write(result, "", outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
