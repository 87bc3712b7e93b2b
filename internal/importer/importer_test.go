package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppx007/smart-attendance/internal/models"
)

func newTestImporter() *Importer {
	im := NewImporter(zap.NewNop())
	im.now = func() time.Time {
		return time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)
	}
	return im
}

func TestImportFromArraySingleRow(t *testing.T) {
	im := newTestImporter()

	result := im.ImportFromArray([][]string{
		{"张三", "2024-01-15", "09:30", "18:00", "迟到"},
	}, DefaultMapping(), false)

	require.Empty(t, result.Errors)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, models.StatusLate, rec.Status)
	assert.Equal(t, "09:30", rec.CheckInTime)
	assert.Equal(t, "18:00", rec.CheckOutTime)
	// 8.5 raw hours minus the one-hour lunch deduction
	assert.InDelta(t, 7.5, rec.WorkHours, 0.001)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local), rec.Date)

	require.Len(t, result.Employees, 1)
	assert.Equal(t, "张三", result.Employees[0].Name)
	assert.Equal(t, int64(1), rec.EmployeeID)
}

func TestImportResolvesEmployeeIdentityAcrossRows(t *testing.T) {
	im := newTestImporter()

	result := im.ImportFromArray([][]string{
		{"张三", "2024-01-15", "09:00", "18:00", ""},
		{"张三", "2024-01-16", "09:00", "18:00", ""},
		{"李四", "2024-01-15", "09:00", "18:00", ""},
	}, DefaultMapping(), false)

	require.Len(t, result.Records, 3)
	assert.Equal(t, result.Records[0].EmployeeID, result.Records[1].EmployeeID)
	assert.NotEqual(t, result.Records[0].EmployeeID, result.Records[2].EmployeeID)
	assert.Len(t, result.Employees, 2)
	assert.Equal(t, 2, result.Stats.NewEmployees)
}

func TestImportRowErrorsDoNotAbortBatch(t *testing.T) {
	im := newTestImporter()

	result := im.ImportFromArray([][]string{
		{"张三", "2024-01-15", "09:00", "18:00", ""},
		{"", "2024-01-15", "09:00", "18:00", ""}, // no identity
		{"李四", "not-a-date", "09:00", "18:00", ""},
		{"王五", "2024-01-16", "09:00", "18:00", ""},
	}, DefaultMapping(), false)

	assert.Equal(t, 4, result.Stats.TotalRows)
	assert.Equal(t, 2, result.Stats.Imported)
	assert.Equal(t, 2, result.Stats.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)
}

func TestImportWithHeaderDetection(t *testing.T) {
	im := newTestImporter()

	rows := [][]string{
		{"姓名", "工号", "日期", "签到时间", "签退时间", "状态", "备注"},
		{"张三", "E001", "2024-01-15", "09:00", "18:00", "正常", "无"},
	}

	result := im.ImportFromArray(rows, DetectColumnMapping(rows[0]), true)

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, models.StatusNormal, rec.Status)
	assert.Equal(t, "无", rec.Notes)
	assert.Equal(t, "E001", result.Employees[0].EmployeeNo)
}

func TestImportFromCSV(t *testing.T) {
	im := newTestImporter()

	data := "姓名,日期,签到,签退,状态\n张三,2024-01-15,09:30,18:00,迟到\n李四,2024-01-15,09:00,18:00,正常\n"
	result := im.ImportFromCSV(data, nil, false)

	require.Empty(t, result.Errors)
	require.Len(t, result.Records, 2)
	assert.Equal(t, models.StatusLate, result.Records[0].Status)
	assert.Equal(t, models.StatusNormal, result.Records[1].Status)
}

func TestImportFromCSVExplicitMappingWithHeader(t *testing.T) {
	im := newTestImporter()
	mapping := DefaultMapping()

	data := "姓名,日期,签到,签退,状态\n张三,2024-01-15,09:30,18:00,迟到\n"
	result := im.ImportFromCSV(data, &mapping, true)

	require.Empty(t, result.Errors)
	require.Len(t, result.Records, 1)
	assert.Equal(t, models.StatusLate, result.Records[0].Status)
	assert.Equal(t, 1, result.Stats.TotalRows)
}

func TestImportFromCSVExplicitMappingWithoutHeader(t *testing.T) {
	im := newTestImporter()
	mapping := DefaultMapping()

	data := "张三,2024-01-15,09:30,18:00,迟到\n"
	result := im.ImportFromCSV(data, &mapping, false)

	require.Empty(t, result.Errors)
	require.Len(t, result.Records, 1)
}

func TestClearCacheResetsIdentity(t *testing.T) {
	im := newTestImporter()

	first := im.ImportFromArray([][]string{{"张三", "2024-01-15", "09:00", "18:00", ""}}, DefaultMapping(), false)
	require.Len(t, first.Employees, 1)

	im.ClearCache()

	second := im.ImportFromArray([][]string{{"张三", "2024-01-16", "09:00", "18:00", ""}}, DefaultMapping(), false)
	require.Len(t, second.Employees, 1)
	assert.Equal(t, int64(1), second.Employees[0].ID)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "iso dash",
			input:    "2024-01-15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "slash",
			input:    "2024/1/15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "month-day-year",
			input:    "01-15-2024",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "chinese full date",
			input:    "2024年1月15日",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "chinese month-day assumes current year",
			input:    "1月15日",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "dotted date",
			input:    "2024.01.15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "nonsense",
			input:   "next tuesday",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2024-13-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDate(tt.input, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parsed)
		})
	}
}

func TestComputeWorkHours(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected float64
	}{
		{
			name:     "standard day with lunch deduction",
			checkIn:  "09:30",
			checkOut: "18:00",
			expected: 7.5,
		},
		{
			name:     "short span keeps full hours",
			checkIn:  "09:00",
			checkOut: "12:00",
			expected: 3,
		},
		{
			name:     "exactly five hours keeps full hours",
			checkIn:  "09:00",
			checkOut: "14:00",
			expected: 5,
		},
		{
			name:     "missing check-out",
			checkIn:  "09:00",
			checkOut: "",
			expected: 0,
		},
		{
			name:     "check-out before check-in",
			checkIn:  "18:00",
			checkOut: "09:00",
			expected: 0,
		},
		{
			name:     "seconds are tolerated",
			checkIn:  "09:00:00",
			checkOut: "18:00:30",
			expected: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeWorkHours(tt.checkIn, tt.checkOut), 0.001)
		})
	}
}

func TestInferStatus(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		checkIn  string
		checkOut string
		expected models.AttendanceStatus
	}{
		{"explicit late", "迟到", "09:30", "18:00", models.StatusLate},
		{"explicit absent synonym", "旷工", "", "", models.StatusAbsent},
		{"explicit normal synonym", "出勤", "09:00", "18:00", models.StatusNormal},
		{"explicit business trip", "出差", "", "", models.StatusBusinessTrip},
		{"no text and no times", "", "", "", models.StatusAbsent},
		{"no text with times", "", "09:00", "18:00", models.StatusNormal},
		{"unknown text with times", "在岗", "09:00", "18:00", models.StatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, inferStatus(tt.text, tt.checkIn, tt.checkOut))
		})
	}
}

func TestExplicitWorkHoursColumnWins(t *testing.T) {
	im := newTestImporter()
	mapping := DefaultMapping()
	mapping.WorkHours = 5

	result := im.ImportFromArray([][]string{
		{"张三", "2024-01-15", "09:00", "18:00", "正常", "6.5"},
	}, mapping, false)

	require.Len(t, result.Records, 1)
	assert.InDelta(t, 6.5, result.Records[0].WorkHours, 0.001)
}

func TestUnparseableWorkHoursWarnsAndZeroes(t *testing.T) {
	im := newTestImporter()
	mapping := DefaultMapping()
	mapping.WorkHours = 5

	result := im.ImportFromArray([][]string{
		{"张三", "2024-01-15", "09:00", "18:00", "正常", "八小时"},
	}, mapping, false)

	require.Len(t, result.Records, 1)
	assert.Zero(t, result.Records[0].WorkHours)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row 1")
}
