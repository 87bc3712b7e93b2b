package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectColumnMappingChineseHeaders(t *testing.T) {
	headers := []string{"姓名", "工号", "部门", "日期", "签到时间", "签退时间", "工时", "加班时长", "状态", "备注"}

	mapping := DetectColumnMapping(headers)

	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.EmployeeNo)
	assert.Equal(t, 2, mapping.Department)
	assert.Equal(t, 3, mapping.Date)
	assert.Equal(t, 4, mapping.CheckInTime)
	assert.Equal(t, 5, mapping.CheckOutTime)
	assert.Equal(t, 6, mapping.WorkHours)
	assert.Equal(t, 7, mapping.OvertimeHours)
	assert.Equal(t, 8, mapping.Status)
	assert.Equal(t, 9, mapping.Notes)
}

func TestDetectColumnMappingEnglishHeaders(t *testing.T) {
	headers := []string{"Name", "Date", "Check-In", "Check-Out", "Status"}

	mapping := DetectColumnMapping(headers)

	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Date)
	assert.Equal(t, 2, mapping.CheckInTime)
	assert.Equal(t, 3, mapping.CheckOutTime)
	assert.Equal(t, 4, mapping.Status)
	assert.Equal(t, -1, mapping.Department)
}

func TestDetectColumnMappingPartialHeaders(t *testing.T) {
	mapping := DetectColumnMapping([]string{"姓名", "日期"})

	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Date)
	assert.Equal(t, -1, mapping.CheckInTime)
	assert.Equal(t, -1, mapping.Status)
}

func TestDefaultMappingLayout(t *testing.T) {
	mapping := DefaultMapping()

	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Date)
	assert.Equal(t, 2, mapping.CheckInTime)
	assert.Equal(t, 3, mapping.CheckOutTime)
	assert.Equal(t, 4, mapping.Status)
	assert.Equal(t, -1, mapping.WorkHours)
}
