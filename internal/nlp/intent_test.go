package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecognizeIntent(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name       string
		input      string
		intent     Intent
		confidence float64
	}{
		{
			name:       "daily sheet",
			input:      "生成今天的考勤表",
			intent:     IntentCreateDaily,
			confidence: 0.90,
		},
		{
			name:       "monthly sheet with explicit year-month",
			input:      "生成2024年1月考勤表",
			intent:     IntentCreateMonthly,
			confidence: 0.90,
		},
		{
			name:       "weekly sheet",
			input:      "生成本周考勤表",
			intent:     IntentCreateWeekly,
			confidence: 0.90,
		},
		{
			name:       "summary sheet",
			input:      "生成考勤汇总表",
			intent:     IntentCreateSummary,
			confidence: 0.84,
		},
		{
			name:       "statistics query",
			input:      "统计本月出勤率",
			intent:     IntentQueryStatistics,
			confidence: 0.91,
		},
		{
			name:       "import",
			input:      "导入考勤数据",
			intent:     IntentImportData,
			confidence: 0.96,
		},
		{
			name:       "export beats monthly creation",
			input:      "导出本月考勤表",
			intent:     IntentExportData,
			confidence: 0.96,
		},
		{
			name:       "chart",
			input:      "生成出勤率饼图",
			intent:     IntentGenerateChart,
			confidence: 0.97,
		},
		{
			name:       "chart word overrides creation verbs",
			input:      "生成本月考勤图表",
			intent:     IntentGenerateChart,
			confidence: 0.97,
		},
		{
			name:       "employee query",
			input:      "查询张三的考勤记录",
			intent:     IntentQueryEmployee,
			confidence: 0.84,
		},
		{
			name:       "update record",
			input:      "修改张三的考勤状态",
			intent:     IntentUpdateRecord,
			confidence: 0.90,
		},
		{
			name:       "delete record",
			input:      "删除昨天的考勤记录",
			intent:     IntentDeleteRecord,
			confidence: 0.90,
		},
		{
			name:       "help",
			input:      "你能做什么",
			intent:     IntentHelp,
			confidence: 0.72,
		},
		{
			name:       "unrelated input",
			input:      "今天天气怎么样",
			intent:     IntentUnknown,
			confidence: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := c.RecognizeIntent(tt.input)
			assert.Equal(t, tt.intent, match.Intent)
			assert.InDelta(t, tt.confidence, match.Confidence, 0.001)
		})
	}
}

// 导入 anywhere in the input must always classify as IMPORT_DATA: the
// import rule's pattern plus required keyword outscore every competitor.
func TestImportKeywordAlwaysWins(t *testing.T) {
	c := NewClassifier()

	inputs := []string{
		"导入考勤数据",
		"帮我导入上个月的打卡记录",
		"从文件导入",
		"生成考勤表之前先导入数据",
	}

	for _, input := range inputs {
		match := c.RecognizeIntent(input)
		assert.Equal(t, IntentImportData, match.Intent, "input: %s", input)
	}
}

func TestExcludeKeywordPenalty(t *testing.T) {
	c := NewClassifier()

	// 统计 is an exclude keyword of the monthly creation rule, so the
	// statistics rule must win even though both patterns match
	match := c.RecognizeIntent("统计本月考勤迟到情况")
	assert.Equal(t, IntentQueryStatistics, match.Intent)
}

func TestConfidenceClamped(t *testing.T) {
	c := NewClassifier()

	for _, input := range []string{"导入", "生成出勤率饼图", "统计出勤率"} {
		match := c.RecognizeIntent(input)
		assert.GreaterOrEqual(t, match.Confidence, 0.0)
		assert.LessOrEqual(t, match.Confidence, 1.0)
	}
}
