package nlp

import (
	"regexp"

	"github.com/ppx007/smart-attendance/internal/models"
)

// Static pattern tables for the segmenter and extractors. All tables are
// loaded once at init and never mutated at runtime.

// dictionary maps known words to their part of speech. Longest-match
// segmentation scans windows up to maxWordLength runes against it.
var dictionary = map[string]PartOfSpeech{
	// Actions (动词)
	"生成": POSVerb, "创建": POSVerb, "制作": POSVerb, "导入": POSVerb,
	"导出": POSVerb, "查询": POSVerb, "查看": POSVerb, "统计": POSVerb,
	"计算": POSVerb, "更新": POSVerb, "修改": POSVerb, "删除": POSVerb,
	"打印": POSVerb, "汇总": POSVerb, "分析": POSVerb, "筛选": POSVerb,

	// Domain nouns (名词)
	"考勤": POSNoun, "考勤表": POSNoun, "考勤记录": POSNoun, "报表": POSNoun,
	"表格": POSNoun, "图表": POSNoun, "数据": POSNoun, "记录": POSNoun,
	"员工": POSNoun, "部门": POSNoun, "公司": POSNoun, "日报": POSNoun,
	"周报": POSNoun, "月报": POSNoun, "出勤率": POSNoun, "工时": POSNoun,
	"加班": POSNoun, "迟到": POSNoun, "早退": POSNoun, "缺勤": POSNoun,
	"请假": POSNoun, "出差": POSNoun, "饼图": POSNoun, "柱状图": POSNoun,
	"折线图": POSNoun, "模板": POSNoun, "姓名": POSNoun, "工号": POSNoun,
	"状态": POSNoun, "备注": POSNoun, "汇总表": POSNoun, "明细": POSNoun,

	// Time words (时间词)
	"今天": POSTime, "昨天": POSTime, "明天": POSTime, "本周": POSTime,
	"上周": POSTime, "下周": POSTime, "本月": POSTime, "上月": POSTime,
	"上个月": POSTime, "这个月": POSTime, "今年": POSTime, "去年": POSTime,
	"年": POSTime, "月": POSTime, "日": POSTime, "号": POSTime,

	// Adjectives / quantifiers / function words
	"详细": POSAdj, "简单": POSAdj, "全部": POSAdj, "所有": POSAdj,
	"个": POSQuantifier, "张": POSQuantifier, "份": POSQuantifier,
	"的": POSUnknown, "了": POSUnknown, "是": POSVerb, "有": POSVerb,
	"包含": POSVerb, "包括": POSVerb, "帮我": POSVerb, "请": POSVerb,
	"给": POSVerb, "到": POSUnknown, "和": POSUnknown, "与": POSUnknown,
}

// stopWords are dropped by TokenizeAndFilter
var stopWords = map[string]bool{
	"的": true, "了": true, "是": true, "在": true, "和": true,
	"与": true, "请": true, "帮我": true, "一下": true, "给": true,
	"把": true, "被": true, "让": true, "啊": true, "吧": true,
	"呢": true, "吗": true,
}

// relativeDateKeywords lists recognized relative date words in resolution
// order. Longer phrases come first so 上个月 wins over 月.
var relativeDateKeywords = []string{
	"今天", "昨天", "明天", "本周", "上周", "这个月", "上个月", "本月", "上月", "今年", "去年",
}

// Date patterns (日期). Resolution order is fixed: relative keyword,
// year-month, bare month, cross-month day range, same-month day range.
var (
	yearMonthPattern     = regexp.MustCompile(`(\d{4})年(\d{1,2})月`)
	bareMonthPattern     = regexp.MustCompile(`(\d{1,2})月(?:份)?`)
	crossMonthDayPattern = regexp.MustCompile(`(\d{1,2})月(\d{1,2})[日号]?(?:到|至|-)(\d{1,2})月(\d{1,2})[日号]?`)
	sameMonthDayPattern  = regexp.MustCompile(`(\d{1,2})月(\d{1,2})[日号]?(?:到|至|-)(\d{1,2})[日号]?`)
)

// Employee list extraction (员工名单)
var (
	employeeListPattern = regexp.MustCompile(`(?:包含|包括|有|员工)[是为]?[：:]?\s*([\p{Han}，,、\s]+?)(?:的|$)`)
	employeeSplitter    = regexp.MustCompile(`[,，、\s]+`)
	cjkNamePattern      = regexp.MustCompile(`^\p{Han}{2,4}$`)
	cjkRunPattern       = regexp.MustCompile(`\p{Han}{2,4}`)
)

// employeeExcludeWords are common domain nouns that collide with the 2-4
// character CJK-run fallback when no explicit list marker is present.
// Known precision limitation: names that collide with nouns missing from
// this list will still be picked up.
var employeeExcludeWords = map[string]bool{
	"考勤": true, "考勤表": true, "考勤记录": true, "月报": true, "周报": true,
	"日报": true, "报表": true, "表格": true, "图表": true, "数据": true,
	"员工": true, "部门": true, "统计": true, "生成": true, "创建": true,
	"导入": true, "导出": true, "查询": true, "汇总": true, "汇总表": true,
	"出勤率": true, "工时": true, "加班": true, "迟到": true, "早退": true,
	"缺勤": true, "请假": true, "出差": true, "本月": true, "上月": true,
	"本周": true, "上周": true, "今天": true, "明天": true, "昨天": true,
	"全部": true, "所有": true, "详细": true, "简单": true, "明细": true,
	"帮我": true, "模板": true, "打印": true, "删除": true, "修改": true,
}

// departmentPattern matches an explicit department mention (XX部 / XX部门)
var departmentPattern = regexp.MustCompile(`([\p{Han}]{2,6}(?:部门|部|组|中心))`)

// chartTypeKeywords resolves chart style words to chart types
var chartTypeKeywords = []struct {
	keyword string
	chart   models.ChartType
}{
	{"饼图", models.ChartPie},
	{"饼状图", models.ChartPie},
	{"柱状图", models.ChartBar},
	{"柱形图", models.ChartBar},
	{"条形图", models.ChartBar},
	{"折线图", models.ChartLine},
	{"趋势图", models.ChartLine},
	{"曲线图", models.ChartLine},
}

// statisticKeywords resolves statistic words; several may match at once
var statisticKeywords = []struct {
	keyword string
	stat    models.StatisticType
}{
	{"出勤率", models.StatAttendanceRate},
	{"迟到", models.StatLateCount},
	{"缺勤", models.StatAbsentCount},
	{"旷工", models.StatAbsentCount},
	{"加班", models.StatOvertimeHours},
	{"工时", models.StatWorkHours},
	{"工作时长", models.StatWorkHours},
	{"请假", models.StatLeaveCount},
}

// columnKeywords resolves column mentions (列名) to column types
var columnKeywords = []struct {
	keyword string
	column  models.ColumnType
}{
	{"序号", models.ColumnIndex},
	{"姓名", models.ColumnName},
	{"名字", models.ColumnName},
	{"工号", models.ColumnEmployeeNo},
	{"部门", models.ColumnDepartment},
	{"签到", models.ColumnCheckIn},
	{"上班时间", models.ColumnCheckIn},
	{"签退", models.ColumnCheckOut},
	{"下班时间", models.ColumnCheckOut},
	{"工时", models.ColumnWorkHours},
	{"加班", models.ColumnOvertime},
	{"状态", models.ColumnStatus},
	{"备注", models.ColumnNotes},
}

// columnNamePattern captures a quoted or enumerated custom column list,
// e.g. 列：姓名、工号、状态
var columnNamePattern = regexp.MustCompile(`(?:列|字段)[：:为是]\s*([\p{Han}，,、\s]+)`)

// templateTypeKeywords maps layout words to built-in template types
var templateTypeKeywords = []struct {
	keyword  string
	template models.TemplateType
}{
	{"详细", models.TemplateDailyDetailed},
	{"明细", models.TemplateDailyDetailed},
	{"汇总", models.TemplateSummary},
	{"部门", models.TemplateDepartment},
	{"周报", models.TemplateWeekly},
	{"月报", models.TemplateMonthly},
}

// outputFormatKeywords maps export words to output formats
var outputFormatKeywords = []struct {
	keyword string
	format  string
}{
	{"excel", "xlsx"},
	{"表格文件", "xlsx"},
	{"csv", "csv"},
	{"pdf", "pdf"},
}
