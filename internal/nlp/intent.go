package nlp

import (
	"regexp"
	"strings"
)

// Intent is the caller's high-level goal inferred from free text
type Intent string

const (
	IntentCreateDaily     Intent = "CREATE_DAILY"
	IntentCreateWeekly    Intent = "CREATE_WEEKLY"
	IntentCreateMonthly   Intent = "CREATE_MONTHLY"
	IntentCreateSummary   Intent = "CREATE_SUMMARY"
	IntentImportData      Intent = "IMPORT_DATA"
	IntentExportData      Intent = "EXPORT_DATA"
	IntentGenerateChart   Intent = "GENERATE_CHART"
	IntentQueryStatistics Intent = "QUERY_STATISTICS"
	IntentQueryEmployee   Intent = "QUERY_EMPLOYEE"
	IntentQueryRecord     Intent = "QUERY_RECORD"
	IntentUpdateRecord    Intent = "UPDATE_RECORD"
	IntentDeleteRecord    Intent = "DELETE_RECORD"
	IntentHelp            Intent = "HELP"
	IntentUnknown         Intent = "UNKNOWN"
)

// IntentRule is one scored classification rule. Rules are static
// configuration, scanned in table order and never mutated at runtime.
type IntentRule struct {
	ID               string
	Intent           Intent
	Patterns         []*regexp.Regexp
	RequiredKeywords []string
	ExcludeKeywords  []string
	Priority         int
	BaseConfidence   float64
}

// intentRules is the full rule table. Order matters: ties on score keep
// the first rule found.
var intentRules = []IntentRule{
	{
		ID:     "create-daily",
		Intent: IntentCreateDaily,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(生成|创建|制作).*(今天|每日|日报|当天)`),
			regexp.MustCompile(`(今天|当天).*(考勤表|考勤)`),
			regexp.MustCompile(`(生成|创建|制作).*\d{1,2}月\d{1,2}[日号].*(考勤表|考勤)`),
		},
		RequiredKeywords: []string{"考勤"},
		ExcludeKeywords:  []string{"图表", "导入"},
		Priority:         5,
		BaseConfidence:   0.8,
	},
	{
		ID:     "create-weekly",
		Intent: IntentCreateWeekly,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(生成|创建|制作).*(本周|上周|周报|每周)`),
			regexp.MustCompile(`(本周|上周).*(考勤表|考勤|报表)`),
		},
		RequiredKeywords: []string{"周"},
		ExcludeKeywords:  []string{"图表", "导入"},
		Priority:         5,
		BaseConfidence:   0.8,
	},
	{
		ID:     "create-monthly",
		Intent: IntentCreateMonthly,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(生成|创建|制作).*(本月|上月|上个月|这个月|月报|每月)`),
			regexp.MustCompile(`(生成|创建|制作).*\d{1,2}月(份)?(的)?(考勤表|考勤|报表)`),
			regexp.MustCompile(`(本月|上月|\d{4}年\d{1,2}月).*(考勤表|考勤|报表)`),
		},
		RequiredKeywords: []string{"月"},
		ExcludeKeywords:  []string{"图表", "导入", "统计"},
		Priority:         5,
		BaseConfidence:   0.8,
	},
	{
		ID:     "create-summary",
		Intent: IntentCreateSummary,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(生成|创建|制作).*(汇总|汇总表|总表)`),
			regexp.MustCompile(`汇总.*(考勤|数据|记录)`),
		},
		RequiredKeywords: []string{"汇总"},
		Priority:         4,
		BaseConfidence:   0.75,
	},
	{
		ID:     "import-data",
		Intent: IntentImportData,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`导入`),
			regexp.MustCompile(`(读取|载入).*(数据|记录|文件)`),
		},
		RequiredKeywords: []string{"导入"},
		Priority:         6,
		BaseConfidence:   0.85,
	},
	{
		ID:     "export-data",
		Intent: IntentExportData,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`导出`),
			regexp.MustCompile(`(保存|输出).*(excel|文件|表格)`),
		},
		RequiredKeywords: []string{"导出"},
		Priority:         6,
		BaseConfidence:   0.85,
	},
	{
		ID:     "generate-chart",
		Intent: IntentGenerateChart,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(生成|创建|制作|画).*(图表|饼图|柱状图|折线图|趋势图)`),
			regexp.MustCompile(`(图表|饼图|柱状图|折线图)`),
		},
		RequiredKeywords: []string{"图"},
		Priority:         7,
		BaseConfidence:   0.85,
	},
	{
		ID:     "query-statistics",
		Intent: IntentQueryStatistics,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(统计|计算|分析).*(出勤率|迟到|缺勤|加班|工时|请假)`),
			regexp.MustCompile(`(出勤率|迟到次数|加班时长).*(是多少|怎么样|如何)?`),
		},
		RequiredKeywords: []string{"统计"},
		ExcludeKeywords:  []string{"图表"},
		Priority:         6,
		BaseConfidence:   0.8,
	},
	{
		ID:     "query-employee",
		Intent: IntentQueryEmployee,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(查询|查看|查找).*(员工|部门).*(考勤|记录|情况)`),
			regexp.MustCompile(`[\p{Han}]{2,4}的考勤(记录|情况)`),
		},
		RequiredKeywords: []string{"查"},
		Priority:         4,
		BaseConfidence:   0.75,
	},
	{
		ID:     "query-record",
		Intent: IntentQueryRecord,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(查询|查看|查找).*(考勤记录|打卡记录|记录)`),
		},
		RequiredKeywords: []string{"记录"},
		ExcludeKeywords:  []string{"员工", "部门"},
		Priority:         3,
		BaseConfidence:   0.7,
	},
	{
		ID:     "update-record",
		Intent: IntentUpdateRecord,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(修改|更新|更正).*(考勤|记录|状态)`),
		},
		RequiredKeywords: []string{"修改"},
		Priority:         5,
		BaseConfidence:   0.8,
	},
	{
		ID:     "delete-record",
		Intent: IntentDeleteRecord,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(删除|清除|移除).*(考勤|记录|数据)`),
		},
		RequiredKeywords: []string{"删除"},
		Priority:         5,
		BaseConfidence:   0.8,
	},
	{
		ID:     "help",
		Intent: IntentHelp,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(帮助|怎么用|如何使用|使用说明|能做什么)`),
		},
		Priority:       2,
		BaseConfidence: 0.7,
	},
}

// IntentMatch is the classifier's best rule match
type IntentMatch struct {
	Intent      Intent  `json:"intent"`
	Confidence  float64 `json:"confidence"`
	MatchedRule string  `json:"matched_rule,omitempty"`
}

// Classifier scores the rule table against normalized input. It is a
// deterministic, side-effect-free scoring pass.
type Classifier struct {
	rules []IntentRule
}

// NewClassifier creates a classifier over the built-in rule table
func NewClassifier() *Classifier {
	return &Classifier{rules: intentRules}
}

// RecognizeIntent returns the best-matching intent with its confidence.
// Per rule: the first matching pattern sets the base confidence, each
// required keyword present adds 0.05, each exclude keyword present
// subtracts 0.2, priority adds priority*0.01, and the score is clamped
// to [0,1]. The strictly highest score wins; ties keep the first rule.
func (c *Classifier) RecognizeIntent(input string) IntentMatch {
	best := IntentMatch{Intent: IntentUnknown, Confidence: 0}

	for i := range c.rules {
		rule := &c.rules[i]

		matched := false
		for _, p := range rule.Patterns {
			if p.MatchString(input) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		score := rule.BaseConfidence
		for _, kw := range rule.RequiredKeywords {
			if strings.Contains(input, kw) {
				score += 0.05
			}
		}
		for _, kw := range rule.ExcludeKeywords {
			if strings.Contains(input, kw) {
				score -= 0.2
			}
		}
		score += float64(rule.Priority) * 0.01

		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}

		if score > best.Confidence {
			best = IntentMatch{Intent: rule.Intent, Confidence: score, MatchedRule: rule.ID}
		}
	}

	return best
}
