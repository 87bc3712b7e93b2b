package nlp

import (
	"context"
	"strings"

	"github.com/ppx007/smart-attendance/internal/models"
	"go.uber.org/zap"
)

// Mode selects how the processor balances local rules and the remote
// AI collaborator
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeAPI    Mode = "api"
	ModeHybrid Mode = "hybrid"
)

// Options configures a Processor, read once at construction
type Options struct {
	Debug         bool
	MinConfidence float64
	UseContext    bool
	Mode          Mode
}

// DefaultOptions returns the standard processor configuration
func DefaultOptions() Options {
	return Options{
		MinConfidence: 0.7,
		UseContext:    true,
		Mode:          ModeLocal,
	}
}

// ProcessingContext is the short-term memory of the previous turn. It is
// owned by the caller and only backfills entity fields the current turn
// left empty; it never overrides an explicitly extracted value.
type ProcessingContext struct {
	LastDateRange  *models.DateRange `json:"last_date_range,omitempty"`
	LastEmployees  []string          `json:"last_employees,omitempty"`
	LastDepartment string            `json:"last_department,omitempty"`
	LastIntent     Intent            `json:"last_intent,omitempty"`
}

// NLPResult is the resolved interpretation of one input. It is created
// fresh per call and never mutated after return.
type NLPResult struct {
	RawInput        string            `json:"raw_input"`
	NormalizedInput string            `json:"normalized_input"`
	Intent          Intent            `json:"intent"`
	Confidence      float64           `json:"confidence"`
	Entities        ExtractedEntities `json:"entities"`
	Parameters      map[string]any    `json:"parameters"`
	MatchedRuleID   string            `json:"matched_rule_id,omitempty"`
}

// ValidationResult reports whether a result carries the entities its
// intent requires
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	MissingEntities []string `json:"missing_entities,omitempty"`
}

// TableGenerator is the remote AI collaborator contract: free-text
// prompt in, structured table or error out. The processor treats it as
// a black box.
type TableGenerator interface {
	GenerateTable(ctx context.Context, prompt string) (*models.GeneratedTable, error)
}

// Processor drives the pipeline: normalize, tokenize, classify,
// extract, merge context, build parameters. One Process call never
// interleaves with another call's state.
type Processor struct {
	segmenter  *Segmenter
	classifier *Classifier
	extractor  *Extractor
	generator  TableGenerator
	opts       Options
	logger     *zap.Logger
}

// NewProcessor creates a processor. generator may be nil when no remote
// collaborator is configured.
func NewProcessor(opts Options, generator TableGenerator, logger *zap.Logger) *Processor {
	if opts.MinConfidence == 0 {
		opts.MinConfidence = 0.7
	}
	if opts.Mode == "" {
		opts.Mode = ModeLocal
	}
	return &Processor{
		segmenter:  NewSegmenter(),
		classifier: NewClassifier(),
		extractor:  NewExtractor(),
		generator:  generator,
		opts:       opts,
		logger:     logger,
	}
}

// Process resolves one instruction into an NLPResult. pctx may be nil.
func (p *Processor) Process(input string, pctx *ProcessingContext) NLPResult {
	normalized := Normalize(input)

	tokens := p.segmenter.Tokenize(normalized)
	match := p.classifier.RecognizeIntent(normalized)
	entities := p.extractor.ExtractEntities(normalized)

	if p.opts.UseContext && pctx != nil {
		entities = mergeContext(entities, pctx)
	}

	result := NLPResult{
		RawInput:        input,
		NormalizedInput: normalized,
		Intent:          match.Intent,
		Confidence:      match.Confidence,
		Entities:        entities,
		Parameters:      buildParameters(match.Intent, entities),
		MatchedRuleID:   match.MatchedRule,
	}

	if p.opts.Debug {
		p.logger.Debug("Processed command",
			zap.String("normalized", normalized),
			zap.Int("tokens", len(tokens)),
			zap.String("intent", string(result.Intent)),
			zap.Float64("confidence", result.Confidence))
	}

	return result
}

// mergeContext backfills entity fields left empty by extraction
func mergeContext(entities ExtractedEntities, pctx *ProcessingContext) ExtractedEntities {
	if entities.DateRange == nil && pctx.LastDateRange != nil {
		r := *pctx.LastDateRange
		entities.DateRange = &r
	}
	if len(entities.Employees) == 0 && len(pctx.LastEmployees) > 0 {
		entities.Employees = append([]string(nil), pctx.LastEmployees...)
	}
	if entities.Department == "" && pctx.LastDepartment != "" {
		entities.Department = pctx.LastDepartment
	}
	return entities
}

// buildParameters maps extracted entities into the caller-facing shape
func buildParameters(intent Intent, entities ExtractedEntities) map[string]any {
	params := map[string]any{
		"intent": string(intent),
	}
	if entities.DateRange != nil {
		params["dateRange"] = map[string]string{
			"start": entities.DateRange.Start.Format("2006-01-02"),
			"end":   entities.DateRange.End.Format("2006-01-02"),
		}
	}
	if len(entities.Employees) > 0 {
		params["employees"] = entities.Employees
	}
	if entities.Department != "" {
		params["department"] = entities.Department
	}
	if entities.ChartType != "" {
		params["chartType"] = string(entities.ChartType)
	}
	if len(entities.Statistics) > 0 {
		stats := make([]string, len(entities.Statistics))
		for i, s := range entities.Statistics {
			stats[i] = string(s)
		}
		params["statistics"] = stats
	}
	if len(entities.Columns) > 0 {
		cols := make([]string, len(entities.Columns))
		for i, c := range entities.Columns {
			cols[i] = string(c)
		}
		params["columns"] = cols
	}
	if len(entities.ColumnNames) > 0 {
		params["columnNames"] = entities.ColumnNames
	}
	if entities.TemplateType != "" {
		params["templateType"] = string(entities.TemplateType)
	}
	if entities.OutputFormat != "" {
		params["outputFormat"] = entities.OutputFormat
	}
	return params
}

// requiredEntities lists per-intent required entity fields
var requiredEntities = map[Intent][]string{
	IntentCreateDaily:     {"dateRange"},
	IntentCreateWeekly:    {"dateRange"},
	IntentCreateMonthly:   {"dateRange"},
	IntentCreateSummary:   {"dateRange"},
	IntentGenerateChart:   {"chartType"},
	IntentQueryStatistics: {"dateRange"},
	IntentQueryEmployee:   {"employeesOrDepartment"},
}

// ValidateIntent checks the intent-specific required entity set and
// returns the missing fields for the caller to prompt on
func (p *Processor) ValidateIntent(result NLPResult) ValidationResult {
	required, ok := requiredEntities[result.Intent]
	if !ok {
		return ValidationResult{Valid: true}
	}

	var missing []string
	for _, field := range required {
		switch field {
		case "dateRange":
			if result.Entities.DateRange == nil {
				missing = append(missing, "dateRange")
			}
		case "chartType":
			if result.Entities.ChartType == "" {
				missing = append(missing, "chartType")
			}
		case "employeesOrDepartment":
			if len(result.Entities.Employees) == 0 && result.Entities.Department == "" {
				missing = append(missing, "employees")
			}
		}
	}

	return ValidationResult{Valid: len(missing) == 0, MissingEntities: missing}
}

// suggestionTable keys canned completions off partial keyword presence
var suggestionTable = []struct {
	trigger     string
	suggestions []string
}{
	{"生成", []string{"生成今天的考勤表", "生成本周考勤表", "生成本月考勤表", "生成考勤汇总表"}},
	{"统计", []string{"统计本月出勤率", "统计本月加班时长", "统计本月迟到次数"}},
	{"查询", []string{"查询员工考勤记录", "查询技术部本月考勤"}},
	{"导", []string{"导入考勤数据", "导出本月考勤表为Excel"}},
	{"图", []string{"生成出勤率饼图", "生成本月工时柱状图"}},
}

// Suggestions offers up to five canned completions for a partial input
func (p *Processor) Suggestions(partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{"生成本月考勤表", "统计本月出勤率", "导入考勤数据", "生成出勤率饼图", "查询员工考勤记录"}
	}

	var out []string
	for _, entry := range suggestionTable {
		if strings.Contains(partial, entry.trigger) {
			out = append(out, entry.suggestions...)
		}
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// ProcessWithAI computes the local result first and, when the mode and
// configuration allow, asks the remote collaborator for a structured
// table. Collaborator failures never propagate: the local result is
// returned together with a non-empty error string.
func (p *Processor) ProcessWithAI(ctx context.Context, input string, pctx *ProcessingContext) (NLPResult, *models.GeneratedTable, string) {
	result := p.Process(input, pctx)

	if p.opts.Mode == ModeLocal || p.generator == nil {
		return result, nil, ""
	}
	if p.opts.Mode == ModeHybrid && result.Confidence >= p.opts.MinConfidence {
		return result, nil, ""
	}

	table, err := p.generator.GenerateTable(ctx, result.NormalizedInput)
	if err != nil {
		p.logger.Warn("AI table generation failed, keeping local result",
			zap.String("input", result.NormalizedInput),
			zap.Error(err))
		return result, nil, err.Error()
	}

	// The collaborator's table overrides parameters and lifts the
	// confidence; locally extracted entities stay as a fallback signal.
	result.Parameters["generatedTable"] = table
	if result.Confidence < p.opts.MinConfidence {
		result.Confidence = p.opts.MinConfidence
	}

	return result, table, ""
}
