package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppx007/smart-attendance/internal/export"
	"github.com/ppx007/smart-attendance/internal/importer"
	"github.com/ppx007/smart-attendance/internal/models"
	"github.com/ppx007/smart-attendance/internal/nlp"
	"github.com/ppx007/smart-attendance/internal/report"
	"github.com/ppx007/smart-attendance/internal/repository"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	processor *nlp.Processor
	generator *report.Generator
	importer  *importer.Importer
	writer    *export.ExcelWriter
	employees *repository.EmployeeRepository
	records   *repository.RecordRepository
	outputDir string
	logger    Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	processor *nlp.Processor,
	generator *report.Generator,
	imp *importer.Importer,
	writer *export.ExcelWriter,
	employees *repository.EmployeeRepository,
	records *repository.RecordRepository,
	outputDir string,
	logger Logger,
) *Handlers {
	return &Handlers{
		processor: processor,
		generator: generator,
		importer:  imp,
		writer:    writer,
		employees: employees,
		records:   records,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ProcessRequest represents a natural language command submission
type ProcessRequest struct {
	Input   string                 `json:"input" binding:"required"`
	Context *nlp.ProcessingContext `json:"context,omitempty"`
}

// ProcessResponse bundles interpretation, validation and the optional
// model-generated table
type ProcessResponse struct {
	Result         nlp.NLPResult          `json:"result"`
	Validation     nlp.ValidationResult   `json:"validation"`
	GeneratedTable *models.GeneratedTable `json:"generated_table,omitempty"`
	AIError        string                 `json:"ai_error,omitempty"`
	Suggestions    []string               `json:"suggestions,omitempty"`
}

// SuggestRequest asks for command completions of a partial input
type SuggestRequest struct {
	Input string `json:"input"`
}

// ReportRequest represents a report generation request
type ReportRequest struct {
	StartDate         string              `json:"start_date" binding:"required"`
	EndDate           string              `json:"end_date" binding:"required"`
	TemplateType      models.TemplateType `json:"template_type"`
	CustomTemplateID  string              `json:"custom_template_id"`
	Title             string              `json:"title"`
	Department        string              `json:"department"`
	EmployeeIDs       []int64             `json:"employee_ids"`
	IncludeStatistics bool                `json:"include_statistics"`
	OutputFormat      string              `json:"output_format"` // excel or json
}

// ReportResponse represents a generated report
type ReportResponse struct {
	Title      string                       `json:"title"`
	RowCount   int                          `json:"row_count"`
	Statistics *models.AttendanceStatistics `json:"statistics,omitempty"`
	FilePath   string                       `json:"file_path,omitempty"`
	Render     *report.RenderResult         `json:"render,omitempty"`
}

// ChartRequest represents a chart generation request
type ChartRequest struct {
	ChartType  models.ChartType `json:"chart_type"`
	Title      string           `json:"title"`
	StartDate  string           `json:"start_date" binding:"required"`
	EndDate    string           `json:"end_date" binding:"required"`
	Department string           `json:"department"`
}

// ImportRequest represents a row-array import submission
type ImportRequest struct {
	Rows      [][]string              `json:"rows"`
	CSV       string                  `json:"csv"`
	Mapping   *importer.ColumnMapping `json:"mapping,omitempty"`
	HasHeader bool                    `json:"has_header"`
	Persist   bool                    `json:"persist"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ProcessCommand handles POST /api/nlp/process
func (h *Handlers) ProcessCommand(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid process request", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "input is required",
		})
		return
	}

	result, table, aiErr := h.processor.ProcessWithAI(c.Request.Context(), req.Input, req.Context)
	validation := h.processor.ValidateIntent(result)

	response := ProcessResponse{
		Result:         result,
		Validation:     validation,
		GeneratedTable: table,
		AIError:        aiErr,
	}
	if !validation.Valid || result.Intent == nlp.IntentUnknown {
		response.Suggestions = h.processor.Suggestions(req.Input)
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// Suggest handles POST /api/nlp/suggestions
func (h *Handlers) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    h.processor.Suggestions(req.Input),
	})
}

// GenerateReport handles POST /api/reports/generate
func (h *Handlers) GenerateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "start_date and end_date are required",
		})
		return
	}

	dateRange, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	employees, err := h.employees.List("")
	if err != nil {
		h.logger.Error("Failed to load employees", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load employees",
		})
		return
	}

	records, err := h.records.ListByRange(*dateRange)
	if err != nil {
		h.logger.Error("Failed to load records", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load attendance records",
		})
		return
	}

	sheet, err := h.generator.Generate(*dateRange, employees, records, report.GenerateOptions{
		TemplateType:      req.TemplateType,
		CustomTemplateID:  req.CustomTemplateID,
		Title:             req.Title,
		Department:        req.Department,
		EmployeeIDs:       req.EmployeeIDs,
		IncludeStatistics: req.IncludeStatistics,
	})
	if err != nil {
		h.logger.Error("Failed to generate report", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	response := ReportResponse{
		Title:      sheet.Title,
		RowCount:   len(sheet.Render.Rows),
		Statistics: sheet.Statistics,
	}

	if req.OutputFormat == "excel" {
		filename := fmt.Sprintf("%s_%s.xlsx", sheet.Title, time.Now().Format("20060102_150405"))
		outputPath := filepath.Join(h.outputDir, filename)
		if err := h.writer.Write(sheet.Render, sheet.Title, outputPath); err != nil {
			h.logger.Error("Failed to write excel file", "error", err)
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "failed to write excel file",
			})
			return
		}
		response.FilePath = outputPath
	} else {
		response.Render = sheet.Render
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// GenerateChart handles POST /api/reports/chart
func (h *Handlers) GenerateChart(c *gin.Context) {
	var req ChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "start_date and end_date are required",
		})
		return
	}

	dateRange, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	employees, err := h.employees.List(req.Department)
	if err != nil {
		h.logger.Error("Failed to load employees", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load employees",
		})
		return
	}

	records, err := h.records.ListByRange(*dateRange)
	if err != nil {
		h.logger.Error("Failed to load records", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to load attendance records",
		})
		return
	}

	config := report.GenerateChart(req.ChartType, req.Title, *dateRange, employees, records)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    config,
	})
}

// ImportRecords handles POST /api/import. Rows take priority over the
// csv field when both are present.
func (h *Handlers) ImportRecords(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return
	}

	if len(req.Rows) == 0 && req.CSV == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "rows or csv is required",
		})
		return
	}

	h.importer.ClearCache()

	var result *importer.ImportResult
	if len(req.Rows) > 0 {
		mapping := resolveMapping(req)
		result = h.importer.ImportFromArray(req.Rows, mapping, req.HasHeader)
	} else {
		result = h.importer.ImportFromCSV(req.CSV, req.Mapping, req.HasHeader)
	}

	if req.Persist {
		if err := h.persistImport(result); err != nil {
			h.logger.Error("Failed to persist import", "error", err)
			c.JSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "failed to persist imported records",
			})
			return
		}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// persistImport stores imported employees and records, remapping the
// importer's per-job ids onto database ids
func (h *Handlers) persistImport(result *importer.ImportResult) error {
	idMap := make(map[int64]int64, len(result.Employees))
	for i := range result.Employees {
		emp := result.Employees[i]
		jobID := emp.ID
		emp.ID = 0
		if err := h.employees.Upsert(&emp); err != nil {
			return err
		}
		idMap[jobID] = emp.ID
	}

	for i := range result.Records {
		rec := result.Records[i]
		rec.ID = 0
		rec.EmployeeID = idMap[rec.EmployeeID]
		if err := h.records.Create(&rec); err != nil {
			return err
		}
	}
	return nil
}

// resolveMapping picks the explicit mapping, a detected one, or the
// positional default (name, date, check-in, check-out, status)
func resolveMapping(req ImportRequest) importer.ColumnMapping {
	if req.Mapping != nil {
		return *req.Mapping
	}
	if req.HasHeader && len(req.Rows) > 0 {
		return importer.DetectColumnMapping(req.Rows[0])
	}
	return importer.DefaultMapping()
}

func parseRange(start, end string) (*models.DateRange, error) {
	startDate, err := time.ParseInLocation("2006-01-02", start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", start)
	}
	endDate, err := time.ParseInLocation("2006-01-02", end, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", end)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	endDate = time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 23, 59, 59, 0, time.Local)
	return &models.DateRange{Start: startDate, End: endDate}, nil
}
