package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppx007/smart-attendance/internal/export"
	"github.com/ppx007/smart-attendance/internal/importer"
	"github.com/ppx007/smart-attendance/internal/models"
	"github.com/ppx007/smart-attendance/internal/nlp"
	"github.com/ppx007/smart-attendance/internal/report"
	"github.com/ppx007/smart-attendance/internal/repository"
	"github.com/ppx007/smart-attendance/pkg/database"
	"github.com/ppx007/smart-attendance/pkg/utils"
)

// newTestServer wires the full pipeline against a throwaway database
func newTestServer(t *testing.T) (*Server, *repository.EmployeeRepository, *repository.RecordRepository) {
	t.Helper()

	logger := zap.NewNop()

	db, err := database.New(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).RunMigrations())

	employeeRepo := repository.NewEmployeeRepository(db.DB, logger)
	recordRepo := repository.NewRecordRepository(db.DB, logger)

	processor := nlp.NewProcessor(nlp.DefaultOptions(), nil, logger)
	generator := report.NewGenerator(report.NewRegistry(), report.NewEngine(), logger)
	imp := importer.NewImporter(logger)
	writer := export.NewExcelWriter(logger)

	handlers := NewHandlers(
		processor,
		generator,
		imp,
		writer,
		employeeRepo,
		recordRepo,
		t.TempDir(),
		utils.NewKVLogger(logger),
	)

	server := NewServer(DefaultServerConfig(), handlers, utils.NewKVLogger(logger))
	return server, employeeRepo, recordRepo
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestHealthCheck(t *testing.T) {
	server, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	assert.Equal(t, true, response["success"])
}

func TestProcessCommandEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/nlp/process", ProcessRequest{Input: "生成2024年1月考勤表"})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	data := response["data"].(map[string]any)
	result := data["result"].(map[string]any)
	assert.Equal(t, "CREATE_MONTHLY", result["intent"])
	validation := data["validation"].(map[string]any)
	assert.Equal(t, true, validation["valid"])
}

func TestProcessCommandRequiresInput(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/nlp/process", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessCommandSuggestsOnUnknown(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/nlp/process", ProcessRequest{Input: "生成"})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	data := response["data"].(map[string]any)
	assert.NotEmpty(t, data["suggestions"])
}

func TestSuggestEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/nlp/suggestions", SuggestRequest{Input: "统计"})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	assert.NotEmpty(t, response["data"])
}

func TestImportEndpoint(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/import", ImportRequest{
		Rows: [][]string{
			{"张三", "2024-01-15", "09:30", "18:00", "迟到"},
			{"李四", "2024-01-15", "09:00", "18:00", "正常"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	data := response["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["imported"])
	assert.Equal(t, float64(0), stats["failed"])
}

func TestImportEndpointRequiresRows(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/import", ImportRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportEndpointPersists(t *testing.T) {
	server, employeeRepo, recordRepo := newTestServer(t)

	rec := postJSON(t, server, "/api/import", ImportRequest{
		Rows: [][]string{
			{"张三", "2024-01-15", "09:30", "18:00", "迟到"},
		},
		Persist: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	employees, err := employeeRepo.List("")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "张三", employees[0].Name)

	records, err := recordRepo.ListByRange(models.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, employees[0].ID, records[0].EmployeeID)
	assert.Equal(t, models.StatusLate, records[0].Status)
}

func TestGenerateReportEndpoint(t *testing.T) {
	server, employeeRepo, recordRepo := newTestServer(t)

	emp := &models.Employee{Name: "张三", EmployeeNo: "E001", Department: "技术部"}
	require.NoError(t, employeeRepo.Create(emp))
	require.NoError(t, recordRepo.Create(&models.AttendanceRecord{
		EmployeeID:  emp.ID,
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		CheckInTime: "09:00",
		WorkHours:   8,
		Status:      models.StatusNormal,
	}))

	rec := postJSON(t, server, "/api/reports/generate", ReportRequest{
		StartDate:         "2024-01-01",
		EndDate:           "2024-01-31",
		TemplateType:      models.TemplateMonthly,
		IncludeStatistics: true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	data := response["data"].(map[string]any)
	assert.Equal(t, float64(1), data["row_count"])
	assert.NotNil(t, data["statistics"])
	assert.NotNil(t, data["render"])
}

func TestGenerateReportValidatesDates(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := postJSON(t, server, "/api/reports/generate", ReportRequest{
		StartDate: "2024-01-31",
		EndDate:   "2024-01-01",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateChartEndpoint(t *testing.T) {
	server, employeeRepo, _ := newTestServer(t)

	require.NoError(t, employeeRepo.Create(&models.Employee{Name: "张三", Department: "技术部"}))

	rec := postJSON(t, server, "/api/reports/chart", ChartRequest{
		ChartType: models.ChartBar,
		Title:     "工时对比",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeResponse(t, rec)
	data := response["data"].(map[string]any)
	assert.Equal(t, "bar", data["type"])
}
