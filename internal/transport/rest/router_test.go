package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specanalyzer/internal/analyzer"
	"specanalyzer/internal/model"
	"specanalyzer/internal/service"
)

type memSessionRepo struct {
	sessions []*model.AnalysisSession
}

func (m *memSessionRepo) Create(_ context.Context, s *model.AnalysisSession) error {
	m.sessions = append(m.sessions, s)
	return nil
}

func (m *memSessionRepo) GetBySessionID(_ context.Context, sessionID string) (*model.AnalysisSession, error) {
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *memSessionRepo) List(_ context.Context, limit int) ([]*model.AnalysisSession, error) {
	if len(m.sessions) > limit {
		return m.sessions[:limit], nil
	}
	return m.sessions, nil
}

func (m *memSessionRepo) Delete(_ context.Context, sessionID string) error {
	for i, s := range m.sessions {
		if s.SessionID == sessionID {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memSessionRepo) CountByDecision(_ context.Context) (map[model.Decision]int64, error) {
	counts := make(map[model.Decision]int64)
	for _, s := range m.sessions {
		counts[s.Decision]++
	}
	return counts, nil
}

type memTemplateRepo struct {
	templates map[string]*model.AnalysisTemplate
}

func (m *memTemplateRepo) Seed(_ context.Context, templates []model.AnalysisTemplate) error {
	for i := range templates {
		t := templates[i]
		if _, exists := m.templates[t.TemplateName]; !exists {
			m.templates[t.TemplateName] = &t
		}
	}
	return nil
}

func (m *memTemplateRepo) List(_ context.Context) ([]*model.AnalysisTemplate, error) {
	out := make([]*model.AnalysisTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTemplateRepo) GetByName(_ context.Context, name string) (*model.AnalysisTemplate, error) {
	return m.templates[name], nil
}

func (m *memTemplateRepo) IncrementUsage(_ context.Context, name string) error {
	if t, ok := m.templates[name]; ok {
		t.UsageCount++
	}
	return nil
}

type memStatsCache struct {
	total int64
}

func (m *memStatsCache) RecordAnalysis(_ context.Context, _ model.Decision, _ int64) error {
	m.total++
	return nil
}

func (m *memStatsCache) Snapshot(_ context.Context) (*model.StatsSnapshot, error) {
	return &model.StatsSnapshot{
		TotalAnalyses:  m.total,
		DecisionCounts: map[model.Decision]int64{},
	}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *memSessionRepo) {
	t.Helper()

	engine := analyzer.New(analyzer.DefaultSettings())
	sessions := &memSessionRepo{}
	templates := &memTemplateRepo{templates: make(map[string]*model.AnalysisTemplate)}

	analysisSvc := service.NewAnalysisService(engine, sessions, &memStatsCache{}, 1<<20, 30*time.Second)
	templateSvc := service.NewTemplateService(templates)
	require.NoError(t, templateSvc.SeedDefaults(context.Background()))

	router := NewRouter(&Container{
		AnalysisService: analysisSvc,
		TemplateService: templateSvc,
	})
	return router, sessions
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const analyzableDocument = `Power Supply Unit Model: PSU-12V-5A
Output Voltage: 12V DC
Max Output Current: 5 Amps

LED Strip Model: RGB-5M
Required Input Voltage: 12V DC
Current Draw: 4 Amps`

func TestAnalyzeEndpoint(t *testing.T) {
	router, sessions := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/analyze", map[string]string{
		"document_text": analyzableDocument,
		"user_query":    "Can the PSU safely power the LED strip?",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Session-Id"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Compatible", body["Decision"])
	assert.Equal(t, "High", body["Confidence_Score"])
	assert.NotEmpty(t, body["Justification"])
	assert.Contains(t, body, "Extracted_Technical_Data")
	assert.Contains(t, body, "Referenced_Sections")

	require.Len(t, sessions.sessions, 1)
	assert.Equal(t, rec.Header().Get("X-Session-Id"), sessions.sessions[0].SessionID)
}

func TestAnalyzeEndpointEmptyInput(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/analyze", map[string]string{
		"document_text": "",
		"user_query":    "anything",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestAnalyzeEndpointInvalidBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/analyze", map[string]string{
		"document_text": analyzableDocument,
		"user_query":    "Can the PSU safely power the LED strip?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get("X-Session-Id")

	rec = doJSON(t, router, http.MethodGet, "/v1/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var session model.AnalysisSession
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, sessionID, session.SessionID)
	assert.Equal(t, model.DecisionCompatible, session.Decision)

	rec = doJSON(t, router, http.MethodGet, "/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/v1/sessions/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/sessions/"+sessionID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/analyze", map[string]string{
		"document_text": analyzableDocument,
		"user_query":    "Can the PSU safely power the LED strip?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot model.StatsSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(1), snapshot.TotalAnalyses)
}

func TestTemplateEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/v1/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing map[string][]model.AnalysisTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.NotEmpty(t, listing["templates"])

	rec = doJSON(t, router, http.MethodGet, "/v1/templates/psu_led_compatibility", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tpl model.AnalysisTemplate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tpl))
	assert.Equal(t, "psu_led_compatibility", tpl.TemplateName)
	assert.NotEmpty(t, tpl.ExampleDocument)

	rec = doJSON(t, router, http.MethodGet, "/v1/templates/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/analyze", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
