package apiserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/sustainamine/sustainamine/api/v1alpha1"
	"github.com/sustainamine/sustainamine/internal/config"
	"github.com/sustainamine/sustainamine/internal/estimation"
	"github.com/sustainamine/sustainamine/internal/service"
	"github.com/sustainamine/sustainamine/pkg/metrics"
	"github.com/sustainamine/sustainamine/pkg/requestid"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)

	s := New(cfg, nil, service.NewEstimationService(estimation.NewCalculator(), nil), service.NewReportService())
	router, err := s.Router(metrics.NewMiddleware("api_server_test"))
	require.NoError(t, err)
	return router
}

func post(t *testing.T, router http.Handler, target string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func copperRequest() map[string]any {
	return map[string]any{
		"metal":           "Copper",
		"oreQuality":      "Low",
		"productionRoute": "Mixed",
		"recycledPct":     50,
		"energySource":    "Coal",
		"transportKm":     0,
		"quantityTonnes":  10,
		"endOfLife":       "Recycling",
		"storagePractice": "TemporaryOpen",
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
}

func TestCreateEstimate_Copper(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/v1/estimates", copperRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var estimate api.Estimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &estimate))
	assert.InDelta(t, 6.0, estimate.Result.Co2PerKg, 1e-9)
	assert.InDelta(t, 6000.0, estimate.Result.Co2PerTonneInclTransport, 1e-9)
	assert.InDelta(t, 400.0, estimate.Result.So2Kg, 1e-9)
	assert.InDelta(t, 55.0, estimate.Result.CircularityScore, 1e-9)
	assert.InDelta(t, 3000.0, estimate.Result.RecyclingCostUsd, 1e-9)

	topics := make([]string, 0, len(estimate.Result.ComplianceFlags))
	for _, f := range estimate.Result.ComplianceFlags {
		topics = append(topics, f.Topic)
	}
	assert.Equal(t, []string{"Storage practice", "Air emissions"}, topics)
}

func TestRequestSchemaIsEnforced(t *testing.T) {
	router := newTestRouter(t)

	body := copperRequest()
	body["transportKm"] = 6000
	rec := post(t, router, "/api/v1/estimates", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Contains(t, apiErr.Message, "API Error")
}

func TestRequiredInputFields(t *testing.T) {
	router := newTestRouter(t)

	for _, field := range []string{"recycledPct", "transportKm", "quantityTonnes", "storagePractice"} {
		t.Run(field, func(t *testing.T) {
			body := copperRequest()
			delete(body, field)

			rec := post(t, router, "/api/v1/estimates", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateReport_UnknownFormat(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/v1/reports?format=docx", copperRequest())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReport_Xlsx(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/api/v1/reports?format=xlsx", copperRequest())

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="SustainaMine_LCA_Summary.xlsx"`, rec.Header().Get("Content-Disposition"))
	// xlsx files are zip archives
	assert.Equal(t, []byte("PK"), rec.Body.Bytes()[:2])
}

func TestPathPrefix(t *testing.T) {
	t.Setenv("SUSTAINAMINE_PATH_PREFIX", "/sustainamine")
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sustainamine/api/v1/factors", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "copper_virgin_kgco2_per_kg")
}

func TestCorsPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/estimates", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
