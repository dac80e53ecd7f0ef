package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmeehan/nestegg/internal/calculation"
	"github.com/kmeehan/nestegg/internal/domain"
)

func testServer(cfg Config) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(calculation.NewPlanEngine(), logger, cfg)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	router := testServer(Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAllocateEndpoint(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/allocate", map[string]any{
		"periodIncome": "4000",
		"targets":      map[string]string{"needs": "0.50", "wants": "0.30", "savings": "0.20"},
		"actuals":      map[string]string{"needs": "0.50", "wants": "0.35", "savings": "0.15"},
		"shiftLimit":   "0.04",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var result domain.AllocationResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "1240.00", result.Wants.StringFixed(2))
	assert.Equal(t, "760.00", result.Savings.StringFixed(2))
	assert.True(t, result.HasNote(domain.NoteShiftLimited))
}

func TestAllocateEndpoint_RejectsBadMix(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/allocate", map[string]any{
		"periodIncome": "4000",
		"targets":      map[string]string{"needs": "0.70", "wants": "0.70", "savings": "0.20"},
		"actuals":      map[string]string{"needs": "0.50", "wants": "0.35", "savings": "0.15"},
		"shiftLimit":   "0.04",
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "sum to 1.0")
}

func TestWaterfallEndpoint(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/waterfall", map[string]any{
		"budget": "1000",
		"facts": map[string]any{
			"efTarget":           "10000",
			"efBalance":          "1000",
			"matchNeedPerMonth":  "200",
			"highAprDebtBalance": "5000",
			"iraAnnualRoom":      "7000",
			"room401kAnnual":     "23500",
			"liquidity":          "medium",
			"retirementFocus":    "medium",
		},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var bd domain.SavingsBreakdown
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bd))
	assert.Equal(t, "200.00", bd.Match401k.StringFixed(2))
	assert.Equal(t, "400.00", bd.EmergencyFund.StringFixed(2))
	assert.Equal(t, "240.00", bd.Debt.StringFixed(2))
}

func TestWaterfallEndpoint_RejectsUnknownCategory(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/waterfall", map[string]any{
		"budget": "1000",
		"facts":  map[string]any{},
		"change": map[string]any{"category": "yacht"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimulateEndpoint(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/simulate", map[string]any{
		"horizonMonths": 3,
		"monthlyPlan":   []map[string]string{{"ef": "100"}},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var out domain.SimulationOutput
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out.NetWorth, 3)
	assert.Equal(t, "300.00", out.NetWorth[2].StringFixed(2))
}

func TestSimulateEndpoint_RequiresHorizon(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/simulate", map[string]any{"horizonMonths": 0})

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPlanEndpoint(t *testing.T) {
	router := testServer(Config{}).Router()

	rr := postJSON(t, router, "/v1/plan", map[string]any{
		"profile": map[string]any{
			"income": map[string]any{
				"periodIncome": "4000",
				"targets":      map[string]string{"needs": "0.50", "wants": "0.30", "savings": "0.20"},
				"actuals":      map[string]string{"needs": "0.50", "wants": "0.35", "savings": "0.15"},
				"shiftLimit":   "0.04",
			},
			"payPeriodsPerYear": 26,
			"facts": map[string]any{
				"efTarget":  "15000",
				"efBalance": "2000",
			},
			"balances":      map[string]string{"cash": "2000"},
			"assumptions":   map[string]string{"cashYield": "0.04", "nominalReturn": "0.07"},
			"horizonMonths": 12,
		},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	var result domain.PlanResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "1646.67", result.MonthlySavings.StringFixed(2))
	require.Len(t, result.Simulation.NetWorth, 12)
}

func TestPlanEndpoint_MalformedBody(t *testing.T) {
	router := testServer(Config{}).Router()

	req := httptest.NewRequest(http.MethodPost, "/v1/plan", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRateLimiting(t *testing.T) {
	router := testServer(Config{RateLimit: 1, Burst: 1}).Router()

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	router := testServer(Config{}).Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/plan", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
