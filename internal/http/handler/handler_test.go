package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"recondash/internal/http/middleware"
	"recondash/internal/model"
	"recondash/internal/service"
	serviceMocks "recondash/internal/service/mocks"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func ptr[T any](v T) *T { return &v }

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	return app
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func TestHealthCheck(t *testing.T) {
	var pingErr error
	app := newApp()
	app.Get("/health", HealthCheck(pingFunc(func(context.Context) error { return pingErr })))

	t.Run("healthy", func(t *testing.T) {
		resp := get(t, app, "/health")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decode(t, resp, &body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		pingErr = errors.New("db error")
		resp := get(t, app, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		decode(t, resp, &body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Code)
		assert.NotEmpty(t, body.RequestID)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp := get(t, app, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestKPI(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	core, logs := observer.New(zap.InfoLevel)
	app := newApp()
	app.Get("/api/kpi", KPI(mockSvc, zap.New(core)))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("KPI", mock.Anything).Return(&model.KPI{Total: 2, MismatchPct: 50}, nil).Once()

		resp := get(t, app, "/api/kpi")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Equal(t, 2.0, body["total"])
		assert.Equal(t, 50.0, body["mismatch_pct"])
		assert.Contains(t, body, "sqm_coverage")
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("KPI", mock.Anything).Return(nil, fmt.Errorf("%w: kpi: locked", service.ErrDataUnavailable)).Once()

		resp := get(t, app, "/api/kpi")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		decode(t, resp, &body)
		assert.Equal(t, "Failed to fetch KPI data", body.Error)
		assert.Equal(t, "INTERNAL_ERROR", body.Code)
		assert.Equal(t, 1, logs.FilterMessage("fetch failed").Len())
	})
	mockSvc.AssertExpectations(t)
}

func threeWayResult(tol int) *service.ThreeWayResult {
	return &service.ThreeWayResult{
		Tolerance: tol,
		Rows: []model.ThreeWayRow{
			{SKU: "A-1", MatchStatus: "FAIL", ErrGW: 9, Verdict: "FAIL", ToleranceStatus: model.ToleranceGWExceeded, FinalLocation: ptr("DSV, Indoor")},
			{SKU: "B-2", MatchStatus: "PASS", ErrGW: 1, Verdict: "PASS", ToleranceStatus: model.ToleranceWithin},
			{SKU: "C-3", MatchStatus: "PASS", ErrGW: 0, Verdict: "PASS", ToleranceStatus: model.ToleranceWithin},
		},
		TotalCount:     3,
		FailCount:      1,
		PassCount:      2,
		DisplayedCount: 3,
	}
}

func TestThreeWay(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	app := newApp()
	app.Get("/api/3way", ThreeWay(mockSvc, 10, nil))

	tests := []struct {
		name       string
		target     string
		wantTol    int
		wantStatus int
		wantCode   string
		wantSKUs   []string
	}{
		{name: "default tolerance", target: "/api/3way", wantTol: 10, wantStatus: 200, wantSKUs: []string{"A-1", "B-2", "C-3"}},
		{name: "explicit tolerance", target: "/api/3way?tol=25", wantTol: 25, wantStatus: 200, wantSKUs: []string{"A-1", "B-2", "C-3"}},
		{name: "zero tolerance", target: "/api/3way?tol=0", wantTol: 0, wantStatus: 200, wantSKUs: []string{"A-1", "B-2", "C-3"}},
		{name: "search", target: "/api/3way?q=pass", wantTol: 10, wantStatus: 200, wantSKUs: []string{"B-2", "C-3"}},
		{name: "sort desc", target: "/api/3way?sort=SKU&dir=desc", wantTol: 10, wantStatus: 200, wantSKUs: []string{"C-3", "B-2", "A-1"}},
		{name: "tolerance above range", target: "/api/3way?tol=51", wantStatus: 400, wantCode: "INVALID_TOLERANCE"},
		{name: "negative tolerance", target: "/api/3way?tol=-1", wantStatus: 400, wantCode: "INVALID_TOLERANCE"},
		{name: "non numeric tolerance", target: "/api/3way?tol=ten", wantStatus: 400, wantCode: "INVALID_TOLERANCE"},
		{name: "unknown sort column", target: "/api/3way?sort=nope", wantTol: 10, wantStatus: 400, wantCode: "INVALID_PARAMETER"},
		{name: "bad format", target: "/api/3way?format=xml", wantStatus: 400, wantCode: "INVALID_PARAMETER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := mockSvc.On("ThreeWay", mock.Anything, tt.wantTol).Return(threeWayResult(tt.wantTol), nil).Maybe()
			defer call.Unset()

			resp := get(t, app, tt.target)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				var body errorPayload
				decode(t, resp, &body)
				assert.Equal(t, tt.wantCode, body.Code)
				return
			}

			var body struct {
				Tolerance     int                 `json:"tolerance"`
				Rows          []model.ThreeWayRow `json:"rows"`
				TotalCount    int                 `json:"total_count"`
				FilteredCount int                 `json:"filtered_count"`
			}
			decode(t, resp, &body)
			assert.Equal(t, tt.wantTol, body.Tolerance)
			assert.Equal(t, 3, body.TotalCount)
			assert.Equal(t, len(tt.wantSKUs), body.FilteredCount)
			var skus []string
			for _, r := range body.Rows {
				skus = append(skus, r.SKU)
			}
			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestThreeWay_Paged(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("ThreeWay", mock.Anything, 10).Return(threeWayResult(10), nil)
	app := newApp()
	app.Get("/api/3way", ThreeWay(mockSvc, 10, nil))

	resp := get(t, app, "/api/3way?page=2&page_size=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Rows []model.ThreeWayRow `json:"rows"`
		Page pageInfo            `json:"page"`
	}
	decode(t, resp, &body)
	require.Len(t, body.Rows, 1)
	assert.Equal(t, "C-3", body.Rows[0].SKU)
	assert.Equal(t, pageInfo{Page: 2, PageSize: 2, TotalPages: 2, TotalRows: 3}, body.Page)
}

func TestThreeWay_CSV(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("ThreeWay", mock.Anything, 10).Return(threeWayResult(10), nil)
	app := newApp()
	app.Get("/api/3way", ThreeWay(mockSvc, 10, nil))

	// Pagination is ignored for exports.
	resp := get(t, app, "/api/3way?format=csv&page=1&page_size=1&q=A-1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "3way.csv")

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SKU", records[0][0])
	assert.Equal(t, "A-1", records[1][0])
	assert.Contains(t, records[1], "DSV, Indoor")
}

func TestThreeWay_ServiceError(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("ThreeWay", mock.Anything, 10).Return(nil, service.ErrDataUnavailable)
	app := newApp()
	app.Get("/api/3way", ThreeWay(mockSvc, 10, nil))

	resp := get(t, app, "/api/3way")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body errorPayload
	decode(t, resp, &body)
	assert.Equal(t, "Failed to fetch 3-way reconciliation data", body.Error)
}

func TestHeatmap(t *testing.T) {
	cells := []model.HeatmapCell{
		{Location: "DSV", Month: "2024-01-01", Stock: 3, SQM: 1, SKUCount: 2},
		{Location: "MOSB", Month: "2024-02-01", Stock: 0, SQM: 0, SKUCount: 1},
	}
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("Heatmap", mock.Anything).Return(&service.HeatmapResult{
		Rows:      cells,
		Locations: []model.LocationSummary{},
		Stats:     model.HeatmapStats{TotalStock: 3, TotalSQM: 1, UniqueLocations: 2, UniqueMonths: 2, TotalRecords: 2},
	}, nil)
	app := newApp()
	app.Get("/api/heatmap", Heatmap(mockSvc, nil))

	t.Run("rows and stats", func(t *testing.T) {
		resp := get(t, app, "/api/heatmap")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decode(t, resp, &body)
		assert.Len(t, body["rows"], 2)
		assert.NotContains(t, body, "grid")
		stats := body["stats"].(map[string]any)
		assert.Equal(t, 2.0, stats["unique_months"])
	})

	t.Run("grid keeps absent cells null", func(t *testing.T) {
		resp := get(t, app, "/api/heatmap?layout=grid")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Grid struct {
				Locations []string     `json:"locations"`
				Months    []string     `json:"months"`
				Stock     [][]*float64 `json:"stock"`
			} `json:"grid"`
		}
		decode(t, resp, &body)
		assert.Equal(t, []string{"DSV", "MOSB"}, body.Grid.Locations)
		require.NotNil(t, body.Grid.Stock[1][1])
		assert.Zero(t, *body.Grid.Stock[1][1], "a zero-value cell is present")
		assert.Nil(t, body.Grid.Stock[1][0], "an absent cell is null")
	})

	t.Run("bad layout", func(t *testing.T) {
		resp := get(t, app, "/api/heatmap?layout=pie")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCaseFlow(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("CaseFlow", mock.Anything, "SKU-9").Return(&service.CaseFlowResult{
		SKU:          ptr("SKU-9"),
		Rows:         []model.FlowEvent{{SKU: "SKU-9", SourceType: model.SourceSimulated}},
		GroupedBySKU: map[string][]model.FlowEvent{"SKU-9": {{SKU: "SKU-9", SourceType: model.SourceSimulated}}},
		Stats:        model.FlowStats{TotalEvents: 1, UniqueSKUs: 1, AvgEventsPerSKU: 1},
	}, nil)
	mockSvc.On("CaseFlow", mock.Anything, "").Return(nil, errors.New("boom"))
	app := newApp()
	app.Get("/api/caseflow", CaseFlow(mockSvc, nil))

	resp := get(t, app, "/api/caseflow?sku=SKU-9")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "SKU-9", body["sku"])
	assert.Contains(t, body, "grouped_by_sku")
	assert.Equal(t, 1.0, body["stats"].(map[string]any)["total_events"])

	resp = get(t, app, "/api/caseflow")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var errBody errorPayload
	decode(t, resp, &errBody)
	assert.Equal(t, "Failed to fetch case flow data", errBody.Error)
}

func TestExceptions(t *testing.T) {
	rows := make([]model.ExceptionRow, 150)
	for i := range rows {
		rows[i] = model.ExceptionRow{SKU: fmt.Sprintf("S%03d", i), MatchStatus: "FAIL"}
	}
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("Exceptions", mock.Anything, "fail").Return(&service.ExceptionsResult{
		Filter:        "fail",
		Rows:          rows,
		Stats:         model.ExceptionStats{Total: 150, FailCount: 150},
		FilteredCount: 150,
	}, nil)
	mockSvc.On("Exceptions", mock.Anything, "maybe").Return(nil, service.ErrInvalidFilter)
	app := newApp()
	app.Get("/api/exceptions", Exceptions(mockSvc, nil))

	t.Run("display limit", func(t *testing.T) {
		resp := get(t, app, "/api/exceptions?filter=fail")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Rows           []model.ExceptionRow `json:"rows"`
			FilteredCount  int                  `json:"filtered_count"`
			DisplayedCount int                  `json:"displayed_count"`
		}
		decode(t, resp, &body)
		assert.Len(t, body.Rows, ExceptionDisplayLimit)
		assert.Equal(t, 150, body.FilteredCount)
		assert.Equal(t, ExceptionDisplayLimit, body.DisplayedCount)
	})

	t.Run("paged requests bypass the display limit", func(t *testing.T) {
		resp := get(t, app, "/api/exceptions?filter=fail&page_size=120")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Rows []model.ExceptionRow `json:"rows"`
		}
		decode(t, resp, &body)
		assert.Len(t, body.Rows, 120)
	})

	t.Run("csv exports every filtered row", func(t *testing.T) {
		resp := get(t, app, "/api/exceptions?filter=fail&format=csv")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 151)
	})

	t.Run("invalid filter", func(t *testing.T) {
		resp := get(t, app, "/api/exceptions?filter=maybe")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		decode(t, resp, &body)
		assert.Equal(t, "INVALID_FILTER", body.Code)
	})
}

func TestDashboard(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("Dashboard", mock.Anything, 15).Return(&service.Dashboard{
		KPI:      service.Section[model.KPI]{Data: &model.KPI{Total: 2, MismatchPct: 50}},
		ThreeWay: service.Section[service.ThreeWayResult]{Error: "data unavailable: 3way: locked"},
	})
	app := newApp()
	app.Get("/api/dashboard", Dashboard(mockSvc, 10))

	resp := get(t, app, "/api/dashboard?tol=15")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]map[string]any
	decode(t, resp, &body)
	assert.Equal(t, 50.0, body["kpi"]["data"].(map[string]any)["mismatch_pct"])
	assert.Nil(t, body["three_way"]["data"])
	assert.Equal(t, "data unavailable: 3way: locked", body["three_way"]["error"])

	resp = get(t, app, "/api/dashboard?tol=99")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFlowStages(t *testing.T) {
	app := newApp()
	app.Get("/api/flow-stages", FlowStages())

	resp := get(t, app, "/api/flow-stages")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body []model.FlowStage
	decode(t, resp, &body)
	assert.Equal(t, model.FlowStages, body)
}

func TestErrorHandler(t *testing.T) {
	app := newApp()
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("secret detail") })

	resp := get(t, app, "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body errorPayload
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)

	resp = get(t, app, "/boom")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	decode(t, resp, &body)
	assert.Equal(t, "internal server error", body.Error)
}

func TestRegisterRoutes(t *testing.T) {
	mockSvc := new(serviceMocks.MockReconService)
	mockSvc.On("KPI", mock.Anything).Return(&model.KPI{}, nil)

	reg := prometheus.NewRegistry()
	prom, err := middleware.NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := newApp()
	app.Use(prom.Handler())
	RegisterRoutes(app, Deps{
		Service:          mockSvc,
		Pinger:           pingFunc(func(context.Context) error { return nil }),
		DefaultTolerance: 10,
		Gatherer:         reg,
	})

	for _, path := range []string{"/health", "/healthz", "/api/kpi", "/api/flow-stages"} {
		resp := get(t, app, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := get(t, app, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `http_requests_total{method="GET",path="/api/kpi",status="200"} 1`)
}
