package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/internal/model"
	"github.com/hotelops/demand-forecaster/pkg/config"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func flatArtifact(name models.ModelName, schema features.Schema, intercept float64) *model.Artifact {
	return &model.Artifact{
		Version:   "test-" + string(name),
		Model:     name,
		TrainedAt: time.Now().UTC(),
		Schema:    schema,
		Coefficients: model.Regressor{
			Intercept: intercept,
			Weights:   make([]float64, schema.Len()),
		},
	}
}

// newTestRouter wires the prediction routes against a service with both
// models loaded as constant-output regressors.
func newTestRouter(t *testing.T, loadModels bool) *gin.Engine {
	t.Helper()

	cfg := config.ModelConfig{
		ArtifactDir:      t.TempDir(),
		CheckinsArtifact: "checkins_model.json",
		DemandArtifact:   "demand_model.json",
	}
	svc := forecaster.NewService(cfg, nil)

	if loadModels {
		checkins := flatArtifact(models.ModelCheckins, features.CheckinsSchema(), 42)
		require.NoError(t, checkins.Save(cfg.CheckinsPath()))
		demand := flatArtifact(models.ModelDemand, features.DemandSchema(), 17)
		require.NoError(t, demand.Save(cfg.DemandPath()))
		svc.LoadAll()
	}

	handler := NewPredictHandler(svc, nil)
	router := gin.New()
	router.GET("/api/v1/predict/checkins", handler.Checkins)
	router.GET("/api/v1/predict/demand", handler.Demand)
	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestCheckins_OK(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/api/v1/predict/checkins?date=2025-12-06")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CheckinsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-12-06", resp.Date)
	assert.Equal(t, 42, resp.PredictedCheckinCount)
	assert.Equal(t, "test-checkins", resp.ModelVersion)
	assert.Contains(t, resp.UsedFeatures, "days_out")
	assert.Equal(t, 12.0, resp.UsedFeatures["month"])
}

func TestCheckins_BadDate(t *testing.T) {
	router := newTestRouter(t, true)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing date", path: "/api/v1/predict/checkins"},
		{name: "malformed date", path: "/api/v1/predict/checkins?date=06/12/2025"},
		{name: "nonsense date", path: "/api/v1/predict/checkins?date=not-a-date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.path)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp, "error")
		})
	}
}

func TestCheckins_ModelUnavailable(t *testing.T) {
	router := newTestRouter(t, false)

	w := doGet(router, "/api/v1/predict/checkins?date=2025-12-06")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}

func TestDemand_ByDate(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/api/v1/predict/demand?date=2025-07-14")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DemandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 17, resp.PredictedRoomDemand)
	assert.Equal(t, 7, resp.Drivers.Month)
	assert.Equal(t, 1, resp.Drivers.IsHolidaySeason)
}

func TestDemand_ByDrivers(t *testing.T) {
	router := newTestRouter(t, true)

	w := doGet(router, "/api/v1/predict/demand?month=12&year=2025&day_of_week=5&avg_adr=150.5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp DemandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 17, resp.PredictedRoomDemand)
	assert.Equal(t, 12, resp.Drivers.Month)
	assert.Equal(t, 1, resp.Drivers.IsWeekend)        // derived from day_of_week
	assert.Equal(t, 1, resp.Drivers.IsHolidaySeason)  // derived from month
	assert.Equal(t, 150.5, resp.Drivers.AvgADR)
}

func TestDemand_BadInput(t *testing.T) {
	router := newTestRouter(t, true)

	tests := []struct {
		name string
		path string
	}{
		{name: "missing month", path: "/api/v1/predict/demand"},
		{name: "month out of range", path: "/api/v1/predict/demand?month=13"},
		{name: "month zero", path: "/api/v1/predict/demand?month=0"},
		{name: "month not a number", path: "/api/v1/predict/demand?month=july"},
		{name: "day of week out of range", path: "/api/v1/predict/demand?month=7&day_of_week=7"},
		{name: "bad float", path: "/api/v1/predict/demand?month=7&avg_adr=lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGet(router, tt.path)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp, "error")
		})
	}
}

func TestDemand_ModelUnavailable(t *testing.T) {
	router := newTestRouter(t, false)

	w := doGet(router, "/api/v1/predict/demand?month=7")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
