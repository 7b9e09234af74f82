package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/pkg/config"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

func newHealthRouter(t *testing.T, loadModels bool) *gin.Engine {
	t.Helper()

	cfg := config.ModelConfig{
		ArtifactDir:      t.TempDir(),
		CheckinsArtifact: "checkins_model.json",
		DemandArtifact:   "demand_model.json",
	}
	svc := forecaster.NewService(cfg, nil)

	if loadModels {
		checkins := flatArtifact(models.ModelCheckins, features.CheckinsSchema(), 1)
		require.NoError(t, checkins.Save(cfg.CheckinsPath()))
		demand := flatArtifact(models.ModelDemand, features.DemandSchema(), 1)
		require.NoError(t, demand.Save(cfg.DemandPath()))
		svc.LoadAll()
	}

	handler := NewHealthHandler(nil, svc)
	router := gin.New()
	router.GET("/health", handler.Health)
	router.GET("/health/ready", handler.Ready)
	router.GET("/health/live", handler.Live)
	return router
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		loadModels bool
		wantStatus string
	}{
		{name: "models loaded", loadModels: true, wantStatus: "healthy"},
		{name: "models missing", loadModels: false, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newHealthRouter(t, tt.loadModels)
			w := doGet(router, "/health")
			require.Equal(t, http.StatusOK, w.Code)

			var resp HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Contains(t, resp.Checks, "model:checkins")
			assert.Contains(t, resp.Checks, "model:demand")
		})
	}
}

func TestReady_DegradedWithoutModels(t *testing.T) {
	router := newHealthRouter(t, false)
	w := doGet(router, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
}

func TestLive(t *testing.T) {
	router := newHealthRouter(t, false)
	w := doGet(router, "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
}
