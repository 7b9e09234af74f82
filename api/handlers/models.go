package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/pkg/database/queries"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

const defaultPredictionListLimit = 50

type ModelHandler struct {
	service     *forecaster.Service
	predictions *queries.PredictionRepository
}

func NewModelHandler(service *forecaster.Service, predictions *queries.PredictionRepository) *ModelHandler {
	return &ModelHandler{
		service:     service,
		predictions: predictions,
	}
}

// List serves GET /api/v1/models
func (h *ModelHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.service.Status()})
}

// Reload serves POST /api/v1/models/:name/reload. It re-reads the
// artifact from disk and swaps it in without interrupting in-flight
// predictions.
func (h *ModelHandler) Reload(c *gin.Context) {
	name := models.ModelName(c.Param("name"))
	if !name.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown model: " + string(name)})
		return
	}

	artifact, err := h.service.Reload(name)
	if err != nil {
		logger.WithModel(string(name)).Errorf("Reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model":      name,
		"version":    artifact.Version,
		"trained_at": artifact.TrainedAt,
	})
}

// Predictions serves GET /api/v1/predictions with optional model and
// limit query parameters.
func (h *ModelHandler) Predictions(c *gin.Context) {
	model := models.ModelName(c.Query("model"))
	if model != "" && !model.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown model: " + string(model)})
		return
	}

	limit := defaultPredictionListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	predictions, err := h.predictions.ListRecent(ctx, model, limit)
	if err != nil {
		logger.Errorf("Failed to list predictions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(predictions),
		"predictions": predictions,
	})
}
