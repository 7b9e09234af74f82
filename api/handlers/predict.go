package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelops/demand-forecaster/api/middleware"
	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/pkg/database/queries"
	"github.com/hotelops/demand-forecaster/pkg/models"
	"github.com/hotelops/demand-forecaster/pkg/validation"
)

type PredictHandler struct {
	service     *forecaster.Service
	predictions *queries.PredictionRepository
}

func NewPredictHandler(service *forecaster.Service, predictions *queries.PredictionRepository) *PredictHandler {
	return &PredictHandler{
		service:     service,
		predictions: predictions,
	}
}

type CheckinsResponse struct {
	Date                  string          `json:"date"`
	PredictedCheckinCount int             `json:"predicted_check_in_count"`
	UsedFeatures          features.Vector `json:"used_features"`
	ModelVersion          string          `json:"model_version"`
}

// Checkins serves GET /api/v1/predict/checkins?date=YYYY-MM-DD
func (h *PredictHandler) Checkins(c *gin.Context) {
	date, err := validation.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.service.PredictCheckins(date)
	if err != nil {
		respondError(c, err)
		return
	}

	h.logPrediction(c,
		models.NewPrediction(models.ModelCheckins, result.Value, result.ModelVersion).
			WithTargetDate(result.Date))

	c.JSON(http.StatusOK, CheckinsResponse{
		Date:                  result.Date.Format(validation.DateLayout),
		PredictedCheckinCount: result.Value,
		UsedFeatures:          result.Features,
		ModelVersion:          result.ModelVersion,
	})
}

type DemandResponse struct {
	PredictedRoomDemand int                    `json:"predicted_room_demand"`
	Drivers             features.DemandDrivers `json:"drivers"`
	ModelVersion        string                 `json:"model_version"`
}

// Demand serves GET /api/v1/predict/demand. The request carries either a
// target date or explicit demand drivers; with explicit drivers the month
// is mandatory because the dummy block derives from it.
func (h *PredictHandler) Demand(c *gin.Context) {
	var drivers features.DemandDrivers
	var targetDate *time.Time

	if rawDate := c.Query("date"); rawDate != "" {
		date, err := validation.ParseDate(rawDate)
		if err != nil {
			respondError(c, err)
			return
		}
		drivers = h.service.DriversForDate(date)
		targetDate = &date
	} else {
		parsed, err := parseDemandDrivers(c)
		if err != nil {
			respondError(c, err)
			return
		}
		drivers = parsed
	}

	result, err := h.service.PredictDemand(drivers)
	if err != nil {
		respondError(c, err)
		return
	}

	prediction := models.NewPrediction(models.ModelDemand, result.Value, result.ModelVersion)
	if targetDate != nil {
		prediction.WithTargetDate(*targetDate)
	}
	h.logPrediction(c, prediction)

	c.JSON(http.StatusOK, DemandResponse{
		PredictedRoomDemand: result.Value,
		Drivers:             result.Drivers,
		ModelVersion:        result.ModelVersion,
	})
}

// parseDemandDrivers reads explicit drivers from query parameters. Month
// is required; the remaining fields fall back to the reference defaults,
// with is_weekend and is_holiday_season derived from day_of_week and
// month when the caller leaves them out.
func parseDemandDrivers(c *gin.Context) (features.DemandDrivers, error) {
	month, err := validation.ParseIntField("month", c.Query("month"))
	if err != nil {
		return features.DemandDrivers{}, err
	}
	if err := validation.ValidateMonth(month); err != nil {
		return features.DemandDrivers{}, err
	}

	drivers := features.DemandDrivers{
		Month:               month,
		Year:                time.Now().Year(),
		DayOfWeek:           4,
		AvgLeadTime:         30,
		SumPreviousBookings: 5,
		AvgADR:              100,
		TotalChildren:       2,
	}

	if raw := c.Query("year"); raw != "" {
		if drivers.Year, err = validation.ParseIntField("year", raw); err != nil {
			return features.DemandDrivers{}, err
		}
	}
	if raw := c.Query("day_of_week"); raw != "" {
		if drivers.DayOfWeek, err = validation.ParseIntField("day_of_week", raw); err != nil {
			return features.DemandDrivers{}, err
		}
		if err := validation.ValidateDayOfWeek(drivers.DayOfWeek); err != nil {
			return features.DemandDrivers{}, err
		}
	}

	if raw := c.Query("is_weekend"); raw != "" {
		if drivers.IsWeekend, err = validation.ParseIntField("is_weekend", raw); err != nil {
			return features.DemandDrivers{}, err
		}
	} else if drivers.DayOfWeek >= 5 {
		drivers.IsWeekend = 1
	}

	if raw := c.Query("is_holiday_season"); raw != "" {
		if drivers.IsHolidaySeason, err = validation.ParseIntField("is_holiday_season", raw); err != nil {
			return features.DemandDrivers{}, err
		}
	} else if month == 7 || month == 8 || month == 12 {
		drivers.IsHolidaySeason = 1
	}

	for name, target := range map[string]*float64{
		"avg_lead_time":         &drivers.AvgLeadTime,
		"sum_previous_bookings": &drivers.SumPreviousBookings,
		"avg_adr":               &drivers.AvgADR,
		"total_children":        &drivers.TotalChildren,
	} {
		if raw := c.Query(name); raw != "" {
			if *target, err = validation.ParseFloatField(name, raw); err != nil {
				return features.DemandDrivers{}, err
			}
		}
	}

	return drivers, nil
}

// logPrediction writes the served prediction to the log table.
// Best-effort: a failed insert is logged and forgotten.
func (h *PredictHandler) logPrediction(c *gin.Context, p *models.Prediction) {
	if h.predictions == nil {
		return
	}
	p.WithTraceID(middleware.GetTraceID(c))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.predictions.Insert(ctx, p); err != nil {
		logger.WithModel(string(p.Model)).Warnf("Failed to log prediction: %v", err)
	}
}

// respondError maps core errors onto HTTP statuses. Schema mismatches are
// deployment defects and are logged loudly before the 500 goes out.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, forecaster.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, features.ErrSchemaMismatch):
		logger.Errorf("Schema mismatch while serving: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "feature schema mismatch"})
	default:
		logger.Errorf("Prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
	}
}
