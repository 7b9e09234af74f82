package forecaster

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hotelops/demand-forecaster/internal/events"
	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/internal/model"
	"github.com/hotelops/demand-forecaster/pkg/config"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// ErrModelUnavailable indicates no valid artifact is loaded for the
// requested model. The service keeps serving other requests; only the
// affected model reports unavailable.
var ErrModelUnavailable = errors.New("model unavailable")

// Service is the shared serving core. Artifacts are immutable once
// loaded; reloads build the replacement fully and then swap the pointer
// in one step, so in-flight requests never observe a half-updated model.
type Service struct {
	cfg       config.ModelConfig
	publisher *events.Publisher

	checkins atomic.Pointer[model.Artifact]
	demand   atomic.Pointer[model.Artifact]

	now func() time.Time
}

func NewService(cfg config.ModelConfig, publisher *events.Publisher) *Service {
	return &Service{
		cfg:       cfg,
		publisher: publisher,
		now:       time.Now,
	}
}

// LoadAll attempts to load every artifact at startup. A missing or
// corrupt artifact leaves that model unavailable but never prevents the
// service from starting.
func (s *Service) LoadAll() {
	for _, name := range []models.ModelName{models.ModelCheckins, models.ModelDemand} {
		if _, err := s.Reload(name); err != nil {
			logger.WithModel(string(name)).Warnf("Model not loaded, serving unavailable: %v", err)
		}
	}
}

// Reload reads the artifact from disk and atomically swaps it in.
func (s *Service) Reload(name models.ModelName) (*model.Artifact, error) {
	artifact, err := model.Load(s.artifactPath(name))
	if err != nil {
		s.publisher.ModelLoadError(name, err)
		return nil, err
	}
	if artifact.Model != name {
		err := fmt.Errorf("%w: artifact is for model %q, expected %q", model.ErrArtifactInvalid, artifact.Model, name)
		s.publisher.ModelLoadError(name, err)
		return nil, err
	}

	s.holder(name).Store(artifact)
	s.publisher.ModelReloaded(name, artifact.Version)
	// Training runs out of process, so the swap-in is where the new
	// model's evaluation reaches the bus.
	if !artifact.Report.TrainedAt.IsZero() {
		report := artifact.Report
		s.publisher.ModelTrained(&report)
	}
	logger.WithModel(string(name)).Infof("Model artifact loaded (version %s)", artifact.Version)
	return artifact, nil
}

// Artifact returns the loaded artifact for a model.
func (s *Service) Artifact(name models.ModelName) (*model.Artifact, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("unknown model %q", name)
	}
	artifact := s.holder(name).Load()
	if artifact == nil {
		return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, name)
	}
	return artifact, nil
}

func (s *Service) holder(name models.ModelName) *atomic.Pointer[model.Artifact] {
	if name == models.ModelDemand {
		return &s.demand
	}
	return &s.checkins
}

func (s *Service) artifactPath(name models.ModelName) string {
	if name == models.ModelDemand {
		return s.cfg.DemandPath()
	}
	return s.cfg.CheckinsPath()
}

// CheckinsResult is one served check-in forecast plus the exact feature
// vector that produced it.
type CheckinsResult struct {
	Date         time.Time       `json:"date"`
	Value        int             `json:"predicted_check_in_count"`
	Features     features.Vector `json:"used_features"`
	ModelVersion string          `json:"model_version"`
}

// PredictCheckins forecasts daily guest check-ins for a target date.
func (s *Service) PredictCheckins(date time.Time) (*CheckinsResult, error) {
	artifact, err := s.Artifact(models.ModelCheckins)
	if err != nil {
		return nil, err
	}

	vector, err := features.AssembleCheckinsServing(date, s.now(), artifact.Averages)
	if err != nil {
		return nil, err
	}

	value, err := artifact.Predict(vector)
	if err != nil {
		s.publisher.Error(models.ModelCheckins, "Check-in prediction failed", err)
		return nil, err
	}

	s.publisher.PredictionMade(
		models.NewPrediction(models.ModelCheckins, value, artifact.Version).WithTargetDate(date),
	)

	return &CheckinsResult{
		Date:         date,
		Value:        value,
		Features:     vector,
		ModelVersion: artifact.Version,
	}, nil
}

// DemandResult is one served room-demand forecast.
type DemandResult struct {
	Value        int                     `json:"predicted_room_demand"`
	Drivers      features.DemandDrivers  `json:"drivers"`
	ModelVersion string                  `json:"model_version"`
}

// PredictDemand forecasts room demand from explicit drivers.
func (s *Service) PredictDemand(drivers features.DemandDrivers) (*DemandResult, error) {
	artifact, err := s.Artifact(models.ModelDemand)
	if err != nil {
		return nil, err
	}

	vector, err := features.AssembleDemand(drivers)
	if err != nil {
		return nil, err
	}

	value, err := artifact.Predict(vector)
	if err != nil {
		s.publisher.Error(models.ModelDemand, "Demand prediction failed", err)
		return nil, err
	}

	s.publisher.PredictionMade(models.NewPrediction(models.ModelDemand, value, artifact.Version))

	return &DemandResult{
		Value:        value,
		Drivers:      drivers,
		ModelVersion: artifact.Version,
	}, nil
}

// DriversForDate derives demand drivers from a target date. The averages
// table frozen into the check-in artifact supplies the lead-time estimate
// when that model is loaded; otherwise the fixed default profile applies.
func (s *Service) DriversForDate(date time.Time) features.DemandDrivers {
	var averages *features.AveragesTable
	if checkins := s.checkins.Load(); checkins != nil {
		averages = checkins.Averages
	}
	return features.DriversForDate(date, s.now(), averages)
}

// ModelStatus reports the serving state of one model.
type ModelStatus struct {
	Model     models.ModelName       `json:"model"`
	Available bool                   `json:"available"`
	Version   string                 `json:"version,omitempty"`
	TrainedAt *time.Time             `json:"trained_at,omitempty"`
	Report    *models.TrainingReport `json:"report,omitempty"`
}

// Status reports every model's serving state.
func (s *Service) Status() []ModelStatus {
	statuses := make([]ModelStatus, 0, 2)
	for _, name := range []models.ModelName{models.ModelCheckins, models.ModelDemand} {
		status := ModelStatus{Model: name}
		if artifact := s.holder(name).Load(); artifact != nil {
			status.Available = true
			status.Version = artifact.Version
			status.TrainedAt = &artifact.TrainedAt
			report := artifact.Report
			status.Report = &report
		}
		statuses = append(statuses, status)
	}
	return statuses
}
