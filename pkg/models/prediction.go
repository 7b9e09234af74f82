package models

import "time"

// ModelName identifies one of the trained forecasting models.
type ModelName string

const (
	ModelCheckins ModelName = "checkins"
	ModelDemand   ModelName = "demand"
)

// Valid reports whether the name refers to a known model.
func (m ModelName) Valid() bool {
	return m == ModelCheckins || m == ModelDemand
}

// Prediction represents one served forecast, as logged to the database
// and broadcast to websocket clients.
type Prediction struct {
	ID           int         `json:"id,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	Model        ModelName   `json:"model"`
	TargetDate   *time.Time  `json:"target_date,omitempty"`
	Value        int         `json:"value"`
	ModelVersion string      `json:"model_version,omitempty"`
	TraceID      string      `json:"trace_id,omitempty"`
	Inputs       interface{} `json:"inputs,omitempty"`
}

func NewPrediction(model ModelName, value int, modelVersion string) *Prediction {
	return &Prediction{
		CreatedAt:    time.Now(),
		Model:        model,
		Value:        value,
		ModelVersion: modelVersion,
	}
}

func (p *Prediction) WithTargetDate(d time.Time) *Prediction {
	p.TargetDate = &d
	return p
}

func (p *Prediction) WithTraceID(traceID string) *Prediction {
	p.TraceID = traceID
	return p
}

// TrainingReport holds the holdout evaluation emitted by a fit run.
// MAE and R2 are observability output, not a pass/fail gate.
type TrainingReport struct {
	Model        ModelName `json:"model"`
	ModelVersion string    `json:"model_version"`
	TrainedAt    time.Time `json:"trained_at"`
	RowsTotal    int       `json:"rows_total"`
	RowsTrain    int       `json:"rows_train"`
	RowsHoldout  int       `json:"rows_holdout"`
	MAE          float64   `json:"mae"`
	R2           float64   `json:"r2"`
}
