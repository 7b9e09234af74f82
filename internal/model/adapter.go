package model

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// FitConfig controls the train/holdout split and regularization.
// Zero values fall back to the defaults the reference models used.
type FitConfig struct {
	HoldoutFraction float64
	Seed            int64
	RidgeLambda     float64
}

func (c FitConfig) withDefaults() FitConfig {
	if c.HoldoutFraction == 0 {
		c.HoldoutFraction = 0.2
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.RidgeLambda == 0 {
		c.RidgeLambda = 1.0
	}
	return c
}

// Fit trains a regressor on named feature vectors. Every vector is
// flattened through the schema here, the single place positional rows
// exist on the training path. The returned artifact carries the schema it
// was trained against plus the holdout evaluation.
func Fit(name models.ModelName, schema features.Schema, vectors []features.Vector, labels []float64, cfg FitConfig) (*Artifact, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no training vectors for model %q", name)
	}
	if len(vectors) != len(labels) {
		return nil, fmt.Errorf("vector/label count mismatch: %d vectors, %d labels", len(vectors), len(labels))
	}
	cfg = cfg.withDefaults()

	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		row, err := schema.Ordered(v)
		if err != nil {
			return nil, fmt.Errorf("training row %d: %w", i, err)
		}
		rows[i] = row
	}

	trainIdx, holdoutIdx := split(len(rows), cfg.HoldoutFraction, cfg.Seed)

	trainRows := make([][]float64, len(trainIdx))
	trainLabels := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainRows[i] = rows[idx]
		trainLabels[i] = labels[idx]
	}

	regressor, err := fitRidge(trainRows, trainLabels, cfg.RidgeLambda)
	if err != nil {
		return nil, fmt.Errorf("failed to fit model %q: %w", name, err)
	}

	// With too few rows for a holdout, evaluate on the training rows so a
	// report is always produced.
	evalIdx := holdoutIdx
	if len(evalIdx) == 0 {
		evalIdx = trainIdx
	}
	mae, r2 := evaluate(regressor, rows, labels, evalIdx)

	now := time.Now().UTC()
	version := models.NewUUID()
	return &Artifact{
		Version:      version,
		Model:        name,
		TrainedAt:    now,
		Schema:       schema,
		Coefficients: *regressor,
		Report: models.TrainingReport{
			Model:        name,
			ModelVersion: version,
			TrainedAt:    now,
			RowsTotal:    len(rows),
			RowsTrain:    len(trainIdx),
			RowsHoldout:  len(holdoutIdx),
			MAE:          mae,
			R2:           r2,
		},
	}, nil
}

// split shuffles row indices with a fixed seed and carves off the holdout
// partition. Same input, same seed, same split.
func split(n int, holdoutFraction float64, seed int64) (train, holdout []int) {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	holdoutN := int(math.Round(float64(n) * holdoutFraction))
	if holdoutN == 0 && n > 1 {
		holdoutN = 1
	}
	if holdoutN >= n {
		holdoutN = n - 1
	}

	return idx[holdoutN:], idx[:holdoutN]
}

func evaluate(r *Regressor, rows [][]float64, labels []float64, idx []int) (mae, r2 float64) {
	var absSum, mean float64
	for _, i := range idx {
		mean += labels[i]
	}
	mean /= float64(len(idx))

	var ssRes, ssTot float64
	for _, i := range idx {
		pred := r.predict(rows[i])
		diff := labels[i] - pred
		absSum += math.Abs(diff)
		ssRes += diff * diff
		ssTot += (labels[i] - mean) * (labels[i] - mean)
	}

	mae = absSum / float64(len(idx))
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return mae, r2
}
