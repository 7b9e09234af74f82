package forecaster

import (
	"fmt"

	"github.com/hotelops/demand-forecaster/internal/dataset"
	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/internal/model"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

// Train runs the offline pipeline for one model: aggregate bookings by
// arrival date, assemble training vectors through the shared feature
// contract, fit, and return the artifact. An empty record set aborts with
// dataset.ErrNoRecords before anything is fitted.
func Train(name models.ModelName, records []models.BookingRecord, cfg model.FitConfig) (*model.Artifact, error) {
	if !name.Valid() {
		return nil, fmt.Errorf("unknown model %q", name)
	}

	aggregates, err := dataset.Aggregate(records)
	if err != nil {
		return nil, err
	}
	logger.WithModel(string(name)).Infof("Aggregated %d bookings into %d daily rows", len(records), len(aggregates))

	vectors := make([]features.Vector, len(aggregates))
	labels := make([]float64, len(aggregates))
	for i, agg := range aggregates {
		var vector features.Vector
		if name == models.ModelDemand {
			vector, err = features.AssembleDemandTraining(agg)
		} else {
			vector, err = features.AssembleCheckinsTraining(agg)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to assemble training row for %s: %w",
				agg.ArrivalDate.Format("2006-01-02"), err)
		}
		vectors[i] = vector
		labels[i] = float64(agg.TotalBookings)
	}

	schema := features.CheckinsSchema()
	if name == models.ModelDemand {
		schema = features.DemandSchema()
	}

	artifact, err := model.Fit(name, schema, vectors, labels, cfg)
	if err != nil {
		return nil, err
	}

	// The check-in model serves from a date alone, so its artifact carries
	// the frozen day-of-week averages the assembler falls back on.
	if name == models.ModelCheckins {
		artifact.Averages = features.BuildAverages(aggregates)
	}

	logger.WithModel(string(name)).Infof("Training complete: MAE=%.2f R2=%.2f (%d train / %d holdout rows)",
		artifact.Report.MAE, artifact.Report.R2, artifact.Report.RowsTrain, artifact.Report.RowsHoldout)

	return artifact, nil
}
