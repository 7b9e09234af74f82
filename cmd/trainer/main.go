package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hotelops/demand-forecaster/internal/dataset"
	"github.com/hotelops/demand-forecaster/internal/forecaster"
	"github.com/hotelops/demand-forecaster/internal/logger"
	"github.com/hotelops/demand-forecaster/internal/model"
	"github.com/hotelops/demand-forecaster/pkg/config"
	"github.com/hotelops/demand-forecaster/pkg/database"
	"github.com/hotelops/demand-forecaster/pkg/database/queries"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	modelName := flag.String("model", "", "model to train: checkins or demand")
	dataPath := flag.String("data", "", "path to bookings CSV (source=csv)")
	source := flag.String("source", "csv", "training data source: csv or postgres")
	outPath := flag.String("out", "", "artifact output path (default from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Setup(cfg.App.LogLevel, cfg.App.Mode)

	name := models.ModelName(*modelName)
	if !name.Valid() {
		return fmt.Errorf("unknown model %q, expected %q or %q", *modelName, models.ModelCheckins, models.ModelDemand)
	}

	records, err := loadRecords(cfg, *source, *dataPath)
	if err != nil {
		return err
	}

	artifact, err := forecaster.Train(name, records, model.FitConfig{
		HoldoutFraction: cfg.Trainer.HoldoutFraction,
		Seed:            cfg.Trainer.Seed,
		RidgeLambda:     cfg.Trainer.RidgeLambda,
	})
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	out := *outPath
	if out == "" {
		out = cfg.Model.CheckinsPath()
		if name == models.ModelDemand {
			out = cfg.Model.DemandPath()
		}
	}

	if err := artifact.Save(out); err != nil {
		return fmt.Errorf("failed to save artifact: %w", err)
	}

	logger.WithModel(string(name)).Infof("Artifact written to %s (version %s)", out, artifact.Version)
	return nil
}

func loadRecords(cfg *config.Config, source, dataPath string) ([]models.BookingRecord, error) {
	switch source {
	case "csv":
		if dataPath == "" {
			return nil, fmt.Errorf("-data is required with source=csv")
		}
		records, skipped, err := dataset.LoadCSV(dataPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dataPath, err)
		}
		if skipped > 0 {
			logger.Warnf("Skipped %d malformed rows in %s", skipped, dataPath)
		}
		logger.Infof("Loaded %d booking records from %s", len(records), dataPath)
		return records, nil

	case "postgres":
		db, err := database.New(cfg.Database.ToDBConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		records, err := queries.NewBookingRepository(db.DB).ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings: %w", err)
		}
		logger.Infof("Loaded %d booking records from database", len(records))
		return records, nil

	default:
		return nil, fmt.Errorf("unknown source %q, expected csv or postgres", source)
	}
}
