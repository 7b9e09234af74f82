package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	var errs []error

	// App validation
	if c.App.Name == "" {
		errs = append(errs, errors.New("app.name is required"))
	}

	validModes := map[string]bool{"development": true, "production": true, "test": true}
	if !validModes[c.App.Mode] {
		errs = append(errs, fmt.Errorf("app.mode must be one of: development, production, test"))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.App.LogLevel] {
		errs = append(errs, fmt.Errorf("app.log_level must be one of: debug, info, warn, error"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, errors.New("database.port must be between 1 and 65535"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.MaxConnections <= 0 {
		errs = append(errs, errors.New("database.max_connections must be positive"))
	}

	// API validation
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, errors.New("api.port must be between 1 and 65535"))
	}
	if c.API.RateLimit <= 0 {
		errs = append(errs, errors.New("api.rate_limit must be positive"))
	}

	// Model validation
	if c.Model.ArtifactDir == "" {
		errs = append(errs, errors.New("model.artifact_dir is required"))
	}
	if c.Model.CheckinsArtifact == "" {
		errs = append(errs, errors.New("model.checkins_artifact is required"))
	}
	if c.Model.DemandArtifact == "" {
		errs = append(errs, errors.New("model.demand_artifact is required"))
	}

	// Trainer validation
	if c.Trainer.HoldoutFraction <= 0 || c.Trainer.HoldoutFraction >= 1 {
		errs = append(errs, errors.New("trainer.holdout_fraction must be between 0 and 1"))
	}
	if c.Trainer.RidgeLambda < 0 {
		errs = append(errs, errors.New("trainer.ridge_lambda must not be negative"))
	}

	return errors.Join(errs...)
}
