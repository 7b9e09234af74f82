package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg, _ := Load("")
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "demand-forecaster", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Mode)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "./artifacts", cfg.Model.ArtifactDir)
	assert.Equal(t, "checkins_model.json", cfg.Model.CheckinsArtifact)
	assert.Equal(t, "demand_model.json", cfg.Model.DemandArtifact)
	assert.Equal(t, 0.2, cfg.Trainer.HoldoutFraction)
	assert.Equal(t, int64(42), cfg.Trainer.Seed)
	assert.Equal(t, 1.0, cfg.Trainer.RidgeLambda)
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.App.Mode = "chaos"
	cfg.Database.Port = 0
	cfg.Trainer.HoldoutFraction = 1.5

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "app.name")
	assert.Contains(t, msg, "app.mode")
	assert.Contains(t, msg, "database.port")
	assert.Contains(t, msg, "trainer.holdout_fraction")
}

func TestModelConfig_Paths(t *testing.T) {
	cfg := ModelConfig{
		ArtifactDir:      "/var/lib/forecaster",
		CheckinsArtifact: "checkins_model.json",
		DemandArtifact:   "demand_model.json",
	}
	assert.Equal(t, "/var/lib/forecaster/checkins_model.json", cfg.CheckinsPath())
	assert.Equal(t, "/var/lib/forecaster/demand_model.json", cfg.DemandPath())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "admin", Password: "pw", Name: "forecaster",
	}
	dsn := cfg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=forecaster")
	assert.Contains(t, dsn, "sslmode=disable")
}
