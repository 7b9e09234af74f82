package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/hotelops/demand-forecaster/internal/features"
	"github.com/hotelops/demand-forecaster/pkg/models"
)

var (
	// ErrArtifactNotFound indicates the artifact file is missing.
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrArtifactInvalid indicates the artifact file exists but is corrupt
	// or internally inconsistent.
	ErrArtifactInvalid = errors.New("model artifact invalid")
)

// Artifact is one trained model as a single unit: fitted coefficients,
// the feature schema they were trained against, the frozen averages table
// (check-in model only), and the training evaluation. Artifacts are
// immutable after creation; retraining replaces the whole file.
type Artifact struct {
	Version      string                  `json:"version"`
	Model        models.ModelName        `json:"model"`
	TrainedAt    time.Time               `json:"trained_at"`
	Schema       features.Schema         `json:"schema"`
	Coefficients Regressor               `json:"coefficients"`
	Averages     *features.AveragesTable `json:"averages,omitempty"`
	Report       models.TrainingReport   `json:"report"`
}

// Predict assembles a single demand estimate from a named feature vector.
// The vector's key set is validated against the artifact's schema on
// every call; a divergence fails with ErrSchemaMismatch instead of
// guessing. The continuous regression output is clamped at zero and
// rounded here, at the boundary, because the domain is a count.
func (a *Artifact) Predict(v features.Vector) (int, error) {
	row, err := a.Schema.Ordered(v)
	if err != nil {
		return 0, err
	}

	raw := a.Coefficients.predict(row)
	if raw < 0 {
		raw = 0
	}
	return int(math.Round(raw)), nil
}

// Save writes the artifact as one atomic unit: a temp file in the target
// directory followed by a rename, so a concurrent loader never observes a
// partial artifact.
func (a *Artifact) Save(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}

// Load reads and validates an artifact file. Validation covers internal
// consistency only (coefficients against the embedded schema); whether
// the schema matches what the assembler produces is checked lazily at the
// first Predict call.
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactInvalid, path, err)
	}

	if err := artifact.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifactInvalid, path, err)
	}
	return &artifact, nil
}

func (a *Artifact) validate() error {
	if !a.Model.Valid() {
		return fmt.Errorf("unknown model name %q", a.Model)
	}
	if a.Schema.Len() == 0 {
		return errors.New("artifact has an empty feature schema")
	}
	if len(a.Coefficients.Weights) != a.Schema.Len() {
		return fmt.Errorf("coefficient count %d does not match schema size %d",
			len(a.Coefficients.Weights), a.Schema.Len())
	}
	return nil
}
