package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Insert logs one served prediction. Callers treat failures as
// best-effort: a lost log line never fails the request that produced it.
func (r *PredictionRepository) Insert(ctx context.Context, p *models.Prediction) error {
	query := `
		INSERT INTO predictions (created_at, model, target_date, value, model_version, trace_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.CreatedAt,
		string(p.Model),
		p.TargetDate,
		p.Value,
		nullableString(p.ModelVersion),
		nullableString(p.TraceID),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// ListRecent returns the latest predictions, newest first, optionally
// filtered by model.
func (r *PredictionRepository) ListRecent(ctx context.Context, model models.ModelName, limit int) ([]models.Prediction, error) {
	query := `
		SELECT id, created_at, model, target_date, value,
		       COALESCE(model_version, ''), COALESCE(trace_id, '')
		FROM predictions`
	args := []interface{}{}

	if model != "" {
		query += ` WHERE model = $1`
		args = append(args, string(model))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var out []models.Prediction
	for rows.Next() {
		var p models.Prediction
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Model, &p.TargetDate, &p.Value, &p.ModelVersion, &p.TraceID); err != nil {
			return nil, fmt.Errorf("failed to scan prediction row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read predictions: %w", err)
	}

	return out, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
