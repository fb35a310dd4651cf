package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/prediction"
	"cyclesync/ports"
)

type predictionRepository struct {
	db *sqlx.DB
}

// NewPredictionRepository constructs a PostgreSQL-backed
// PredictionRepository.
func NewPredictionRepository(db *sqlx.DB) ports.PredictionRepository {
	return &predictionRepository{db: db}
}

const predictionColumns = `id, source, fertile_start, fertile_end, ovulation_date, confidence,
	cycle_id, COALESCE(notes, '') AS notes, created_at, updated_at`

func scanPrediction(scanner interface{ Scan(...interface{}) error }) (*prediction.Prediction, error) {
	var p prediction.Prediction
	var ovulation sql.NullTime
	var cycleID sql.NullString

	err := scanner.Scan(&p.ID, &p.Source, &p.FertileStart, &p.FertileEnd, &ovulation, &p.Confidence,
		&cycleID, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ovulation.Valid {
		d := civildate.FromTime(ovulation.Time)
		p.OvulationDate = &d
	}
	if cycleID.Valid {
		id := core.CycleID(cycleID.String)
		p.CycleID = &id
	}
	return &p, nil
}

func (r *predictionRepository) GetByID(ctx context.Context, id core.PredictionID) (*prediction.Prediction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+predictionColumns+` FROM predictions WHERE id = $1`, id)
	p, err := scanPrediction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("prediction", id.String())
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return p, nil
}

func (r *predictionRepository) GetBySource(ctx context.Context, source prediction.Source) ([]*prediction.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+predictionColumns+` FROM predictions WHERE source = $1 ORDER BY fertile_start DESC`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by source: %w", err)
	}
	defer rows.Close()
	return scanPredictions(rows)
}

func (r *predictionRepository) GetByCycle(ctx context.Context, cycleID core.CycleID) ([]*prediction.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+predictionColumns+` FROM predictions WHERE cycle_id = $1 ORDER BY fertile_start DESC`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions by cycle: %w", err)
	}
	defer rows.Close()
	return scanPredictions(rows)
}

func (r *predictionRepository) List(ctx context.Context, limit, offset int) ([]*prediction.Prediction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+predictionColumns+` FROM predictions ORDER BY fertile_start DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()
	return scanPredictions(rows)
}

func scanPredictions(rows *sql.Rows) ([]*prediction.Prediction, error) {
	var out []*prediction.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *predictionRepository) Upsert(ctx context.Context, p *prediction.Prediction) error {
	const query = `INSERT INTO predictions (id, source, fertile_start, fertile_end, ovulation_date, confidence, cycle_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			source = EXCLUDED.source,
			fertile_start = EXCLUDED.fertile_start,
			fertile_end = EXCLUDED.fertile_end,
			ovulation_date = EXCLUDED.ovulation_date,
			confidence = EXCLUDED.confidence,
			cycle_id = EXCLUDED.cycle_id,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`

	var cycleID *string
	if p.CycleID != nil {
		s := p.CycleID.String()
		cycleID = &s
	}

	var ovulation interface{}
	if p.OvulationDate != nil {
		ovulation = *p.OvulationDate
	}

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Source, p.FertileStart, p.FertileEnd, ovulation, p.Confidence, cycleID, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}
	return nil
}

func (r *predictionRepository) Delete(ctx context.Context, id core.PredictionID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}
	return nil
}

func (r *predictionRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM predictions`)
	if err != nil {
		return fmt.Errorf("failed to clear predictions: %w", err)
	}
	return nil
}
