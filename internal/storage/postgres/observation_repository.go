package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/observation"
	"cyclesync/ports"
)

type observationRepository struct {
	db *sqlx.DB
}

// NewObservationRepository constructs a PostgreSQL-backed
// ObservationRepository.
func NewObservationRepository(db *sqlx.DB) ports.ObservationRepository {
	return &observationRepository{db: db}
}

const observationColumns = `id, date, kind, COALESCE(notes, '') AS notes, created_at, updated_at,
	cm_value, temperature, COALESCE(time_of_day, '') AS time_of_day, opk_value,
	COALESCE(symptom_tag, '') AS symptom_tag, severity`

func scanObservation(scanner interface{ Scan(...interface{}) error }) (*observation.Observation, error) {
	var o observation.Observation
	var cmValue, opkValue, symptomTag sql.NullString
	var temperature sql.NullFloat64
	var severity sql.NullInt64

	err := scanner.Scan(&o.ID, &o.Date, &o.Kind, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&cmValue, &temperature, &o.TimeOfDay, &opkValue, &symptomTag, &severity)
	if err != nil {
		return nil, err
	}
	if cmValue.Valid {
		o.CMValue = observation.CMValue(cmValue.String)
	}
	if temperature.Valid {
		o.Temperature = temperature.Float64
	}
	if opkValue.Valid {
		o.OPKValue = observation.OPKValue(opkValue.String)
	}
	if symptomTag.Valid {
		o.SymptomTag = symptomTag.String
	}
	if severity.Valid {
		o.Severity = observation.Severity(severity.Int64)
	}
	return &o, nil
}

func scanObservations(rows *sql.Rows) ([]*observation.Observation, error) {
	var out []*observation.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *observationRepository) GetByID(ctx context.Context, id core.ObservationID) (*observation.Observation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+observationColumns+` FROM observations WHERE id = $1`, id)
	o, err := scanObservation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("observation", id.String())
		}
		return nil, fmt.Errorf("failed to get observation: %w", err)
	}
	return o, nil
}

func (r *observationRepository) GetByDate(ctx context.Context, date civildate.Date) ([]*observation.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+observationColumns+` FROM observations WHERE date = $1 ORDER BY date DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations by date: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

func (r *observationRepository) GetByKind(ctx context.Context, kind observation.Kind) ([]*observation.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+observationColumns+` FROM observations WHERE kind = $1 ORDER BY date DESC`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations by kind: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

func (r *observationRepository) GetByDateRange(ctx context.Context, from, to civildate.Date) ([]*observation.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+observationColumns+` FROM observations WHERE date BETWEEN $1 AND $2 ORDER BY date DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations by date range: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

func (r *observationRepository) List(ctx context.Context, limit, offset int) ([]*observation.Observation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+observationColumns+` FROM observations ORDER BY date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()
	return scanObservations(rows)
}

func (r *observationRepository) Upsert(ctx context.Context, o *observation.Observation) error {
	const query = `INSERT INTO observations (id, date, kind, notes, created_at, updated_at, cm_value, temperature, time_of_day, opk_value, symptom_tag, severity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			kind = EXCLUDED.kind,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at,
			cm_value = EXCLUDED.cm_value,
			temperature = EXCLUDED.temperature,
			time_of_day = EXCLUDED.time_of_day,
			opk_value = EXCLUDED.opk_value,
			symptom_tag = EXCLUDED.symptom_tag,
			severity = EXCLUDED.severity`

	var cmValue, opkValue *string
	if o.CMValue != "" {
		s := string(o.CMValue)
		cmValue = &s
	}
	if o.OPKValue != "" {
		s := string(o.OPKValue)
		opkValue = &s
	}
	var temperature *float64
	if o.Kind == observation.KindBBT {
		temperature = &o.Temperature
	}
	var severity *int
	if o.Severity != 0 {
		s := int(o.Severity)
		severity = &s
	}

	_, err := r.db.ExecContext(ctx, query, o.ID, o.Date, o.Kind, o.Notes, o.CreatedAt, o.UpdatedAt,
		cmValue, temperature, o.TimeOfDay, opkValue, o.SymptomTag, severity)
	if err != nil {
		return fmt.Errorf("failed to upsert observation: %w", err)
	}
	return nil
}

func (r *observationRepository) Delete(ctx context.Context, id core.ObservationID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM observations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete observation: %w", err)
	}
	return nil
}

func (r *observationRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM observations`)
	if err != nil {
		return fmt.Errorf("failed to clear observations: %w", err)
	}
	return nil
}
