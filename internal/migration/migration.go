// Package migration applies the schema the persistence adapter
// expects onto a PostgreSQL database: a fixed sequence of idempotent
// CREATE TABLE IF NOT EXISTS / CREATE INDEX IF NOT EXISTS statements
// run once at startup.
package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"cyclesync/internal/errors"
)

// Runner applies the database schema.
type Runner struct {
	version string
}

// NewRunner creates a new migration runner.
func NewRunner() *Runner {
	return &Runner{version: "1.0.0"}
}

// Version returns the migration version.
func (r *Runner) Version() string { return r.version }

// Run executes all schema migrations in order.
func (r *Runner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createCyclesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create cycles table")
	}
	if err := r.createPredictionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create predictions table")
	}
	if err := r.createObservationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create observations table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *Runner) createCyclesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cycles (
			id UUID PRIMARY KEY,
			start_date DATE NOT NULL,
			length INTEGER NOT NULL,
			period_length INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createPredictionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			source VARCHAR(50) NOT NULL,
			fertile_start DATE NOT NULL,
			fertile_end DATE NOT NULL,
			ovulation_date DATE,
			confidence INTEGER NOT NULL,
			cycle_id UUID REFERENCES cycles(id) ON DELETE CASCADE,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createObservationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS observations (
			id UUID PRIMARY KEY,
			date DATE NOT NULL,
			kind VARCHAR(30) NOT NULL,
			notes TEXT,
			cm_value VARCHAR(20),
			temperature DOUBLE PRECISION,
			time_of_day VARCHAR(20),
			opk_value VARCHAR(20),
			symptom_tag VARCHAR(100),
			severity SMALLINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func (r *Runner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_cycles_start_date ON cycles(start_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_source ON predictions(source)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_cycle_id ON predictions(cycle_id)",
		"CREATE INDEX IF NOT EXISTS idx_predictions_fertile_start ON predictions(fertile_start DESC)",
		"CREATE INDEX IF NOT EXISTS idx_observations_date ON observations(date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_observations_kind ON observations(kind)",
	}
	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			return err
		}
	}
	return nil
}
