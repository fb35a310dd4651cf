// Package postgres implements the ports interfaces against
// PostgreSQL via sqlx: a named constructor returning the port
// interface, a plain sqlx.DB field, raw SQL with positional
// parameters, and sql.ErrNoRows translated to a domain not-found
// error.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/ports"
)

type cycleRepository struct {
	db *sqlx.DB
}

// NewCycleRepository constructs a PostgreSQL-backed CycleRepository.
func NewCycleRepository(db *sqlx.DB) ports.CycleRepository {
	return &cycleRepository{db: db}
}

func (r *cycleRepository) GetByID(ctx context.Context, id core.CycleID) (*cycle.Cycle, error) {
	const query = `SELECT id, start_date, length, period_length, COALESCE(notes, '') AS notes, created_at, updated_at
		FROM cycles WHERE id = $1`

	var c cycle.Cycle
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.StartDate, &c.Length, &c.PeriodLength, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("cycle", id.String())
		}
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}
	return &c, nil
}

func (r *cycleRepository) GetByStartDate(ctx context.Context, date civildate.Date) (*cycle.Cycle, error) {
	const query = `SELECT id, start_date, length, period_length, COALESCE(notes, '') AS notes, created_at, updated_at
		FROM cycles WHERE start_date = $1`

	var c cycle.Cycle
	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&c.ID, &c.StartDate, &c.Length, &c.PeriodLength, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("cycle", date.String())
		}
		return nil, fmt.Errorf("failed to get cycle by start date: %w", err)
	}
	return &c, nil
}

func (r *cycleRepository) List(ctx context.Context, limit, offset int) ([]*cycle.Cycle, error) {
	const query = `SELECT id, start_date, length, period_length, COALESCE(notes, '') AS notes, created_at, updated_at
		FROM cycles ORDER BY start_date DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var out []*cycle.Cycle
	for rows.Next() {
		var c cycle.Cycle
		if err := rows.Scan(&c.ID, &c.StartDate, &c.Length, &c.PeriodLength, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *cycleRepository) Upsert(ctx context.Context, c *cycle.Cycle) error {
	const query = `INSERT INTO cycles (id, start_date, length, period_length, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			length = EXCLUDED.length,
			period_length = EXCLUDED.period_length,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.StartDate, c.Length, c.PeriodLength, c.Notes, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cycle: %w", err)
	}
	return nil
}

func (r *cycleRepository) Delete(ctx context.Context, id core.CycleID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cycles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cycle: %w", err)
	}
	return nil
}

func (r *cycleRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cycles`)
	if err != nil {
		return fmt.Errorf("failed to clear cycles: %w", err)
	}
	return nil
}
