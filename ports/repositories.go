// Package ports defines the interfaces the pure prediction core
// expects from its persistence collaborator. The core never imports
// an implementation of these interfaces directly; only cmd/api wires
// a concrete adapter behind them.
package ports

import (
	"context"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
)

// CycleRepository stores historical cycles, queryable by primary id,
// by start date, and as a descending-by-start-date listing.
type CycleRepository interface {
	GetByID(ctx context.Context, id core.CycleID) (*cycle.Cycle, error)
	GetByStartDate(ctx context.Context, date civildate.Date) (*cycle.Cycle, error)
	List(ctx context.Context, limit, offset int) ([]*cycle.Cycle, error)

	Upsert(ctx context.Context, c *cycle.Cycle) error
	Delete(ctx context.Context, id core.CycleID) error
	Clear(ctx context.Context) error
}

// PredictionRepository stores predictions, queryable by primary id,
// by source, by owning cycle, and as a descending-by-fertile-start
// listing.
type PredictionRepository interface {
	GetByID(ctx context.Context, id core.PredictionID) (*prediction.Prediction, error)
	GetBySource(ctx context.Context, source prediction.Source) ([]*prediction.Prediction, error)
	GetByCycle(ctx context.Context, cycleID core.CycleID) ([]*prediction.Prediction, error)
	List(ctx context.Context, limit, offset int) ([]*prediction.Prediction, error)

	Upsert(ctx context.Context, p *prediction.Prediction) error
	Delete(ctx context.Context, id core.PredictionID) error
	Clear(ctx context.Context) error
}

// ObservationRepository stores daily observations, queryable by
// primary id, by date, by kind, by an inclusive date range, and as a
// descending-by-date listing.
type ObservationRepository interface {
	GetByID(ctx context.Context, id core.ObservationID) (*observation.Observation, error)
	GetByDate(ctx context.Context, date civildate.Date) ([]*observation.Observation, error)
	GetByKind(ctx context.Context, kind observation.Kind) ([]*observation.Observation, error)
	GetByDateRange(ctx context.Context, from, to civildate.Date) ([]*observation.Observation, error)
	List(ctx context.Context, limit, offset int) ([]*observation.Observation, error)

	Upsert(ctx context.Context, o *observation.Observation) error
	Delete(ctx context.Context, id core.ObservationID) error
	Clear(ctx context.Context) error
}
