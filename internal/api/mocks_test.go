package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cyclesync/domain/civildate"
	"cyclesync/domain/core"
	"cyclesync/domain/cycle"
	"cyclesync/domain/observation"
	"cyclesync/domain/prediction"
)

type mockCycleRepository struct {
	mock.Mock
}

func (m *mockCycleRepository) GetByID(ctx context.Context, id core.CycleID) (*cycle.Cycle, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*cycle.Cycle)
	return c, args.Error(1)
}

func (m *mockCycleRepository) GetByStartDate(ctx context.Context, date civildate.Date) (*cycle.Cycle, error) {
	args := m.Called(ctx, date)
	c, _ := args.Get(0).(*cycle.Cycle)
	return c, args.Error(1)
}

func (m *mockCycleRepository) List(ctx context.Context, limit, offset int) ([]*cycle.Cycle, error) {
	args := m.Called(ctx, limit, offset)
	c, _ := args.Get(0).([]*cycle.Cycle)
	return c, args.Error(1)
}

func (m *mockCycleRepository) Upsert(ctx context.Context, c *cycle.Cycle) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCycleRepository) Delete(ctx context.Context, id core.CycleID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCycleRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPredictionRepository struct {
	mock.Mock
}

func (m *mockPredictionRepository) GetByID(ctx context.Context, id core.PredictionID) (*prediction.Prediction, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*prediction.Prediction)
	return p, args.Error(1)
}

func (m *mockPredictionRepository) GetBySource(ctx context.Context, source prediction.Source) ([]*prediction.Prediction, error) {
	args := m.Called(ctx, source)
	p, _ := args.Get(0).([]*prediction.Prediction)
	return p, args.Error(1)
}

func (m *mockPredictionRepository) GetByCycle(ctx context.Context, cycleID core.CycleID) ([]*prediction.Prediction, error) {
	args := m.Called(ctx, cycleID)
	p, _ := args.Get(0).([]*prediction.Prediction)
	return p, args.Error(1)
}

func (m *mockPredictionRepository) List(ctx context.Context, limit, offset int) ([]*prediction.Prediction, error) {
	args := m.Called(ctx, limit, offset)
	p, _ := args.Get(0).([]*prediction.Prediction)
	return p, args.Error(1)
}

func (m *mockPredictionRepository) Upsert(ctx context.Context, p *prediction.Prediction) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockPredictionRepository) Delete(ctx context.Context, id core.PredictionID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPredictionRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockObservationRepository struct {
	mock.Mock
}

func (m *mockObservationRepository) GetByID(ctx context.Context, id core.ObservationID) (*observation.Observation, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*observation.Observation)
	return o, args.Error(1)
}

func (m *mockObservationRepository) GetByDate(ctx context.Context, date civildate.Date) ([]*observation.Observation, error) {
	args := m.Called(ctx, date)
	o, _ := args.Get(0).([]*observation.Observation)
	return o, args.Error(1)
}

func (m *mockObservationRepository) GetByKind(ctx context.Context, kind observation.Kind) ([]*observation.Observation, error) {
	args := m.Called(ctx, kind)
	o, _ := args.Get(0).([]*observation.Observation)
	return o, args.Error(1)
}

func (m *mockObservationRepository) GetByDateRange(ctx context.Context, from, to civildate.Date) ([]*observation.Observation, error) {
	args := m.Called(ctx, from, to)
	o, _ := args.Get(0).([]*observation.Observation)
	return o, args.Error(1)
}

func (m *mockObservationRepository) List(ctx context.Context, limit, offset int) ([]*observation.Observation, error) {
	args := m.Called(ctx, limit, offset)
	o, _ := args.Get(0).([]*observation.Observation)
	return o, args.Error(1)
}

func (m *mockObservationRepository) Upsert(ctx context.Context, o *observation.Observation) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockObservationRepository) Delete(ctx context.Context, id core.ObservationID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockObservationRepository) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
