package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recondash/internal/model"
	"recondash/internal/repository"
)

type MockReconRepository struct {
	mock.Mock
}

var _ repository.ReconRepository = (*MockReconRepository)(nil)

func (m *MockReconRepository) KPICounts(ctx context.Context) (model.KPICounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.KPICounts), args.Error(1)
}

func (m *MockReconRepository) ThreeWay(ctx context.Context, limit int) ([]model.ThreeWayRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ThreeWayRow), args.Error(1)
}

func (m *MockReconRepository) ThreeWayTotals(ctx context.Context) (model.ThreeWayTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ThreeWayTotals), args.Error(1)
}

func (m *MockReconRepository) Heatmap(ctx context.Context, limit int) ([]model.HeatmapCell, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HeatmapCell), args.Error(1)
}

func (m *MockReconRepository) CaseFlow(ctx context.Context, sku string, limit int) ([]model.FlowEvent, error) {
	args := m.Called(ctx, sku, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FlowEvent), args.Error(1)
}

func (m *MockReconRepository) Exceptions(ctx context.Context, limit int) ([]model.ExceptionRow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ExceptionRow), args.Error(1)
}

func (m *MockReconRepository) Capabilities(ctx context.Context) (model.Capabilities, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Capabilities), args.Error(1)
}
