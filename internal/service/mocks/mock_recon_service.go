package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"recondash/internal/model"
	"recondash/internal/service"
)

type MockReconService struct {
	mock.Mock
}

var _ service.ReconService = (*MockReconService)(nil)

func (m *MockReconService) KPI(ctx context.Context) (*model.KPI, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KPI), args.Error(1)
}

func (m *MockReconService) ThreeWay(ctx context.Context, tolPct int) (*service.ThreeWayResult, error) {
	args := m.Called(ctx, tolPct)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ThreeWayResult), args.Error(1)
}

func (m *MockReconService) Heatmap(ctx context.Context) (*service.HeatmapResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HeatmapResult), args.Error(1)
}

func (m *MockReconService) CaseFlow(ctx context.Context, sku string) (*service.CaseFlowResult, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseFlowResult), args.Error(1)
}

func (m *MockReconService) Exceptions(ctx context.Context, filter string) (*service.ExceptionsResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExceptionsResult), args.Error(1)
}

func (m *MockReconService) Dashboard(ctx context.Context, tolPct int) *service.Dashboard {
	args := m.Called(ctx, tolPct)
	return args.Get(0).(*service.Dashboard)
}
