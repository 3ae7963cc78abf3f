package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockDashboardCache struct {
	mock.Mock
}

func (m *MockDashboardCache) Get(ctx context.Context) (*domain.DashboardMetrics, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.DashboardMetrics), args.Bool(1), args.Error(2)
}

func (m *MockDashboardCache) Set(ctx context.Context, metrics *domain.DashboardMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

func (m *MockDashboardCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
