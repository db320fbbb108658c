package mocks

import (
	"context"

	"foodpos/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type AnalyticsInterface struct {
	mock.Mock
}

func (_m *AnalyticsInterface) Summary(ctx context.Context, date string) (*domain.DailySummary, error) {
	ret := _m.Called(ctx, date)
	summary, _ := ret.Get(0).(*domain.DailySummary)
	return summary, ret.Error(1)
}

func (_m *AnalyticsInterface) TopItems(ctx context.Context, date string, limit int) ([]domain.TopItem, error) {
	ret := _m.Called(ctx, date, limit)
	items, _ := ret.Get(0).([]domain.TopItem)
	return items, ret.Error(1)
}

func (_m *AnalyticsInterface) ActiveOrders(ctx context.Context) (*domain.ActiveOrders, error) {
	ret := _m.Called(ctx)
	active, _ := ret.Get(0).(*domain.ActiveOrders)
	return active, ret.Error(1)
}

func NewAnalyticsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
