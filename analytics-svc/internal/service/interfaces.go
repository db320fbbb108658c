package service

import (
	"context"

	"foodpos/analytics-svc/internal/domain"
)

type AnalyticsInterface interface {
	Summary(ctx context.Context, date string) (*domain.DailySummary, error)
	TopItems(ctx context.Context, date string, limit int) ([]domain.TopItem, error)
	ActiveOrders(ctx context.Context) (*domain.ActiveOrders, error)
}

var _ AnalyticsInterface = (*AnalyticsService)(nil)
