package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"foodpos/analytics-svc/internal/domain"
	"foodpos/logger"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	DefaultTopLimit = 10
	MaxTopLimit     = 100

	itemNamesKey = "items:names"
)

func ordersKey(date string) string { return "orders:daily:" + date }
func itemsKey(date string) string  { return "items:daily:" + date }

// AnalyticsService reads the aggregates agg-svc keeps in Redis and falls
// back to aggregating PostgreSQL when a day is missing there.
type AnalyticsService struct {
	db  *sql.DB
	rdb *redis.Client
	log *slog.Logger
	now func() time.Time
}

func NewAnalyticsService(db *sql.DB, rdb *redis.Client, log *slog.Logger) *AnalyticsService {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsService{
		db:  db,
		rdb: rdb,
		log: log,
		now: time.Now,
	}
}

// resolveDate returns today when raw is empty.
func (s *AnalyticsService) resolveDate(raw string) (string, error) {
	if raw == "" {
		return s.now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", domain.InvalidParam("date", "expected YYYY-MM-DD, got %q", raw)
	}
	return raw, nil
}

func (s *AnalyticsService) Summary(ctx context.Context, date string) (*domain.DailySummary, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}

	fields, err := s.rdb.HGetAll(ctx, ordersKey(date)).Result()
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("redis summary read failed, using database", "date", date, "error", err)
	}
	if err != nil || len(fields) == 0 {
		return s.summaryFromDB(ctx, date)
	}

	summary := &domain.DailySummary{
		Date:         date,
		Revenue:      decimal.Zero,
		StatusCounts: map[string]int{},
		Source:       domain.SourceRedis,
	}
	for field, value := range fields {
		switch field {
		case "created":
			summary.OrdersCreated, _ = strconv.Atoi(value)
		case "revenue":
			if revenue, err := decimal.NewFromString(value); err == nil {
				summary.Revenue = revenue.Round(2)
			}
		default:
			n, _ := strconv.Atoi(value)
			summary.StatusCounts[field] = n
		}
	}
	return summary, nil
}

// summaryFromDB counts orders by their current status. Revenue excludes
// cancelled orders.
func (s *AnalyticsService) summaryFromDB(ctx context.Context, date string) (*domain.DailySummary, error) {
	summary := &domain.DailySummary{
		Date:         date,
		StatusCounts: map[string]int{},
		Source:       domain.SourceDatabase,
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE created_at::date = $1::date
		GROUP BY status
	`, date)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		summary.StatusCounts[status] = count
		summary.OrdersCreated += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.price * oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at::date = $1::date AND o.status <> 'cancelled'
	`, date).Scan(&summary.Revenue)
	if err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	summary.Revenue = summary.Revenue.Round(2)
	return summary, nil
}

// TopItems ranks menu items by quantity ordered on date. limit 0 means
// DefaultTopLimit.
func (s *AnalyticsService) TopItems(ctx context.Context, date string, limit int) ([]domain.TopItem, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultTopLimit
	}
	if limit < 0 || limit > MaxTopLimit {
		return nil, domain.InvalidParam("limit", "must be between 1 and %d", MaxTopLimit)
	}

	ranked, err := s.rdb.ZRevRangeWithScores(ctx, itemsKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		logger.FromContext(ctx, s.log).Warn("redis top items read failed, using database", "date", date, "error", err)
	}
	if err != nil || len(ranked) == 0 {
		return s.topItemsFromDB(ctx, date, limit)
	}

	members := make([]string, 0, len(ranked))
	for _, z := range ranked {
		members = append(members, z.Member.(string))
	}
	names, err := s.rdb.HMGet(ctx, itemNamesKey, members...).Result()
	if err != nil {
		return nil, fmt.Errorf("read item names: %w", err)
	}

	items := make([]domain.TopItem, 0, len(ranked))
	for i, z := range ranked {
		id, err := strconv.Atoi(members[i])
		if err != nil {
			continue
		}
		name, _ := names[i].(string)
		items = append(items, domain.TopItem{
			MenuItemID:   id,
			MenuItemName: name,
			Quantity:     int(z.Score),
		})
	}
	return items, nil
}

// topItemsFromDB counts every order created that day, cancelled ones
// included, so it agrees with the Redis ranking.
func (s *AnalyticsService) topItemsFromDB(ctx context.Context, date string, limit int) ([]domain.TopItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.name, SUM(oi.quantity) AS quantity
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.created_at::date = $1::date
		GROUP BY m.id, m.name
		ORDER BY quantity DESC, m.id
		LIMIT $2
	`, date, limit)
	if err != nil {
		return nil, fmt.Errorf("rank items: %w", err)
	}
	defer rows.Close()

	items := []domain.TopItem{}
	for rows.Next() {
		var item domain.TopItem
		if err := rows.Scan(&item.MenuItemID, &item.MenuItemName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rank items: %w", err)
	}
	return items, nil
}

// ActiveOrders always reads PostgreSQL; the kitchen board needs live counts.
func (s *AnalyticsService) ActiveOrders(ctx context.Context) (*domain.ActiveOrders, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, COUNT(*)
		FROM orders
		WHERE status = ANY($1)
		GROUP BY status
	`, pq.Array(domain.ActiveStatuses))
	if err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	defer rows.Close()

	active := &domain.ActiveOrders{Counts: map[string]int{}}
	for _, status := range domain.ActiveStatuses {
		active.Counts[status] = 0
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan active orders: %w", err)
		}
		active.Counts[status] = count
		active.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count active orders: %w", err)
	}
	return active, nil
}
