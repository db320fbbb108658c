package storage

import (
	"context"
	"strconv"
	"time"

	"foodpos/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 7 * 24 * time.Hour

func OrdersKey(day string) string { return "orders:daily:" + day }
func ItemsKey(day string) string  { return "items:daily:" + day }

const ItemNamesKey = "items:names"

// Store keeps per-day order aggregates in Redis:
//
//	orders:daily:<day>  hash  created, <status> counts, revenue
//	items:daily:<day>   zset  menu item id scored by quantity sold
//	items:names         hash  menu item id to last seen name
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: DefaultTTL}
}

func (s *Store) RecordOrderCreated(ctx context.Context, event domain.OrderEvent) error {
	day := event.Day()
	ordersKey := OrdersKey(day)
	itemsKey := ItemsKey(day)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, ordersKey, "created", 1)
		pipe.HIncrBy(ctx, ordersKey, domain.StatusPending, 1)
		pipe.HIncrByFloat(ctx, ordersKey, "revenue", event.Total.InexactFloat64())
		pipe.Expire(ctx, ordersKey, s.ttl)

		for _, line := range event.Items {
			member := strconv.Itoa(line.MenuItemID)
			pipe.ZIncrBy(ctx, itemsKey, float64(line.Quantity), member)
			pipe.HSet(ctx, ItemNamesKey, member, line.MenuItemName)
		}
		if len(event.Items) > 0 {
			pipe.Expire(ctx, itemsKey, s.ttl)
		}
		return nil
	})
	return err
}

// RecordStatusChange counts transitions into each status under the day the
// order was created. Cancelling an order takes its total out of that day's
// revenue and reopening a cancelled order puts it back.
func (s *Store) RecordStatusChange(ctx context.Context, event domain.OrderEvent) error {
	ordersKey := OrdersKey(event.Day())
	wasCancelled := event.PreviousStatus == domain.StatusCancelled
	isCancelled := event.Status == domain.StatusCancelled

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, ordersKey, event.Status, 1)
		switch {
		case isCancelled && !wasCancelled:
			pipe.HIncrByFloat(ctx, ordersKey, "revenue", -event.Total.InexactFloat64())
		case wasCancelled && !isCancelled:
			pipe.HIncrByFloat(ctx, ordersKey, "revenue", event.Total.InexactFloat64())
		}
		pipe.Expire(ctx, ordersKey, s.ttl)
		return nil
	})
	return err
}
