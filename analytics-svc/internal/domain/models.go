package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	SourceRedis    = "redis"
	SourceDatabase = "database"
)

// ActiveStatuses are the statuses the kitchen still has to work on.
var ActiveStatuses = []string{"pending", "cooking", "ready"}

type DailySummary struct {
	Date          string          `json:"date"`
	OrdersCreated int             `json:"orders_created"`
	Revenue       decimal.Decimal `json:"revenue"`
	StatusCounts  map[string]int  `json:"status_counts"`
	Source        string          `json:"source"`
}

type TopItem struct {
	MenuItemID   int    `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
}

type ActiveOrders struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

var ErrInvalidParam = errors.New("invalid parameter")

// InvalidParam reports a bad query parameter. Handlers answer it with 400.
func InvalidParam(name, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", name, fmt.Sprintf(format, args...), ErrInvalidParam)
}
