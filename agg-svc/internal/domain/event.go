package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"

	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// OrderEvent is the message pos-svc publishes on the order topic.
type OrderEvent struct {
	Type           string          `json:"type"`
	OrderID        int             `json:"order_id"`
	TableNumber    int             `json:"table_number"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	Items          []OrderLine     `json:"items,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	Timestamp      time.Time       `json:"timestamp"`
}

type OrderLine struct {
	MenuItemID   int             `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Day is the reporting bucket of the order: the day it was created, in the
// publisher's time zone. Events without created_at fall back to their own
// timestamp.
func (e OrderEvent) Day() string {
	if !e.CreatedAt.IsZero() {
		return e.CreatedAt.Format("2006-01-02")
	}
	return e.Timestamp.Format("2006-01-02")
}
