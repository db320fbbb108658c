package domain

import "time"

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is published to Kafka after an order write commits.
type OrderEvent struct {
	Type           string           `json:"type"`
	OrderID        int              `json:"order_id"`
	TableNumber    int              `json:"table_number"`
	Status         OrderStatus      `json:"status"`
	PreviousStatus OrderStatus      `json:"previous_status,omitempty"`
	Items          []OrderEventItem `json:"items,omitempty"`
	Total          Money            `json:"total"`
	CreatedAt      time.Time        `json:"created_at"`
	Timestamp      time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	MenuItemID   int    `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Price        Money  `json:"price"`
}

func NewOrderCreatedEvent(order *Order, at time.Time) OrderEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        item.Price,
		})
	}
	return OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     order.ID,
		TableNumber: order.TableNumber,
		Status:      order.Status,
		Items:       items,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		Timestamp:   at,
	}
}

func NewStatusChangedEvent(order *Order, previous OrderStatus, at time.Time) OrderEvent {
	return OrderEvent{
		Type:           EventOrderStatusChanged,
		OrderID:        order.ID,
		TableNumber:    order.TableNumber,
		Status:         order.Status,
		PreviousStatus: previous,
		Total:          order.Total,
		CreatedAt:      order.CreatedAt,
		Timestamp:      at,
	}
}
