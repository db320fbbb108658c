package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodpos/logger"
	"foodpos/pos-svc/internal/domain"
)

type CreateOrderRequest struct {
	TableNumber int               `json:"table_number" validate:"gt=0"`
	Items       []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderItem struct {
	MenuItemID int    `json:"menu_item" validate:"gt=0"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
	Options    []int  `json:"options"`
	Notes      string `json:"notes" validate:"max=500"`
}

type BulkResult struct {
	OrderID     int                `json:"order_id"`
	Status      string             `json:"status"`
	OrderStatus domain.OrderStatus `json:"order_status,omitempty"`
	Message     string             `json:"message,omitempty"`
}

type OrderService struct {
	orders    OrderRepository
	menu      MenuItemRepository
	publisher EventPublisher
	log       *slog.Logger
	now       func() time.Time
}

// NewOrderService wires the order workflow. publisher may be nil, in which
// case no events are emitted.
func NewOrderService(orders OrderRepository, menu MenuItemRepository, publisher EventPublisher, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		orders:    orders,
		menu:      menu,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := s.menu.MenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve menu items: %w", err)
	}

	order := &domain.Order{
		TableNumber: req.TableNumber,
		Status:      domain.StatusPending,
		Items:       make([]domain.OrderItem, 0, len(req.Items)),
	}
	for i, line := range req.Items {
		item, ok := menuItems[line.MenuItemID]
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].menu_item", i), "menu item %d does not exist", line.MenuItemID)
		}
		if !item.IsAvailable {
			return nil, domain.NewValidationError(fmt.Sprintf("items[%d].menu_item", i), "menu item %q is not available", item.Name)
		}

		price, notes, err := priceLine(i, item, line)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			MenuItemID:   item.ID,
			MenuItemName: item.Name,
			Quantity:     line.Quantity,
			Price:        price,
			Notes:        notes,
		})
	}
	order.ComputeTotal()

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	logger.FromContext(ctx, s.log).Info("order created",
		"order_id", order.ID,
		"table_number", order.TableNumber,
		"total", order.Total.String(),
	)
	s.publish(ctx, domain.NewOrderCreatedEvent(order, s.now()))
	return order, nil
}

func (s *OrderService) List(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	for _, st := range statuses {
		if !st.Valid() {
			return nil, invalidStatus(st)
		}
	}

	orders, err := s.orders.ListOrders(ctx, statuses)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].ComputeTotal()
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.ComputeTotal()
	return order, nil
}

// UpdateStatus sets any valid status without checking the progression.
// Kitchen displays and the order detail endpoint rely on this.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, invalidStatus(status)
	}

	previous, err := s.orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if previous != status {
		s.publish(ctx, domain.NewStatusChangedEvent(order, previous, s.now()))
	}
	return order, nil
}

// Advance applies the administrative progression: pending -> cooking ->
// ready -> completed, with cancellation allowed from any other status.
func (s *OrderService) Advance(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, invalidStatus(status)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanAdvanceTo(status) {
		return nil, fmt.Errorf("order %d cannot move from %s to %s: %w", id, order.Status, status, domain.ErrConflict)
	}
	if order.Status == status {
		return order, nil
	}

	previous := order.Status
	ok, err := s.orders.CompareAndSetStatus(ctx, id, previous, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("order %d was modified concurrently: %w", id, domain.ErrConflict)
	}

	order, err = s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NewStatusChangedEvent(order, previous, s.now()))
	return order, nil
}

// BulkAdvance advances every order independently. A failure on one id does
// not stop the others.
func (s *OrderService) BulkAdvance(ctx context.Context, ids []int, status domain.OrderStatus) ([]BulkResult, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "must contain at least 1 item(s)")
	}
	if !status.Valid() {
		return nil, invalidStatus(status)
	}

	results := make([]BulkResult, 0, len(ids))
	for _, id := range ids {
		order, err := s.Advance(ctx, id, status)
		if err != nil {
			results = append(results, BulkResult{OrderID: id, Status: "error", Message: err.Error()})
			continue
		}
		results = append(results, BulkResult{OrderID: id, Status: "ok", OrderStatus: order.Status})
	}
	return results, nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	return s.orders.DeleteOrder(ctx, id)
}

// ParseStatusFilter reads the comma separated ?status= value. Callers skip it
// when the parameter is absent; a parameter that names no status is rejected.
func ParseStatusFilter(raw string) ([]domain.OrderStatus, error) {
	var statuses []domain.OrderStatus
	for _, part := range strings.Split(raw, ",") {
		st := domain.OrderStatus(strings.TrimSpace(part))
		if st == "" {
			continue
		}
		if !st.Valid() {
			return nil, invalidStatus(st)
		}
		statuses = append(statuses, st)
	}
	if len(statuses) == 0 {
		return nil, domain.NewValidationError("status", "must name at least one status")
	}
	return statuses, nil
}

func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.FromContext(ctx, s.log).Error("failed to publish order event",
			"order_id", event.OrderID,
			"type", event.Type,
			"error", err,
		)
	}
}

func invalidStatus(st domain.OrderStatus) error {
	names := make([]string, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		names = append(names, string(s))
	}
	return domain.NewValidationError("status", "%q is not one of %s", st, strings.Join(names, ", "))
}

var _ OrderServiceInterface = (*OrderService)(nil)
