package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"foodpos/pos-svc/internal/domain"
	"foodpos/pos-svc/internal/service"
)

// memStore is an in-memory implementation of the catalog and order
// repositories used to run whole workflows without a database.
type memStore struct {
	mu         sync.Mutex
	seq        int
	clock      time.Time
	categories map[int]domain.Category
	items      map[int]domain.MenuItem
	orders     map[int]domain.Order
}

func newMemStore() *memStore {
	return &memStore{
		clock:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		categories: map[int]domain.Category{},
		items:      map[int]domain.MenuItem{},
		orders:     map[int]domain.Order{},
	}
}

func (m *memStore) nextID() int {
	m.seq++
	return m.seq
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) ListCategories(_ context.Context, activeOnly bool) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Category{}
	for _, c := range m.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) GetCategory(_ context.Context, id int) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, domain.NotFound("category", id)
	}
	return &c, nil
}

func (m *memStore) CreateCategory(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	category.ID = m.nextID()
	m.categories[category.ID] = *category
	return nil
}

func (m *memStore) UpdateCategory(_ context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[category.ID]; !ok {
		return domain.NotFound("category", category.ID)
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *memStore) DeleteCategory(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.categories[id]; !ok {
		return domain.NotFound("category", id)
	}
	for _, item := range m.items {
		if item.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(m.categories, id)
	return nil
}

func (m *memStore) ListMenuItems(_ context.Context, categoryID int) ([]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.MenuItem{}
	for _, item := range m.items {
		if categoryID != 0 && item.CategoryID != categoryID {
			continue
		}
		out = append(out, m.withCategory(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetMenuItem(_ context.Context, id int) (*domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, domain.NotFound("menu item", id)
	}
	item = m.withCategory(item)
	return &item, nil
}

func (m *memStore) MenuItemsByIDs(_ context.Context, ids []int) (map[int]domain.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[int]domain.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out[id] = m.withCategory(item)
		}
	}
	return out, nil
}

func (m *memStore) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = m.nextID()
	stored := *item
	stored.Options = append([]domain.MenuItemOption{}, item.Options...)
	m.items[item.ID] = stored
	return nil
}

func (m *memStore) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.items[item.ID]
	if !ok {
		return domain.NotFound("menu item", item.ID)
	}
	stored := *item
	stored.Options = current.Options
	m.items[item.ID] = stored
	return nil
}

func (m *memStore) DeleteMenuItem(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return domain.NotFound("menu item", id)
	}
	for _, order := range m.orders {
		for _, line := range order.Items {
			if line.MenuItemID == id {
				return domain.ErrConflict
			}
		}
	}
	delete(m.items, id)
	return nil
}

func (m *memStore) UpdateMenuItemImage(_ context.Context, id int, image string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return domain.NotFound("menu item", id)
	}
	item.Image = image
	m.items[id] = item
	return nil
}

func (m *memStore) CreateOption(_ context.Context, option *domain.MenuItemOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[option.MenuItemID]
	if !ok {
		return domain.NotFound("menu item", option.MenuItemID)
	}
	option.ID = m.nextID()
	item.Options = append(append([]domain.MenuItemOption{}, item.Options...), *option)
	m.items[item.ID] = item
	return nil
}

func (m *memStore) DeleteOption(_ context.Context, menuItemID, optionID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[menuItemID]
	if !ok {
		return domain.NotFound("menu item", menuItemID)
	}
	kept := make([]domain.MenuItemOption, 0, len(item.Options))
	for _, opt := range item.Options {
		if opt.ID != optionID {
			kept = append(kept, opt)
		}
	}
	if len(kept) == len(item.Options) {
		return domain.NotFound("option", optionID)
	}
	item.Options = kept
	m.items[menuItemID] = item
	return nil
}

func (m *memStore) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order.ID = m.nextID()
	order.CreatedAt = m.tick()
	order.UpdatedAt = order.CreatedAt
	for i := range order.Items {
		order.Items[i].ID = m.nextID()
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]domain.OrderItem{}, order.Items...)
	m.orders[order.ID] = stored
	return nil
}

func (m *memStore) GetOrder(_ context.Context, id int) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, domain.NotFound("order", id)
	}
	order = m.project(order)
	return &order, nil
}

func (m *memStore) ListOrders(_ context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Order{}
	for _, order := range m.orders {
		if len(statuses) > 0 && !containsStatus(statuses, order.Status) {
			continue
		}
		out = append(out, m.project(order))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) UpdateOrderStatus(_ context.Context, id int, status domain.OrderStatus) (domain.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return "", domain.NotFound("order", id)
	}
	previous := order.Status
	order.Status = status
	order.UpdatedAt = m.tick()
	m.orders[id] = order
	return previous, nil
}

func (m *memStore) CompareAndSetStatus(_ context.Context, id int, from, to domain.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = m.tick()
	m.orders[id] = order
	return true, nil
}

func (m *memStore) DeleteOrder(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[id]; !ok {
		return domain.NotFound("order", id)
	}
	delete(m.orders, id)
	return nil
}

func (m *memStore) withCategory(item domain.MenuItem) domain.MenuItem {
	item.CategoryName = m.categories[item.CategoryID].Name
	item.Options = append([]domain.MenuItemOption{}, item.Options...)
	return item
}

// project copies the order and fills names from the live menu, the way the
// SQL join does.
func (m *memStore) project(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	for i, line := range order.Items {
		line.MenuItemName = m.items[line.MenuItemID].Name
		items[i] = line
	}
	order.Items = items
	return order
}

func containsStatus(statuses []domain.OrderStatus, st domain.OrderStatus) bool {
	for _, s := range statuses {
		if s == st {
			return true
		}
	}
	return false
}

var (
	_ service.CategoryRepository = (*memStore)(nil)
	_ service.MenuItemRepository = (*memStore)(nil)
	_ service.OrderRepository    = (*memStore)(nil)
)
