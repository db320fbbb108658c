package mocks

import (
	"context"

	"foodpos/pos-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CategoryRepository struct {
	mock.Mock
}

func (_m *CategoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	ret := _m.Called(ctx, activeOnly)

	var r0 []domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Category
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Category)
	}
	return r0, ret.Error(1)
}

func (_m *CategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	ret := _m.Called(ctx, category)
	return ret.Error(0)
}

func (_m *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryRepository {
	m := &CategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MenuItemRepository struct {
	mock.Mock
}

func (_m *MenuItemRepository) ListMenuItems(ctx context.Context, categoryID int) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx, categoryID)

	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuItemRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuItemRepository) MenuItemsByIDs(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	ret := _m.Called(ctx, ids)

	var r0 map[int]domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuItemRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuItemRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuItemRepository) DeleteMenuItem(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *MenuItemRepository) UpdateMenuItemImage(ctx context.Context, id int, image string) error {
	ret := _m.Called(ctx, id, image)
	return ret.Error(0)
}

func (_m *MenuItemRepository) CreateOption(ctx context.Context, option *domain.MenuItemOption) error {
	ret := _m.Called(ctx, option)
	return ret.Error(0)
}

func (_m *MenuItemRepository) DeleteOption(ctx context.Context, menuItemID, optionID int) error {
	ret := _m.Called(ctx, menuItemID, optionID)
	return ret.Error(0)
}

func NewMenuItemRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuItemRepository {
	m := &MenuItemRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	ret := _m.Called(ctx, statuses)

	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (domain.OrderStatus, error) {
	ret := _m.Called(ctx, id, status)
	return ret.Get(0).(domain.OrderStatus), ret.Error(1)
}

func (_m *OrderRepository) CompareAndSetStatus(ctx context.Context, id int, from, to domain.OrderStatus) (bool, error) {
	ret := _m.Called(ctx, id, from, to)
	return ret.Bool(0), ret.Error(1)
}

func (_m *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type SettingsRepository struct {
	mock.Mock
}

func (_m *SettingsRepository) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	ret := _m.Called(ctx)

	var r0 *domain.SiteSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.SiteSettings)
	}
	return r0, ret.Error(1)
}

func (_m *SettingsRepository) SaveSettings(ctx context.Context, settings *domain.SiteSettings) error {
	ret := _m.Called(ctx, settings)
	return ret.Error(0)
}

func NewSettingsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SettingsRepository {
	m := &SettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
