package service

import (
	"context"

	"foodpos/pos-svc/internal/domain"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

type MenuItemRepository interface {
	ListMenuItems(ctx context.Context, categoryID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	MenuItemsByIDs(ctx context.Context, ids []int) (map[int]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
	UpdateMenuItemImage(ctx context.Context, id int, image string) error
	CreateOption(ctx context.Context, option *domain.MenuItemOption) error
	DeleteOption(ctx context.Context, menuItemID, optionID int) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
	// UpdateOrderStatus sets the status unconditionally and returns the
	// status the order had before.
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (domain.OrderStatus, error)
	// CompareAndSetStatus moves the order to `to` only while it is still in
	// `from`. It reports false when the order was changed by someone else.
	CompareAndSetStatus(ctx context.Context, id int, from, to domain.OrderStatus) (bool, error)
	DeleteOrder(ctx context.Context, id int) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.SiteSettings, error)
	SaveSettings(ctx context.Context, settings *domain.SiteSettings) error
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type CatalogServiceInterface interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int) (*domain.Category, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	ListMenuItems(ctx context.Context, categoryID int) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, req MenuItemRequest) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) error
	UpdateMenuItemImage(ctx context.Context, id int, image string) error
	AddOption(ctx context.Context, menuItemID int, req OptionRequest) (*domain.MenuItemOption, error)
	DeleteOption(ctx context.Context, menuItemID, optionID int) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	Advance(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	BulkAdvance(ctx context.Context, ids []int, status domain.OrderStatus) ([]BulkResult, error)
	Delete(ctx context.Context, id int) error
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Update(ctx context.Context, settings domain.SiteSettings) (*domain.SiteSettings, error)
}

type TableServiceInterface interface {
	QRCode(tableNumber int) ([]byte, error)
}
