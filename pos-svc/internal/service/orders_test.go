package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"foodpos/logger"
	"foodpos/pos-svc/internal/domain"
	"foodpos/pos-svc/internal/mocks"
	"foodpos/pos-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLog = logger.NewWithWriter("pos-svc-test", io.Discard)

type fixture struct {
	store   *memStore
	catalog *service.CatalogService
	orders  *service.OrderService
}

func newFixture() *fixture {
	store := newMemStore()
	return &fixture{
		store:   store,
		catalog: service.NewCatalogService(store, store),
		orders:  service.NewOrderService(store, store, nil, testLog),
	}
}

func boolPtr(b bool) *bool { return &b }

// seedBeverages creates the "Beverages" category with "Iced Coffee" priced
// 60.00 and two option groups.
func (f *fixture) seedBeverages(t *testing.T) *domain.MenuItem {
	t.Helper()
	ctx := context.Background()

	category, err := f.catalog.CreateCategory(ctx, service.CategoryRequest{Name: "Beverages"})
	require.NoError(t, err)
	require.True(t, category.IsActive)

	item, err := f.catalog.CreateMenuItem(ctx, service.MenuItemRequest{
		CategoryID: category.ID,
		Name:       "Iced Coffee",
		Price:      domain.MustMoney("60.00"),
	})
	require.NoError(t, err)

	_, err = f.catalog.AddOption(ctx, item.ID, service.OptionRequest{GroupName: "Size", Name: "Large", AdditionalPrice: domain.MustMoney("15.00")})
	require.NoError(t, err)
	_, err = f.catalog.AddOption(ctx, item.ID, service.OptionRequest{GroupName: "Sweetness", Name: "Less sweet", AdditionalPrice: domain.MustMoney("0")})
	require.NoError(t, err)

	item, err = f.catalog.GetMenuItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, item.Options, 2)
	return item
}

func TestOrderService_Scenario_KitchenFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)

	order, err := f.orders.Create(ctx, service.CreateOrderRequest{
		TableNumber: 5,
		Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "60.00", order.Items[0].Price.String())
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "120.00", order.Total.String())

	for _, next := range []domain.OrderStatus{domain.StatusCooking, domain.StatusReady, domain.StatusCompleted} {
		updated, err := f.orders.UpdateStatus(ctx, order.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	completed, err := f.orders.List(ctx, []domain.OrderStatus{domain.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, order.ID, completed[0].ID)
	assert.Equal(t, "Iced Coffee", completed[0].Items[0].MenuItemName)
}

func TestOrderService_Create_PriceSnapshot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)
	large, sweet := coffee.Options[0], coffee.Options[1]

	order, err := f.orders.Create(ctx, service.CreateOrderRequest{
		TableNumber: 3,
		Items: []service.CreateOrderItem{
			{MenuItemID: coffee.ID, Quantity: 1, Options: []int{large.ID, sweet.ID, large.ID}, Notes: " no ice "},
			{MenuItemID: coffee.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "75.00", order.Items[0].Price.String())
	assert.Equal(t, "Size: Large, Sweetness: Less sweet; no ice", order.Items[0].Notes)
	assert.Equal(t, "60.00", order.Items[1].Price.String())
	assert.Equal(t, "", order.Items[1].Notes)
	assert.Equal(t, "255.00", order.Total.String())

	_, err = f.catalog.UpdateMenuItem(ctx, coffee.ID, service.MenuItemRequest{
		CategoryID: coffee.CategoryID,
		Name:       coffee.Name,
		Price:      domain.MustMoney("80.00"),
	})
	require.NoError(t, err)

	reloaded, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "75.00", reloaded.Items[0].Price.String())
	assert.Equal(t, "60.00", reloaded.Items[1].Price.String())
	assert.Equal(t, "255.00", reloaded.Total.String())
}

func TestOrderService_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		build     func(coffee, tea *domain.MenuItem) service.CreateOrderRequest
		wantField string
	}{
		{
			name: "empty items",
			build: func(_, _ *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1, Items: []service.CreateOrderItem{}}
			},
			wantField: "items",
		},
		{
			name: "missing items",
			build: func(_, _ *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1}
			},
			wantField: "items",
		},
		{
			name: "table number not positive",
			build: func(coffee, _ *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{Items: []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 1}}}
			},
			wantField: "table_number",
		},
		{
			name: "quantity below one",
			build: func(coffee, _ *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1, Items: []service.CreateOrderItem{
					{MenuItemID: coffee.ID, Quantity: 1},
					{MenuItemID: coffee.ID, Quantity: 0},
				}}
			},
			wantField: "items[1].quantity",
		},
		{
			name: "unknown menu item",
			build: func(_, _ *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1, Items: []service.CreateOrderItem{{MenuItemID: 9999, Quantity: 1}}}
			},
			wantField: "items[0].menu_item",
		},
		{
			name: "unavailable menu item",
			build: func(_, tea *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1, Items: []service.CreateOrderItem{{MenuItemID: tea.ID, Quantity: 1}}}
			},
			wantField: "items[0].menu_item",
		},
		{
			name: "option of another menu item",
			build: func(coffee, tea *domain.MenuItem) service.CreateOrderRequest {
				return service.CreateOrderRequest{TableNumber: 1, Items: []service.CreateOrderItem{
					{MenuItemID: coffee.ID, Quantity: 1, Options: []int{coffee.Options[0].ID}},
					{MenuItemID: coffee.ID, Quantity: 1, Options: []int{tea.ID}},
				}}
			},
			wantField: "items[1].options",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			coffee := f.seedBeverages(t)
			tea, err := f.catalog.CreateMenuItem(ctx, service.MenuItemRequest{
				CategoryID:  coffee.CategoryID,
				Name:        "Thai Tea",
				Price:       domain.MustMoney("45.00"),
				IsAvailable: boolPtr(false),
			})
			require.NoError(t, err)

			order, err := f.orders.Create(ctx, testCase.build(coffee, tea))

			assert.Nil(t, order)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, testCase.wantField, verr.Field)

			all, err := f.orders.List(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)

	order, err := f.orders.Create(ctx, service.CreateOrderRequest{
		TableNumber: 2,
		Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	t.Run("idempotent", func(t *testing.T) {
		first, err := f.orders.UpdateStatus(ctx, order.ID, domain.StatusReady)
		require.NoError(t, err)
		second, err := f.orders.UpdateStatus(ctx, order.ID, domain.StatusReady)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReady, second.Status)
		assert.Equal(t, first.Items, second.Items)
	})

	t.Run("unrestricted transition", func(t *testing.T) {
		updated, err := f.orders.UpdateStatus(ctx, order.ID, domain.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, updated.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := f.orders.UpdateStatus(ctx, 9999, domain.StatusReady)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.orders.UpdateStatus(ctx, order.ID, "served")
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
	})
}

func TestOrderService_List_FilterAndOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)

	var ids []int
	for table := 1; table <= 4; table++ {
		order, err := f.orders.Create(ctx, service.CreateOrderRequest{
			TableNumber: table,
			Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: table}},
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}
	_, err := f.orders.UpdateStatus(ctx, ids[1], domain.StatusCooking)
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(ctx, ids[2], domain.StatusCompleted)
	require.NoError(t, err)

	active, err := f.orders.List(ctx, []domain.OrderStatus{domain.StatusPending, domain.StatusCooking})
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []int{ids[3], ids[1], ids[0]}, []int{active[0].ID, active[1].ID, active[2].ID})
	for _, o := range active {
		assert.Contains(t, []domain.OrderStatus{domain.StatusPending, domain.StatusCooking}, o.Status)
	}
	assert.Equal(t, "240.00", active[0].Total.String())

	_, err = f.orders.List(ctx, []domain.OrderStatus{"served"})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestOrderService_Advance(t *testing.T) {
	tests := []struct {
		name     string
		from     domain.OrderStatus
		to       domain.OrderStatus
		wantErr  error
		wantDone domain.OrderStatus
	}{
		{name: "pending to cooking", from: domain.StatusPending, to: domain.StatusCooking, wantDone: domain.StatusCooking},
		{name: "cooking to completed", from: domain.StatusCooking, to: domain.StatusCompleted, wantDone: domain.StatusCompleted},
		{name: "ready to cancelled", from: domain.StatusReady, to: domain.StatusCancelled, wantDone: domain.StatusCancelled},
		{name: "same status", from: domain.StatusReady, to: domain.StatusReady, wantDone: domain.StatusReady},
		{name: "skip a step", from: domain.StatusPending, to: domain.StatusReady, wantErr: domain.ErrConflict},
		{name: "backwards", from: domain.StatusCompleted, to: domain.StatusCooking, wantErr: domain.ErrConflict},
		{name: "leave cancelled", from: domain.StatusCancelled, to: domain.StatusPending, wantErr: domain.ErrConflict},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			coffee := f.seedBeverages(t)
			order, err := f.orders.Create(ctx, service.CreateOrderRequest{
				TableNumber: 7,
				Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 1}},
			})
			require.NoError(t, err)
			_, err = f.orders.UpdateStatus(ctx, order.ID, testCase.from)
			require.NoError(t, err)

			result, err := f.orders.Advance(ctx, order.ID, testCase.to)

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				current, getErr := f.orders.Get(ctx, order.ID)
				require.NoError(t, getErr)
				assert.Equal(t, testCase.from, current.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantDone, result.Status)
		})
	}
}

func TestOrderService_BulkAdvance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)

	newOrder := func() int {
		order, err := f.orders.Create(ctx, service.CreateOrderRequest{
			TableNumber: 1,
			Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		return order.ID
	}
	pending := newOrder()
	completed := newOrder()
	_, err := f.orders.UpdateStatus(ctx, completed, domain.StatusCompleted)
	require.NoError(t, err)

	results, err := f.orders.BulkAdvance(ctx, []int{pending, completed, 9999}, domain.StatusCooking)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "ok", results[0].Status)
	assert.Equal(t, domain.StatusCooking, results[0].OrderStatus)
	assert.Empty(t, results[0].Message)
	assert.Equal(t, "error", results[1].Status)
	assert.Contains(t, results[1].Message, "cannot move from completed to cooking")
	assert.Equal(t, "error", results[2].Status)
	assert.Contains(t, results[2].Message, "not found")

	_, err = f.orders.BulkAdvance(ctx, nil, domain.StatusCooking)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ids", verr.Field)
}

func TestOrderService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coffee := f.seedBeverages(t)
	order, err := f.orders.Create(ctx, service.CreateOrderRequest{
		TableNumber: 9,
		Items:       []service.CreateOrderItem{{MenuItemID: coffee.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, order.ID))
	_, err = f.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.orders.Delete(ctx, order.ID), domain.ErrNotFound)
}

func TestOrderService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	menuItem := domain.MenuItem{ID: 1, Name: "Iced Coffee", Price: domain.MustMoney("60.00"), IsAvailable: true}

	t.Run("created event survives publish failure", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepository(t)
		menuRepo := mocks.NewMenuItemRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orderRepo, menuRepo, publisher, testLog)

		menuRepo.On("MenuItemsByIDs", mock.Anything, []int{1}).
			Return(map[int]domain.MenuItem{1: menuItem}, nil).Once()
		orderRepo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Order).ID = 42 }).
			Return(nil).Once()
		publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderCreated && e.OrderID == 42 && e.Total.String() == "120.00" && len(e.Items) == 1
		})).Return(errors.New("broker unavailable")).Once()

		order, err := svc.Create(ctx, service.CreateOrderRequest{
			TableNumber: 5,
			Items:       []service.CreateOrderItem{{MenuItemID: 1, Quantity: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, 42, order.ID)
	})

	t.Run("no event when nothing persisted", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepository(t)
		menuRepo := mocks.NewMenuItemRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orderRepo, menuRepo, publisher, testLog)

		menuRepo.On("MenuItemsByIDs", mock.Anything, []int{1}).
			Return(map[int]domain.MenuItem{1: menuItem}, nil).Once()
		orderRepo.On("CreateOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.Create(ctx, service.CreateOrderRequest{
			TableNumber: 5,
			Items:       []service.CreateOrderItem{{MenuItemID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, assert.AnError)
		publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
	})

	t.Run("status change carries previous status", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orderRepo, nil, publisher, testLog)

		orderRepo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusReady).Return(domain.StatusCooking, nil).Once()
		orderRepo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, TableNumber: 2, Status: domain.StatusReady}, nil).Once()
		publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
			return e.Type == domain.EventOrderStatusChanged && e.PreviousStatus == domain.StatusCooking && e.Status == domain.StatusReady
		})).Return(nil).Once()

		order, err := svc.UpdateStatus(ctx, 7, domain.StatusReady)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusReady, order.Status)
	})

	t.Run("repeated status is silent", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orderRepo, nil, publisher, testLog)

		orderRepo.On("UpdateOrderStatus", mock.Anything, 7, domain.StatusReady).Return(domain.StatusReady, nil).Once()
		orderRepo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, Status: domain.StatusReady}, nil).Once()

		_, err := svc.UpdateStatus(ctx, 7, domain.StatusReady)
		require.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
	})

	t.Run("lost race on advance", func(t *testing.T) {
		orderRepo := mocks.NewOrderRepository(t)
		publisher := mocks.NewEventPublisher(t)
		svc := service.NewOrderService(orderRepo, nil, publisher, testLog)

		orderRepo.On("GetOrder", mock.Anything, 7).Return(&domain.Order{ID: 7, Status: domain.StatusPending}, nil).Once()
		orderRepo.On("CompareAndSetStatus", mock.Anything, 7, domain.StatusPending, domain.StatusCooking).Return(false, nil).Once()

		_, err := svc.Advance(ctx, 7, domain.StatusCooking)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.OrderStatus
		wantErr bool
	}{
		{name: "empty", raw: "", wantErr: true},
		{name: "only separators", raw: " , ,", wantErr: true},
		{name: "single", raw: "ready", want: []domain.OrderStatus{domain.StatusReady}},
		{name: "list with spaces", raw: "pending, cooking,", want: []domain.OrderStatus{domain.StatusPending, domain.StatusCooking}},
		{name: "unknown", raw: "pending,served", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := service.ParseStatusFilter(testCase.raw)
			if testCase.wantErr {
				var verr *domain.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
