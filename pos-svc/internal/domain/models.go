package domain

import "time"

type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type MenuItem struct {
	ID           int              `json:"id"`
	CategoryID   int              `json:"category"`
	CategoryName string           `json:"category_name"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        Money            `json:"price"`
	IsAvailable  bool             `json:"is_available"`
	Image        string           `json:"image"`
	Options      []MenuItemOption `json:"options"`
}

// Option returns the option with the given id if it belongs to this item.
func (m MenuItem) Option(id int) (MenuItemOption, bool) {
	for _, opt := range m.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return MenuItemOption{}, false
}

type MenuItemOption struct {
	ID              int    `json:"id"`
	MenuItemID      int    `json:"-"`
	GroupName       string `json:"group_name"`
	Name            string `json:"name"`
	AdditionalPrice Money  `json:"additional_price"`
	IsRequired      bool   `json:"is_required"`
}

type Order struct {
	ID          int         `json:"id"`
	TableNumber int         `json:"table_number"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Total       Money       `json:"total"`
	Items       []OrderItem `json:"items"`
}

// ComputeTotal sets Total from the persisted item prices.
func (o *Order) ComputeTotal() {
	total := Zero()
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	o.Total = total
}

type OrderItem struct {
	ID           int    `json:"id"`
	OrderID      int    `json:"-"`
	MenuItemID   int    `json:"menu_item"`
	MenuItemName string `json:"menu_item_name"`
	Quantity     int    `json:"quantity"`
	Price        Money  `json:"price"`
	Notes        string `json:"notes"`
}

func (i OrderItem) Subtotal() Money {
	return i.Price.MulInt(i.Quantity)
}

type SiteSettings struct {
	RestaurantName  string `json:"restaurant_name"`
	BackgroundImage string `json:"background_image"`
	BlurAmount      int    `json:"blur_amount"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{RestaurantName: "FoodPOS", BlurAmount: 10}
}
