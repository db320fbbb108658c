package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodpos/pos-svc/internal/domain"
)

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsActive *bool  `json:"is_active"`
}

type MenuItemRequest struct {
	CategoryID  int          `json:"category" validate:"gt=0"`
	Name        string       `json:"name" validate:"required,max=100"`
	Description string       `json:"description"`
	Price       domain.Money `json:"price"`
	IsAvailable *bool        `json:"is_available"`
	Image       string       `json:"image" validate:"max=255"`
}

type OptionRequest struct {
	GroupName       string       `json:"group_name" validate:"required,max=100"`
	Name            string       `json:"name" validate:"required,max=100"`
	AdditionalPrice domain.Money `json:"additional_price"`
	IsRequired      bool         `json:"is_required"`
}

type CatalogService struct {
	categories CategoryRepository
	menu       MenuItemRepository
}

func NewCatalogService(categories CategoryRepository, menu MenuItemRepository) *CatalogService {
	return &CatalogService{categories: categories, menu: menu}
}

func (s *CatalogService) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx, activeOnly)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := &domain.Category{Name: req.Name, IsActive: boolOr(req.IsActive, true)}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int, req CategoryRequest) (*domain.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.IsActive = boolOr(req.IsActive, category.IsActive)

	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	return s.categories.DeleteCategory(ctx, id)
}

func (s *CatalogService) ListMenuItems(ctx context.Context, categoryID int) ([]domain.MenuItem, error) {
	if categoryID < 0 {
		return nil, domain.NewValidationError("category", "must be a positive id")
	}
	return s.menu.ListMenuItems(ctx, categoryID)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.menu.GetMenuItem(ctx, id)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := s.checkMenuItem(ctx, &req); err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsAvailable: boolOr(req.IsAvailable, true),
		Image:       req.Image,
		Options:     []domain.MenuItemOption{},
	}
	if err := s.menu.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.menu.GetMenuItem(ctx, item.ID)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, id int, req MenuItemRequest) (*domain.MenuItem, error) {
	if err := s.checkMenuItem(ctx, &req); err != nil {
		return nil, err
	}

	item, err := s.menu.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.CategoryID = req.CategoryID
	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.IsAvailable = boolOr(req.IsAvailable, item.IsAvailable)
	if req.Image != "" {
		item.Image = req.Image
	}

	if err := s.menu.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return s.menu.GetMenuItem(ctx, id)
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, id int) error {
	return s.menu.DeleteMenuItem(ctx, id)
}

func (s *CatalogService) UpdateMenuItemImage(ctx context.Context, id int, image string) error {
	return s.menu.UpdateMenuItemImage(ctx, id, image)
}

func (s *CatalogService) AddOption(ctx context.Context, menuItemID int, req OptionRequest) (*domain.MenuItemOption, error) {
	req.GroupName = strings.TrimSpace(req.GroupName)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.AdditionalPrice.IsNegative() {
		return nil, domain.NewValidationError("additional_price", "must not be negative")
	}
	if _, err := s.menu.GetMenuItem(ctx, menuItemID); err != nil {
		return nil, err
	}

	option := &domain.MenuItemOption{
		MenuItemID:      menuItemID,
		GroupName:       req.GroupName,
		Name:            req.Name,
		AdditionalPrice: req.AdditionalPrice,
		IsRequired:      req.IsRequired,
	}
	if err := s.menu.CreateOption(ctx, option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *CatalogService) DeleteOption(ctx context.Context, menuItemID, optionID int) error {
	return s.menu.DeleteOption(ctx, menuItemID, optionID)
}

// checkMenuItem validates the payload and resolves its category reference.
func (s *CatalogService) checkMenuItem(ctx context.Context, req *MenuItemRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return domain.NewValidationError("price", "must not be negative")
	}

	if _, err := s.categories.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("category", "category %d does not exist", req.CategoryID)
		}
		return fmt.Errorf("resolve category: %w", err)
	}
	return nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
