package service

import (
	"context"
	"errors"
	"strings"

	"foodpos/pos-svc/internal/domain"
)

type SettingsService struct {
	repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the stored settings, falling back to the defaults until the
// first save.
func (s *SettingsService) Get(ctx context.Context) (*domain.SiteSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		defaults := domain.DefaultSiteSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, settings domain.SiteSettings) (*domain.SiteSettings, error) {
	settings.RestaurantName = strings.TrimSpace(settings.RestaurantName)
	if settings.RestaurantName == "" {
		return nil, domain.NewValidationError("restaurant_name", "this field is required")
	}
	if len(settings.RestaurantName) > 100 {
		return nil, domain.NewValidationError("restaurant_name", "must be at most 100 characters")
	}
	if settings.BlurAmount < 0 || settings.BlurAmount > 50 {
		return nil, domain.NewValidationError("blur_amount", "must be between 0 and 50")
	}

	if err := s.repo.SaveSettings(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

var _ SettingsServiceInterface = (*SettingsService)(nil)
