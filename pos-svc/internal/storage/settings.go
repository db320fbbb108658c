package storage

import (
	"context"
	"database/sql"
	"errors"

	"foodpos/pos-svc/internal/domain"
)

func (r *PostgresRepository) GetSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.DB.QueryRowContext(ctx,
		"SELECT restaurant_name, background_image, blur_amount FROM site_settings WHERE id = 1").
		Scan(&s.RestaurantName, &s.BackgroundImage, &s.BlurAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) SaveSettings(ctx context.Context, s *domain.SiteSettings) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO site_settings (id, restaurant_name, background_image, blur_amount)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET restaurant_name = EXCLUDED.restaurant_name,
		    background_image = EXCLUDED.background_image,
		    blur_amount = EXCLUDED.blur_amount
	`, s.RestaurantName, s.BackgroundImage, s.BlurAmount)
	return err
}
