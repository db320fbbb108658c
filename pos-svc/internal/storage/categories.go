package storage

import (
	"context"

	"foodpos/pos-svc/internal/domain"
)

func (r *PostgresRepository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := "SELECT id, name, is_active FROM categories ORDER BY name, id"
	if activeOnly {
		query = "SELECT id, name, is_active FROM categories WHERE is_active ORDER BY name, id"
	}

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	var c domain.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, is_active FROM categories WHERE id = $1", id).
		Scan(&c.ID, &c.Name, &c.IsActive)
	if err != nil {
		return nil, translate(err, "category", id)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (name, is_active) VALUES ($1, $2) RETURNING id",
		category.Name, category.IsActive,
	).Scan(&category.ID)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET name = $1, is_active = $2 WHERE id = $3",
		category.Name, category.IsActive, category.ID)
	if err != nil {
		return err
	}
	return expectOne(result, "category", category.ID)
}

// DeleteCategory refuses to remove a category that still has menu items.
func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return translate(err, "category", id)
	}
	return expectOne(result, "category", id)
}
