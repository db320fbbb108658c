package storage

import (
	"context"

	"foodpos/pos-svc/internal/domain"

	"github.com/lib/pq"
)

const menuItemSelect = `
	SELECT m.id, m.category_id, c.name, m.name, m.description, m.price, m.is_available, m.image
	FROM menu_items m
	JOIN categories c ON c.id = m.category_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.CategoryID, &item.CategoryName, &item.Name,
		&item.Description, &item.Price, &item.IsAvailable, &item.Image)
	item.Options = []domain.MenuItemOption{}
	return item, err
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, categoryID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		menuItemSelect+" WHERE ($1 = 0 OR m.category_id = $1) ORDER BY c.name, m.name, m.id", categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	var ids []int
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	options, err := r.loadOptions(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if opts, ok := options[items[i].ID]; ok {
			items[i].Options = opts
		}
	}
	return items, nil
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, menuItemSelect+" WHERE m.id = $1", id))
	if err != nil {
		return nil, translate(err, "menu item", id)
	}

	options, err := r.loadOptions(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	if opts, ok := options[id]; ok {
		item.Options = opts
	}
	return &item, nil
}

// MenuItemsByIDs resolves a batch of ids with their options. Unknown ids are
// absent from the result.
func (r *PostgresRepository) MenuItemsByIDs(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	result := make(map[int]domain.MenuItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.DB.QueryContext(ctx, menuItemSelect+" WHERE m.id = ANY($1)", pq.Array(int64s(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []int
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result[item.ID] = item
		found = append(found, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	options, err := r.loadOptions(ctx, found)
	if err != nil {
		return nil, err
	}
	for id, opts := range options {
		item := result[id]
		item.Options = opts
		result[id] = item
	}
	return result, nil
}

func (r *PostgresRepository) loadOptions(ctx context.Context, itemIDs []int) (map[int][]domain.MenuItemOption, error) {
	options := make(map[int][]domain.MenuItemOption)
	if len(itemIDs) == 0 {
		return options, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, menu_item_id, group_name, name, additional_price, is_required
		FROM menu_item_options
		WHERE menu_item_id = ANY($1)
		ORDER BY menu_item_id, group_name, id`, pq.Array(int64s(itemIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var opt domain.MenuItemOption
		if err := rows.Scan(&opt.ID, &opt.MenuItemID, &opt.GroupName, &opt.Name, &opt.AdditionalPrice, &opt.IsRequired); err != nil {
			return nil, err
		}
		options[opt.MenuItemID] = append(options[opt.MenuItemID], opt)
	}
	return options, rows.Err()
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, description, price, is_available, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, item.Image,
	).Scan(&item.ID)
	return translate(err, "category", item.CategoryID)
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE menu_items
		SET category_id = $1, name = $2, description = $3, price = $4, is_available = $5, image = $6
		WHERE id = $7`,
		item.CategoryID, item.Name, item.Description, item.Price, item.IsAvailable, item.Image, item.ID)
	if err != nil {
		return translate(err, "category", item.CategoryID)
	}
	return expectOne(result, "menu item", item.ID)
}

// DeleteMenuItem refuses to remove an item that appears on any order.
func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return translate(err, "menu item", id)
	}
	return expectOne(result, "menu item", id)
}

func (r *PostgresRepository) UpdateMenuItemImage(ctx context.Context, id int, image string) error {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET image = $1 WHERE id = $2", image, id)
	if err != nil {
		return err
	}
	return expectOne(result, "menu item", id)
}

func (r *PostgresRepository) CreateOption(ctx context.Context, option *domain.MenuItemOption) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_item_options (menu_item_id, group_name, name, additional_price, is_required)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		option.MenuItemID, option.GroupName, option.Name, option.AdditionalPrice, option.IsRequired,
	).Scan(&option.ID)
	return translate(err, "menu item", option.MenuItemID)
}

func (r *PostgresRepository) DeleteOption(ctx context.Context, menuItemID, optionID int) error {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM menu_item_options WHERE id = $1 AND menu_item_id = $2", optionID, menuItemID)
	if err != nil {
		return err
	}
	return expectOne(result, "option", optionID)
}
