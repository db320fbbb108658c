package storage

import (
	"context"

	"foodpos/pos-svc/internal/domain"

	"github.com/lib/pq"
)

// CreateOrder writes the header and all line items in one transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (table_number, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, order.TableNumber, order.Status).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity, price, notes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, order.ID, item.MenuItemID, item.Quantity, item.Price, item.Notes).Scan(&item.ID); err != nil {
			return translate(err, "menu item", item.MenuItemID)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := r.DB.QueryRowContext(ctx, `
		SELECT id, table_number, status, created_at, updated_at
		FROM orders WHERE id = $1
	`, id).Scan(&order.ID, &order.TableNumber, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, translate(err, "order", id)
	}

	items, err := r.loadOrderItems(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	return &order, nil
}

// ListOrders returns orders newest first, optionally restricted to statuses.
func (r *PostgresRepository) ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	filter := make([]string, 0, len(statuses))
	for _, st := range statuses {
		filter = append(filter, string(st))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, table_number, status, created_at, updated_at
		FROM orders
		WHERE cardinality($1::text[]) = 0 OR status = ANY($1)
		ORDER BY created_at DESC, id DESC
	`, pq.Array(filter))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	var ids []int
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.TableNumber, &order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.loadOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

// loadOrderItems fetches the lines of several orders at once. Item names come
// from the live menu rather than a stored copy.
func (r *PostgresRepository) loadOrderItems(ctx context.Context, orderIDs []int) (map[int][]domain.OrderItem, error) {
	items := make(map[int][]domain.OrderItem)
	if len(orderIDs) == 0 {
		return items, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, oi.quantity, oi.price, oi.notes
		FROM order_items oi
		JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id
	`, pq.Array(int64s(orderIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.MenuItemName,
			&item.Quantity, &item.Price, &item.Notes); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus) (domain.OrderStatus, error) {
	var previous domain.OrderStatus
	err := r.DB.QueryRowContext(ctx, `
		WITH prev AS (
			SELECT id, status FROM orders WHERE id = $2 FOR UPDATE
		)
		UPDATE orders o
		SET status = $1, updated_at = CASE WHEN prev.status = $1 THEN o.updated_at ELSE NOW() END
		FROM prev
		WHERE o.id = prev.id
		RETURNING prev.status
	`, status, id).Scan(&previous)
	if err != nil {
		return "", translate(err, "order", id)
	}
	return previous, nil
}

func (r *PostgresRepository) CompareAndSetStatus(ctx context.Context, id int, from, to domain.OrderStatus) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOne(result, "order", id)
}
