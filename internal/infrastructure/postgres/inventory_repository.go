package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implements InventoryRepository on PostgreSQL (pool or tx).
// Batches live in their own table; Update rewrites them wholesale because
// FIFO consumption mutates quantities across many rows at once.
type InventoryRepo struct {
	q Querier
}

func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items
			(id, restaurant_id, item_name, unit, quantity, total_quantity, amount, total, purchased_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.RestaurantID, item.ItemName, string(item.Unit),
		item.Stock.Quantity, item.Stock.TotalQuantity, item.Stock.Amount, item.Stock.Total,
		item.Stock.PurchasedAt, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory item: %w", mapError(err))
	}
	return r.writeBatches(item)
}

func (r *InventoryRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $3, total_quantity = $4, amount = $5, total = $6, purchased_at = $7, updated_at = $8
		WHERE id = $1 AND restaurant_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.RestaurantID,
		item.Stock.Quantity, item.Stock.TotalQuantity, item.Stock.Amount, item.Stock.Total,
		item.Stock.PurchasedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM supplier_batches WHERE item_id = $1`, item.ID); err != nil {
		return fmt.Errorf("clear supplier batches: %w", err)
	}
	return r.writeBatches(item)
}

func (r *InventoryRepo) writeBatches(item *entity.InventoryItem) error {
	query := `
		INSERT INTO supplier_batches
			(id, item_id, supplier_id, supplier_name, quantity, unit_price, total, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, b := range item.Suppliers {
		if _, err := r.q.Exec(context.Background(), query,
			b.ID, item.ID, b.SupplierID, b.SupplierName, b.Quantity, b.UnitPrice, b.Total, b.PurchasedAt,
		); err != nil {
			return fmt.Errorf("insert supplier batch: %w", err)
		}
	}
	return nil
}

func (r *InventoryRepo) GetByID(id, restaurantID string) (*entity.InventoryItem, error) {
	return r.get(`
		SELECT id, restaurant_id, item_name, unit, quantity, total_quantity, amount, total, purchased_at, created_at, updated_at
		FROM inventory_items
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID)
}

// GetForUpdate locks the item row until the enclosing transaction ends.
// Batches need no separate lock: they are only written under this row lock.
func (r *InventoryRepo) GetForUpdate(id, restaurantID string) (*entity.InventoryItem, error) {
	return r.get(`
		SELECT id, restaurant_id, item_name, unit, quantity, total_quantity, amount, total, purchased_at, created_at, updated_at
		FROM inventory_items
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false
		FOR UPDATE`, id, restaurantID)
}

func (r *InventoryRepo) GetByName(name, restaurantID string) (*entity.InventoryItem, error) {
	return r.get(`
		SELECT id, restaurant_id, item_name, unit, quantity, total_quantity, amount, total, purchased_at, created_at, updated_at
		FROM inventory_items
		WHERE item_name = $1 AND restaurant_id = $2 AND is_deleted = false`, name, restaurantID)
}

func (r *InventoryRepo) get(query string, args ...any) (*entity.InventoryItem, error) {
	var (
		item entity.InventoryItem
		u    string
	)
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&item.ID, &item.RestaurantID, &item.ItemName, &u,
		&item.Stock.Quantity, &item.Stock.TotalQuantity, &item.Stock.Amount, &item.Stock.Total,
		&item.Stock.PurchasedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	item.Unit = unit.Unit(u)
	if err := r.loadBatches(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepo) loadBatches(item *entity.InventoryItem) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, supplier_id, supplier_name, quantity, unit_price, total, purchased_at
		FROM supplier_batches
		WHERE item_id = $1
		ORDER BY purchased_at ASC`, item.ID)
	if err != nil {
		return fmt.Errorf("load supplier batches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b entity.SupplierBatch
		if err := rows.Scan(&b.ID, &b.SupplierID, &b.SupplierName, &b.Quantity, &b.UnitPrice, &b.Total, &b.PurchasedAt); err != nil {
			return fmt.Errorf("scan supplier batch: %w", err)
		}
		item.Suppliers = append(item.Suppliers, b)
	}
	return rows.Err()
}

func (r *InventoryRepo) List(restaurantID string, limit, offset int) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, item_name, unit, quantity, total_quantity, amount, total, purchased_at, created_at, updated_at
		FROM inventory_items
		WHERE restaurant_id = $1 AND is_deleted = false
		ORDER BY item_name ASC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var (
			item entity.InventoryItem
			u    string
		)
		if err := rows.Scan(
			&item.ID, &item.RestaurantID, &item.ItemName, &u,
			&item.Stock.Quantity, &item.Stock.TotalQuantity, &item.Stock.Amount, &item.Stock.Total,
			&item.Stock.PurchasedAt, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		item.Unit = unit.Unit(u)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range items {
		if err := r.loadBatches(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *InventoryRepo) SoftDelete(id, restaurantID string, at time.Time) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE inventory_items
		SET is_deleted = true, deleted_at = $3, updated_at = $3
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID, at)
	if err != nil {
		return fmt.Errorf("soft delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
