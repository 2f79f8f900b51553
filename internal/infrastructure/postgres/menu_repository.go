package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implements MenuRepository on PostgreSQL (pool or tx).
type MenuRepo struct {
	q Querier
}

func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

func (r *MenuRepo) Create(m *entity.MenuItem) error {
	query := `
		INSERT INTO menu_items
			(id, restaurant_id, category_id, item_name, price, reward_points, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.RestaurantID, m.CategoryID, m.ItemName, m.Price, m.RewardPoints, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create menu item: %w", mapError(err))
	}
	return nil
}

func (r *MenuRepo) Update(m *entity.MenuItem) error {
	query := `
		UPDATE menu_items
		SET category_id = $3, item_name = $4, price = $5, reward_points = $6, status = $7, updated_at = $8
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.RestaurantID, m.CategoryID, m.ItemName, m.Price, m.RewardPoints, m.Status, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MenuRepo) GetByID(id, restaurantID string) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, category_id, item_name, price, reward_points, status, created_at, updated_at
		FROM menu_items
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID).Scan(
		&m.ID, &m.RestaurantID, &m.CategoryID, &m.ItemName, &m.Price, &m.RewardPoints, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return &m, nil
}

func (r *MenuRepo) List(restaurantID string, limit, offset int) ([]entity.MenuItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, category_id, item_name, price, reward_points, status, created_at, updated_at
		FROM menu_items
		WHERE restaurant_id = $1 AND is_deleted = false
		ORDER BY item_name ASC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var out []entity.MenuItem
	for rows.Next() {
		var m entity.MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.CategoryID, &m.ItemName, &m.Price, &m.RewardPoints, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MenuRepo) SoftDelete(id, restaurantID string) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE menu_items SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID)
	if err != nil {
		return fmt.Errorf("soft delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
