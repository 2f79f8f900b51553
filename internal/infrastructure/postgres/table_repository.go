package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

var _ repository.TableRepository = (*TableRepo)(nil)

// TableRepo implements TableRepository on PostgreSQL (pool or tx). The locked
// table row is the serialization point for everything that happens to a table
// within one transaction.
type TableRepo struct {
	q Querier
}

func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

// GetOrCreateForUpdate returns the table row locked for the enclosing
// transaction, inserting it first when the number is new. The insert uses
// ON CONFLICT DO NOTHING so two first-time submissions race safely; the
// follow-up SELECT FOR UPDATE then blocks one of them.
func (r *TableRepo) GetOrCreateForUpdate(restaurantID, tableNumber string) (*entity.Table, error) {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO tables (id, restaurant_id, table_number, current_order_id, created_at, updated_at)
		VALUES ($1, $2, $3, '', now(), now())
		ON CONFLICT (restaurant_id, table_number) DO NOTHING`,
		uuid.NewString(), restaurantID, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("insert table: %w", err)
	}

	var t entity.Table
	err = r.q.QueryRow(ctx, `
		SELECT id, restaurant_id, table_number, current_order_id, created_at, updated_at
		FROM tables
		WHERE restaurant_id = $1 AND table_number = $2
		FOR UPDATE`, restaurantID, tableNumber).Scan(
		&t.ID, &t.RestaurantID, &t.TableNumber, &t.CurrentOrderID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get table for update: %w", err)
	}
	return &t, nil
}

func (r *TableRepo) SetCurrentOrder(tableID, orderID string) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE tables SET current_order_id = $2, updated_at = now() WHERE id = $1`, tableID, orderID)
	if err != nil {
		return fmt.Errorf("set current order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TableRepo) ClearCurrentOrder(tableID string) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE tables SET current_order_id = '', updated_at = now() WHERE id = $1`, tableID)
	if err != nil {
		return fmt.Errorf("clear current order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
