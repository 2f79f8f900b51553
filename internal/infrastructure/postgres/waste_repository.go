package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

var _ repository.WasteRepository = (*WasteRepo)(nil)

// WasteRepo implements WasteRepository on PostgreSQL (pool or tx).
type WasteRepo struct {
	q Querier
}

func NewWasteRepository(q Querier) *WasteRepo {
	return &WasteRepo{q: q}
}

func (r *WasteRepo) Create(w *entity.WasteRecord) error {
	query := `
		INSERT INTO waste_records
			(id, restaurant_id, item_id, item_name, quantity, unit, reason, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.RestaurantID, w.ItemID, w.ItemName, w.Quantity, string(w.Unit), w.Reason, w.Date, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create waste record: %w", mapError(err))
	}
	return nil
}

func (r *WasteRepo) Update(w *entity.WasteRecord) error {
	query := `
		UPDATE waste_records
		SET item_id = $3, item_name = $4, quantity = $5, unit = $6, reason = $7, date = $8, updated_at = now()
		WHERE id = $1 AND restaurant_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		w.ID, w.RestaurantID, w.ItemID, w.ItemName, w.Quantity, string(w.Unit), w.Reason, w.Date,
	)
	if err != nil {
		return fmt.Errorf("update waste record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WasteRepo) GetByID(id, restaurantID string) (*entity.WasteRecord, error) {
	var (
		w entity.WasteRecord
		u string
	)
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, item_id, item_name, quantity, unit, reason, date, created_at, updated_at
		FROM waste_records
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).Scan(
		&w.ID, &w.RestaurantID, &w.ItemID, &w.ItemName, &w.Quantity, &u, &w.Reason, &w.Date, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get waste record: %w", err)
	}
	w.Unit = unit.Unit(u)
	return &w, nil
}

func (r *WasteRepo) List(restaurantID string, limit, offset int) ([]entity.WasteRecord, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, item_id, item_name, quantity, unit, reason, date, created_at, updated_at
		FROM waste_records
		WHERE restaurant_id = $1
		ORDER BY date DESC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list waste records: %w", err)
	}
	defer rows.Close()

	var out []entity.WasteRecord
	for rows.Next() {
		var (
			w entity.WasteRecord
			u string
		)
		if err := rows.Scan(&w.ID, &w.RestaurantID, &w.ItemID, &w.ItemName, &w.Quantity, &u, &w.Reason, &w.Date, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan waste record: %w", err)
		}
		w.Unit = unit.Unit(u)
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WasteRepo) Delete(id, restaurantID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM waste_records WHERE id = $1 AND restaurant_id = $2`, id, restaurantID)
	if err != nil {
		return fmt.Errorf("delete waste record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
