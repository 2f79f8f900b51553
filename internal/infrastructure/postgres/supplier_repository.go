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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implements SupplierRepository on PostgreSQL (pool or tx).
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers
			(id, restaurant_id, supplier_name, email, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.RestaurantID, s.SupplierName, s.Email, s.PhoneNumber, s.Address, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create supplier: %w", mapError(err))
	}
	return nil
}

func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers
		SET supplier_name = $3, email = $4, phone_number = $5, address = $6, updated_at = $7
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.RestaurantID, s.SupplierName, s.Email, s.PhoneNumber, s.Address, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SupplierRepo) GetByID(id, restaurantID string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, supplier_name, email, phone_number, address, created_at, updated_at
		FROM suppliers
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID).Scan(
		&s.ID, &s.RestaurantID, &s.SupplierName, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(restaurantID string, limit, offset int) ([]entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, supplier_name, email, phone_number, address, created_at, updated_at
		FROM suppliers
		WHERE restaurant_id = $1 AND is_deleted = false
		ORDER BY supplier_name ASC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.SupplierName, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SupplierRepo) SoftDelete(id, restaurantID string) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE suppliers SET is_deleted = true, updated_at = now()
		WHERE id = $1 AND restaurant_id = $2 AND is_deleted = false`, id, restaurantID)
	if err != nil {
		return fmt.Errorf("soft delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
