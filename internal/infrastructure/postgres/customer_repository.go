package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository on PostgreSQL (pool or tx).
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers
			(id, restaurant_id, name, email, phone_number, address, birthday, anniversary, earned_points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.RestaurantID, c.Name, c.Email, c.PhoneNumber, c.Address, c.Birthday, c.Anniversary, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create customer: %w", mapError(err))
	}
	return nil
}

func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $3, email = $4, phone_number = $5, address = $6, birthday = $7, anniversary = $8, updated_at = $9
		WHERE id = $1 AND restaurant_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.RestaurantID, c.Name, c.Email, c.PhoneNumber, c.Address, c.Birthday, c.Anniversary, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) GetByID(id, restaurantID string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, name, email, phone_number, address, birthday, anniversary, earned_points, created_at, updated_at
		FROM customers
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).Scan(
		&c.ID, &c.RestaurantID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address, &c.Birthday, &c.Anniversary, &c.EarnedPoints, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepo) List(restaurantID string, limit, offset int) ([]entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, name, email, phone_number, address, birthday, anniversary, earned_points, created_at, updated_at
		FROM customers
		WHERE restaurant_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Email, &c.PhoneNumber, &c.Address, &c.Birthday, &c.Anniversary, &c.EarnedPoints, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Delete(id, restaurantID string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM customers WHERE id = $1 AND restaurant_id = $2`, id, restaurantID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementPoints credits loyalty points with one additive UPDATE, so
// concurrent settlements never lose a credit to a read-modify-write race.
func (r *CustomerRepo) IncrementPoints(id string, points decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE customers SET earned_points = earned_points + $2, updated_at = now() WHERE id = $1`, id, points)
	if err != nil {
		return fmt.Errorf("increment customer points: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
