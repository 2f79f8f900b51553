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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository on PostgreSQL (pool or tx). Lines live
// in order_lines keyed by position; Update rewrites the full line set since a
// merge can touch any of them.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders
			(id, restaurant_id, user_id, customer_id, customer_name, table_number, order_type,
			 status, payment_status, subtotal, tax, discount, round_off, total_amount, kot_generated,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.RestaurantID, o.UserID, o.CustomerID, o.CustomerName, o.TableNumber, o.OrderType,
		o.Status, o.PaymentStatus, o.Subtotal, o.Tax, o.Discount, o.RoundOff, o.TotalAmount, o.KOTGenerated,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", mapError(err))
	}
	return r.writeLines(o)
}

func (r *OrderRepo) Update(o *entity.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $3, customer_name = $4, order_type = $5, status = $6, payment_status = $7,
			subtotal = $8, tax = $9, discount = $10, round_off = $11, total_amount = $12,
			kot_generated = $13, updated_at = $14
		WHERE id = $1 AND restaurant_id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.RestaurantID, o.CustomerID, o.CustomerName, o.OrderType, o.Status, o.PaymentStatus,
		o.Subtotal, o.Tax, o.Discount, o.RoundOff, o.TotalAmount, o.KOTGenerated, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("clear order lines: %w", err)
	}
	return r.writeLines(o)
}

func (r *OrderRepo) writeLines(o *entity.Order) error {
	query := `
		INSERT INTO order_lines
			(order_id, position, item_id, item_name, subcategory_id, size_id, size_label,
			 price, quantity, subtotal, tax_percentage, tax_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for i, l := range o.Items {
		if _, err := r.q.Exec(context.Background(), query,
			o.ID, i, l.ItemID, l.ItemName, l.SubcategoryID, l.SizeID, l.Size,
			l.Price, l.Quantity, l.Subtotal, l.TaxPercentage, l.TaxAmount,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(id, restaurantID string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, user_id, customer_id, customer_name, table_number, order_type,
			status, payment_status, subtotal, tax, discount, round_off, total_amount, kot_generated,
			created_at, updated_at
		FROM orders
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).Scan(
		&o.ID, &o.RestaurantID, &o.UserID, &o.CustomerID, &o.CustomerName, &o.TableNumber, &o.OrderType,
		&o.Status, &o.PaymentStatus, &o.Subtotal, &o.Tax, &o.Discount, &o.RoundOff, &o.TotalAmount, &o.KOTGenerated,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) loadLines(o *entity.Order) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT item_id, item_name, subcategory_id, size_id, size_label,
			price, quantity, subtotal, tax_percentage, tax_amount
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position ASC`, o.ID)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.SubcategoryID, &l.SizeID, &l.Size,
			&l.Price, &l.Quantity, &l.Subtotal, &l.TaxPercentage, &l.TaxAmount); err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		o.Items = append(o.Items, l)
	}
	return rows.Err()
}

func (r *OrderRepo) List(restaurantID string, limit, offset int) ([]entity.Order, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, user_id, customer_id, customer_name, table_number, order_type,
			status, payment_status, subtotal, tax, discount, round_off, total_amount, kot_generated,
			created_at, updated_at
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(
			&o.ID, &o.RestaurantID, &o.UserID, &o.CustomerID, &o.CustomerName, &o.TableNumber, &o.OrderType,
			&o.Status, &o.PaymentStatus, &o.Subtotal, &o.Tax, &o.Discount, &o.RoundOff, &o.TotalAmount, &o.KOTGenerated,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadLines(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
