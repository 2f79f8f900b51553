package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implements TransactionRepository on PostgreSQL (pool or
// tx). Line items are stored as a JSONB snapshot: a settled receipt is
// immutable and is only ever read back whole.
type TransactionRepo struct {
	q Querier
}

func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// txnLine is the JSONB shape of one receipt line.
type txnLine struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	SizeID        string          `json:"size_id,omitempty"`
	Size          string          `json:"size,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

func (r *TransactionRepo) Create(t *entity.Transaction) error {
	items, err := marshalLines(t.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transactions
			(id, transaction_id, restaurant_id, user_id, customer_id, order_id, table_number, status,
			 items, subtotal, tax, tax_amount, discount, discount_amount, round_off, total, type, notes,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $19)`
	_, err = r.q.Exec(context.Background(), query,
		t.ID, t.TransactionID, t.RestaurantID, t.UserID, t.CustomerID, t.OrderID, t.TableNumber, t.Status,
		items, t.Subtotal, t.Tax, t.TaxAmount, t.Discount, t.DiscountAmount, t.RoundOff, t.Total, t.Type, t.Notes,
		t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", mapError(err))
	}
	return nil
}

func (r *TransactionRepo) GetByID(id, restaurantID string) (*entity.Transaction, error) {
	var (
		t     entity.Transaction
		items []byte
	)
	err := r.q.QueryRow(context.Background(), `
		SELECT id, transaction_id, restaurant_id, user_id, customer_id, order_id, table_number, status,
			items, subtotal, tax, tax_amount, discount, discount_amount, round_off, total, type, notes,
			created_at, updated_at
		FROM transactions
		WHERE id = $1 AND restaurant_id = $2`, id, restaurantID).Scan(
		&t.ID, &t.TransactionID, &t.RestaurantID, &t.UserID, &t.CustomerID, &t.OrderID, &t.TableNumber, &t.Status,
		&items, &t.Subtotal, &t.Tax, &t.TaxAmount, &t.Discount, &t.DiscountAmount, &t.RoundOff, &t.Total, &t.Type, &t.Notes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if t.Items, err = unmarshalLines(items); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) List(restaurantID string, limit, offset int) ([]entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, transaction_id, restaurant_id, user_id, customer_id, order_id, table_number, status,
			items, subtotal, tax, tax_amount, discount, discount_amount, round_off, total, type, notes,
			created_at, updated_at
		FROM transactions
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []entity.Transaction
	for rows.Next() {
		var (
			t     entity.Transaction
			items []byte
		)
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.RestaurantID, &t.UserID, &t.CustomerID, &t.OrderID, &t.TableNumber, &t.Status,
			&items, &t.Subtotal, &t.Tax, &t.TaxAmount, &t.Discount, &t.DiscountAmount, &t.RoundOff, &t.Total, &t.Type, &t.Notes,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Items, err = unmarshalLines(items); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func marshalLines(lines []entity.OrderLine) ([]byte, error) {
	rec := make([]txnLine, 0, len(lines))
	for _, l := range lines {
		rec = append(rec, txnLine(l))
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction items: %w", err)
	}
	return b, nil
}

func unmarshalLines(b []byte) ([]entity.OrderLine, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var rec []txnLine
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal transaction items: %w", err)
	}
	lines := make([]entity.OrderLine, 0, len(rec))
	for _, l := range rec {
		lines = append(lines, entity.OrderLine(l))
	}
	return lines, nil
}
