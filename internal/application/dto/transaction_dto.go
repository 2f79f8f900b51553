package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleOrderRequest body for POST /api/transactions/settle.
type SettleOrderRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=Cash Online Card Split"`
	Notes   string `json:"notes"`
}

// TransactionResponse a stored billing record.
type TransactionResponse struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	OrderID        string          `json:"order_id"`
	CustomerID     string          `json:"customer_id,omitempty"`
	TableNumber    string          `json:"table_number"`
	Status         string          `json:"status"`
	Items          []OrderLineDTO  `json:"items"`
	Subtotal       decimal.Decimal `json:"sub_total"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Discount       decimal.Decimal `json:"discount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	RoundOff       decimal.Decimal `json:"round_off"`
	Total          decimal.Decimal `json:"total"`
	Type           string          `json:"type"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
