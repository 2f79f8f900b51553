package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine one desired line of a cart submission.
type CartLine struct {
	ItemID        string          `json:"item_id" validate:"required"`
	ItemName      string          `json:"item_name"`
	SubcategoryID string          `json:"selected_subcategory_id"`
	SizeID        string          `json:"size_id"`
	Size          string          `json:"size"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity" validate:"required"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

// SubmitOrderRequest body for POST /api/orders. When an open order exists for
// the same (restaurant, table) the cart is merged into it; otherwise a new
// pending order is created.
type SubmitOrderRequest struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	TableNumber  string          `json:"table_number" validate:"required"`
	OrderType    string          `json:"order_type"`
	Discount     decimal.Decimal `json:"discount"`
	RoundOff     decimal.Decimal `json:"round_off"`
	KOTGenerated *bool           `json:"kot_generated"`
	Items        []CartLine      `json:"items" validate:"required,min=1,dive"`
}

// OrderLineDTO one line of a stored order.
type OrderLineDTO struct {
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	SubcategoryID string          `json:"selected_subcategory_id,omitempty"`
	SizeID        string          `json:"size_id,omitempty"`
	Size          string          `json:"size,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
}

// OrderResponse a stored order plus any inventory warnings from the merge.
// Warnings are non-blocking notices: the order itself succeeded.
type OrderResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	TableNumber   string          `json:"table_number"`
	OrderType     string          `json:"order_type,omitempty"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Items         []OrderLineDTO  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	RoundOff      decimal.Decimal `json:"round_off"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	KOTGenerated  bool            `json:"kot_generated"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Merged        bool            `json:"merged"`
	Warnings      []string        `json:"inventory_warnings,omitempty"`
}
