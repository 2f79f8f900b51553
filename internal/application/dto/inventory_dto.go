package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body for POST /api/inventory.
type RestockRequest struct {
	ItemName     string          `json:"item_name" validate:"required"`
	Unit         string          `json:"unit" validate:"required"`
	SupplierID   string          `json:"supplier_id" validate:"required"`
	SupplierName string          `json:"supplier_name"`
	Quantity     decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice    decimal.Decimal `json:"unit_price" validate:"required"`
	PurchasedAt  *time.Time      `json:"purchased_at"`
}

// SupplierBatchDTO one purchase event attributed to an item.
type SupplierBatchDTO struct {
	ID           string          `json:"id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	PurchasedAt  time.Time       `json:"purchased_at"`
}

// InventoryItemResponse item state returned by the ledger endpoints.
type InventoryItemResponse struct {
	ID            string             `json:"id"`
	ItemName      string             `json:"item_name"`
	Unit          string             `json:"unit"`
	Quantity      decimal.Decimal    `json:"quantity"`
	TotalQuantity decimal.Decimal    `json:"total_quantity"`
	Amount        decimal.Decimal    `json:"amount"`
	Total         decimal.Decimal    `json:"total"`
	Suppliers     []SupplierBatchDTO `json:"suppliers"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DeductRequest body for POST /api/inventory/:id/deduct.
type DeductRequest struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
	Unit     string          `json:"unit" validate:"required"`
}

// DeductResponse remaining stock after a manual deduction.
type DeductResponse struct {
	ItemID        string          `json:"item_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Unit          string          `json:"unit"`
}

// WasteRequest body for creating/updating a waste record.
type WasteRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"waste_quantity" validate:"required"`
	Unit     string          `json:"unit" validate:"required"`
	Reason   string          `json:"reason"`
	Date     *time.Time      `json:"date"`
}

// WasteResponse a stored waste record.
type WasteResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"waste_quantity"`
	Unit      string          `json:"unit"`
	Reason    string          `json:"reason"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}
