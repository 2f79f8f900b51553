package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

// Stock is the maintained aggregate of an inventory item. Quantity and
// TotalQuantity move together on every mutation; Amount/Total are monetary
// and informational only, deduction decisions never read them.
type Stock struct {
	Quantity      decimal.Decimal
	TotalQuantity decimal.Decimal
	Amount        decimal.Decimal
	Total         decimal.Decimal
	PurchasedAt   time.Time
}

// SupplierBatch is one purchase event attributed to an inventory item.
// Append-only: later deductions reduce Quantity but the record is never
// removed, so cost-of-goods stays chronologically meaningful.
type SupplierBatch struct {
	ID           string
	SupplierID   string
	SupplierName string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	PurchasedAt  time.Time
}

// InventoryItem is one stocked ingredient per (restaurant, item name).
// TotalQuantity equals the sum of all batch quantities still attributed to
// the item, except for waste write-offs which touch the aggregate only.
type InventoryItem struct {
	ID           string
	RestaurantID string
	ItemName     string
	Unit         unit.Unit
	Stock        Stock
	Suppliers    []SupplierBatch
	IsDeleted    bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WasteRecord is inventory removed as waste rather than through a sale.
// Reversible: deleting or editing the record restores stock.
type WasteRecord struct {
	ID           string
	RestaurantID string
	ItemID       string
	ItemName     string
	Quantity     decimal.Decimal
	Unit         unit.Unit
	Reason       string
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
