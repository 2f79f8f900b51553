package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle states.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// OrderLine is one sellable line of an order. Two lines are the same line
// iff (ItemID, SubcategoryID, SizeID) match. Size is part of identity, so a
// small and a large of the same item are distinct lines.
type OrderLine struct {
	ItemID        string
	ItemName      string
	SubcategoryID string
	SizeID        string
	Size          string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
}

// Order is a dine-in/takeaway order. At most one order in a non-terminal
// payment state exists per (restaurant, table); the table row carries an
// explicit reference to it rather than relying on "most recent pending".
type Order struct {
	ID            string
	RestaurantID  string
	UserID        string
	CustomerID    string
	CustomerName  string
	TableNumber   string
	OrderType     string
	Status        string
	PaymentStatus string
	Items         []OrderLine
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Discount      decimal.Decimal // percent
	RoundOff      decimal.Decimal
	TotalAmount   decimal.Decimal
	KOTGenerated  bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Table is a physical table of a restaurant. CurrentOrderID points at the
// open order being built for it, empty when the table is free; updated in the
// same transaction as the order itself.
type Table struct {
	ID             string
	RestaurantID   string
	TableNumber    string
	CurrentOrderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
