package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment types accepted at settlement.
const (
	PaymentTypeCash   = "Cash"
	PaymentTypeOnline = "Online"
	PaymentTypeCard   = "Card"
	PaymentTypeSplit  = "Split"
)

// Transaction is the billing record produced when a pending order settles.
// Amounts are recomputed from the order lines at settlement time, never
// copied from client input.
type Transaction struct {
	ID             string
	TransactionID  string // human-facing number, e.g. TXN-6F2A91
	RestaurantID   string
	UserID         string
	CustomerID     string
	OrderID        string
	TableNumber    string
	Status         string
	Items          []OrderLine
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	TaxAmount      decimal.Decimal
	Discount       decimal.Decimal // percent
	DiscountAmount decimal.Decimal
	RoundOff       decimal.Decimal
	Total          decimal.Decimal
	Type           string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
