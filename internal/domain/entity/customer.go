package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a restaurant's CRM record. EarnedPoints is the loyalty balance
// credited by the order reconciler; only mutated through atomic increments.
type Customer struct {
	ID           string
	RestaurantID string
	Name         string
	Email        string
	PhoneNumber  string
	Address      string
	Birthday     *time.Time
	Anniversary  *time.Time
	EarnedPoints decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Supplier is a purchase source for inventory restocks.
type Supplier struct {
	ID           string
	RestaurantID string
	SupplierName string
	Email        string
	PhoneNumber  string
	Address      string
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
