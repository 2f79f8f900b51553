package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body for creating/updating a customer.
type CustomerRequest struct {
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"omitempty,email"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	Birthday    *time.Time `json:"birthday"`
	Anniversary *time.Time `json:"anniversary"`
}

// CustomerResponse a stored customer with the loyalty balance.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email,omitempty"`
	PhoneNumber  string          `json:"phone_number,omitempty"`
	Address      string          `json:"address,omitempty"`
	EarnedPoints decimal.Decimal `json:"earned_points"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SupplierRequest body for creating/updating a supplier.
type SupplierRequest struct {
	SupplierName string `json:"supplier_name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
}

// SupplierResponse a stored supplier.
type SupplierResponse struct {
	ID           string    `json:"id"`
	SupplierName string    `json:"supplier_name"`
	Email        string    `json:"email,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
