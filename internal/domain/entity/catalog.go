package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

// MenuItem is a sellable catalog entry. RewardPoints is the loyalty value
// credited per unit sold; zero means the item earns nothing.
type MenuItem struct {
	ID           string
	RestaurantID string
	CategoryID   string
	ItemName     string
	Price        decimal.Decimal
	RewardPoints decimal.Decimal
	Status       int
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeIngredient maps one inventory item consumed when a unit of the menu
// item is sold. The unit here is the recipe's, not necessarily the stocked
// unit; the ledger converts at deduction time.
type RecipeIngredient struct {
	InventoryID string
	Quantity    decimal.Decimal
	Unit        unit.Unit
}

// Recipe is the ingredient mapping of a menu item.
type Recipe struct {
	ID           string
	RestaurantID string
	MenuItemID   string
	Ingredients  []RecipeIngredient
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
