package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItemRequest body for creating/updating a menu item.
type MenuItemRequest struct {
	ItemName     string          `json:"item_name" validate:"required"`
	CategoryID   string          `json:"category_id"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	RewardPoints decimal.Decimal `json:"reward_points"`
	Status       *int            `json:"status"`
}

// MenuItemResponse a stored menu item.
type MenuItemResponse struct {
	ID           string          `json:"id"`
	ItemName     string          `json:"item_name"`
	CategoryID   string          `json:"category_id,omitempty"`
	Price        decimal.Decimal `json:"price"`
	RewardPoints decimal.Decimal `json:"reward_points"`
	Status       int             `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RecipeIngredientDTO one ingredient consumed per unit sold.
type RecipeIngredientDTO struct {
	InventoryID string          `json:"inventory_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	Unit        string          `json:"unit" validate:"required"`
}

// RecipeRequest body for PUT /api/menu/:id/recipe.
type RecipeRequest struct {
	Ingredients []RecipeIngredientDTO `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeResponse a stored recipe.
type RecipeResponse struct {
	MenuItemID  string                `json:"menu_item_id"`
	Ingredients []RecipeIngredientDTO `json:"ingredients"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
