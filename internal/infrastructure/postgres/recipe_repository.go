package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implements RecipeRepository on PostgreSQL (pool or tx). One
// recipe per menu item; ingredients are replaced wholesale on upsert.
type RecipeRepo struct {
	q Querier
}

func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func (r *RecipeRepo) Upsert(rec *entity.Recipe) error {
	ctx := context.Background()
	query := `
		INSERT INTO recipes (id, restaurant_id, menu_item_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (restaurant_id, menu_item_id)
		DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id`
	var recipeID string
	if err := r.q.QueryRow(ctx, query, rec.ID, rec.RestaurantID, rec.MenuItemID, rec.CreatedAt, rec.UpdatedAt).Scan(&recipeID); err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return fmt.Errorf("clear recipe ingredients: %w", err)
	}
	for i, ing := range rec.Ingredients {
		if _, err := r.q.Exec(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, inventory_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			recipeID, i, ing.InventoryID, ing.Quantity, string(ing.Unit),
		); err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	rec.ID = recipeID
	return nil
}

func (r *RecipeRepo) GetByMenuItem(menuItemID, restaurantID string) (*entity.Recipe, error) {
	ctx := context.Background()
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, `
		SELECT id, restaurant_id, menu_item_id, created_at, updated_at
		FROM recipes
		WHERE menu_item_id = $1 AND restaurant_id = $2`, menuItemID, restaurantID).Scan(
		&rec.ID, &rec.RestaurantID, &rec.MenuItemID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT inventory_id, quantity, unit
		FROM recipe_ingredients
		WHERE recipe_id = $1
		ORDER BY position ASC`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ing entity.RecipeIngredient
			u   string
		)
		if err := rows.Scan(&ing.InventoryID, &ing.Quantity, &u); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		ing.Unit = unit.Unit(u)
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepo) Delete(menuItemID, restaurantID string) error {
	// Ingredients go with the recipe via ON DELETE CASCADE.
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM recipes WHERE menu_item_id = $1 AND restaurant_id = $2`, menuItemID, restaurantID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
