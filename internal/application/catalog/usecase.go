package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

// UseCase manages the sellable catalog: menu items and their recipes.
type UseCase struct {
	menus   repository.MenuRepository
	recipes repository.RecipeRepository
	log     *logger.Logger
}

func NewUseCase(menus repository.MenuRepository, recipes repository.RecipeRepository, log *logger.Logger) *UseCase {
	return &UseCase{menus: menus, recipes: recipes, log: log}
}

// CreateMenuItem adds a sellable entry to the catalog.
func (uc *UseCase) CreateMenuItem(ctx context.Context, restaurantID string, req dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m := &entity.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		ItemName:     req.ItemName,
		Price:        req.Price,
		RewardPoints: req.RewardPoints,
		Status:       1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	if err := uc.menus.Create(m); err != nil {
		return nil, err
	}
	return toMenuResponse(m), nil
}

// UpdateMenuItem edits a catalog entry.
func (uc *UseCase) UpdateMenuItem(ctx context.Context, restaurantID, id string, req dto.MenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	m, err := uc.menus.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	m.ItemName = req.ItemName
	m.CategoryID = req.CategoryID
	m.Price = req.Price
	m.RewardPoints = req.RewardPoints
	if req.Status != nil {
		m.Status = *req.Status
	}
	m.UpdatedAt = time.Now().UTC()
	if err := uc.menus.Update(m); err != nil {
		return nil, err
	}
	return toMenuResponse(m), nil
}

// GetMenuItem returns one catalog entry.
func (uc *UseCase) GetMenuItem(ctx context.Context, restaurantID, id string) (*dto.MenuItemResponse, error) {
	m, err := uc.menus.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	return toMenuResponse(m), nil
}

// ListMenu returns the restaurant's catalog.
func (uc *UseCase) ListMenu(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.MenuItemResponse, error) {
	ms, err := uc.menus.List(restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MenuItemResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *toMenuResponse(&ms[i]))
	}
	return out, nil
}

// DeleteMenuItem soft-deletes a catalog entry and drops its recipe.
func (uc *UseCase) DeleteMenuItem(ctx context.Context, restaurantID, id string) error {
	if err := uc.menus.SoftDelete(id, restaurantID); err != nil {
		return err
	}
	return uc.recipes.Delete(id, restaurantID)
}

// SetRecipe replaces the ingredient mapping of a menu item.
func (uc *UseCase) SetRecipe(ctx context.Context, restaurantID, menuItemID string, req dto.RecipeRequest) (*dto.RecipeResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if _, err := uc.menus.GetByID(menuItemID, restaurantID); err != nil {
		return nil, err
	}
	ingredients := make([]entity.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		u, err := unit.Parse(ing.Unit)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, entity.RecipeIngredient{
			InventoryID: ing.InventoryID,
			Quantity:    ing.Quantity,
			Unit:        u,
		})
	}
	now := time.Now().UTC()
	r := &entity.Recipe{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		MenuItemID:   menuItemID,
		Ingredients:  ingredients,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.recipes.Upsert(r); err != nil {
		return nil, err
	}
	return toRecipeResponse(r), nil
}

// GetRecipe returns the ingredient mapping of a menu item.
func (uc *UseCase) GetRecipe(ctx context.Context, restaurantID, menuItemID string) (*dto.RecipeResponse, error) {
	r, err := uc.recipes.GetByMenuItem(menuItemID, restaurantID)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(r), nil
}

func toMenuResponse(m *entity.MenuItem) *dto.MenuItemResponse {
	return &dto.MenuItemResponse{
		ID:           m.ID,
		ItemName:     m.ItemName,
		CategoryID:   m.CategoryID,
		Price:        m.Price,
		RewardPoints: m.RewardPoints,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	ings := make([]dto.RecipeIngredientDTO, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ings = append(ings, dto.RecipeIngredientDTO{
			InventoryID: ing.InventoryID,
			Quantity:    ing.Quantity,
			Unit:        string(ing.Unit),
		})
	}
	return &dto.RecipeResponse{
		MenuItemID:  r.MenuItemID,
		Ingredients: ings,
		UpdatedAt:   r.UpdatedAt,
	}
}
