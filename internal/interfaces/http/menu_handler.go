package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/catalog"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
)

// MenuHandler serves the catalog endpoints (protected).
type MenuHandler struct {
	uc *catalog.UseCase
}

func NewMenuHandler(uc *catalog.UseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Create godoc
// @Summary      Create a menu item
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MenuItemRequest  true  "item_name, price, reward_points"
// @Success      201   {object}  dto.MenuItemResponse
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateMenuItem(c.Context(), restaurantID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a menu item
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "menu item id"
// @Param        body  body  dto.MenuItemRequest  true  "fields to update"
// @Success      200   {object}  dto.MenuItemResponse
// @Router       /api/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.MenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateMenuItem(c.Context(), restaurantID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get one menu item
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "menu item id"
// @Success      200  {object}  dto.MenuItemResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetMenuItem(c.Context(), restaurantID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List menu items
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MenuItemResponse
// @Router       /api/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListMenu(c.Context(), restaurantID, pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Soft-delete a menu item
// @Tags         menu
// @Security     Bearer
// @Param        id  path  string  true  "menu item id"
// @Success      204
// @Router       /api/menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.DeleteMenuItem(c.Context(), restaurantID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetRecipe godoc
// @Summary      Replace the recipe of a menu item
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "menu item id"
// @Param        body  body  dto.RecipeRequest  true  "ingredients"
// @Success      200   {object}  dto.RecipeResponse
// @Router       /api/menu/{id}/recipe [put]
func (h *MenuHandler) SetRecipe(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.RecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetRecipe(c.Context(), restaurantID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetRecipe godoc
// @Summary      Get the recipe of a menu item
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "menu item id"
// @Success      200  {object}  dto.RecipeResponse
// @Router       /api/menu/{id}/recipe [get]
func (h *MenuHandler) GetRecipe(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetRecipe(c.Context(), restaurantID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
