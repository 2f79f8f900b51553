package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/inventory"
)

// WasteHandler serves the waste tracking endpoints (protected).
type WasteHandler struct {
	uc *inventory.UseCase
}

func NewWasteHandler(uc *inventory.UseCase) *WasteHandler {
	return &WasteHandler{uc: uc}
}

// Create godoc
// @Summary      Record waste and write the quantity off stock
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WasteRequest  true  "item_id, waste_quantity, unit, reason"
// @Success      201   {object}  dto.WasteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste [post]
func (h *WasteHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateWaste(c.Context(), restaurantID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Edit a waste record, re-attributing stock
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "waste record id"
// @Param        body  body  dto.WasteRequest  true  "item_id, waste_quantity, unit, reason"
// @Success      200   {object}  dto.WasteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste/{id} [put]
func (h *WasteHandler) Update(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.WasteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateWaste(c.Context(), restaurantID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List waste records
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.WasteResponse
// @Router       /api/waste [get]
func (h *WasteHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListWaste(c.Context(), restaurantID, pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a waste record and restore its quantity to stock
// @Tags         waste
// @Security     Bearer
// @Param        id  path  string  true  "waste record id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/{id} [delete]
func (h *WasteHandler) Delete(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.DeleteWaste(c.Context(), restaurantID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
