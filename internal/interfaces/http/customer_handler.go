package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/crm"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
)

// CustomerHandler serves the CRM endpoints (protected).
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), restaurantID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), restaurantID, c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), restaurantID, c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.Context(), restaurantID, pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	restaurantID := GetRestaurantID(c)
	if restaurantID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), restaurantID, c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
